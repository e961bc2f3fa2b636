// Copyright (C) 2026 The Shoal Authors.
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package groupsort

import (
	"errors"
	"io"
	"os"
	"sort"

	"github.com/shoaldata/shoal/record"
	"github.com/shoaldata/shoal/temp"
)

// ErrComparatorRequired is returned when a group has more than one
// record, Options carries no Comparator, and T does not implement
// Comparable[T] either (spec §4.9 step 4).
var ErrComparatorRequired = errors.New("groupsort: a comparator is required, or the record type must implement Comparable[T]")

// Handler consumes one group's sorted records, streamed lazily so it may
// stop early (e.g. take the first 10) without reading the whole group.
type Handler[T any] func(key string, stream *Stream[T]) error

// Stream is a lazy, forward-only view of one sorted group's records.
type Stream[T any] struct {
	mapper *record.Mapper[T]
}

// Next returns the next record in the group, io.EOF when exhausted.
func (s *Stream[T]) Next() (*T, error) {
	return s.mapper.Next()
}

// Close releases the stream's underlying spill file. Process calls this
// automatically after the handler returns; callers do not need to.
func (s *Stream[T]) Close() error {
	return s.mapper.Close()
}

// Process implements C9: it partitions mapper's records into per-key
// spill files, sorts each group in memory once fully spilled, and hands
// each group to handler in first-appearance order of its key.
//
// Invariants upheld: total records handed to handler equals total
// records read from mapper; within a group, records are ordered per
// Options' Comparator (or T's Comparable[T] implementation); groups are
// visited in the order their key first appeared in the input.
func Process[T any](mapper *record.Mapper[T], keyFn KeyFunc[T], opts Options[T], handler Handler[T]) error {
	dir, err := temp.New(opts.tempLabel)
	if err != nil {
		return err
	}
	defer dir.Close()

	writers := map[string]*groupWriter[T]{}
	filenames := map[string]string{}
	usedNames := map[string]bool{}
	var order []string

	closeWriters := func() {
		for _, w := range writers {
			w.close()
		}
	}

	for {
		rec, rerr := mapper.Next()
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			closeWriters()
			return rerr
		}

		key := keyFn(rec)
		w, ok := writers[key]
		if !ok {
			fname := sanitizeFilename(key, usedNames)
			usedNames[fname] = true
			filenames[key] = fname
			nw, cerr := createGroupWriter[T](dir, fname)
			if cerr != nil {
				closeWriters()
				return cerr
			}
			writers[key] = nw
			w = nw
			order = append(order, key)
		}
		if werr := w.write(rec); werr != nil {
			closeWriters()
			return werr
		}
	}

	for _, key := range order {
		if err := writers[key].close(); err != nil {
			return err
		}
	}

	for _, key := range order {
		path := dir.Join(filenames[key])
		recs, rerr := readGroup[T](path)
		if rerr != nil {
			return rerr
		}
		if err := sortGroup(recs, opts.comparator); err != nil {
			return err
		}
		if err := overwriteGroup[T](path, recs); err != nil {
			return err
		}
	}

	for _, key := range order {
		path := dir.Join(filenames[key])
		f, oerr := os.Open(path)
		if oerr != nil {
			return oerr
		}
		mp, merr := newGroupMapper[T](f)
		if merr != nil {
			f.Close()
			return merr
		}
		stream := &Stream[T]{mapper: mp}
		herr := handler(key, stream)
		stream.Close()
		f.Close()
		if herr != nil {
			return herr
		}
	}
	return nil
}

// sortGroup sorts recs stably in place using cmp, or T's Comparable[T]
// implementation when cmp is nil.
func sortGroup[T any](recs []*T, cmp Comparator[T]) error {
	if len(recs) < 2 {
		return nil
	}
	if cmp == nil {
		if _, ok := any(recs[0]).(Comparable[T]); !ok {
			return ErrComparatorRequired
		}
	}
	sort.SliceStable(recs, func(i, j int) bool {
		if cmp != nil {
			return cmp(recs[i], recs[j]) < 0
		}
		return any(recs[i]).(Comparable[T]).CompareTo(recs[j]) < 0
	})
	return nil
}
