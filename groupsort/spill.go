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
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/shoaldata/shoal/charset"
	"github.com/shoaldata/shoal/delim"
	"github.com/shoaldata/shoal/record"
	"github.com/shoaldata/shoal/temp"
)

// spillDialect is the internal serialization format for per-group spill
// files. It is never exposed to the caller: spilled groups are a private
// implementation detail, not the user-facing delimited format, so a
// fixed plain-UTF-8 comma dialect is all that is required here.
var spillDialect = delim.NewDialect()

// sanitizeFilename maps key to a filesystem-safe file name, replacing any
// character outside [A-Za-z0-9._-] with '_' and disambiguating against
// collisions already recorded in used (spec §4.9 step 3).
func sanitizeFilename(key string, used map[string]bool) string {
	var b strings.Builder
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	base := b.String()
	if base == "" {
		base = "_"
	}
	name := base + ".grp"
	for i := 2; used[name]; i++ {
		name = fmt.Sprintf("%s~%d.grp", base, i)
	}
	return name
}

// groupWriter is one group's open spill file plus the typed writer over
// it, kept open from the first record assigned to the key until the
// partition pass completes (spec §4.9 step 3).
type groupWriter[T any] struct {
	f  *os.File
	rw *record.Writer[T]
}

func createGroupWriter[T any](dir *temp.Dir, filename string) (*groupWriter[T], error) {
	f, err := os.Create(dir.Join(filename))
	if err != nil {
		return nil, err
	}
	rw, err := record.NewWriter[T](f, spillDialect, charset.UTF8)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &groupWriter[T]{f: f, rw: rw}, nil
}

func (g *groupWriter[T]) write(rec *T) error {
	return g.rw.Write(rec)
}

func (g *groupWriter[T]) close() error {
	if err := g.rw.Flush(); err != nil {
		g.f.Close()
		return err
	}
	return g.f.Close()
}

// readGroup reads every record back from a spill file, for the in-memory
// sort pass (spec §4.9 step 4).
func readGroup[T any](path string) ([]*T, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mp, err := newGroupMapper[T](f)
	if err != nil {
		return nil, err
	}
	defer mp.Close()

	var recs []*T
	for {
		rec, err := mp.Next()
		if err == io.EOF {
			return recs, nil
		}
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
}

// overwriteGroup replaces path's content with recs in order, used after
// the in-memory sort pass.
func overwriteGroup[T any](path string, recs []*T) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	rw, err := record.NewWriter[T](f, spillDialect, charset.UTF8)
	if err != nil {
		f.Close()
		return err
	}
	if err := rw.WriteAll(recs); err != nil {
		f.Close()
		return err
	}
	if err := rw.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func newGroupMapper[T any](f *os.File) (*record.Mapper[T], error) {
	dr := delim.NewReader(f, spillDialect)
	src := record.NewDelimitedSource(dr)
	return record.NewMapper[T](src)
}
