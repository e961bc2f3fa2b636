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

// Package multifile reads N delimited/spreadsheet files of the same
// record type with up to `parallelism` files in flight at once, always
// returning records concatenated in input file order regardless of
// which file finishes first (C10).
package multifile

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/shoaldata/shoal/record"
)

// Opener opens one file's Mapper. It is called at most once per file,
// from whichever worker goroutine claims that file's index.
type Opener[T any] func() (*record.Mapper[T], error)

// ReadAll reads every record from every file named by openers, running
// up to parallelism files concurrently, and returns all records
// concatenated in the same order as openers regardless of which
// goroutine finished first. parallelism < 1 is treated as 1
// (sequential).
//
// On the first file that fails, remaining unclaimed files are never
// started and ReadAll returns that file's error; files already in
// flight are allowed to finish so their Mapper is always closed.
func ReadAll[T any](openers []Opener[T], parallelism int) ([]*T, error) {
	n := len(openers)
	if n == 0 {
		return nil, nil
	}
	if parallelism < 1 {
		parallelism = 1
	}
	if parallelism > n {
		parallelism = n
	}

	slots := make([][]*T, n)

	var cursor int64 = -1
	var mu sync.Mutex
	var firstErr error

	var wg sync.WaitGroup
	wg.Add(parallelism)
	for w := 0; w < parallelism; w++ {
		go func() {
			defer wg.Done()
			for {
				mu.Lock()
				aborted := firstErr != nil
				mu.Unlock()
				if aborted {
					return
				}

				idx := int(atomic.AddInt64(&cursor, 1))
				if idx >= n {
					return
				}

				recs, err := readFile(openers[idx])
				if err != nil {
					mu.Lock()
					if firstErr == nil {
						firstErr = fmt.Errorf("multifile: file %d: %w", idx, err)
					}
					mu.Unlock()
					return
				}
				slots[idx] = recs
			}
		}()
	}
	wg.Wait()

	if firstErr != nil {
		return nil, firstErr
	}

	total := 0
	for _, s := range slots {
		total += len(s)
	}
	out := make([]*T, 0, total)
	for _, s := range slots {
		out = append(out, s...)
	}
	return out, nil
}

func readFile[T any](open Opener[T]) ([]*T, error) {
	mp, err := open()
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
