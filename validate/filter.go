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

package validate

import "github.com/shoaldata/shoal/record"

// filteredSource wraps a record.RowSource, skipping rows whose original
// line number is in the skip set. Surviving rows still report their true
// original line number, so a line-number schema field needs no separate
// remapping (§4.7).
type filteredSource struct {
	src  record.RowSource
	skip map[int]bool
}

// NewFilteredSource elides every row of src whose line number appears in
// mismatches, the collecting-mode pre-scan's result.
func NewFilteredSource(src record.RowSource, mismatches []Mismatch) record.RowSource {
	skip := make(map[int]bool, len(mismatches))
	for _, m := range mismatches {
		skip[m.Line] = true
	}
	return &filteredSource{src: src, skip: skip}
}

func (f *filteredSource) Next() ([]record.Cell, int, error) {
	for {
		cells, line, err := f.src.Next()
		if err != nil {
			return nil, 0, err
		}
		if f.skip[line] {
			continue
		}
		return cells, line, nil
	}
}

func (f *filteredSource) Close() error {
	return f.src.Close()
}
