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

package record

import "github.com/shoaldata/shoal/delim"

// delimitedSource adapts a *delim.Reader to RowSource.
type delimitedSource struct {
	r *delim.Reader
}

// NewDelimitedSource wraps r as a RowSource, tagging every field as a
// string cell.
func NewDelimitedSource(r *delim.Reader) RowSource {
	return &delimitedSource{r: r}
}

func (s *delimitedSource) Next() ([]Cell, int, error) {
	fields, err := s.r.Read()
	if err != nil {
		return nil, 0, err
	}
	cells := make([]Cell, len(fields))
	for i, f := range fields {
		cells[i] = Cell{Kind: CellString, Raw: f}
	}
	return cells, s.r.Line(), nil
}

func (s *delimitedSource) Close() error {
	return nil
}
