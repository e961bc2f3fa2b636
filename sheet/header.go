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

package sheet

import (
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/shoaldata/shoal/record"
)

// DefaultHeaderWindow is the number of leading rows scanned for the
// header row when the caller does not specify a window (§4.6).
const DefaultHeaderWindow = 10

// headerLocatedSource replays the already-consumed header row as the
// first record it yields, then delegates every later call to the
// underlying Reader, which has already advanced past it.
type headerLocatedSource struct {
	underlying  *Reader
	headerCells []record.Cell
	headerLine  int
	delivered   bool
}

func (h *headerLocatedSource) Next() ([]record.Cell, int, error) {
	if !h.delivered {
		h.delivered = true
		return h.headerCells, h.headerLine, nil
	}
	return h.underlying.Next()
}

func (h *headerLocatedSource) Close() error {
	return h.underlying.Close()
}

// LocateHeader opens sheetName in f and scans up to window rows (1-based,
// starting at row 1) for a row containing a cell whose trimmed value
// equals the trimmed key; the first match wins. It returns a
// record.RowSource whose first row is the located header and whose
// subsequent rows are the data rows beneath it, ready to feed
// record.NewMapper in ByName mode. If window is <= 0, DefaultHeaderWindow
// is used.
func LocateHeader(f *excelize.File, sheetName, key string, window int) (record.RowSource, error) {
	if window <= 0 {
		window = DefaultHeaderWindow
	}
	r, err := NewReader(f, sheetName)
	if err != nil {
		return nil, err
	}

	wantKey := trimmed(key)
	for i := 0; i < window; i++ {
		cells, line, err := r.Next()
		if err != nil {
			r.Close()
			if err == io.EOF {
				return nil, &HeaderNotFoundError{Key: key, Window: window}
			}
			return nil, err
		}
		for _, c := range cells {
			if trimmed(c.Raw) == wantKey {
				return &headerLocatedSource{underlying: r, headerCells: cells, headerLine: line}, nil
			}
		}
	}
	r.Close()
	return nil, &HeaderNotFoundError{Key: key, Window: window}
}

// NewFixedHeaderSource opens sheetName in f and treats headerRow
// (1-based) as the header, without scanning for it. It validates that
// key is present among the header's non-blank column names, returning
// *KeyColumnNotFoundError if not.
func NewFixedHeaderSource(f *excelize.File, sheetName string, headerRow int, key string) (record.RowSource, error) {
	r, err := NewReader(f, sheetName)
	if err != nil {
		return nil, err
	}
	var cells []record.Cell
	var line int
	for {
		cells, line, err = r.Next()
		if err != nil {
			r.Close()
			return nil, err
		}
		if line == headerRow {
			break
		}
	}
	if _, ok := HeaderIndex(cells, key); !ok {
		r.Close()
		return nil, &KeyColumnNotFoundError{Key: key}
	}
	return &headerLocatedSource{underlying: r, headerCells: cells, headerLine: line}, nil
}

// HeaderIndex builds a name -> 0-based array index map from a header
// row's cells, skipping blank names, and reports whether key is present
// in it. It is exposed for callers that locate a header row through some
// other means (e.g. a fixed, pre-known row number) and still need the
// spec's "key column must be present" validation (§4.6).
func HeaderIndex(cells []record.Cell, key string) (map[string]int, bool) {
	idx := make(map[string]int, len(cells))
	for i, c := range cells {
		name := trimmed(c.Raw)
		if name == "" {
			continue
		}
		idx[name] = i
	}
	_, ok := idx[trimmed(key)]
	return idx, ok
}
