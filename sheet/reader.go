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
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/shoaldata/shoal/record"
)

// Reader is a forward-only record.RowSource over one worksheet of an
// excelize.File, grounded on the other_examples streaming-iterator
// pattern (f.Rows / Rows.Columns / Rows.Close / Rows.Error). Every row it
// returns is padded to at least the sheet's widest column so a cell at
// array index i always corresponds to the same 1-based sheet column
// across every row, keeping header-name lookups aligned with data rows.
type Reader struct {
	f         *excelize.File
	sheetName string
	rows      *excelize.Rows
	rowNum    int
	width     int
	date1904  bool
}

// NewReader opens a streaming reader over sheetName in f.
func NewReader(f *excelize.File, sheetName string) (*Reader, error) {
	rows, err := f.Rows(sheetName)
	if err != nil {
		return nil, err
	}
	cols, err := f.GetCols(sheetName)
	if err != nil {
		rows.Close()
		return nil, err
	}

	return &Reader{
		f:         f,
		sheetName: sheetName,
		rows:      rows,
		width:     len(cols),
		// date1904 defaults to false: the 1904 date system is a legacy
		// macOS-Excel workbook option this reader does not detect.
		date1904: false,
	}, nil
}

// Next returns the next row's cells and its 1-based row number, or
// io.EOF once the sheet is exhausted.
func (r *Reader) Next() ([]record.Cell, int, error) {
	if !r.rows.Next() {
		if err := r.rows.Error(); err != nil {
			return nil, 0, err
		}
		return nil, 0, io.EOF
	}
	r.rowNum++

	raw, err := r.rows.Columns()
	if err != nil {
		return nil, 0, err
	}

	width := r.width
	if len(raw) > width {
		width = len(raw)
	}
	cells := make([]record.Cell, width)
	for i := 0; i < width; i++ {
		var text string
		if i < len(raw) {
			text = raw[i]
		}
		cells[i] = r.classify(i+1, text)
	}
	return cells, r.rowNum, nil
}

// Close releases the underlying worksheet row iterator.
func (r *Reader) Close() error {
	return r.rows.Close()
}

// classify tags col's value at the current row with its CellKind,
// following spec §4.3: formula cells surface the formula text, numeric
// cells integral in value render without a trailing fractional part,
// date cells are decoded from their serial number, blank cells are
// whatever excelize reports as an empty trimmed string.
func (r *Reader) classify(col int, text string) record.Cell {
	ref := cellRef(col, r.rowNum)

	if formula, err := r.f.GetCellFormula(r.sheetName, ref); err == nil && formula != "" {
		return record.Cell{Kind: record.CellFormula, Raw: formula}
	}

	cellType, err := r.f.GetCellType(r.sheetName, ref)
	if err != nil {
		return record.Cell{Kind: record.CellString, Raw: text}
	}

	switch cellType {
	case excelize.CellTypeBool:
		return record.Cell{Kind: record.CellBool, Raw: strings.ToLower(text)}
	case excelize.CellTypeDate:
		return r.classifyDate(ref, text)
	case excelize.CellTypeNumber:
		return record.Cell{Kind: record.CellNumber, Raw: formatNumericText(text)}
	default:
		if trimmed(text) == "" {
			return record.Cell{Kind: record.CellBlank, Raw: ""}
		}
		return record.Cell{Kind: record.CellString, Raw: text}
	}
}

// classifyDate decodes a date-formatted cell's serial number into an
// ISO-8601 date or date-time string, depending on whether the serial
// carries a fractional (time-of-day) component.
func (r *Reader) classifyDate(ref, text string) record.Cell {
	raw, err := r.f.GetCellValue(r.sheetName, ref, excelize.Options{RawCellValue: true})
	if err != nil {
		return record.Cell{Kind: record.CellDate, Raw: text}
	}
	serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return record.Cell{Kind: record.CellDate, Raw: text}
	}
	t, err := excelize.ExcelDateToTime(serial, r.date1904)
	if err != nil {
		return record.Cell{Kind: record.CellDate, Raw: text}
	}
	if serial == float64(int64(serial)) {
		return record.Cell{Kind: record.CellDate, Raw: t.Format("2006-01-02")}
	}
	return record.Cell{Kind: record.CellDate, Raw: t.Format("2006-01-02 15:04:05")}
}

// formatNumericText renders an excelize-formatted numeric cell value in
// the spec's fixed integral/decimal textual form, independent of any
// locale-specific thousands separator or the cell's display format.
func formatNumericText(text string) string {
	f, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(text, ",", "")), 64)
	if err != nil {
		return text
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
