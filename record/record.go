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

// Package record binds source rows (delimited or spreadsheet) to typed
// Go records using a schema.RecordType, and writes typed records back out
// as delimited rows.
package record

// CellKind tags the underlying representation of a Cell's value, for
// informational/debugging purposes; the mapper always converts from
// Cell.Raw, the canonicalised text form of the value (spec §4.3/§4.5).
type CellKind int

const (
	CellString CellKind = iota
	CellNumber
	CellBool
	CellDate
	CellBlank
	CellFormula
)

// Cell is one raw value from a source row.
type Cell struct {
	Kind CellKind
	Raw  string
}

// RowSource is the common streaming interface over delimited and
// spreadsheet row producers. Next returns io.EOF once exhausted. line is
// the 1-based logical source line/row of the returned cells.
type RowSource interface {
	Next() (cells []Cell, line int, err error)
	Close() error
}

// isEmptyRow reports whether every cell's raw value is blank once
// trimmed, the definition of an "empty row" shared by delimited empty
// logical rows (§4.2) and spreadsheet empty rows (§4.3).
func isEmptyRow(cells []Cell) bool {
	for _, c := range cells {
		if trimSpace(c.Raw) != "" {
			return false
		}
	}
	return true
}

func trimSpace(s string) string {
	start, end := 0, len(s)
	for start < end && isSpace(s[start]) {
		start++
	}
	for end > start && isSpace(s[end-1]) {
		end--
	}
	return s[start:end]
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}
