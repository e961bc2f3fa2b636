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

// Package sheet adapts an Excel workbook, via github.com/xuri/excelize/v2,
// to the same row-source/row-writer shape that package delim exposes for
// flat text, and locates a header row inside a bounded scan window.
package sheet

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// cellRef formats a 1-based (col, row) pair as an A1-style reference via
// excelize.CoordinatesToCellName, falling back to "col:row" text if the
// pair is out of range.
func cellRef(col, row int) string {
	name, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return strconv.Itoa(col) + ":" + strconv.Itoa(row)
	}
	return name
}

func trimmed(s string) string {
	return strings.TrimSpace(s)
}
