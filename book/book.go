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

// Package book declares the plain value objects describing where a
// table is placed on a worksheet: Book, Sheet, Table and Anchor. It does
// no I/O of its own; sheet.Writer is the only consumer (§4.11, §4.13).
package book

// Anchor is a 1-based (row, column) cell position, the top-left corner
// of a table.
type Anchor struct {
	Row int
	Col int
}

// Table is one table placement on a sheet: its anchor and, for
// name-bound schemas, its explicit header names in declaration order.
// A nil Header means no header row is written (position-bound schema).
type Table struct {
	Anchor Anchor
	Header []string
}

// Sheet is a named worksheet and the tables placed on it. Multiple
// tables may share a sheet; the writer never infers layout, so their
// Anchors must not overlap.
type Sheet struct {
	Name   string
	Tables []Table
}

// Book is the collection of sheets that sheet.Writer.WriteBook places
// into one workbook.
type Book struct {
	Sheets []Sheet
}
