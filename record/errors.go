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

import "fmt"

// CellConversionError is returned when a cell's raw value cannot be
// converted to its field's target type.
type CellConversionError struct {
	Row        int
	Column     string
	Raw        string
	TargetKind int
	Cause      error
}

func (e *CellConversionError) Error() string {
	return fmt.Sprintf("record: row %d, column %q: cannot convert %q to target kind %d: %v",
		e.Row, e.Column, e.Raw, e.TargetKind, e.Cause)
}

func (e *CellConversionError) Unwrap() error { return e.Cause }

// MissingColumnError is returned when a required by-name field has no
// matching column in the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("record: required column %q not found in header", e.Column)
}
