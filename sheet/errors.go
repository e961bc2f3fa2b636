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

import "fmt"

// HeaderNotFoundError is returned when no row within the scan window
// contains a cell matching the configured key column.
type HeaderNotFoundError struct {
	Key    string
	Window int
}

func (e *HeaderNotFoundError) Error() string {
	return fmt.Sprintf("sheet: header row with key column %q not found within %d-row window", e.Key, e.Window)
}

// KeyColumnNotFoundError is returned when a header row was located but
// the resulting name-to-column index does not contain the required key.
type KeyColumnNotFoundError struct {
	Key string
}

func (e *KeyColumnNotFoundError) Error() string {
	return fmt.Sprintf("sheet: key column %q not present in located header row", e.Key)
}
