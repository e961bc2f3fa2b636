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

package delim

import "fmt"

// MalformedRecordError is returned when a quoted field is not closed
// before end of input, or a character appears where only a quote, the
// delimiter, or a line terminator is valid after a closing quote.
type MalformedRecordError struct {
	Line int
	Msg  string
}

func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("delim: malformed record on line %d: %s", e.Line, e.Msg)
}
