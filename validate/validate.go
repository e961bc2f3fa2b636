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

// Package validate pre-scans a delimited source for column-count
// consistency (C7), either failing fast at the first mismatch or
// collecting every mismatched line for the caller.
package validate

import (
	"fmt"
	"io"
	"strings"

	"github.com/shoaldata/shoal/delim"
)

const previewLimit = 120

// Mismatch describes one line whose field count does not match the
// expected count.
type Mismatch struct {
	Line     int
	Expected int
	Actual   int
	Preview  string
}

// ColumnCountMismatchError is raised by Validate at the first mismatch.
type ColumnCountMismatchError struct {
	Line     int
	Expected int
	Actual   int
	Preview  string
}

func (e *ColumnCountMismatchError) Error() string {
	return fmt.Sprintf("validate: line %d: expected %d columns, got %d: %q",
		e.Line, e.Expected, e.Actual, e.Preview)
}

// Validate pre-scans r, the expected column count taken from the first
// non-empty record (typically the header). It returns *ColumnCountMismatchError
// on the first line whose field count differs.
func Validate(r *delim.Reader) error {
	expected := -1
	for {
		fields, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if isEmptyRow(fields) {
			continue
		}
		if expected == -1 {
			expected = len(fields)
			continue
		}
		if len(fields) != expected {
			return &ColumnCountMismatchError{
				Line:     r.Line(),
				Expected: expected,
				Actual:   len(fields),
				Preview:  preview(fields),
			}
		}
	}
}

// ValidateAndCollect pre-scans r and returns every mismatched line
// without raising, so the caller can still read the good lines. Feed the
// result's line numbers to NewFilteredSource to build a record.RowSource
// over a second, freshly-opened reader of the same input that elides
// those lines while still reporting each surviving row's true original
// line number.
func ValidateAndCollect(r *delim.Reader) (mismatches []Mismatch, err error) {
	expected := -1
	for {
		fields, rerr := r.Read()
		if rerr == io.EOF {
			return mismatches, nil
		}
		if rerr != nil {
			return mismatches, rerr
		}
		if isEmptyRow(fields) {
			continue
		}
		if expected == -1 {
			expected = len(fields)
			continue
		}
		if len(fields) != expected {
			mismatches = append(mismatches, Mismatch{
				Line:     r.Line(),
				Expected: expected,
				Actual:   len(fields),
				Preview:  preview(fields),
			})
		}
	}
}

// isEmptyRow reports whether fields is an empty logical row (every field
// blank once trimmed), mirroring record.isEmptyRow's definition so a
// blank line is skipped here the same way the mapper skips it, per
// spec §4.2: "Empty logical rows ... are skipped by the validator."
func isEmptyRow(fields []string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// preview renders fields as a single comma-joined string truncated to
// previewLimit characters with an ellipsis, per spec §4.7.
func preview(fields []string) string {
	s := joinPreview(fields)
	if len(s) <= previewLimit {
		return s
	}
	return s[:previewLimit] + "..."
}

func joinPreview(fields []string) string {
	var out []byte
	for i, f := range fields {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, f...)
		if len(out) > previewLimit {
			break
		}
	}
	return string(out)
}
