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

import (
	"bufio"
	"io"
)

// Writer emits delimited records using the configured dialect, quoting
// fields that contain the delimiter, the quote character, CR, or LF.
type Writer struct {
	dst     *bufio.Writer
	dialect Dialect
	err     error
}

// NewWriter returns a Writer that emits records to w using dialect.
func NewWriter(w io.Writer, dialect Dialect) *Writer {
	return &Writer{dst: bufio.NewWriter(w), dialect: dialect}
}

// Write emits a single record terminated by the dialect's line terminator.
func (w *Writer) Write(record []string) error {
	if w.err != nil {
		return w.err
	}
	comma := w.dialect.Comma
	quote := w.dialect.Quote

	for i, field := range record {
		if i > 0 {
			if err := w.dst.WriteByte(comma); err != nil {
				w.err = err
				return err
			}
		}
		if err := w.writeField(field, comma, quote); err != nil {
			w.err = err
			return err
		}
	}
	if _, err := w.dst.Write(w.dialect.Terminator.Bytes()); err != nil {
		w.err = err
		return err
	}
	return nil
}

// WriteAll writes every record in records, stopping at the first error.
func (w *Writer) WriteAll(records [][]string) error {
	for _, rec := range records {
		if err := w.Write(rec); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes any buffered data to the underlying writer.
func (w *Writer) Flush() error {
	if w.err != nil {
		return w.err
	}
	return w.dst.Flush()
}

func (w *Writer) writeField(field string, comma, quote byte) error {
	if !needsQuote(field, comma, quote) {
		_, err := w.dst.WriteString(field)
		return err
	}
	if err := w.dst.WriteByte(quote); err != nil {
		return err
	}
	start := 0
	for i := 0; i < len(field); i++ {
		if field[i] == quote {
			if start < i {
				if _, err := w.dst.WriteString(field[start:i]); err != nil {
					return err
				}
			}
			if _, err := w.dst.Write([]byte{quote, quote}); err != nil {
				return err
			}
			start = i + 1
		}
	}
	if start < len(field) {
		if _, err := w.dst.WriteString(field[start:]); err != nil {
			return err
		}
	}
	return w.dst.WriteByte(quote)
}

func needsQuote(field string, comma, quote byte) bool {
	for i := 0; i < len(field); i++ {
		switch field[i] {
		case comma, quote, '\n', '\r':
			return true
		}
	}
	return false
}
