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

import (
	"io"
	"reflect"

	"github.com/shoaldata/shoal/charset"
	"github.com/shoaldata/shoal/delim"
	"github.com/shoaldata/shoal/schema"
)

// Writer emits typed records of type T as delimited rows (§4.11). The
// schema for T must already be registered via schema.Register or
// schema.MustRegister.
type Writer[T any] struct {
	dw          *delim.Writer
	rt          *schema.RecordType
	wroteHeader bool
}

// NewWriter returns a Writer for T writing to w in charset cs using
// dialect. A BOM is emitted first when cs is charset.UTF8BOM.
func NewWriter[T any](w io.Writer, dialect delim.Dialect, cs charset.Charset) (*Writer[T], error) {
	rt, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	cw, err := charset.NewWriter(w, cs)
	if err != nil {
		return nil, err
	}
	return &Writer[T]{dw: delim.NewWriter(cw, dialect), rt: rt}, nil
}

// WriteHeader writes the header row built from the schema's declared
// field names, in declaration order. For a ByPosition schema this is a
// no-op: no header row is written (§4.11).
func (w *Writer[T]) WriteHeader() error {
	w.wroteHeader = true
	if w.rt.Mode != schema.ByName {
		return nil
	}
	var header []string
	for _, f := range w.rt.Fields {
		if f.LineNumber {
			continue
		}
		header = append(header, f.Column)
	}
	return w.dw.Write(header)
}

// Write extracts rec's field values in schema order and emits one
// delimited row, writing the header first if it has not been written yet.
func (w *Writer[T]) Write(rec *T) error {
	if !w.wroteHeader {
		if err := w.WriteHeader(); err != nil {
			return err
		}
	}
	v := reflect.ValueOf(rec).Elem()

	var row []string
	for _, f := range w.rt.Fields {
		if f.LineNumber {
			continue
		}
		fv := v.FieldByName(f.GoField)
		conv, err := schema.ResolveConverter(f)
		if err != nil {
			return err
		}
		raw, err := conv.Encode(fv.Interface())
		if err != nil {
			return err
		}
		row = append(row, raw)
	}
	return w.dw.Write(row)
}

// WriteAll writes every record in recs.
func (w *Writer[T]) WriteAll(recs []*T) error {
	for _, r := range recs {
		if err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes buffered output to the underlying writer.
func (w *Writer[T]) Flush() error {
	return w.dw.Flush()
}
