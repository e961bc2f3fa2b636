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
	"reflect"
	"strconv"

	"github.com/shoaldata/shoal/schema"
)

// Mapper streams typed records of type T out of a RowSource, applying the
// process-wide schema.RecordType registered for T.
type Mapper[T any] struct {
	rt          *schema.RecordType
	src         RowSource
	header      map[string]int
	headerBuilt bool
	skipLines   int
}

// Option configures a Mapper.
type Option func(*options)

type options struct {
	skipLines int
}

// WithSkipLines skips the first n data records after header discovery and
// empty-row elision, per the skip-lines configuration knob (§6).
func WithSkipLines(n int) Option {
	return func(o *options) { o.skipLines = n }
}

// NewMapper returns a Mapper for T reading from src. The schema for T must
// already be registered via schema.Register or schema.MustRegister. When
// src elides rows (e.g. validate.NewFilteredSource), the rows it does
// return still carry their true original line number, so no separate
// line-number remapping is needed here.
func NewMapper[T any](src RowSource, opts ...Option) (*Mapper[T], error) {
	rt, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Mapper[T]{rt: rt, src: src, skipLines: o.skipLines}, nil
}

// Next returns the next bound record, skipping empty rows, or io.EOF when
// the source is exhausted.
func (m *Mapper[T]) Next() (*T, error) {
	if !m.headerBuilt && m.rt.Mode == schema.ByName {
		cells, _, err := m.src.Next()
		if err != nil {
			return nil, err
		}
		m.header = buildHeaderIndex(cells)
		m.headerBuilt = true
	}

	for {
		cells, line, err := m.src.Next()
		if err != nil {
			return nil, err
		}
		if isEmptyRow(cells) {
			continue
		}
		if m.skipLines > 0 {
			m.skipLines--
			continue
		}
		rec, err := m.bind(cells, line)
		if err != nil {
			return nil, err
		}
		return rec, nil
	}
}

// Close releases the underlying RowSource.
func (m *Mapper[T]) Close() error {
	return m.src.Close()
}

func buildHeaderIndex(cells []Cell) map[string]int {
	idx := make(map[string]int, len(cells))
	for i, c := range cells {
		name := trimSpace(c.Raw)
		if name == "" {
			continue
		}
		idx[name] = i
	}
	return idx
}

func (m *Mapper[T]) bind(cells []Cell, line int) (*T, error) {
	var rec T
	v := reflect.ValueOf(&rec).Elem()

	for _, f := range m.rt.Fields {
		if f.LineNumber {
			fv := v.FieldByName(f.GoField)
			if m.rt.LineNumberWidth == 32 {
				fv.SetInt(int64(int32(line)))
			} else {
				fv.SetInt(int64(line))
			}
			continue
		}

		raw, col, present := m.rawFor(f, cells)
		if !present {
			if f.Optional {
				continue
			}
			return nil, &MissingColumnError{Column: f.Column}
		}

		conv, err := schema.ResolveConverter(f)
		if err != nil {
			return nil, err
		}
		value, err := conv.Decode(raw)
		if err != nil {
			return nil, &CellConversionError{
				Row: line, Column: col, Raw: raw, TargetKind: int(f.Kind), Cause: err,
			}
		}

		fv := v.FieldByName(f.GoField)
		if !fv.IsValid() {
			return nil, &CellConversionError{
				Row: line, Column: col, Raw: raw, TargetKind: int(f.Kind),
				Cause: unknownFieldError(f.GoField),
			}
		}
		setField(fv, value)
	}
	return &rec, nil
}

// rawFor resolves field f's raw cell text from cells, returning the
// column identifier for error messages and whether the column/position
// was present.
func (m *Mapper[T]) rawFor(f schema.FieldSpec, cells []Cell) (raw, col string, present bool) {
	if m.rt.Mode == schema.ByName {
		idx, ok := m.header[f.Column]
		if !ok {
			return "", f.Column, false
		}
		if idx >= len(cells) {
			return "", f.Column, true
		}
		return cells[idx].Raw, f.Column, true
	}
	col = strconv.Itoa(f.Position)
	if f.Position >= len(cells) {
		return "", col, true
	}
	return cells[f.Position].Raw, col, true
}

func setField(fv reflect.Value, value any) {
	rv := reflect.ValueOf(value)
	if rv.Type().AssignableTo(fv.Type()) {
		fv.Set(rv)
		return
	}
	if rv.Type().ConvertibleTo(fv.Type()) {
		fv.Set(rv.Convert(fv.Type()))
	}
}

type unknownFieldError string

func (e unknownFieldError) Error() string {
	return "record: record type has no field named " + string(e)
}
