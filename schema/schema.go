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

// Package schema computes and caches the mapping between a user record
// type and the columns of a delimited or spreadsheet source: the binding
// mode (by header name or by 0-based position), per-field converters, and
// the optional line-number field.
package schema

import (
	"fmt"
	"reflect"
	"sync"

	"golang.org/x/exp/slices"
)

// Kind names a field's target type.
type Kind int

const (
	KindString Kind = iota
	KindInt32
	KindInt64
	KindDouble
	KindBool
	KindDate
	KindDateTime
	KindCustom
)

// Mode is the schema's binding mode: every field in a RecordType is bound
// the same way.
type Mode int

const (
	// ByName binds fields to source columns by header name.
	ByName Mode = iota
	// ByPosition binds fields to source columns by 0-based index.
	ByPosition
)

// Converter converts between a raw cell string and a Go value for one
// field. Decode is used on read, Encode on write. Built-in converters are
// supplied automatically for every Kind except KindCustom.
type Converter struct {
	Decode func(raw string) (any, error)
	Encode func(value any) (string, error)
}

// FieldSpec describes one field of a record type: its target Go struct
// field, its source binding (exactly one of Column or Position), its
// Kind, an optional custom Converter, and whether it is the line-number
// field.
type FieldSpec struct {
	GoField    string
	Column     string
	Position   int
	hasColumn  bool
	hasPos     bool
	Kind       Kind
	Converter  *Converter
	LineNumber bool
	Optional   bool
}

// NameField declares a field bound to source column name by header name.
func NameField(goField, column string, kind Kind) FieldSpec {
	return FieldSpec{GoField: goField, Column: column, hasColumn: true, Kind: kind}
}

// PositionField declares a field bound to the 0-based source column
// position.
func PositionField(goField string, position int, kind Kind) FieldSpec {
	return FieldSpec{GoField: goField, Position: position, hasPos: true, Kind: kind}
}

// LineNumberField declares the (at most one) field that receives the
// 1-based logical source line number of each record. width must be 32 or
// 64 and selects the Go field's integer width.
func LineNumberField(goField string, width int) FieldSpec {
	kind := KindInt64
	if width == 32 {
		kind = KindInt32
	}
	return FieldSpec{GoField: goField, LineNumber: true, Kind: kind}
}

// WithConverter returns a copy of f using a custom converter instead of
// the built-in one for its Kind.
func (f FieldSpec) WithConverter(c Converter) FieldSpec {
	f.Converter = &c
	f.Kind = KindCustom
	return f
}

// WithOptional returns a copy of f marked optional: a missing header
// column is tolerated (the field is left at its zero value) instead of
// being an error.
func (f FieldSpec) WithOptional() FieldSpec {
	f.Optional = true
	return f
}

// MixedBindingError is returned when a RecordType declares both
// name-bound and position-bound fields.
type MixedBindingError struct{}

func (*MixedBindingError) Error() string {
	return "schema: fields mix name-bound and position-bound columns"
}

// Error reports a record-type construction problem other than mixed
// binding (e.g. more than one line-number field).
type Error struct {
	Msg string
}

func (e *Error) Error() string { return "schema: " + e.Msg }

// RecordType is the resolved mapping plan for a record type: its binding
// Mode, its fields in declaration order, and the index of its
// line-number field (-1 if none).
type RecordType struct {
	GoType          reflect.Type
	Fields          []FieldSpec
	Mode            Mode
	LineNumberIndex int
	LineNumberWidth int
}

// ColumnIndex resolves the field at idx in a ByName RecordType to its
// header name, or in a ByPosition RecordType to its 0-based column.
func (rt *RecordType) ColumnIndex(idx int) (name string, pos int, hasName bool) {
	f := rt.Fields[idx]
	if rt.Mode == ByName {
		return f.Column, 0, true
	}
	return "", f.Position, false
}

func build(fields []FieldSpec) (*RecordType, error) {
	rt := &RecordType{Fields: fields, LineNumberIndex: -1}

	sawName, sawPos := false, false
	lineNumberSeen := false
	var seenColumns []string
	var seenPositions []int
	for i, f := range fields {
		if f.LineNumber {
			if lineNumberSeen {
				return nil, &Error{Msg: "more than one line-number field declared"}
			}
			lineNumberSeen = true
			rt.LineNumberIndex = i
			if f.Kind == KindInt32 {
				rt.LineNumberWidth = 32
			} else {
				rt.LineNumberWidth = 64
			}
			continue
		}
		if f.hasColumn {
			if slices.Contains(seenColumns, f.Column) {
				return nil, &Error{Msg: fmt.Sprintf("column %q is bound by more than one field", f.Column)}
			}
			seenColumns = append(seenColumns, f.Column)
			sawName = true
		}
		if f.hasPos {
			if slices.Contains(seenPositions, f.Position) {
				return nil, &Error{Msg: fmt.Sprintf("position %d is bound by more than one field", f.Position)}
			}
			seenPositions = append(seenPositions, f.Position)
			sawPos = true
		}
	}
	if sawName && sawPos {
		return nil, &MixedBindingError{}
	}
	if sawPos {
		rt.Mode = ByPosition
	} else {
		rt.Mode = ByName
	}
	return rt, nil
}

var (
	cacheMu sync.RWMutex
	cache   = map[reflect.Type]*RecordType{}
)

// Register builds the RecordType for T from fields, validates it, and
// memoizes it in the process-wide schema cache keyed by T's type
// identity. Calling Register again for the same T replaces the cached
// entry; concurrent readers of the previous entry are unaffected since
// entries are immutable once built.
func Register[T any](fields ...FieldSpec) (*RecordType, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	rt, err := build(fields)
	if err != nil {
		return nil, err
	}
	rt.GoType = t

	cacheMu.Lock()
	cache[t] = rt
	cacheMu.Unlock()
	return rt, nil
}

// MustRegister is Register but panics on a schema construction error.
// It is meant for package-level var initialization, mirroring the
// teacher's fail-fast construction-time validation for declarative
// schemas.
func MustRegister[T any](fields ...FieldSpec) *RecordType {
	rt, err := Register[T](fields...)
	if err != nil {
		panic(err)
	}
	return rt
}

// For returns the cached RecordType for T, previously built with
// Register or MustRegister.
func For[T any]() (*RecordType, error) {
	t := reflect.TypeOf((*T)(nil)).Elem()
	cacheMu.RLock()
	rt, ok := cache[t]
	cacheMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("schema: no record type registered for %s", t)
	}
	return rt, nil
}
