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

import (
	"fmt"
	"reflect"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shoaldata/shoal/book"
	"github.com/shoaldata/shoal/schema"
)

// Writer places typed records of type T into a workbook at explicit
// book.Table anchors, grounded on the SetCellValue/SetCellStyle
// per-cell emission pattern the pack's excelize-based exporters use.
// Multiple tables may be written to the same sheet; placement is always
// by explicit anchor, never inferred (§4.11).
type Writer[T any] struct {
	f             *excelize.File
	rt            *schema.RecordType
	dateStyle     int
	dateTimeStyle int
}

// NewWriter returns a Writer for T writing into f. The schema for T must
// already be registered via schema.Register or schema.MustRegister.
func NewWriter[T any](f *excelize.File) (*Writer[T], error) {
	rt, err := schema.For[T]()
	if err != nil {
		return nil, err
	}
	dateFmt := "yyyy-MM-dd"
	dateStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateFmt})
	if err != nil {
		return nil, err
	}
	dateTimeFmt := "yyyy-MM-dd HH:mm:ss"
	dateTimeStyle, err := f.NewStyle(&excelize.Style{CustomNumFmt: &dateTimeFmt})
	if err != nil {
		return nil, err
	}
	return &Writer[T]{f: f, rt: rt, dateStyle: dateStyle, dateTimeStyle: dateTimeStyle}, nil
}

// WriteTable writes recs into sheetName at tbl's anchor: a header row
// (when tbl.Header is non-empty) followed by one data row per record.
// The sheet is created if it does not already exist.
func (w *Writer[T]) WriteTable(sheetName string, tbl book.Table, recs []*T) error {
	if idx, err := w.f.GetSheetIndex(sheetName); err != nil {
		return err
	} else if idx == -1 {
		if _, err := w.f.NewSheet(sheetName); err != nil {
			return err
		}
	}

	row := tbl.Anchor.Row
	col := tbl.Anchor.Col

	if len(tbl.Header) > 0 {
		for i, name := range tbl.Header {
			ref := cellRef(col+i, row)
			if err := w.f.SetCellValue(sheetName, ref, name); err != nil {
				return err
			}
		}
		row++
	}

	for _, rec := range recs {
		v := reflect.ValueOf(rec).Elem()
		c := col
		for _, f := range w.rt.Fields {
			if f.LineNumber {
				continue
			}
			ref := cellRef(c, row)
			fv := v.FieldByName(f.GoField)
			if err := w.setCell(sheetName, ref, f, fv); err != nil {
				return err
			}
			c++
		}
		row++
	}
	return nil
}

// WriteBook writes every sheet and table of bk, in order, pairing each
// book.Table with its records from recs at the same flattened position:
// sheet order, then table order within the sheet. len(recs) must equal
// bk's total table count.
func (w *Writer[T]) WriteBook(bk book.Book, recs [][]*T) error {
	i := 0
	for _, sh := range bk.Sheets {
		for _, tbl := range sh.Tables {
			if i >= len(recs) {
				return fmt.Errorf("sheet: WriteBook: %d record set(s) given, book has more tables", len(recs))
			}
			if err := w.WriteTable(sh.Name, tbl, recs[i]); err != nil {
				return err
			}
			i++
		}
	}
	if i != len(recs) {
		return fmt.Errorf("sheet: WriteBook: %d record set(s) given, book has %d table(s)", len(recs), i)
	}
	return nil
}

// setCell writes fv's value into ref, natively typed per f.Kind so the
// workbook stores real numbers/booleans/dates rather than text, per
// §4.11 ("dates ... native date serials", "booleans as native boolean
// cells", "integers as numeric cells").
func (w *Writer[T]) setCell(sheetName, ref string, f schema.FieldSpec, fv reflect.Value) error {
	switch f.Kind {
	case schema.KindInt32, schema.KindInt64:
		return w.f.SetCellValue(sheetName, ref, fv.Int())
	case schema.KindDouble:
		return w.f.SetCellValue(sheetName, ref, fv.Float())
	case schema.KindBool:
		return w.f.SetCellValue(sheetName, ref, fv.Bool())
	case schema.KindDate:
		t, ok := fv.Interface().(time.Time)
		if !ok {
			return fmt.Errorf("sheet: field %q: expected time.Time, got %s", f.GoField, fv.Type())
		}
		if err := w.f.SetCellValue(sheetName, ref, t); err != nil {
			return err
		}
		return w.f.SetCellStyle(sheetName, ref, ref, w.dateStyle)
	case schema.KindDateTime:
		t, ok := fv.Interface().(time.Time)
		if !ok {
			return fmt.Errorf("sheet: field %q: expected time.Time, got %s", f.GoField, fv.Type())
		}
		if err := w.f.SetCellValue(sheetName, ref, t); err != nil {
			return err
		}
		return w.f.SetCellStyle(sheetName, ref, ref, w.dateTimeStyle)
	case schema.KindCustom:
		conv, err := schema.ResolveConverter(f)
		if err != nil {
			return err
		}
		raw, err := conv.Encode(fv.Interface())
		if err != nil {
			return err
		}
		return w.f.SetCellValue(sheetName, ref, raw)
	default:
		return w.f.SetCellValue(sheetName, ref, fv.String())
	}
}
