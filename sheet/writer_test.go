package sheet

import (
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/shoaldata/shoal/book"
	"github.com/shoaldata/shoal/schema"
)

type sheetPerson struct {
	Name string
	Age  int64
}

func init() {
	schema.MustRegister[sheetPerson](
		schema.NameField("Name", "name", schema.KindString),
		schema.NameField("Age", "age", schema.KindInt64),
	)
}

func TestWriterPlacesTableAtAnchor(t *testing.T) {
	f := excelize.NewFile()
	w, err := NewWriter[sheetPerson](f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	tbl := book.Table{Anchor: book.Anchor{Row: 3, Col: 2}, Header: []string{"name", "age"}}
	recs := []*sheetPerson{{Name: "Alice", Age: 30}}
	if err := w.WriteTable("Sheet1", tbl, recs); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	got, err := f.GetCellValue("Sheet1", "B3")
	if err != nil || got != "name" {
		t.Fatalf("header cell B3 = %q, %v", got, err)
	}
	got, err = f.GetCellValue("Sheet1", "B4")
	if err != nil || got != "Alice" {
		t.Fatalf("data cell B4 = %q, %v", got, err)
	}
	got, err = f.GetCellValue("Sheet1", "C4")
	if err != nil || got != "30" {
		t.Fatalf("data cell C4 = %q, %v", got, err)
	}
}

func TestWriteBookPlacesEveryTableOnItsSheet(t *testing.T) {
	f := excelize.NewFile()
	w, err := NewWriter[sheetPerson](f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	bk := book.Book{
		Sheets: []book.Sheet{
			{
				Name: "People",
				Tables: []book.Table{
					{Anchor: book.Anchor{Row: 1, Col: 1}, Header: []string{"name", "age"}},
				},
			},
			{
				Name: "More",
				Tables: []book.Table{
					{Anchor: book.Anchor{Row: 1, Col: 1}, Header: []string{"name", "age"}},
					{Anchor: book.Anchor{Row: 5, Col: 1}, Header: []string{"name", "age"}},
				},
			},
		},
	}
	recs := [][]*sheetPerson{
		{{Name: "Alice", Age: 30}},
		{{Name: "Bob", Age: 25}},
		{{Name: "Carol", Age: 40}},
	}
	if err := w.WriteBook(bk, recs); err != nil {
		t.Fatalf("WriteBook: %v", err)
	}

	got, err := f.GetCellValue("People", "A2")
	if err != nil || got != "Alice" {
		t.Fatalf("People!A2 = %q, %v", got, err)
	}
	got, err = f.GetCellValue("More", "A2")
	if err != nil || got != "Bob" {
		t.Fatalf("More!A2 = %q, %v", got, err)
	}
	got, err = f.GetCellValue("More", "A6")
	if err != nil || got != "Carol" {
		t.Fatalf("More!A6 = %q, %v", got, err)
	}
}

func TestWriteBookRejectsMismatchedRecordSetCount(t *testing.T) {
	f := excelize.NewFile()
	w, err := NewWriter[sheetPerson](f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	bk := book.Book{
		Sheets: []book.Sheet{
			{Name: "People", Tables: []book.Table{
				{Anchor: book.Anchor{Row: 1, Col: 1}, Header: []string{"name", "age"}},
			}},
		},
	}
	if err := w.WriteBook(bk, nil); err == nil {
		t.Fatal("expected error for missing record set")
	}
}

type sheetEvent struct {
	Day    time.Time
	Logged time.Time
}

func init() {
	schema.MustRegister[sheetEvent](
		schema.NameField("Day", "day", schema.KindDate),
		schema.NameField("Logged", "logged", schema.KindDateTime),
	)
}

func TestWriterUsesLiteralDateAndDateTimeNumberFormats(t *testing.T) {
	f := excelize.NewFile()
	w, err := NewWriter[sheetEvent](f)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}

	tbl := book.Table{Anchor: book.Anchor{Row: 1, Col: 1}, Header: []string{"day", "logged"}}
	recs := []*sheetEvent{{
		Day:    time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC),
		Logged: time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
	}}
	if err := w.WriteTable("Sheet1", tbl, recs); err != nil {
		t.Fatalf("WriteTable: %v", err)
	}

	dateStyleID, err := f.GetCellStyle("Sheet1", "A2")
	if err != nil {
		t.Fatalf("GetCellStyle A2: %v", err)
	}
	dateStyle, err := f.GetStyle(dateStyleID)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if dateStyle.CustomNumFmt == nil || *dateStyle.CustomNumFmt != "yyyy-MM-dd" {
		t.Fatalf("date cell number format = %v, want %q", dateStyle.CustomNumFmt, "yyyy-MM-dd")
	}

	dateTimeStyleID, err := f.GetCellStyle("Sheet1", "B2")
	if err != nil {
		t.Fatalf("GetCellStyle B2: %v", err)
	}
	dateTimeStyle, err := f.GetStyle(dateTimeStyleID)
	if err != nil {
		t.Fatalf("GetStyle: %v", err)
	}
	if dateTimeStyle.CustomNumFmt == nil || *dateTimeStyle.CustomNumFmt != "yyyy-MM-dd HH:mm:ss" {
		t.Fatalf("datetime cell number format = %v, want %q", dateTimeStyle.CustomNumFmt, "yyyy-MM-dd HH:mm:ss")
	}
}
