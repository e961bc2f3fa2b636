package delim

import (
	"io"
	"strings"
	"testing"
)

func TestReaderBasic(t *testing.T) {
	r := NewReader(strings.NewReader("name,age\nAlice,30\nBob,25\n"), NewDialect())
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read header: %v", err)
	}
	if want := []string{"name", "age"}; !equal(rec, want) {
		t.Fatalf("got %v, want %v", rec, want)
	}

	rec, err = r.Read()
	if err != nil {
		t.Fatalf("Read row 1: %v", err)
	}
	if want := []string{"Alice", "30"}; !equal(rec, want) {
		t.Fatalf("got %v, want %v", rec, want)
	}

	rec, err = r.Read()
	if err != nil {
		t.Fatalf("Read row 2: %v", err)
	}
	if want := []string{"Bob", "25"}; !equal(rec, want) {
		t.Fatalf("got %v, want %v", rec, want)
	}

	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestReaderQuotedEmbeddedNewlineAndDelimiter(t *testing.T) {
	input := "a,b\n\"hello, world\",\"line1\nline2\"\n"
	r := NewReader(strings.NewReader(input), NewDialect())
	if _, err := r.Read(); err != nil {
		t.Fatalf("header: %v", err)
	}
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []string{"hello, world", "line1\nline2"}
	if !equal(rec, want) {
		t.Fatalf("got %v, want %v", rec, want)
	}
}

func TestReaderDoubledQuoteEscape(t *testing.T) {
	r := NewReader(strings.NewReader(`"she said ""hi"""`+"\n"), NewDialect())
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	want := []string{`she said "hi"`}
	if !equal(rec, want) {
		t.Fatalf("got %v, want %v", rec, want)
	}
}

func TestReaderUnterminatedQuote(t *testing.T) {
	r := NewReader(strings.NewReader(`"unterminated`), NewDialect())
	_, err := r.Read()
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*MalformedRecordError); !ok {
		t.Fatalf("got %T, want *MalformedRecordError", err)
	}
}

func TestReaderMalformedAfterClosingQuote(t *testing.T) {
	r := NewReader(strings.NewReader(`"abc"x`+"\n"), NewDialect())
	_, err := r.Read()
	if err == nil {
		t.Fatal("expected error")
	}
	if _, ok := err.(*MalformedRecordError); !ok {
		t.Fatalf("got %T, want *MalformedRecordError", err)
	}
}

func TestReaderNoTrailingNewline(t *testing.T) {
	r := NewReader(strings.NewReader("a,b"), NewDialect())
	rec, err := r.Read()
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if want := []string{"a", "b"}; !equal(rec, want) {
		t.Fatalf("got %v, want %v", rec, want)
	}
	if _, err := r.Read(); err != io.EOF {
		t.Fatalf("got %v, want io.EOF", err)
	}
}

func TestReaderAcceptsAnyLineEnding(t *testing.T) {
	for _, input := range []string{"a,b\r\nc,d\r\n", "a,b\nc,d\n", "a,b\rc,d\r"} {
		r := NewReader(strings.NewReader(input), NewDialect())
		recs, err := r.ReadAll()
		if err != nil {
			t.Fatalf("ReadAll(%q): %v", input, err)
		}
		if len(recs) != 2 || !equal(recs[0], []string{"a", "b"}) || !equal(recs[1], []string{"c", "d"}) {
			t.Fatalf("ReadAll(%q) = %v", input, recs)
		}
	}
}

func TestReaderLineTracking(t *testing.T) {
	r := NewReader(strings.NewReader("a\n\"b\nc\"\nd\n"), NewDialect())
	if _, err := r.Read(); err != nil { // line 1: "a"
		t.Fatalf("Read: %v", err)
	}
	if r.Line() != 1 {
		t.Fatalf("record 1 started on Line() = %d, want 1", r.Line())
	}
	if _, err := r.Read(); err != nil { // lines 2-3: "b\nc"
		t.Fatalf("Read: %v", err)
	}
	if r.Line() != 2 {
		t.Fatalf("record 2 started on Line() = %d, want 2", r.Line())
	}
	if _, err := r.Read(); err != nil { // line 4: "d"
		t.Fatalf("Read: %v", err)
	}
	if r.Line() != 4 {
		t.Fatalf("record 3 started on Line() = %d, want 4", r.Line())
	}
}

func TestReaderTSVDialect(t *testing.T) {
	r := NewReader(strings.NewReader("a\tb\n1\t2\n"), NewTSVDialect())
	recs, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(recs) != 2 || !equal(recs[0], []string{"a", "b"}) {
		t.Fatalf("got %v", recs)
	}
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
