package delim

import (
	"bytes"
	"testing"
)

func TestWriterQuotesWhenNeeded(t *testing.T) {
	var buf bytes.Buffer
	w := NewWriter(&buf, NewDialect())
	if err := w.Write([]string{"plain", "has,comma", `has"quote`, "has\nnewline"}); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush: %v", err)
	}
	want := "plain,\"has,comma\",\"has\"\"quote\",\"has\nnewline\"\r\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestWriterTerminators(t *testing.T) {
	cases := []struct {
		term Terminator
		want string
	}{
		{CRLF, "a,b\r\n"},
		{LF, "a,b\n"},
		{CR, "a,b\r"},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		w := NewWriter(&buf, NewDialect().WithTerminator(c.term))
		if err := w.Write([]string{"a", "b"}); err != nil {
			t.Fatalf("Write: %v", err)
		}
		w.Flush()
		if buf.String() != c.want {
			t.Fatalf("terminator %v: got %q, want %q", c.term, buf.String(), c.want)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	records := [][]string{
		{"name", "notes"},
		{"Alice", "says \"hi\", bye"},
		{"Bob", "line1\nline2"},
	}
	var buf bytes.Buffer
	w := NewWriter(&buf, NewDialect())
	if err := w.WriteAll(records); err != nil {
		t.Fatalf("WriteAll: %v", err)
	}
	w.Flush()

	r := NewReader(bytes.NewReader(buf.Bytes()), NewDialect())
	got, err := r.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != len(records) {
		t.Fatalf("got %d records, want %d", len(got), len(records))
	}
	for i := range records {
		if !equal(got[i], records[i]) {
			t.Fatalf("record %d: got %v, want %v", i, got[i], records[i])
		}
	}
}
