package charset

import (
	"bufio"
	"bytes"
	"io"
	"testing"
)

func TestDetectBOM(t *testing.T) {
	data := append(append([]byte{}, bom...), []byte("a,b\n1,2\n")...)
	cs, out, err := Detect(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if cs != UTF8BOM {
		t.Fatalf("got %v, want UTF8BOM", cs)
	}
	got, err := io.ReadAll(out)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Fatalf("replayed bytes mismatch: got %q want %q", got, data)
	}
}

func TestDetectDefaultUTF8(t *testing.T) {
	cs, _, err := Detect(bytes.NewReader([]byte("name,age\nAlice,30\n")))
	if err != nil {
		t.Fatalf("Detect: %v", err)
	}
	if cs != UTF8 {
		t.Fatalf("got %v, want UTF8", cs)
	}
}

func TestStripBOMPresent(t *testing.T) {
	data := append(append([]byte{}, bom...), []byte("x\n")...)
	out, err := StripBOM(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("StripBOM: %v", err)
	}
	got, _ := io.ReadAll(out)
	if string(got) != "x\n" {
		t.Fatalf("got %q, want %q", got, "x\n")
	}
}

func TestStripBOMAbsent(t *testing.T) {
	out, err := StripBOM(bytes.NewReader([]byte("x\n")))
	if err != nil {
		t.Fatalf("StripBOM: %v", err)
	}
	got, _ := io.ReadAll(out)
	if string(got) != "x\n" {
		t.Fatalf("got %q, want %q", got, "x\n")
	}
}

func TestEmitBOM(t *testing.T) {
	var buf bytes.Buffer
	if err := EmitBOM(&buf, UTF8BOM); err != nil {
		t.Fatalf("EmitBOM: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), bom) {
		t.Fatalf("got %v, want BOM", buf.Bytes())
	}

	buf.Reset()
	if err := EmitBOM(&buf, UTF8); err != nil {
		t.Fatalf("EmitBOM: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no bytes written for plain UTF8, got %v", buf.Bytes())
	}
}

func TestHasBOM(t *testing.T) {
	r := bufio.NewReader(bytes.NewReader(append(append([]byte{}, bom...), 'x')))
	has, err := HasBOM(r)
	if err != nil {
		t.Fatalf("HasBOM: %v", err)
	}
	if !has {
		t.Fatal("expected BOM detected")
	}
}

func TestRoundTripShiftJIS(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewWriter(&buf, ShiftJIS)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	if _, err := io.WriteString(w, "日本語"); err != nil {
		t.Fatalf("WriteString: %v", err)
	}

	r, err := NewReader(bytes.NewReader(buf.Bytes()), ShiftJIS)
	if err != nil {
		t.Fatalf("NewReader: %v", err)
	}
	got, err := io.ReadAll(r)
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if string(got) != "日本語" {
		t.Fatalf("got %q, want %q", got, "日本語")
	}
}
