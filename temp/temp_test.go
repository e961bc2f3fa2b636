package temp

import (
	"os"
	"path/filepath"
	"testing"
)

func TestNewCreatesUniqueDir(t *testing.T) {
	d1, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d1.Close()
	d2, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d2.Close()

	if d1.Path() == d2.Path() {
		t.Fatalf("expected distinct paths, got %s twice", d1.Path())
	}
	if _, err := os.Stat(d1.Path()); err != nil {
		t.Fatalf("expected dir to exist: %v", err)
	}
}

func TestCloseRemovesTreeRecursively(t *testing.T) {
	d, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	nested := filepath.Join(d.Path(), "a", "b")
	if err := os.MkdirAll(nested, 0o700); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}
	if err := os.WriteFile(filepath.Join(nested, "f.txt"), []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	if err := d.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if _, err := os.Stat(d.Path()); !os.IsNotExist(err) {
		t.Fatalf("expected dir to be gone, stat err = %v", err)
	}
}

func TestCloseIsIdempotent(t *testing.T) {
	d, err := New("test")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("first Close: %v", err)
	}
	if err := d.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}
}
