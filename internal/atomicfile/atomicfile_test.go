package atomicfile_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dHumanities/immarkus/internal/atomicfile"
)

func TestWriteFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")

	if err := atomicfile.WriteFile(path, []byte("first"), 0644); err != nil {
		t.Fatalf("WriteFile() error: %v", err)
	}
	if err := atomicfile.WriteFile(path, []byte("second"), 0644); err != nil {
		t.Fatalf("WriteFile() overwrite error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if string(data) != "second" {
		t.Errorf("content = %q; want %q", data, "second")
	}

	// The temp file is renamed away, never left behind.
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory has %d entries; want only the document", len(entries))
	}
}
