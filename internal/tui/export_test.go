package tui

import (
	"os"
	"path/filepath"
	"testing"

	"coin-dashboard/internal/viewmodel"
)

func TestFileExporter(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	path, err := FileExporter(dir)([]byte("name,price\nBitcoin,50000"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if filepath.Base(path) != viewmodel.CSVFileName {
		t.Fatalf("unexpected path %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read export: %v", err)
	}
	if string(data) != "name,price\nBitcoin,50000" {
		t.Fatalf("unexpected contents %q", string(data))
	}
}
