package tui

import (
	"fmt"
	"os"
	"path/filepath"

	"coin-dashboard/internal/viewmodel"
)

// FileExporter writes exported tables to dir/crypto_data.csv.
func FileExporter(dir string) Exporter {
	return func(data []byte) (string, error) {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create export dir: %w", err)
		}
		path := filepath.Join(dir, viewmodel.CSVFileName)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return "", fmt.Errorf("write %s: %w", path, err)
		}
		return path, nil
	}
}
