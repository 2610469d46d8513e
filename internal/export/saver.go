package export

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileSaver persists a finished file under the given name.
type FileSaver interface {
	Save(data []byte, filename string) error
}

// DiskSaver writes files into Dir, creating it when needed.
type DiskSaver struct {
	Dir string
}

// Path returns where filename would be written.
func (s DiskSaver) Path(filename string) string {
	if s.Dir == "" {
		return filename
	}
	return filepath.Join(s.Dir, filename)
}

// Save implements FileSaver.
func (s DiskSaver) Save(data []byte, filename string) error {
	if s.Dir != "" {
		if err := os.MkdirAll(s.Dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(s.Path(filename), data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}
