package logsink

import (
	"fmt"
	"os"
	"path/filepath"
)

// FileWriter appends whole lines to a single log file. Every Append opens the
// file in append mode, issues one write and closes it again, so a reader never
// observes a partial line and nothing stays buffered in the process.
type FileWriter struct {
	path string
}

func NewFileWriter(path string) *FileWriter {
	return &FileWriter{path: path}
}

// AbsPath is the absolute location shown in the startup banner.
func (w *FileWriter) AbsPath() string {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return w.path
	}
	return abs
}

func (w *FileWriter) Append(line string) error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("log file: open %s: %w", w.path, err)
	}

	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("log file: write %s: %w", w.path, err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("log file: close %s: %w", w.path, err)
	}
	return nil
}
