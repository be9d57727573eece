package fs

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// CreateExclusive creates a new file with O_EXCL flag to ensure atomic creation.
// Returns error if the file already exists.
func CreateExclusive(path string, perm os.FileMode) (*os.File, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
}

// SafeWriter writes into a uuid-named temporary file next to its target and
// renames it into place on Commit, so readers never see a partial file.
type SafeWriter struct {
	path     string
	file     *os.File
	finished bool
}

// NewSafeWriter creates the temporary file in dir.
func NewSafeWriter(dir, prefix string) (*SafeWriter, error) {
	path := filepath.Join(dir, fmt.Sprintf(".%s.%s.tmp", prefix, uuid.New().String()))
	f, err := CreateExclusive(path, 0600)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	return &SafeWriter{path: path, file: f}, nil
}

// Write writes data to the temporary file
func (w *SafeWriter) Write(p []byte) (int, error) {
	if w.finished {
		return 0, fmt.Errorf("write to finished writer")
	}
	return w.file.Write(p)
}

// Commit finalizes the write and moves the file to its destination
func (w *SafeWriter) Commit(dst string) error {
	if w.finished {
		return fmt.Errorf("commit finished writer")
	}
	w.finished = true

	if err := w.file.Sync(); err != nil {
		w.cleanup()
		return fmt.Errorf("sync file: %w", err)
	}
	if err := w.file.Close(); err != nil {
		_ = os.Remove(w.path)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(w.path, dst); err != nil {
		_ = os.Remove(w.path)
		return fmt.Errorf("rename to destination: %w", err)
	}
	return nil
}

// Cleanup removes the temporary file unless it was committed.
func (w *SafeWriter) Cleanup() {
	if w.finished {
		return
	}
	w.finished = true
	w.cleanup()
}

func (w *SafeWriter) cleanup() {
	_ = w.file.Close()
	_ = os.Remove(w.path)
}

// WriteFileAtomic replaces path with data through a SafeWriter.
func WriteFileAtomic(path string, data []byte) error {
	w, err := NewSafeWriter(filepath.Dir(path), filepath.Base(path))
	if err != nil {
		return err
	}
	defer w.Cleanup()

	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write temp file: %w", err)
	}
	return w.Commit(path)
}
