// Package metadata persists one record per trashed entry, plus the name of the
// most recently trashed entry, inside the metadata directory.
package metadata

import (
	"errors"
	iofs "io/fs"
	"log/slog"
	"os"
	"strings"

	"github.com/babarot/drash/internal/fs"
	"github.com/babarot/drash/internal/text"
)

const (
	// Ext is appended to the basename of every record file.
	Ext = ".info"

	// LastName is the file holding the basename of the latest trashed entry.
	LastName = "last"

	recordPerm = 0600
)

// Store reads and writes records under a single directory.
type Store struct {
	dir   string
	alloc text.Allocator
}

// New returns a store rooted at dir. Scratch memory for paths and record
// contents comes from alloc.
func New(dir string, alloc text.Allocator) *Store {
	return &Store{dir: dir, alloc: alloc}
}

// Dir returns the metadata directory.
func (s *Store) Dir() string { return s.dir }

func (s *Store) recordPath(name string) string {
	return text.MustFormat(s.alloc, "%/%"+Ext, s.dir, name).String()
}

func (s *Store) lastPath() string {
	return text.MustFormat(s.alloc, "%/%", s.dir, LastName).String()
}

func validName(name string) bool {
	return name != "" && name != "." && name != ".." && !strings.ContainsRune(name, '/')
}

// ValidPath reports whether path fits on a single record line.
func ValidPath(path string) bool {
	return path != "" && !strings.ContainsRune(path, '\n')
}

// WriteRecord creates the record for name. The record file is created
// exclusively: an existing record is ErrDuplicate and a symlink in its place
// is ErrSuspicious. A path the record format cannot hold is ErrInvalidPath.
func (s *Store) WriteRecord(name, originalPath string, typ Type) error {
	if !validName(name) {
		return &RecordError{Op: "write", Name: name, Err: ErrInvalidName}
	}
	if !ValidPath(originalPath) {
		return &RecordError{Op: "write", Name: name, Err: ErrInvalidPath}
	}
	path := s.recordPath(name)
	if fs.IsSymlink(path) {
		return &RecordError{Op: "write", Name: name, Err: ErrSuspicious}
	}

	f, err := fs.CreateExclusive(path, recordPerm)
	if err != nil {
		if errors.Is(err, iofs.ErrExist) {
			return &RecordError{Op: "write", Name: name, Err: ErrDuplicate}
		}
		return &RecordError{Op: "write", Name: name, Err: err}
	}

	body := Record{Path: originalPath, Type: typ}.Encode(s.alloc)
	_, werr := f.Write(body.Bytes())
	if err := errors.Join(werr, f.Close()); err != nil {
		_ = os.Remove(path)
		return &RecordError{Op: "write", Name: name, Err: err}
	}

	slog.Debug("record written", "name", name, "path", originalPath, "type", typ)
	return nil
}

// ReadRecord loads and parses the record for name.
func (s *Store) ReadRecord(name string) (Record, error) {
	if !validName(name) {
		return Record{}, &RecordError{Op: "read", Name: name, Err: ErrInvalidName}
	}
	path := s.recordPath(name)

	fi, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return Record{}, &RecordError{Op: "read", Name: name, Err: ErrNotFound}
		}
		return Record{}, &RecordError{Op: "read", Name: name, Err: err}
	}
	if fi.Mode()&os.ModeSymlink != 0 {
		return Record{}, &RecordError{Op: "read", Name: name, Err: ErrSuspicious}
	}

	f, err := os.Open(path)
	if err != nil {
		return Record{}, &RecordError{Op: "read", Name: name, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close record", "name", name, "error", err)
		}
	}()

	buf := text.WithCapacity(s.alloc, int(fi.Size()))
	if _, err := buf.ReadFrom(f); err != nil {
		return Record{}, &RecordError{Op: "read", Name: name, Err: err}
	}

	rec, err := ParseRecord(buf)
	if err != nil {
		return Record{}, &RecordError{Op: "read", Name: name, Err: err}
	}
	rec.Name = name
	return rec, nil
}

// HasRecord reports whether a record exists for name.
func (s *Store) HasRecord(name string) (bool, error) {
	if !validName(name) {
		return false, nil
	}
	return fs.Lexists(s.recordPath(name))
}

// RemoveRecord deletes the record for name.
func (s *Store) RemoveRecord(name string) error {
	if !validName(name) {
		return &RecordError{Op: "remove", Name: name, Err: ErrInvalidName}
	}
	if err := os.Remove(s.recordPath(name)); err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return &RecordError{Op: "remove", Name: name, Err: ErrNotFound}
		}
		return &RecordError{Op: "remove", Name: name, Err: err}
	}
	slog.Debug("record removed", "name", name)
	return nil
}

// Names returns the basenames of every record, sorted.
func (s *Store) Names() ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		name, ok := strings.CutSuffix(e.Name(), Ext)
		if !ok || name == "" || e.IsDir() {
			continue
		}
		names = append(names, name)
	}
	return names, nil
}

// IsEmpty reports whether the directory holds nothing but the last pointer
// and in-flight temporary files.
func (s *Store) IsEmpty() (bool, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return false, err
	}
	for _, e := range entries {
		switch name := e.Name(); {
		case name == "." || name == "..", name == LastName:
		case isLastTemp(name):
		default:
			return false, nil
		}
	}
	return true, nil
}

// isLastTemp matches the temporary files SetLast leaves behind while it
// replaces the pointer. Record files always end in Ext, so they never match.
func isLastTemp(name string) bool {
	return strings.HasPrefix(name, "."+LastName+".") && strings.HasSuffix(name, ".tmp")
}

// Clear removes every entry in the metadata directory, including last.
func (s *Store) Clear() error {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return err
	}
	var errs []error
	for _, e := range entries {
		path := text.MustFormat(s.alloc, "%/%", s.dir, e.Name()).String()
		if err := os.RemoveAll(path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// SetLast records name as the most recently trashed entry. The pointer file is
// replaced atomically.
func (s *Store) SetLast(name string) error {
	if !validName(name) {
		return &RecordError{Op: "set last", Name: name, Err: ErrInvalidName}
	}
	if err := fs.WriteFileAtomic(s.lastPath(), []byte(name)); err != nil {
		return &RecordError{Op: "set last", Name: name, Err: err}
	}
	return nil
}

// GetLast returns the most recently trashed name. ok is false when there is
// none.
func (s *Store) GetLast() (name string, ok bool, err error) {
	f, err := os.Open(s.lastPath())
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, err
	}
	defer f.Close()

	buf := text.WithCapacity(s.alloc, 64)
	if _, err := buf.ReadFrom(f); err != nil {
		return "", false, err
	}
	name = strings.TrimSuffix(buf.String(), "\n")
	if !validName(name) {
		return "", false, nil
	}
	return name, true, nil
}

// ClearLast removes the last pointer. A missing pointer is not an error.
func (s *Store) ClearLast() error {
	err := os.Remove(s.lastPath())
	if err != nil && !errors.Is(err, iofs.ErrNotExist) {
		return err
	}
	return nil
}

// ClearLastIf removes the last pointer only when it names name.
func (s *Store) ClearLastIf(name string) error {
	last, ok, err := s.GetLast()
	if err != nil || !ok || last != name {
		return err
	}
	return s.ClearLast()
}
