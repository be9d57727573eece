package fs

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// IsUnsafePath checks if the given path is unsafe to trash or remove
func IsUnsafePath(path string) bool {
	// Check the raw input first so that "." and ".." are caught before Clean
	// folds them into something else.
	base := filepath.Base(path)
	if base == "." || base == ".." {
		return true
	}

	if filepath.Clean(path) == "/" {
		return true
	}

	// Double slashes and similar patterns
	return strings.HasPrefix(path, "//")
}

// Lexists reports whether path exists without following a final symlink.
func Lexists(path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

// IsSymlink reports whether path itself is a symbolic link.
func IsSymlink(path string) bool {
	fi, err := os.Lstat(path)
	return err == nil && fi.Mode()&os.ModeSymlink != 0
}
