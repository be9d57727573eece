package fs

import (
	"io/fs"
	"path/filepath"
)

// DirSize returns the total size of the regular files below path. For a file
// it is the size of the file itself. Symlinks are not followed.
func DirSize(path string) (int64, error) {
	var size int64
	err := filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		size += info.Size()
		return nil
	})
	return size, err
}
