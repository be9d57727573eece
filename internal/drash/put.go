package drash

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"al.essio.dev/pkg/shellescape"

	"github.com/babarot/drash/internal/fs"
	"github.com/babarot/drash/internal/metadata"
	"github.com/babarot/drash/internal/text"
	"github.com/babarot/drash/internal/transfer"
	"github.com/babarot/drash/internal/ui"
)

// Put moves every path into the drashcan. Symlinks are unlinked instead of
// being kept.
func (d *Drash) Put(paths []string) error {
	if len(paths) == 0 {
		return ErrNoArguments
	}
	return d.each("put", paths, d.put)
}

func (d *Drash) put(t *tracker, path string) error {
	if fs.IsUnsafePath(path) {
		return &ItemError{Name: path, Err: ErrUnsafePath}
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return &ItemError{Name: path, Err: err}
	}
	if !metadata.ValidPath(abs) {
		return &ItemError{Name: path, Err: ErrNewline}
	}
	// abs has no trailing slash, so a symlink to a directory is seen as the
	// link itself.
	fi, err := os.Lstat(abs)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return &ItemError{Name: path, Err: ErrFileNotFound}
		}
		return &ItemError{Name: path, Err: err}
	}
	if d.overlaps(abs) {
		return &ItemError{Name: path, Err: ErrDrashcan}
	}

	if fi.Mode()&os.ModeSymlink != 0 {
		if err := os.Remove(abs); err != nil {
			return &ItemError{Name: path, Err: err}
		}
		fmt.Fprintf(d.stdout, "Removed symlink: %s\n", path)
		return nil
	}

	name := text.Basename(d.arena, abs).String()
	typ := metadata.TypeFile
	if fi.IsDir() {
		typ = metadata.TypeDirectory
	}

	if err := d.store.WriteRecord(name, abs, typ); err != nil {
		if errors.Is(err, metadata.ErrDuplicate) {
			return &ItemError{Name: name, Err: ErrAlreadyTrashed}
		}
		return &ItemError{Name: name, Err: err}
	}

	t.to(PhaseTransferring)
	if err := d.engine.Move(abs, d.filePath(name), transfer.MoveOptions{Quiet: true}); err != nil {
		if rerr := d.store.RemoveRecord(name); rerr != nil {
			slog.Warn("failed to roll back record", "name", name, "error", rerr)
		}
		switch {
		case transfer.IsSourceNotFound(err):
			err = ErrFileNotFound
		case transfer.IsDestinationExists(err):
			// Unrecorded leftover in the files area.
			slog.Warn("files area already holds the name", "name", name)
			return &ItemError{Name: name, Err: ErrAlreadyTrashed}
		}
		return &ItemError{Name: path, Err: err}
	}

	if err := d.store.SetLast(name); err != nil {
		ui.PrintWarning(d.stderr, fmt.Sprintf("could not remember %s as the last trashed entry: %v", name, err))
	}
	if d.cfg.PutVerbose {
		fmt.Fprintf(d.stdout, "Trashed %s (restore with: drash restore %s)\n", abs, shellescape.Quote(name))
	}
	return nil
}

// ForceRemove deletes every path directly, bypassing the drashcan.
func (d *Drash) ForceRemove(paths []string) error {
	if len(paths) == 0 {
		return ErrNoArguments
	}
	removed := 0
	err := d.each("force-remove", paths, func(t *tracker, path string) error {
		if fs.IsUnsafePath(path) {
			return &ItemError{Name: path, Err: ErrUnsafePath}
		}
		exists, err := fs.Lexists(path)
		if err != nil {
			return &ItemError{Name: path, Err: err}
		}
		if !exists {
			return &ItemError{Name: path, Err: ErrFileNotFound}
		}
		abs, err := filepath.Abs(path)
		if err != nil {
			return &ItemError{Name: path, Err: err}
		}
		if d.overlaps(abs) {
			return &ItemError{Name: path, Err: ErrDrashcan}
		}
		t.to(PhaseTransferring)
		if err := d.engine.RemoveAll(abs); err != nil {
			return &ItemError{Name: path, Err: err}
		}
		removed++
		return nil
	})
	d.reportRemoved(removed)
	return err
}

func (d *Drash) reportRemoved(n int) {
	switch {
	case n == 1:
		fmt.Fprintln(d.stdout, "Removed file")
	case n > 1:
		fmt.Fprintf(d.stdout, "Removed: %d files\n", n)
	}
}
