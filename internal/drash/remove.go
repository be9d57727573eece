package drash

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"

	"github.com/babarot/drash/internal/fs"
)

// Remove permanently deletes the named entries and their records. A single
// "-" removes the latest trashed entry.
func (d *Drash) Remove(names []string) error {
	if len(names) == 0 {
		return ErrNoArguments
	}
	if len(names) == 1 && names[0] == LastArg {
		name, ok, err := d.resolveLast()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(d.stdout, "Nothing to remove!")
			return nil
		}
		names = []string{name}
	}

	removed := 0
	err := d.each("remove", names, func(t *tracker, name string) error {
		has, err := d.store.HasRecord(name)
		if err != nil {
			return &ItemError{Name: name, Err: err}
		}
		if !has {
			return &ItemError{Name: name, Err: ErrNotInDrashcan}
		}
		t.to(PhaseTransferring)
		if err := d.engine.RemoveAll(d.filePath(name)); err != nil {
			return &ItemError{Name: name, Err: err}
		}
		if err := d.store.RemoveRecord(name); err != nil {
			return &ItemError{Name: name, Err: err}
		}
		if err := d.store.ClearLastIf(name); err != nil {
			slog.Warn("failed to clear last pointer", "name", name, "error", err)
		}
		removed++
		return nil
	})
	d.reportRemoved(removed)
	return err
}

// Empty deletes every trashed entry and record. Unless yes is set, the user
// is asked first when the configuration requires it.
func (d *Drash) Empty(yes bool) error {
	defer d.arena.Reset()

	empty, err := d.store.IsEmpty()
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	if empty {
		fmt.Fprintln(d.stdout, "Drashcan is already empty")
		return nil
	}

	names, err := d.store.Names()
	if err != nil {
		return fmt.Errorf("failed to read metadata: %w", err)
	}
	size, err := fs.DirSize(d.filesDir)
	if err != nil {
		slog.Warn("cannot size files area", "error", err)
	}

	if d.cfg.EmptyConfirm && !yes {
		ok, err := d.confirmEmpty(len(names), size)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(d.stdout, "Aborted")
			return nil
		}
	}

	if err := d.engine.RemoveAll(d.filesDir); err != nil {
		return fmt.Errorf("failed to empty files area: %w", err)
	}
	if err := os.Mkdir(d.filesDir, areaPerm); err != nil {
		return fmt.Errorf("failed to recreate files area: %w", err)
	}
	if err := d.store.Clear(); err != nil {
		return fmt.Errorf("failed to clear metadata: %w", err)
	}

	slog.Info("drashcan emptied", "entries", len(names), "size", size)
	fmt.Fprintf(d.stdout, "Removed: %d %s (%s)\n", len(names), plural(len(names), "file"), humanize.Bytes(uint64(size)))
	return nil
}

func (d *Drash) confirmEmpty(n int, size int64) (bool, error) {
	if d.prompter == nil {
		return false, nil
	}
	return d.prompter.Confirm(
		"Empty the drash directory?",
		fmt.Sprintf("%d %s (%s) will be deleted permanently", n, plural(n, "entry"), humanize.Bytes(uint64(size))),
		true,
	)
}
