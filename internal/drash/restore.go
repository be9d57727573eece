package drash

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/babarot/drash/internal/fs"
	"github.com/babarot/drash/internal/transfer"
)

// LastArg selects the most recently trashed entry.
const LastArg = "-"

// Restore moves the named entries back to their original paths. A single "-"
// restores the latest trashed entry. An occupied original path is replaced
// when overwrite is set, and otherwise only after the user agrees.
func (d *Drash) Restore(names []string, overwrite bool) error {
	if len(names) == 0 {
		return ErrNoArguments
	}
	if len(names) == 1 && names[0] == LastArg {
		name, ok, err := d.resolveLast()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(d.stdout, "Nothing to restore!")
			return nil
		}
		names = []string{name}
	}

	restored := 0
	err := d.each("restore", names, func(t *tracker, name string) error {
		done, err := d.restore(t, name, overwrite)
		if done {
			restored++
		}
		return err
	})

	if d.cfg.RestoreVerbose && restored > 0 {
		fmt.Fprintf(d.stdout, "Restored %d %s\n", restored, plural(restored, "file"))
	}
	return err
}

func (d *Drash) restore(t *tracker, name string, overwrite bool) (bool, error) {
	rec, err := d.store.ReadRecord(name)
	if err != nil {
		return false, recordError(name, err)
	}

	exists, err := fs.Lexists(rec.Path)
	if err != nil {
		return false, &ItemError{Name: name, Err: err}
	}
	replace := overwrite
	if exists && !overwrite {
		ok, err := d.confirmOverwrite(rec.Path)
		if err != nil {
			return false, &ItemError{Name: name, Err: err}
		}
		if !ok {
			fmt.Fprintf(d.stdout, "Skipped %s\n", rec.Path)
			return false, nil
		}
		replace = true
	}

	if err := os.MkdirAll(filepath.Dir(rec.Path), 0755); err != nil {
		return false, &ItemError{Name: name, Err: err}
	}

	t.to(PhaseTransferring)
	if err := d.engine.Move(d.filePath(name), rec.Path, transfer.MoveOptions{Quiet: true, Overwrite: replace}); err != nil {
		switch {
		case transfer.IsSourceNotFound(err):
			err = ErrMissingContent
		case transfer.IsDestinationExists(err):
			// Appeared after the collision check.
			fmt.Fprintf(d.stdout, "Skipped %s\n", rec.Path)
			return false, nil
		}
		return false, &ItemError{Name: name, Err: err}
	}
	if err := d.store.RemoveRecord(name); err != nil {
		return true, &ItemError{Name: name, Err: err}
	}
	if err := d.store.ClearLastIf(name); err != nil {
		slog.Warn("failed to clear last pointer", "name", name, "error", err)
	}
	slog.Info("restored", "name", name, "path", rec.Path)
	return true, nil
}

func (d *Drash) confirmOverwrite(path string) (bool, error) {
	if !d.cfg.RestoreConfirm || d.prompter == nil {
		return false, nil
	}
	return d.prompter.Confirm(
		fmt.Sprintf("File already exists: %s", path),
		"Do you want to overwrite it?",
		false,
	)
}
