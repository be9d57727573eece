package drash

import (
	"log/slog"
	"os"

	"github.com/babarot/drash/internal/metadata"
	"github.com/babarot/drash/internal/text"
	"github.com/babarot/drash/internal/ui"
)

// Cat writes the content of a trashed file to stdout. On a terminal, text is
// syntax highlighted and binary content is refused.
func (d *Drash) Cat(name string) error {
	defer d.arena.Reset()

	rec, err := d.store.ReadRecord(name)
	if err != nil {
		return recordError(name, err)
	}
	if rec.Type == metadata.TypeDirectory {
		return &ItemError{Name: name, Err: ErrIsDirectory}
	}

	f, err := os.Open(d.filePath(name))
	if err != nil {
		return &ItemError{Name: name, Err: err}
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Warn("failed to close trashed file", "name", name, "error", err)
		}
	}()

	size := 0
	if fi, err := f.Stat(); err == nil {
		size = int(fi.Size())
	}
	buf := text.WithCapacity(d.arena, size)
	if _, err := buf.ReadFrom(f); err != nil {
		return &ItemError{Name: name, Err: err}
	}
	content := buf.Bytes()

	if d.terminal {
		if !ui.IsText(content) {
			return &ItemError{Name: name, Err: ErrBinary}
		}
		if d.cfg.Highlight {
			out, err := ui.Highlight(string(content), rec.Path, d.cfg.Colorscheme)
			if err == nil {
				_, err = d.stdout.Write([]byte(out))
				return err
			}
			slog.Warn("highlighting failed, printing raw content", "error", err)
		}
	}

	_, err = d.stdout.Write(content)
	return err
}
