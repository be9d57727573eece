package drash

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	"github.com/babarot/drash/internal/fs"
	"github.com/babarot/drash/internal/metadata"
)

// Entry is one trashed item as described by its record.
type Entry struct {
	Name string
	Path string
	Type metadata.Type
	// Size is the on-disk size of the trashed content, or -1 when it could
	// not be determined.
	Size int64
}

// Entries returns every recorded entry, directories first and then by
// original path. Records that cannot be read are reported and skipped; a
// malformed record is fatal.
func (d *Drash) Entries() ([]Entry, error) {
	names, err := d.store.Names()
	if err != nil {
		return nil, fmt.Errorf("failed to read metadata: %w", err)
	}

	var entries []Entry
	for _, name := range names {
		rec, err := d.store.ReadRecord(name)
		if err != nil {
			err = recordError(name, err)
			if IsFatal(err) {
				return nil, err
			}
			slog.Warn("skipping unreadable record", "name", name, "error", err)
			continue
		}
		size, err := fs.DirSize(d.filePath(name))
		if err != nil {
			slog.Debug("cannot size trashed entry", "name", name, "error", err)
			size = -1
		}
		entries = append(entries, Entry{Name: name, Path: rec.Path, Type: rec.Type, Size: size})
	}
	d.arena.Reset()

	slices.SortFunc(entries, func(a, b Entry) int {
		ad, bd := a.Type == metadata.TypeDirectory, b.Type == metadata.TypeDirectory
		switch {
		case ad && !bd:
			return -1
		case !ad && bd:
			return 1
		}
		return cmp.Compare(a.Path, b.Path)
	})
	return entries, nil
}

// List prints the entries that survive the configured exclusions.
func (d *Drash) List() error {
	entries, err := d.Entries()
	if err != nil {
		return err
	}
	entries = filter(entries, d.cfg.Exclude)
	if len(entries) == 0 {
		fmt.Fprintln(d.stdout, "Drashcan is empty!")
		return nil
	}

	table := tablewriter.NewWriter(d.stdout)
	table.SetHeader([]string{"Type", "Size", "Path"})
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	for _, e := range entries {
		table.Append([]string{e.Type.String(), humanSize(e.Size), e.Path})
	}
	table.Render()

	fmt.Fprintf(d.stdout, "\nTotal entries: %d\n", len(entries))
	return nil
}

func humanSize(n int64) string {
	if n < 0 {
		return "-"
	}
	return humanize.Bytes(uint64(n))
}
