// Package drash implements the user-facing commands: trashing paths, listing,
// restoring and removing trashed entries, and emptying the drashcan.
package drash

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/babarot/drash/internal/arena"
	"github.com/babarot/drash/internal/config"
	"github.com/babarot/drash/internal/metadata"
	"github.com/babarot/drash/internal/text"
	"github.com/babarot/drash/internal/transfer"
	"github.com/babarot/drash/internal/ui"
)

const (
	FilesDir    = "files"
	MetadataDir = "metadata"

	rootPerm = 0740
	areaPerm = 0700
)

// Config holds the settings the commands depend on.
type Config struct {
	Root string

	PutVerbose     bool
	RestoreConfirm bool
	RestoreVerbose bool
	EmptyConfirm   bool

	Exclude config.ExcludeConfig

	Highlight   bool
	Colorscheme string
}

// ConfigFrom maps the parsed configuration file onto Config. root is the
// resolved drashcan directory.
func ConfigFrom(cfg config.Config, root string) Config {
	return Config{
		Root:           root,
		PutVerbose:     cfg.Core.Put.Verbose,
		RestoreConfirm: cfg.Core.Restore.Confirm,
		RestoreVerbose: cfg.Core.Restore.Verbose,
		EmptyConfirm:   cfg.Core.Empty.Confirm,
		Exclude:        cfg.List.Exclude,
		Highlight:      cfg.Cat.SyntaxHighlight,
		Colorscheme:    cfg.Cat.Colorscheme,
	}
}

// Prompter asks the user a yes/no question.
type Prompter interface {
	Confirm(prompt, help string, def bool) (bool, error)
}

// Drash runs commands against one drashcan. It is not safe for concurrent use.
type Drash struct {
	cfg      Config
	filesDir string
	arena    *arena.Arena
	store    *metadata.Store
	engine   *transfer.Engine

	prompter     Prompter
	stdout       io.Writer
	stderr       io.Writer
	terminal     bool
	transferOpts []transfer.Option
}

type Option func(*Drash)

func WithPrompter(p Prompter) Option {
	return func(d *Drash) {
		d.prompter = p
	}
}

func WithOutput(stdout, stderr io.Writer) Option {
	return func(d *Drash) {
		d.stdout = stdout
		d.stderr = stderr
	}
}

// WithTerminal tells Cat whether stdout is a terminal.
func WithTerminal(terminal bool) Option {
	return func(d *Drash) {
		d.terminal = terminal
	}
}

func WithTransferOptions(opts ...transfer.Option) Option {
	return func(d *Drash) {
		d.transferOpts = append(d.transferOpts, opts...)
	}
}

// New opens the drashcan at cfg.Root, creating its directories when missing.
// Every command borrows scratch memory from a.
func New(cfg Config, a *arena.Arena, opts ...Option) (*Drash, error) {
	if cfg.Root == "" {
		return nil, errors.New("drashcan root is not set")
	}
	root, err := filepath.Abs(cfg.Root)
	if err != nil {
		return nil, err
	}
	cfg.Root = root

	d := &Drash{
		cfg:      cfg,
		arena:    a,
		prompter: ui.NewPrompter(),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
	for _, opt := range opts {
		opt(d)
	}

	d.filesDir = text.MustFormat(a, "%/%", root, FilesDir).String()
	metaDir := text.MustFormat(a, "%/%", root, MetadataDir).String()

	if err := os.MkdirAll(root, rootPerm); err != nil {
		return nil, fmt.Errorf("failed to create drashcan: %w", err)
	}
	for _, dir := range []string{d.filesDir, metaDir} {
		if err := os.MkdirAll(dir, areaPerm); err != nil {
			return nil, fmt.Errorf("failed to create drashcan: %w", err)
		}
	}

	d.store = metadata.New(metaDir, a)
	d.engine = transfer.New(a, append([]transfer.Option{transfer.WithErrorWriter(d.stderr)}, d.transferOpts...)...)

	slog.Debug("drashcan opened", "root", root)
	return d, nil
}

// Root returns the absolute drashcan directory.
func (d *Drash) Root() string { return d.cfg.Root }

func (d *Drash) filePath(name string) string {
	return text.MustFormat(d.arena, "%/%", d.filesDir, name).String()
}

// overlaps reports whether path is the drashcan, inside it, or one of its
// ancestors.
func (d *Drash) overlaps(path string) bool {
	for _, pair := range [][2]string{{path, d.cfg.Root}, {d.cfg.Root, path}} {
		rel, err := filepath.Rel(pair[0], pair[1])
		if err != nil {
			continue
		}
		if rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))) {
			return true
		}
	}
	return false
}

// each runs fn for every name, resetting the arena in between. Item failures
// are printed and processing goes on; a FatalError stops the loop.
func (d *Drash) each(op string, names []string, fn func(t *tracker, name string) error) error {
	failed := 0
	for _, name := range names {
		d.arena.Reset()
		t := newTracker(op, name)
		t.to(PhaseValidating)
		err := fn(t, name)
		if err == nil {
			t.to(PhaseDone)
			continue
		}
		t.to(PhaseFailed)
		if IsFatal(err) {
			return err
		}
		slog.Error("item failed", "op", op, "item", name, "error", err)
		ui.PrintError(d.stderr, err)
		failed++
	}
	if failed > 0 {
		return fmt.Errorf("%w: %d of %d failed", ErrPartial, failed, len(names))
	}
	return nil
}

// resolveLast maps the "-" argument to the latest trashed name. ok is false
// when there is no pointer or it no longer names a recorded entry.
func (d *Drash) resolveLast() (name string, ok bool, err error) {
	name, ok, err = d.store.GetLast()
	if err != nil || !ok {
		return "", false, err
	}
	has, err := d.store.HasRecord(name)
	if err != nil {
		return "", false, err
	}
	if !has {
		slog.Debug("last pointer is stale", "name", name)
		return "", false, nil
	}
	return name, true, nil
}

// recordError converts a store error for name into the error the commands
// report.
func recordError(name string, err error) error {
	switch {
	case metadata.IsMalformed(err):
		return &FatalError{Err: err}
	case metadata.IsNotFound(err):
		return &ItemError{Name: name, Err: ErrNotInDrashcan}
	default:
		return &ItemError{Name: name, Err: err}
	}
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}
	return word + "s"
}
