// Package transfer moves files and directories between the user's filesystem
// and the drashcan. A plain rename is tried first; when source and
// destination live on different devices the move degrades to copy then delete.
package transfer

import (
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"os"

	"github.com/fatih/color"
	cp "github.com/otiai10/copy"

	"github.com/babarot/drash/internal/arena"
	"github.com/babarot/drash/internal/fs"
	"github.com/babarot/drash/internal/text"
)

// DefaultMaxDepth bounds recursion into nested directories.
const DefaultMaxDepth = 4096

// Ops are the filesystem primitives that mutate the source tree.
type Ops struct {
	Rename func(oldpath, newpath string) error
	Remove func(path string) error
}

// DefaultOps returns Ops backed by the os package.
func DefaultOps() Ops {
	return Ops{Rename: os.Rename, Remove: os.Remove}
}

// MoveOptions specifies options for move operations
type MoveOptions struct {
	Quiet     bool // Do not report failures to the error writer
	Overwrite bool // Replace an existing destination
}

// Engine performs moves using scratch memory from an arena.
type Engine struct {
	arena    *arena.Arena
	ops      Ops
	errOut   io.Writer
	maxDepth int
}

type Option func(*Engine)

func WithOps(ops Ops) Option {
	return func(e *Engine) {
		if ops.Rename != nil {
			e.ops.Rename = ops.Rename
		}
		if ops.Remove != nil {
			e.ops.Remove = ops.Remove
		}
	}
}

func WithErrorWriter(w io.Writer) Option {
	return func(e *Engine) {
		e.errOut = w
	}
}

func WithMaxDepth(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxDepth = n
		}
	}
}

// New returns an engine that borrows scratch memory from a.
func New(a *arena.Arena, opts ...Option) *Engine {
	e := &Engine{
		arena:    a,
		ops:      DefaultOps(),
		errOut:   os.Stderr,
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Move moves src to dst. An existing dst is refused with ErrDestinationExists
// unless opts.Overwrite is set, in which case it is removed first.
func (e *Engine) Move(src, dst string, opts MoveOptions) error {
	err := e.move(src, dst, opts.Overwrite, 0)
	if err != nil && !opts.Quiet {
		fmt.Fprintf(e.errOut, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("Error:"), err)
	}
	return err
}

func (e *Engine) move(src, dst string, overwrite bool, depth int) error {
	if src == "" || dst == "" {
		return &MoveError{Op: "validate", Src: src, Dst: dst, Err: ErrInvalidPath}
	}
	if depth > e.maxDepth {
		return &MoveError{Op: "validate", Src: src, Dst: dst, Err: ErrTooDeep}
	}

	srcInfo, err := os.Lstat(src)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			err = ErrSourceNotFound
		}
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}

	exists, err := fs.Lexists(dst)
	if err != nil {
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}
	if exists {
		if !overwrite {
			return &MoveError{Op: "check", Src: src, Dst: dst, Err: ErrDestinationExists}
		}
		if err := e.removeAll(dst, depth); err != nil {
			return &MoveError{Op: "overwrite", Src: src, Dst: dst, Err: err}
		}
	}

	err = e.ops.Rename(src, dst)
	if err == nil {
		return nil
	}
	if !isCrossDevice(err) {
		return &MoveError{Op: "rename", Src: src, Dst: dst, Err: err}
	}

	slog.Debug("cross-device move, falling back to copy", "src", src, "dst", dst)
	switch {
	case srcInfo.Mode()&os.ModeSymlink != 0:
		return e.moveSymlink(src, dst)
	case srcInfo.IsDir():
		return e.copyDirectory(src, dst, srcInfo.Mode().Perm(), depth)
	default:
		return e.moveFile(src, dst, srcInfo.Mode().Perm())
	}
}

// moveFile copies the whole content of src through arena scratch, writes it
// to dst with perm and removes src.
func (e *Engine) moveFile(src, dst string, perm os.FileMode) error {
	mark := e.arena.Checkpoint()
	defer e.arena.Restore(mark)

	in, err := os.Open(src)
	if err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	size := 0
	if fi, err := in.Stat(); err == nil {
		size = int(fi.Size())
	}
	buf := text.WithCapacity(e.arena, size)
	_, err = buf.ReadFrom(in)
	if cerr := in.Close(); cerr != nil {
		slog.Warn("failed to close source", "path", src, "error", cerr)
	}
	if err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	out, err := fs.CreateExclusive(dst, perm)
	if err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	_, werr := out.Write(buf.Bytes())
	if err := errors.Join(werr, out.Close(), os.Chmod(dst, perm)); err != nil {
		_ = os.Remove(dst)
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}

	return e.removeSource(src, dst)
}

// moveSymlink recreates the link itself at dst instead of following it.
func (e *Engine) moveSymlink(src, dst string) error {
	opts := cp.Options{
		OnSymlink: func(string) cp.SymlinkAction {
			return cp.Shallow
		},
	}
	if err := cp.Copy(src, dst, opts); err != nil {
		return &MoveError{Op: "copy", Src: src, Dst: dst, Err: err}
	}
	return e.removeSource(src, dst)
}

// removeSource deletes src after a successful copy. If that fails the copy is
// removed again so the entry is not left in both places.
func (e *Engine) removeSource(src, dst string) error {
	err := e.ops.Remove(src)
	if err == nil {
		return nil
	}
	if rmErr := os.RemoveAll(dst); rmErr != nil {
		return &MoveError{
			Op:  "cleanup",
			Src: src,
			Dst: dst,
			Err: errors.Join(err, &CleanupError{Path: dst, Err: rmErr}),
		}
	}
	return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
}

// CopyDirectory creates dst with the permission bits of src, moves every
// child of src into it and removes src once it is empty. The first failing
// child aborts the copy.
func (e *Engine) CopyDirectory(src, dst string) error {
	fi, err := os.Lstat(src)
	if err != nil {
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: err}
	}
	if !fi.IsDir() {
		return &MoveError{Op: "stat", Src: src, Dst: dst, Err: fmt.Errorf("%s: not a directory", src)}
	}
	return e.copyDirectory(src, dst, fi.Mode().Perm(), 0)
}

func (e *Engine) copyDirectory(src, dst string, perm os.FileMode, depth int) error {
	// Owner write is needed while children are moved in; the final mode is
	// applied afterwards.
	if err := os.Mkdir(dst, perm|0700); err != nil {
		return &MoveError{Op: "mkdir", Src: src, Dst: dst, Err: err}
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return &MoveError{Op: "readdir", Src: src, Dst: dst, Err: err}
	}
	for _, entry := range entries {
		from := text.MustFormat(e.arena, "%/%", src, entry.Name()).String()
		to := text.MustFormat(e.arena, "%/%", dst, entry.Name()).String()
		if err := e.move(from, to, false, depth+1); err != nil {
			return err
		}
	}

	if err := os.Chmod(dst, perm); err != nil {
		return &MoveError{Op: "chmod", Src: src, Dst: dst, Err: err}
	}
	if err := e.ops.Remove(src); err != nil {
		return &MoveError{Op: "remove_source", Src: src, Dst: dst, Err: err}
	}
	return nil
}

// RemoveAll deletes path and everything below it. Files and symlinks are
// unlinked; directories are emptied depth first and then removed. A missing
// path is not an error.
func (e *Engine) RemoveAll(path string) error {
	return e.removeAll(path, 0)
}

func (e *Engine) removeAll(path string, depth int) error {
	if depth > e.maxDepth {
		return fmt.Errorf("remove %s: %w", path, ErrTooDeep)
	}
	fi, err := os.Lstat(path)
	if err != nil {
		if errors.Is(err, iofs.ErrNotExist) {
			return nil
		}
		return err
	}
	if !fi.IsDir() {
		return e.ops.Remove(path)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		child := text.MustFormat(e.arena, "%/%", path, entry.Name()).String()
		if err := e.removeAll(child, depth+1); err != nil {
			return err
		}
	}
	return e.ops.Remove(path)
}
