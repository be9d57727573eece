package transfer

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babarot/drash/internal/arena"
)

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	a := arena.New(0)
	t.Cleanup(func() {
		require.NoError(t, a.Free())
	})
	return New(a, append([]Option{WithErrorWriter(&bytes.Buffer{})}, opts...)...)
}

// crossDevice makes every rename fail as if src and dst were on different
// filesystems.
func crossDevice() Option {
	return WithOps(Ops{
		Rename: func(oldpath, newpath string) error {
			return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: errCrossDevice}
		},
	})
}

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
}

func TestMoveRename(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "content", 0644)

	require.NoError(t, e.Move(src, dst, MoveOptions{}))

	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "content", string(got))
}

func TestMoveDestinationExists(t *testing.T) {
	var stderr bytes.Buffer
	e := newTestEngine(t, WithErrorWriter(&stderr))
	dir := t.TempDir()
	src := filepath.Join(dir, "a.txt")
	dst := filepath.Join(dir, "b.txt")
	writeFile(t, src, "new", 0644)
	writeFile(t, dst, "old", 0644)

	err := e.Move(src, dst, MoveOptions{})
	assert.True(t, IsDestinationExists(err))
	var merr *MoveError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, src, merr.Src)
	assert.Contains(t, stderr.String(), "Error:")

	// Quiet suppresses the report but not the error.
	stderr.Reset()
	err = e.Move(src, dst, MoveOptions{Quiet: true})
	assert.True(t, IsDestinationExists(err))
	assert.Empty(t, stderr.String())

	require.NoError(t, e.Move(src, dst, MoveOptions{Overwrite: true}))
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "new", string(got))
	assert.NoFileExists(t, src)
}

func TestMoveOverwriteDirectory(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	dst := filepath.Join(dir, "dst")
	writeFile(t, filepath.Join(src, "keep"), "1", 0644)
	writeFile(t, filepath.Join(dst, "stale", "deep"), "2", 0644)

	require.NoError(t, e.Move(src, dst, MoveOptions{Overwrite: true}))
	assert.FileExists(t, filepath.Join(dst, "keep"))
	assert.NoDirExists(t, filepath.Join(dst, "stale"))
}

func TestMoveSourceNotFound(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()

	err := e.Move(filepath.Join(dir, "nope"), filepath.Join(dir, "dst"), MoveOptions{Quiet: true})
	assert.True(t, IsSourceNotFound(err))

	err = e.Move("", filepath.Join(dir, "dst"), MoveOptions{Quiet: true})
	assert.ErrorIs(t, err, ErrInvalidPath)
}

func TestMoveOtherRenameErrorNoFallback(t *testing.T) {
	denied := errors.New("permission denied")
	e := newTestEngine(t, WithOps(Ops{
		Rename: func(string, string) error { return denied },
	}))
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	writeFile(t, src, "x", 0644)

	err := e.Move(src, filepath.Join(dir, "b"), MoveOptions{Quiet: true})
	assert.ErrorIs(t, err, denied)
	assert.FileExists(t, src)
	assert.NoFileExists(t, filepath.Join(dir, "b"))
}

func TestMoveCrossDeviceFile(t *testing.T) {
	e := newTestEngine(t, crossDevice())
	dir := t.TempDir()
	src := filepath.Join(dir, "src.bin")
	dst := filepath.Join(dir, "dst.bin")

	// Larger than the first arena region so the scratch buffer has to grow.
	content := strings.Repeat("drash", 10000)
	writeFile(t, src, content, 0640)

	require.NoError(t, e.Move(src, dst, MoveOptions{}))

	assert.NoFileExists(t, src)
	got, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0640), fi.Mode().Perm())
}

func TestMoveCrossDeviceDirectory(t *testing.T) {
	e := newTestEngine(t, crossDevice())
	dir := t.TempDir()
	src := filepath.Join(dir, "project")
	dst := filepath.Join(dir, "trash", "project")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))

	writeFile(t, filepath.Join(src, "README"), "readme", 0644)
	writeFile(t, filepath.Join(src, "sub", "main.go"), "package main", 0600)
	writeFile(t, filepath.Join(src, "sub", "deeper", "x"), "x", 0644)
	require.NoError(t, os.Chmod(filepath.Join(src, "sub"), 0750))
	require.NoError(t, os.Chmod(src, 0710))
	hasLink := os.Symlink("README", filepath.Join(src, "link")) == nil

	require.NoError(t, e.Move(src, dst, MoveOptions{}))

	assert.NoDirExists(t, src)

	fi, err := os.Stat(dst)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0710), fi.Mode().Perm())

	fi, err = os.Stat(filepath.Join(dst, "sub"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0750), fi.Mode().Perm())

	got, err := os.ReadFile(filepath.Join(dst, "sub", "main.go"))
	require.NoError(t, err)
	assert.Equal(t, "package main", string(got))
	assert.FileExists(t, filepath.Join(dst, "sub", "deeper", "x"))

	if hasLink {
		target, err := os.Readlink(filepath.Join(dst, "link"))
		require.NoError(t, err)
		assert.Equal(t, "README", target)
	}
}

func TestMoveCrossDeviceDirectorySymlinkChildren(t *testing.T) {
	e := newTestEngine(t, crossDevice())
	dir := t.TempDir()
	src := filepath.Join(dir, "project")
	dst := filepath.Join(dir, "trash", "project")
	require.NoError(t, os.MkdirAll(filepath.Dir(dst), 0755))

	outside := filepath.Join(dir, "outside")
	writeFile(t, filepath.Join(outside, "data"), "data", 0644)
	writeFile(t, filepath.Join(src, "README"), "readme", 0644)

	links := map[string]string{
		"relative": "README",
		"absolute": outside,
		"dangling": "does-not-exist",
	}
	for name, target := range links {
		if err := os.Symlink(target, filepath.Join(src, name)); err != nil {
			t.Skipf("symlinks unavailable: %v", err)
		}
	}

	require.NoError(t, e.Move(src, dst, MoveOptions{}))

	_, err := os.Lstat(src)
	assert.ErrorIs(t, err, os.ErrNotExist)
	for name, target := range links {
		path := filepath.Join(dst, name)
		fi, err := os.Lstat(path)
		require.NoError(t, err, name)
		assert.NotZero(t, fi.Mode()&os.ModeSymlink, "%s is still a symlink", name)
		got, err := os.Readlink(path)
		require.NoError(t, err, name)
		assert.Equal(t, target, got, name)
	}

	// The directory behind the absolute link was not followed.
	got, err := os.ReadFile(filepath.Join(outside, "data"))
	require.NoError(t, err)
	assert.Equal(t, "data", string(got))
	entries, err := os.ReadDir(dst)
	require.NoError(t, err)
	assert.Len(t, entries, 4)
}

func TestMoveCrossDeviceRemoveFailureRollsBack(t *testing.T) {
	e := newTestEngine(t, crossDevice(), WithOps(Ops{
		Remove: func(string) error { return os.ErrPermission },
	}))
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	dst := filepath.Join(dir, "b")
	writeFile(t, src, "x", 0644)

	err := e.Move(src, dst, MoveOptions{Quiet: true})
	assert.ErrorIs(t, err, os.ErrPermission)
	assert.FileExists(t, src)
	assert.NoFileExists(t, dst)
}

func TestMoveTooDeep(t *testing.T) {
	e := newTestEngine(t, crossDevice(), WithMaxDepth(2))
	dir := t.TempDir()
	src := filepath.Join(dir, "a")
	writeFile(t, filepath.Join(src, "b", "c", "d", "file"), "x", 0644)

	err := e.Move(src, filepath.Join(dir, "dst"), MoveOptions{Quiet: true})
	assert.ErrorIs(t, err, ErrTooDeep)
}

func TestCopyDirectoryRejectsFile(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	src := filepath.Join(dir, "file")
	writeFile(t, src, "x", 0644)

	assert.Error(t, e.CopyDirectory(src, filepath.Join(dir, "dst")))
}

func TestRemoveAll(t *testing.T) {
	e := newTestEngine(t)
	dir := t.TempDir()
	root := filepath.Join(dir, "root")
	outside := filepath.Join(dir, "outside")
	writeFile(t, outside, "keep me", 0644)
	for i := range 5 {
		writeFile(t, filepath.Join(root, "d", string(rune('a'+i))), "x", 0644)
	}
	writeFile(t, filepath.Join(root, "top"), "x", 0644)
	hasLink := os.Symlink(outside, filepath.Join(root, "d", "link")) == nil

	require.NoError(t, e.RemoveAll(root))

	assert.NoDirExists(t, root)
	if hasLink {
		// Symlinks are unlinked, never followed.
		assert.FileExists(t, outside)
	}

	// Missing paths are fine.
	require.NoError(t, e.RemoveAll(root))
}
