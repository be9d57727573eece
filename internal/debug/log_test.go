package debug

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")
	require.NoError(t, os.WriteFile(path, []byte("first\nsecond\n"), 0644))

	var buf bytes.Buffer
	require.NoError(t, Logs(&buf, path, false, true))
	assert.Equal(t, "first\nsecond\n", buf.String())
}

func TestLogsMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "debug.log")

	assert.ErrorIs(t, Logs(&bytes.Buffer{}, path, false, true), ErrNoLogFile)
	assert.ErrorIs(t, Logs(&bytes.Buffer{}, path, true, false), ErrLoggingDisabled)
}
