package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestParseCreatesDefault(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("DRASH_CONFIG_PATH", "")

	cfg, err := Parse("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.FileExists(t, filepath.Join(dir, ".config", "drash", "config.yaml"))
}

func TestParseOverridesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	path := writeConfig(t, `
core:
  trash_dir: ~/my-trash
  region_size: 64KB
  restore:
    confirm: false
list:
  exclude:
    globs: ["*.tmp"]
    size:
      max: 1GB
cat:
  colorscheme: monokai
`)

	cfg, err := Parse(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "my-trash"), cfg.Core.TrashDir)
	assert.Equal(t, "64KB", cfg.Core.RegionSize)
	assert.False(t, cfg.Core.Restore.Confirm)
	assert.True(t, cfg.Core.Restore.Verbose, "unset keys keep their defaults")
	assert.True(t, cfg.Core.Empty.Confirm)
	assert.Equal(t, []string{"*.tmp"}, cfg.List.Exclude.Globs)
	assert.Equal(t, "1GB", cfg.List.Exclude.Size.Max)
	assert.Equal(t, "monokai", cfg.Cat.Colorscheme)
	assert.True(t, cfg.Cat.SyntaxHighlight)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestParseValidation(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad region size", "core:\n  region_size: lots\n"},
		{"bad log level", "logging:\n  level: chatty\n"},
		{"negative max files", "logging:\n  rotation:\n    max_size: 1MB\n    max_files: -1\n"},
		{"bad pattern", "list:\n  exclude:\n    patterns: [\"(\"]\n"},
		{"bad glob", "list:\n  exclude:\n    globs: [\"[a\"]\n"},
		{"unknown key", "core:\n  trash_can: /tmp\n"},
		{"broken yaml", "core: [\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Example YAML file contents")
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestDefaultContentsRoundTrip(t *testing.T) {
	cfg, err := Parse(writeConfig(t, DefaultContents()))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}
