package env

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrashDir(t *testing.T) {
	tests := []struct {
		name     string
		home     string
		dataHome string
		override string
		want     string
		wantErr  error
	}{
		{
			name: "home fallback",
			home: "/home/alice",
			want: "/home/alice/.local/share/Drash",
		},
		{
			name:     "xdg data home",
			home:     "/home/alice",
			dataHome: "/data",
			want:     "/data/Drash",
		},
		{
			name:     "relative xdg data home is ignored",
			home:     "/home/alice",
			dataHome: "data",
			want:     "/home/alice/.local/share/Drash",
		},
		{
			name:     "override with tilde",
			home:     "/home/alice",
			override: "~/trash",
			want:     "/home/alice/trash",
		},
		{
			name:    "missing home",
			wantErr: ErrNoHome,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("HOME", tt.home)
			t.Setenv("XDG_DATA_HOME", tt.dataHome)

			got, err := TrashDir(tt.override)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, filepath.FromSlash(tt.want), got)
		})
	}
}

func TestConfigAndLogPath(t *testing.T) {
	t.Setenv("HOME", "/home/bob")
	t.Setenv("XDG_CONFIG_HOME", "")
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("XDG_STATE_HOME", "")
	t.Setenv(DRASH_CONFIG_PATH, "")
	t.Setenv(DRASH_LOG_PATH, "")

	p, err := ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/bob/.config/drash/config.yaml", p)

	p, err = LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/home/bob/.local/state/drash/debug.log", p)

	t.Setenv(DRASH_CONFIG_PATH, "/etc/drash.yaml")
	t.Setenv(DRASH_LOG_PATH, "/tmp/drash.log")

	p, err = ConfigPath()
	require.NoError(t, err)
	assert.Equal(t, "/etc/drash.yaml", p)

	p, err = LogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/drash.log", p)
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/carol")
	t.Setenv("DRASH_TEST_DIR", "/srv")

	got, err := ExpandPath("$DRASH_TEST_DIR/trash")
	require.NoError(t, err)
	assert.Equal(t, "/srv/trash", got)

	got, err = ExpandPath("~")
	require.NoError(t, err)
	assert.Equal(t, "/home/carol", got)
}
