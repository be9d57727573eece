// Package env resolves the paths drash works with from the process
// environment, following the XDG base directory layout.
package env

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultXDGConfigDirname = ".config"
	defaultXDGDataDirname   = ".local/share"
	defaultXDGStateDirname  = ".local/state"

	appName      = "drash"
	trashDirname = "Drash"
)

const (
	DRASH_CONFIG_PATH = "DRASH_CONFIG_PATH"
	DRASH_LOG_PATH    = "DRASH_LOG_PATH"
)

// ErrNoHome is returned when the home directory cannot be determined.
var ErrNoHome = errors.New("failed to get HOME environment variable")

func homeDir() (string, error) {
	home := os.Getenv("HOME")
	if home == "" {
		return "", ErrNoHome
	}
	return home, nil
}

// Follow https://specifications.freedesktop.org/basedir-spec/latest/
func xdgDir(key, fallback string) (string, error) {
	if dir := os.Getenv(key); dir != "" && filepath.IsAbs(dir) {
		return dir, nil
	}
	home, err := homeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, fallback), nil
}

// ConfigPath returns $DRASH_CONFIG_PATH, else $XDG_CONFIG_HOME/drash/config.yaml.
func ConfigPath() (string, error) {
	if p := os.Getenv(DRASH_CONFIG_PATH); p != "" {
		return p, nil
	}
	dir, err := xdgDir("XDG_CONFIG_HOME", defaultXDGConfigDirname)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "config.yaml"), nil
}

// LogPath returns $DRASH_LOG_PATH, else $XDG_STATE_HOME/drash/debug.log.
func LogPath() (string, error) {
	if p := os.Getenv(DRASH_LOG_PATH); p != "" {
		return p, nil
	}
	dir, err := xdgDir("XDG_STATE_HOME", defaultXDGStateDirname)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appName, "debug.log"), nil
}

// TrashDir returns the storage root. A non-empty override wins and may start
// with "~/" or reference environment variables.
func TrashDir(override string) (string, error) {
	if override != "" {
		return ExpandPath(override)
	}
	dir, err := xdgDir("XDG_DATA_HOME", defaultXDGDataDirname)
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, trashDirname), nil
}

// ExpandPath expands "~" and environment variables and makes path absolute.
func ExpandPath(path string) (string, error) {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := homeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, strings.TrimPrefix(path, "~"))
	}
	return filepath.Abs(os.ExpandEnv(path))
}
