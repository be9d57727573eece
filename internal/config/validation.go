package config

import (
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/docker/go-units"
	"github.com/go-playground/validator/v10"
	"github.com/gobwas/glob"
)

// validateSize validates the size format (e.g., "10MB", "1GB")
func validateSize(fl validator.FieldLevel) bool {
	_, err := units.FromHumanSize(fl.Field().String())
	return err == nil
}

// validateLogLevel accepts the level names understood by the logger.
func validateLogLevel(fl validator.FieldLevel) bool {
	value := strings.ToLower(fl.Field().String())
	return slices.Contains([]string{"debug", "info", "warn", "error", "fatal"}, value)
}

func validateRegexp(fl validator.FieldLevel) bool {
	_, err := regexp.Compile(fl.Field().String())
	return err == nil
}

func validateGlob(fl validator.FieldLevel) bool {
	_, err := glob.Compile(fl.Field().String())
	return err == nil
}

// validateDirPath is a validation function for directory paths that works on any OS.
// This custom validator was created because the standard "dirpath" validator in go-playground/validator
// incorrectly marks some valid paths as invalid, particularly on Windows.
//
// Empty strings are considered invalid.
func validateDirPath(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(fl.Field().String())
	if path == "" {
		return false
	}

	cleanPath := filepath.Clean(os.ExpandEnv(path))

	// If path exists, verify that it is a directory
	fi, err := os.Stat(cleanPath)
	if err == nil {
		return fi.IsDir()
	}
	if os.IsNotExist(err) {
		// Path doesn't exist but format is valid
		return true
	}

	// Path error indicates possible OS constraint violation
	_, ok := err.(*os.PathError)
	return !ok
}
