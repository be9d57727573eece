package transfer

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationExists indicates that the destination path already exists
	ErrDestinationExists = errors.New("destination already exists")

	// ErrSourceNotFound indicates that the source file does not exist
	ErrSourceNotFound = errors.New("source file not found")

	// ErrInvalidPath indicates an empty source or destination
	ErrInvalidPath = errors.New("invalid path specified")

	// ErrTooDeep indicates a directory tree nested deeper than MaxDepth
	ErrTooDeep = errors.New("directory nesting too deep")
)

// MoveError represents an error that occurred during a move operation
type MoveError struct {
	Op  string // Operation being performed
	Src string // Source path
	Dst string // Destination path
	Err error  // Underlying error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move operation failed: %s from %q to %q: %v", e.Op, e.Src, e.Dst, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// CleanupError represents an error that occurred during cleanup
type CleanupError struct {
	Path string // Path being cleaned up
	Err  error  // Underlying error
}

func (e *CleanupError) Error() string {
	return fmt.Sprintf("cleanup failed for %q: %v", e.Path, e.Err)
}

func (e *CleanupError) Unwrap() error {
	return e.Err
}

// IsDestinationExists checks if the error indicates the destination exists
func IsDestinationExists(err error) bool {
	return errors.Is(err, ErrDestinationExists)
}

// IsSourceNotFound checks if the error indicates a missing source
func IsSourceNotFound(err error) bool {
	return errors.Is(err, ErrSourceNotFound)
}
