package metadata

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicate indicates that a record with the same name already exists
	ErrDuplicate = errors.New("record already exists")

	// ErrSuspicious indicates that the record path is a symbolic link
	ErrSuspicious = errors.New("record path is a symbolic link")

	// ErrMalformed indicates that a record does not follow the record format
	ErrMalformed = errors.New("malformed record")

	// ErrNotFound indicates that no record exists for the name
	ErrNotFound = errors.New("record not found")

	// ErrInvalidName indicates a name that cannot be a record basename
	ErrInvalidName = errors.New("invalid record name")

	// ErrInvalidPath indicates an original path the record format cannot hold
	ErrInvalidPath = errors.New("path cannot be stored in a record")
)

// RecordError represents an error that occurred while handling a record
type RecordError struct {
	Op   string // Operation being performed
	Name string // Record basename
	Err  error  // Underlying error
}

func (e *RecordError) Error() string {
	return fmt.Sprintf("%s record %q: %v", e.Op, e.Name, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

// IsMalformed checks if the error was caused by a malformed record
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}

// IsNotFound checks if the error indicates a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
