package drash

import (
	"errors"
	"fmt"
)

var (
	// ErrPartial is returned when at least one item of a multi-item command
	// failed. Each failure has already been reported.
	ErrPartial = errors.New("some items could not be processed")

	ErrNoArguments    = errors.New("no arguments given")
	ErrUnsafePath     = errors.New("refusing to remove unsafe path")
	ErrFileNotFound   = errors.New("file not found")
	ErrAlreadyTrashed = errors.New("already exists in the drashcan")
	ErrNotInDrashcan  = errors.New("does not exist in the drashcan")
	ErrDrashcan       = errors.New("refusing to trash the drashcan")
	ErrIsDirectory    = errors.New("is a directory")
	ErrBinary         = errors.New("binary file, refusing to print to a terminal")
	ErrNewline        = errors.New("refusing to trash a path containing a newline")
	ErrMissingContent = errors.New("trashed content is missing from the drashcan")
)

// ItemError is a failure limited to one argument of a command.
type ItemError struct {
	Name string
	Err  error
}

func (e *ItemError) Error() string {
	return fmt.Sprintf("%v: '%s'", e.Err, e.Name)
}

func (e *ItemError) Unwrap() error {
	return e.Err
}

// FatalError stops a command at once, e.g. on a corrupted record.
type FatalError struct {
	Err error
}

func (e *FatalError) Error() string {
	return e.Err.Error()
}

func (e *FatalError) Unwrap() error {
	return e.Err
}

// IsFatal reports whether err must abort the whole command.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}
