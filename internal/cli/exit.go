package cli

import (
	"errors"
	"io"

	"github.com/jessevdk/go-flags"

	"github.com/babarot/drash/internal/drash"
	"github.com/babarot/drash/internal/ui"
)

// Process exit statuses.
const (
	ExitOK      = 0
	ExitError   = 1
	ExitFlags   = 2
	ExitUsage   = 3
	ExitPartial = 4
	ExitEnv     = 5
)

// ErrUsage marks a command invoked with the wrong arguments.
var ErrUsage = errors.New("invalid arguments")

// EnvError is a failure to resolve the environment, the configuration or the
// drashcan before any command ran.
type EnvError struct {
	Err error
}

func (e *EnvError) Error() string {
	return e.Err.Error()
}

func (e *EnvError) Unwrap() error {
	return e.Err
}

// ExitCode maps an error returned by Run to a process exit status.
func ExitCode(err error) int {
	var (
		flagsErr *flags.Error
		envErr   *EnvError
	)
	switch {
	case err == nil:
		return ExitOK
	case errors.As(err, &flagsErr):
		return ExitFlags
	case errors.Is(err, ErrUsage), errors.Is(err, drash.ErrNoArguments):
		return ExitUsage
	case errors.Is(err, drash.ErrPartial):
		return ExitPartial
	case errors.As(err, &envErr):
		return ExitEnv
	default:
		return ExitError
	}
}

// Exit prints err to w unless it was already shown to the user and returns
// the exit status for it.
func Exit(w io.Writer, err error) int {
	code := ExitCode(err)
	switch code {
	case ExitOK, ExitFlags, ExitPartial:
	default:
		ui.PrintError(w, err)
	}
	return code
}
