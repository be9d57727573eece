// Package log builds the process logger: a charmbracelet/log handler behind
// log/slog, writing to a size-rotated file.
package log

import (
	"io"
	"log/slog"

	charmlog "github.com/charmbracelet/log"
)

// New builds a slog.Logger backed by a charmbracelet/log handler. Without
// options it writes Info and above to stderr.
func New(opts ...Option) *slog.Logger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	handler := charmlog.NewWithOptions(o.Writer, o.Options)
	handler.SetStyles(o.Styles) // Always set styles to ensure level definitions

	logger := slog.New(handler)
	if o.Default {
		charmlog.SetDefault(handler)
		slog.SetDefault(logger)
	}
	return logger
}

// Discard returns a logger that drops everything.
func Discard() *slog.Logger {
	return New(UseOutput(io.Discard), UseLevel(FatalLevel))
}
