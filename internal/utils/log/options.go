package log

import (
	"io"
	"os"
	"time"

	charmlog "github.com/charmbracelet/log"
)

// Options configures New. Handler settings live in the embedded
// charmlog.Options; the rest decides where records go.
type Options struct {
	charmlog.Options
	Writer  io.Writer
	Styles  *Styles
	Default bool
}

func defaultOptions() *Options {
	return &Options{
		Options: charmlog.Options{Level: InfoLevel},
		Writer:  os.Stderr,
		Styles:  DefaultStyles(),
	}
}

type Option func(*Options)

// UseLevel sets the lowest level that is written.
func UseLevel(l Level) Option {
	return func(o *Options) {
		o.Level = l
	}
}

// UseLevelName is UseLevel for a level name from the configuration file.
func UseLevelName(name string) Option {
	return UseLevel(ParseLevel(name))
}

func UseOutput(w io.Writer) Option {
	return func(o *Options) {
		o.Writer = w
	}
}

// UseFileFormat annotates every line with the wall clock time and the calling
// source line, which is what the debug log file wants and a terminal does not.
func UseFileFormat() Option {
	return func(o *Options) {
		o.ReportCaller = true
		o.ReportTimestamp = true
		o.TimeFormat = time.Kitchen
	}
}

// AsDefault installs the logger as both the slog and charmbracelet/log default.
func AsDefault() Option {
	return func(o *Options) {
		o.Default = true
	}
}
