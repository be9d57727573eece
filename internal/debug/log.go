// Package debug prints the debug log for `drash --debug`.
package debug

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/nxadm/tail"
)

var (
	ErrLoggingDisabled = errors.New("logging is not enabled in config: enable logging to create log files")
	ErrNoLogFile       = errors.New("no log file exists yet: try running some commands first")
)

// Logs writes the log at path to w. With live set and stdout being a
// terminal, it keeps following new entries from the end of the file.
func Logs(w io.Writer, path string, live, enabled bool) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if !enabled {
			return ErrLoggingDisabled
		}
		return ErrNoLogFile
	}

	follow := live && isatty.IsTerminal(os.Stdout.Fd())
	cfg := tail.Config{
		ReOpen: follow,
		Follow: follow,
		Poll:   true,
		Logger: tail.DiscardingLogger,
	}
	if follow {
		cfg.Location = &tail.SeekInfo{Offset: 0, Whence: io.SeekEnd}
	}

	t, err := tail.TailFile(path, cfg)
	if err != nil {
		return err
	}
	defer t.Cleanup()

	for line := range t.Lines {
		if line.Err != nil {
			return line.Err
		}
		fmt.Fprintln(w, line.Text)
	}
	return t.Wait()
}
