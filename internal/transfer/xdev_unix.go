//go:build unix

package transfer

import (
	"errors"

	"golang.org/x/sys/unix"
)

var errCrossDevice error = unix.EXDEV

// isCrossDevice reports whether err comes from renaming across filesystems.
func isCrossDevice(err error) bool {
	return errors.Is(err, unix.EXDEV)
}
