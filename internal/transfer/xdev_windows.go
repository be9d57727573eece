//go:build windows

package transfer

import (
	"errors"

	"golang.org/x/sys/windows"
)

var errCrossDevice error = windows.ERROR_NOT_SAME_DEVICE

// isCrossDevice reports whether err comes from renaming across volumes.
func isCrossDevice(err error) bool {
	return errors.Is(err, windows.ERROR_NOT_SAME_DEVICE)
}
