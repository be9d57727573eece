//go:build !unix && !windows

package transfer

import "errors"

var errCrossDevice = errors.New("cross-device link")

func isCrossDevice(err error) bool {
	return errors.Is(err, errCrossDevice)
}
