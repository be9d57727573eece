//go:build linux || darwin || freebsd || netbsd || openbsd

package arena

import (
	"errors"

	"golang.org/x/sys/unix"
)

// mapRegion maps size bytes of anonymous, zero filled memory.
func mapRegion(size int) ([]byte, error) {
	return unix.Mmap(-1, 0, size, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
}

func unmapRegion(b []byte) error {
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// already unmapped
		return nil
	}
	return err
}

func pageSize() int {
	return unix.Getpagesize()
}
