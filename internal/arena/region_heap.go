//go:build !(linux || darwin || freebsd || netbsd || openbsd)

package arena

import "os"

// mapRegion falls back to the Go heap where anonymous mappings are not wired up.
func mapRegion(size int) ([]byte, error) {
	return make([]byte, size), nil
}

func unmapRegion([]byte) error {
	return nil
}

func pageSize() int {
	return os.Getpagesize()
}
