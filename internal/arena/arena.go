// Package arena implements a region based scratch allocator.
//
// An Arena owns a vector of regions. Allocations bump the position of the
// current region and new regions are appended when none has room, each one at
// least four times the size of the previous. Memory is handed back in bulk,
// either by rewinding to a Checkpoint or by resetting the whole arena; single
// allocations are never freed.
//
// The bytes returned by Alloc are only valid until the region they live in
// is rewound. Callers that need to keep data past a Reset must copy it out
// (string conversion does that).
package arena

import (
	"errors"
	"fmt"
	"log/slog"
)

// growthFactor is the minimum ratio between a new region and the last one.
const growthFactor = 4

// DefaultRegionSize is used when New is given a non-positive size.
const DefaultRegionSize = 4 << 10

type region struct {
	buf []byte
	pos int
}

func (r *region) free() int {
	return len(r.buf) - r.pos
}

func (r *region) take(n int) []byte {
	b := r.buf[r.pos : r.pos+n : r.pos+n]
	r.pos += n
	return b
}

// Checkpoint is a saved allocation mark. It is a plain value: the index of
// the region that was current and the position inside it.
type Checkpoint struct {
	Region int
	Pos    int
}

// RegionStat describes a single region.
type RegionStat struct {
	Capacity int
	Position int
}

// Arena is a chain of bump allocated regions. It is not safe for concurrent use.
type Arena struct {
	regions  []*region
	current  int
	pageSize int
}

// New creates an arena whose first region holds at least size bytes.
// The size is rounded up to the platform page size.
func New(size int) *Arena {
	if size <= 0 {
		size = DefaultRegionSize
	}
	a := &Arena{pageSize: pageSize()}
	a.grow(size)
	return a
}

// Alloc returns n zeroed bytes. It panics if the operating system refuses to
// map a new region; there is no recoverable out-of-memory path.
func (a *Arena) Alloc(n int) []byte {
	if n < 0 {
		panic(fmt.Sprintf("arena: negative allocation size %d", n))
	}

	if r := a.regions[a.current]; r.free() >= n {
		return r.take(n)
	}

	for i, r := range a.regions {
		if r.free() >= n {
			a.current = i
			return r.take(n)
		}
	}

	a.grow(n)
	return a.regions[a.current].take(n)
}

// Checkpoint captures the current region and its position.
func (a *Arena) Checkpoint() Checkpoint {
	return Checkpoint{
		Region: a.current,
		Pos:    a.regions[a.current].pos,
	}
}

// Restore rewinds the checkpoint's region to the saved position, zeroing the
// bytes allocated since, and makes it the current region again.
//
// Regions appended after the checkpoint was taken keep their contents until
// the next Reset.
func (a *Arena) Restore(cp Checkpoint) {
	if cp.Region < 0 || cp.Region >= len(a.regions) {
		panic(fmt.Sprintf("arena: checkpoint refers to region %d of %d", cp.Region, len(a.regions)))
	}
	r := a.regions[cp.Region]
	if cp.Pos < r.pos {
		clear(r.buf[cp.Pos:r.pos])
		r.pos = cp.Pos
	}
	a.current = cp.Region
}

// Reset zeroes and rewinds every region.
func (a *Arena) Reset() {
	for _, r := range a.regions {
		clear(r.buf[:r.pos])
		r.pos = 0
	}
	a.current = 0
}

// Free releases the memory of every region. The arena must not be used afterwards.
func (a *Arena) Free() error {
	var errs []error
	for i, r := range a.regions {
		if err := unmapRegion(r.buf); err != nil {
			errs = append(errs, fmt.Errorf("region %d: %w", i, err))
		}
	}
	a.regions = nil
	a.current = 0
	return errors.Join(errs...)
}

// Used returns the number of bytes currently allocated across all regions.
func (a *Arena) Used() int {
	var n int
	for _, r := range a.regions {
		n += r.pos
	}
	return n
}

// Stats returns the capacity and position of every region in order.
func (a *Arena) Stats() []RegionStat {
	stats := make([]RegionStat, len(a.regions))
	for i, r := range a.regions {
		stats[i] = RegionStat{Capacity: len(r.buf), Position: r.pos}
	}
	return stats
}

func (a *Arena) grow(n int) {
	size := n
	if len(a.regions) > 0 {
		last := len(a.regions[len(a.regions)-1].buf)
		size = max(growthFactor*last, n)
	}
	size = roundUp(size, a.pageSize)

	buf, err := mapRegion(size)
	if err != nil {
		panic(fmt.Errorf("arena: failed to map %d bytes: %w", size, err))
	}
	slog.Debug("arena region added", "index", len(a.regions), "capacity", size)

	a.regions = append(a.regions, &region{buf: buf})
	a.current = len(a.regions) - 1
}

func roundUp(n, page int) int {
	if page <= 0 {
		return n
	}
	if n == 0 {
		return page
	}
	return (n + page - 1) / page * page
}
