package arena

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestArena(t *testing.T, size int) *Arena {
	t.Helper()
	a := New(size)
	t.Cleanup(func() {
		require.NoError(t, a.Free())
	})
	return a
}

func TestNewRoundsToPageSize(t *testing.T) {
	a := newTestArena(t, 10)

	stats := a.Stats()
	require.Len(t, stats, 1)
	assert.Equal(t, os.Getpagesize(), stats[0].Capacity)
	assert.Zero(t, stats[0].Position)
}

func TestAllocZeroed(t *testing.T) {
	a := newTestArena(t, 0)

	b := a.Alloc(64)
	require.Len(t, b, 64)
	for i, c := range b {
		require.Zerof(t, c, "byte %d not zeroed", i)
	}
	assert.Equal(t, 64, a.Used())

	// The returned slice cannot grow into memory owned by later allocations.
	assert.Equal(t, 64, cap(b))
}

func TestAllocGrowsGeometrically(t *testing.T) {
	page := os.Getpagesize()
	a := newTestArena(t, page)

	a.Alloc(page)
	a.Alloc(1)

	stats := a.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, growthFactor*page, stats[1].Capacity)

	// A request larger than four times the last region gets its own size.
	big := 20*page + 3
	a.Alloc(big)
	stats = a.Stats()
	require.Len(t, stats, 3)
	assert.Equal(t, roundUp(max(growthFactor*stats[1].Capacity, big), page), stats[2].Capacity)

	for i := 1; i < len(stats); i++ {
		assert.Greater(t, stats[i].Capacity, stats[i-1].Capacity)
		assert.LessOrEqual(t, stats[i].Position, stats[i].Capacity)
	}
}

func TestAllocReusesEarlierRegion(t *testing.T) {
	page := os.Getpagesize()
	a := newTestArena(t, page)

	a.Alloc(page - 16)
	a.Alloc(page) // does not fit in region 0
	require.Len(t, a.Stats(), 2)

	// Fill the second region completely so that only region 0 has room left.
	a.Alloc(a.Stats()[1].Capacity - a.Stats()[1].Position)
	a.Alloc(8)

	stats := a.Stats()
	require.Len(t, stats, 2)
	assert.Equal(t, page-8, stats[0].Position)
}

func TestCheckpointRestoreImmediately(t *testing.T) {
	a := newTestArena(t, 0)
	a.Alloc(100)
	before := a.Stats()

	a.Restore(a.Checkpoint())

	assert.Equal(t, before, a.Stats())
}

func TestCheckpointRestoreRewinds(t *testing.T) {
	a := newTestArena(t, 0)
	keep := a.Alloc(10)
	copy(keep, "persistent")

	cp := a.Checkpoint()
	scratch := a.Alloc(32)
	copy(scratch, "scratch data that goes away")
	require.Equal(t, 42, a.Used())

	a.Restore(cp)

	assert.Equal(t, 10, a.Used())
	assert.Equal(t, "persistent", string(keep))
	for _, c := range scratch {
		require.Zero(t, c)
	}

	// Memory handed out again after the restore starts at the mark.
	again := a.Alloc(4)
	assert.Equal(t, &scratch[0], &again[0])
}

func TestRestoreDoesNotRewindLaterRegions(t *testing.T) {
	page := os.Getpagesize()
	a := newTestArena(t, page)

	cp := a.Checkpoint()
	a.Alloc(page)
	a.Alloc(16) // lands in a new region

	a.Restore(cp)

	stats := a.Stats()
	require.Len(t, stats, 2)
	assert.Zero(t, stats[0].Position)
	assert.Equal(t, 16, stats[1].Position)
}

func TestRestoreInvalidCheckpointPanics(t *testing.T) {
	a := newTestArena(t, 0)
	assert.Panics(t, func() {
		a.Restore(Checkpoint{Region: 3})
	})
}

func TestReset(t *testing.T) {
	page := os.Getpagesize()
	a := newTestArena(t, page)

	b := a.Alloc(page)
	copy(b, "hello")
	a.Alloc(page * 2)

	a.Reset()

	assert.Zero(t, a.Used())
	for _, s := range a.Stats() {
		assert.Zero(t, s.Position)
	}
	assert.Zero(t, b[0])
}

func TestAllocNegativePanics(t *testing.T) {
	a := newTestArena(t, 0)
	assert.Panics(t, func() { a.Alloc(-1) })
}

func TestRoundUp(t *testing.T) {
	tests := []struct {
		n, page, want int
	}{
		{0, 4096, 4096},
		{1, 4096, 4096},
		{4096, 4096, 4096},
		{4097, 4096, 8192},
		{5, 0, 5},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, roundUp(tt.n, tt.page), "roundUp(%d, %d)", tt.n, tt.page)
	}
}
