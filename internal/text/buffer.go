// Package text provides NUL terminated byte buffers whose memory comes from
// an arena, plus the positional formatter every path and record is built with.
package text

import (
	"bytes"
	"fmt"
	"io"
)

// growthFactor is the multiplier applied to the capacity when a buffer grows.
const growthFactor = 2

// Allocator hands out zeroed memory. *arena.Arena satisfies it.
type Allocator interface {
	Alloc(n int) []byte
}

// Buffer is a growable byte string. The byte after the content is always NUL
// for owning buffers. Views returned by View share memory with their parent
// and cannot grow.
type Buffer struct {
	alloc    Allocator
	buf      []byte
	n        int
	borrowed bool
}

// WithCapacity returns an empty buffer able to hold n bytes without growing.
func WithCapacity(a Allocator, n int) *Buffer {
	return &Buffer{alloc: a, buf: a.Alloc(n + 1)}
}

// FromString returns a buffer holding a copy of s.
func FromString(a Allocator, s string) *Buffer {
	b := WithCapacity(a, len(s))
	b.n = copy(b.buf, s)
	return b
}

// FromBytes returns a buffer holding a copy of p.
func FromBytes(a Allocator, p []byte) *Buffer {
	b := WithCapacity(a, len(p))
	b.n = copy(b.buf, p)
	return b
}

// Len returns the content length, excluding the terminator.
func (b *Buffer) Len() int { return b.n }

// Cap returns how many content bytes fit before the buffer has to grow.
func (b *Buffer) Cap() int {
	if b.borrowed {
		return b.n
	}
	return len(b.buf) - 1
}

// Bytes returns the content. The slice aliases arena memory.
func (b *Buffer) Bytes() []byte { return b.buf[:b.n:b.n] }

// String returns a copy of the content that outlives the arena.
func (b *Buffer) String() string { return string(b.buf[:b.n]) }

// Concat appends s, growing the buffer when needed.
func (b *Buffer) Concat(s string) *Buffer {
	b.ensure(len(s))
	b.n += copy(b.buf[b.n:], s)
	return b
}

// ConcatByte appends a single byte.
func (b *Buffer) ConcatByte(c byte) *Buffer {
	b.ensure(1)
	b.buf[b.n] = c
	b.n++
	return b
}

// Truncate shortens the content to n bytes and zeroes the rest.
func (b *Buffer) Truncate(n int) {
	if n < 0 || n > b.n {
		panic(fmt.Sprintf("text: truncate to %d out of range [0:%d]", n, b.n))
	}
	if b.borrowed {
		b.buf = b.buf[:n:n]
		b.n = n
		return
	}
	clear(b.buf[n:b.n])
	b.n = n
}

// TrimRight removes every trailing c, keeping at least one byte.
func (b *Buffer) TrimRight(c byte) {
	n := b.n
	for n > 1 && b.buf[n-1] == c {
		n--
	}
	b.Truncate(n)
}

// IndexByte returns the index of the first c in the content, or -1.
func (b *Buffer) IndexByte(c byte) int {
	return bytes.IndexByte(b.buf[:b.n], c)
}

// HasPrefix reports whether the content starts with prefix.
func (b *Buffer) HasPrefix(prefix string) bool {
	return bytes.HasPrefix(b.buf[:b.n], []byte(prefix))
}

// Equal reports whether the content is s.
func (b *Buffer) Equal(s string) bool {
	return string(b.buf[:b.n]) == s
}

// minRead is the smallest amount of free space ReadFrom asks the allocator for.
const minRead = 512

// ReadFrom appends everything r produces until EOF.
func (b *Buffer) ReadFrom(r io.Reader) (int64, error) {
	if b.borrowed {
		panic("text: cannot grow a borrowed view")
	}
	var total int64
	for {
		if b.n+1 == len(b.buf) {
			b.ensure(minRead)
		}
		n, err := r.Read(b.buf[b.n : len(b.buf)-1])
		if n < 0 {
			panic("text: reader returned negative count")
		}
		b.n += n
		total += int64(n)
		if err == io.EOF {
			return total, nil
		}
		if err != nil {
			return total, err
		}
	}
}

// View returns a borrowed window [i, j) over the content. Views must not be
// concatenated to.
func (b *Buffer) View(i, j int) *Buffer {
	if i < 0 || j < i || j > b.n {
		panic(fmt.Sprintf("text: view [%d:%d] out of range [0:%d]", i, j, b.n))
	}
	return &Buffer{
		alloc:    b.alloc,
		buf:      b.buf[i:j:j],
		n:        j - i,
		borrowed: true,
	}
}

func (b *Buffer) ensure(extra int) {
	if b.borrowed {
		panic("text: cannot grow a borrowed view")
	}
	need := b.n + extra + 1
	if need <= len(b.buf) {
		return
	}
	size := max(len(b.buf)*growthFactor, need)
	grown := b.alloc.Alloc(size)
	copy(grown, b.buf[:b.n])
	b.buf = grown
}
