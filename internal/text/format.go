package text

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
)

// Placeholder is the marker Format substitutes arguments into.
const Placeholder = '%'

// Separator is the path separator Basename splits on.
const Separator = '/'

// ErrArgCount is returned when the number of placeholders and arguments differ.
var ErrArgCount = errors.New("placeholder and argument counts differ")

// Format substitutes args into template, one per placeholder, in order.
// There is no escape for a literal placeholder.
func Format(a Allocator, template string, args ...string) (*Buffer, error) {
	holes := strings.Count(template, string(Placeholder))
	if holes != len(args) {
		return nil, fmt.Errorf("format %q: %w: %d placeholders, %d arguments",
			template, ErrArgCount, holes, len(args))
	}

	size := len(template) - holes
	for _, arg := range args {
		size += len(arg)
	}

	b := WithCapacity(a, size)
	next := 0
	for i := 0; i < len(template); i++ {
		if c := template[i]; c != Placeholder {
			b.ConcatByte(c)
			continue
		}
		b.Concat(args[next])
		next++
	}
	return b, nil
}

// MustFormat is like Format but panics on a count mismatch. Templates are
// constants in this code base, so a mismatch is a programming error.
func MustFormat(a Allocator, template string, args ...string) *Buffer {
	b, err := Format(a, template, args...)
	if err != nil {
		panic(err)
	}
	return b
}

// Basename returns the last path component of path. Trailing separators are
// stripped first; a path without a separator is returned unchanged.
func Basename(a Allocator, path string) *Buffer {
	b := FromString(a, path)
	b.TrimRight(Separator)
	if b.Len() <= 1 {
		return b
	}
	i := bytes.LastIndexByte(b.Bytes(), Separator)
	if i < 0 {
		return b
	}
	return FromBytes(a, b.View(i+1, b.Len()).Bytes())
}
