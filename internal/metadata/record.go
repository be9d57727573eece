package metadata

import (
	"fmt"

	"github.com/babarot/drash/internal/text"
)

// Type is the kind of entry a record describes.
type Type int

const (
	TypeUnknown Type = iota
	TypeFile
	TypeDirectory
)

func (t Type) String() string {
	switch t {
	case TypeFile:
		return "file"
	case TypeDirectory:
		return "directory"
	default:
		return "unknown"
	}
}

// ParseType maps a serialized type name back to a Type.
func ParseType(s string) (Type, error) {
	switch s {
	case "file":
		return TypeFile, nil
	case "directory":
		return TypeDirectory, nil
	default:
		return TypeUnknown, fmt.Errorf("%w: unknown type %q", ErrMalformed, s)
	}
}

// Record describes one trashed entry.
type Record struct {
	Name string // basename inside the files area
	Path string // absolute original path
	Type Type
}

const (
	recordTemplate = "Path: %\nType: %\n"
	pathPrefix     = "Path: "
	typePrefix     = "Type: "
)

// Encode serializes r into a buffer allocated from a.
func (r Record) Encode(a text.Allocator) *text.Buffer {
	return text.MustFormat(a, recordTemplate, r.Path, r.Type.String())
}

// ParseRecord parses the closed record format:
//
//	Path: <absolute path>
//	Type: file|directory
//
// The trailing newline after Type is optional. Anything else is ErrMalformed.
func ParseRecord(b *text.Buffer) (Record, error) {
	if !b.HasPrefix(pathPrefix) {
		return Record{}, fmt.Errorf("%w: missing %q line", ErrMalformed, "Path")
	}
	nl := b.IndexByte('\n')
	if nl < 0 {
		return Record{}, fmt.Errorf("%w: missing %q line", ErrMalformed, "Type")
	}
	path := b.View(len(pathPrefix), nl)
	if path.Len() == 0 {
		return Record{}, fmt.Errorf("%w: empty path", ErrMalformed)
	}

	rest := b.View(nl+1, b.Len())
	if !rest.HasPrefix(typePrefix) {
		return Record{}, fmt.Errorf("%w: missing %q line", ErrMalformed, "Type")
	}
	end := rest.IndexByte('\n')
	if end < 0 {
		end = rest.Len()
	} else if end+1 != rest.Len() {
		return Record{}, fmt.Errorf("%w: trailing data", ErrMalformed)
	}

	typ, err := ParseType(rest.View(len(typePrefix), end).String())
	if err != nil {
		return Record{}, err
	}

	return Record{Path: path.String(), Type: typ}, nil
}
