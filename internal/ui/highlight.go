package ui

import (
	"bytes"
	"log/slog"

	"github.com/alecthomas/chroma"
	"github.com/alecthomas/chroma/lexers"
	"github.com/alecthomas/chroma/quick"
	"github.com/alecthomas/chroma/styles"
	"github.com/gabriel-vasile/mimetype"
)

const fallbackColorscheme = "monokai"

// IsText reports whether data looks like plain text.
func IsText(data []byte) bool {
	mtype := mimetype.Detect(data)
	for m := mtype; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return true
		}
	}
	slog.Debug("not a text file", "mimetype", mtype.String())
	return false
}

// Highlight renders content for a 16m color terminal. The lexer is picked by
// filename first and by content analysis second.
func Highlight(content, filename, colorscheme string) (string, error) {
	var l chroma.Lexer
	l = lexers.Get(filename)
	if l == nil {
		l = lexers.Analyse(content)
	}
	if l == nil {
		slog.Debug("highlight: fallback to default lexer")
		l = lexers.Fallback
	}

	style := styles.Get(colorscheme)
	switch {
	case style == nil:
		style = styles.Get(fallbackColorscheme)
	case style.Name == "swapoff":
		style = styles.Get(fallbackColorscheme)
	}

	var buf bytes.Buffer
	if err := quick.Highlight(&buf, content, l.Config().Name, "terminal16m", style.Name); err != nil {
		return "", err
	}
	return buf.String(), nil
}
