package format

import (
	"strings"
)

// Writer accumulates stub text and tracks indentation.
type Writer struct {
	opt         Options
	buf         strings.Builder
	indentLevel int
	atLineStart bool
}

// NewWriter creates a new stub writer.
func NewWriter(opt Options) *Writer {
	return &Writer{opt: opt.withDefaults(), atLineStart: true}
}

// String returns the accumulated output.
func (w *Writer) String() string {
	return w.buf.String()
}

func (w *Writer) writeIndent() {
	if !w.atLineStart {
		return
	}
	w.buf.WriteString(strings.Repeat(" ", w.indentLevel*w.opt.IndentWidth))
	w.atLineStart = false
}

// WriteString writes s, indenting at the start of every line. Empty lines
// stay empty.
func (w *Writer) WriteString(s string) {
	for s != "" {
		i := strings.IndexByte(s, '\n')
		if i < 0 {
			w.writeIndent()
			w.buf.WriteString(s)
			return
		}
		if i > 0 {
			w.writeIndent()
			w.buf.WriteString(s[:i])
		}
		w.buf.WriteByte('\n')
		w.atLineStart = true
		s = s[i+1:]
	}
}

// Line writes s followed by a newline.
func (w *Writer) Line(s string) {
	w.WriteString(s)
	w.Newline()
}

// Raw writes s verbatim at the current indentation, without touching
// continuation lines. Used for docstrings whose inner lines keep their
// source layout.
func (w *Writer) Raw(s string) {
	if s == "" {
		return
	}
	w.writeIndent()
	w.buf.WriteString(s)
	w.atLineStart = s[len(s)-1] == '\n'
}

// Newline ends the current line.
func (w *Writer) Newline() {
	w.buf.WriteByte('\n')
	w.atLineStart = true
}

// IndentPush increases the indentation level.
func (w *Writer) IndentPush() {
	w.indentLevel++
}

// IndentPop decreases the indentation level.
func (w *Writer) IndentPop() {
	if w.indentLevel > 0 {
		w.indentLevel--
	}
}

// Indent returns one indentation unit.
func (w *Writer) Indent() string {
	return strings.Repeat(" ", w.opt.IndentWidth)
}
