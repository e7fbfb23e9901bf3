package layout

import (
	"strings"

	"cystub/internal/lexer"
	"cystub/internal/source"
)

// TabWidth is the column stop a tab advances to.
const TabWidth = 8

// Kind classifies a logical line.
type Kind uint8

const (
	Blank Kind = iota
	Comment
	Code
)

// Line is one logical line.
type Line struct {
	Start  uint32 // first byte of the first physical line
	Text   uint32 // first non-blank byte
	End    uint32 // end of the last physical line, without '\n' and trailing '\r'
	Indent int
	Kind   Kind
	// Recovered: a bracket or triple string opened here never closes.
	Recovered bool
	// First and Last are 0-based physical line numbers.
	First, Last int
}

// Span returns the span from the first non-blank byte to the line end.
func (l Line) Span(file source.FileID) source.Span {
	return source.Span{File: file, Start: l.Text, End: l.End}
}

// Layout is the logical-line view of one file.
type Layout struct {
	File  *source.File
	Lines []Line
}

// Compute builds the layout of f.
func Compute(f *source.File) *Layout {
	lay := &Layout{File: f}
	limit := f.Len()
	var off uint32
	phys := 0
	for off < limit {
		ln, next, nextPhys, ok := scanLogical(f, off, phys)
		if !ok {
			// незакрытая скобка или строка до конца файла: первая физическая
			// строка становится самостоятельной логической строкой
			ln, next = physicalLine(f, off, phys)
			ln.Recovered = true
			nextPhys = phys + 1
		}
		lay.Lines = append(lay.Lines, ln)
		off, phys = next, nextPhys
	}
	return lay
}

// scanLogical reads one logical line starting at off.
// ok is false when input ends while a bracket or triple string is still open.
func scanLogical(f *source.File, off uint32, phys int) (Line, uint32, int, bool) {
	c := lexer.Window(f, off, f.Len())
	depth := 0
	last := phys
	for !c.EOF() {
		b := c.Peek()
		switch {
		case b == '\n':
			if depth == 0 {
				ln := finishLine(f, off, c.Off, phys, last)
				return ln, c.Off + 1, last + 1, true
			}
			c.Bump()
			last++
		case b == '#':
			c.SkipComment()
		case b == '\\' && (c.PeekAt(1) == '\n' || (c.PeekAt(1) == '\r' && c.PeekAt(2) == '\n')):
			if c.PeekAt(1) == '\r' {
				c.Bump()
			}
			c.Bump()
			c.Bump()
			last++
		case c.AtString() && prevNotIdent(f, c.Off):
			text, info := c.ScanString()
			if info.Triple && !info.Closed {
				return Line{}, 0, 0, false
			}
			last += strings.Count(text, "\n")
		case b == '(' || b == '[' || b == '{':
			depth++
			c.Bump()
		case b == ')' || b == ']' || b == '}':
			if depth > 0 {
				depth--
			}
			c.Bump()
		default:
			c.Bump()
		}
	}
	if depth > 0 && last > phys {
		return Line{}, 0, 0, false
	}
	return finishLine(f, off, c.Off, phys, last), c.Off, last + 1, true
}

// prevNotIdent rejects string prefixes glued to a preceding identifier,
// such as the "r" in `bar"`.
func prevNotIdent(f *source.File, off uint32) bool {
	if off == 0 {
		return true
	}
	b := f.Content[off-1]
	return !(b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9'))
}

func physicalLine(f *source.File, off uint32, phys int) (Line, uint32) {
	end := off
	for end < f.Len() && f.Content[end] != '\n' {
		end++
	}
	next := end
	if next < f.Len() {
		next++
	}
	return finishLine(f, off, end, phys, phys), next
}

func finishLine(f *source.File, start, end uint32, first, last int) Line {
	for end > start && f.Content[end-1] == '\r' {
		end--
	}
	ln := Line{Start: start, End: end, First: first, Last: last}
	ln.Text, ln.Indent = measureIndent(f.Content, start, end)
	switch {
	case ln.Text >= end:
		ln.Kind = Blank
	case f.Content[ln.Text] == '#':
		ln.Kind = Comment
	default:
		ln.Kind = Code
	}
	return ln
}

// measureIndent returns the first non-blank offset and its column.
func measureIndent(content []byte, start, end uint32) (uint32, int) {
	col := 0
	for i := start; i < end; i++ {
		switch content[i] {
		case ' ':
			col++
		case '\t':
			col += TabWidth - col%TabWidth
		case '\f':
			col = 0
		default:
			return i, col
		}
	}
	return end, col
}
