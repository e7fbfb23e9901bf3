package layout

import (
	"sort"
	"strings"
)

// Block returns the half-open range [start, end) of logical lines forming the
// indented body of header line h: the maximal run of following lines indented
// strictly deeper than h. Blank lines never end a block; trailing blank lines
// and trailing comments at or left of the header column are not part of it.
func (l *Layout) Block(h int) (start, end int) {
	indent := l.Lines[h].Indent
	last := h
scan:
	for i := h + 1; i < len(l.Lines); i++ {
		ln := l.Lines[i]
		switch ln.Kind {
		case Blank:
			continue
		case Comment:
			if ln.Indent > indent {
				last = i
			}
			continue
		default:
			if ln.Indent <= indent {
				break scan
			}
			last = i
		}
	}
	return h + 1, last + 1
}

// LineAt returns the index of the logical line containing off.
func (l *Layout) LineAt(off uint32) int {
	i := sort.Search(len(l.Lines), func(i int) bool { return l.Lines[i].Start > off })
	return max(i-1, 0)
}

// NextNonBlank returns the first line at or after i that is not blank, or len(Lines).
func (l *Layout) NextNonBlank(i int) int {
	for i < len(l.Lines) && l.Lines[i].Kind == Blank {
		i++
	}
	return i
}

// Raw returns the physical text of lines [start, end) with the indentation of
// the first code line removed, so nested lines keep their relative indent.
// Trailing blank lines are dropped.
func (l *Layout) Raw(start, end int) []string {
	if start >= end {
		return nil
	}
	base := -1
	for i := start; i < end; i++ {
		if l.Lines[i].Kind == Code {
			base = l.Lines[i].Indent
			break
		}
	}
	if base < 0 {
		base = l.Lines[start].Indent
	}
	text := string(l.File.Content[l.Lines[start].Start:l.Lines[end-1].End])
	out := strings.Split(text, "\n")
	for i, s := range out {
		out[i] = stripColumns(strings.TrimRight(s, "\r"), base)
	}
	for len(out) > 0 && strings.TrimSpace(out[len(out)-1]) == "" {
		out = out[:len(out)-1]
	}
	return out
}

// stripColumns removes up to n columns of leading blanks.
func stripColumns(s string, n int) string {
	col := 0
	for i := 0; i < len(s); i++ {
		if col >= n {
			return s[i:]
		}
		switch s[i] {
		case ' ':
			col++
		case '\t':
			col += TabWidth - col%TabWidth
		default:
			return s[i:]
		}
	}
	if strings.TrimSpace(s) == "" {
		return ""
	}
	return s
}
