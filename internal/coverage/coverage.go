// Package coverage computes which parts of a source file no declaration
// accounted for.
package coverage

import (
	"strings"

	"fortio.org/safecast"
	"github.com/cockroachdb/errors"

	"cystub/internal/source"
)

// ErrSpanOrder is returned by Validate for unsorted or overlapping spans.
var ErrSpanOrder = errors.New("coverage: spans unsorted or overlapping")

// Fragment is one uncovered, non-blank piece of a line.
type Fragment struct {
	Span source.Span
	Text string
}

// Report summarises coverage of one file.
type Report struct {
	Residue   string
	Fragments []Fragment
	Covered   uint32 // bytes inside matched spans
	Total     uint32 // bytes in the file
}

// Chars returns the number of characters in the residue.
func (r Report) Chars() int {
	return len([]rune(r.Residue))
}

// Validate checks that spans are sorted by start and pairwise disjoint.
func Validate(spans []source.Span) error {
	for i := range spans {
		if spans[i].End < spans[i].Start {
			return errors.Wrapf(ErrSpanOrder, "span %d is inverted: %s", i, spans[i])
		}
		if i > 0 && spans[i-1].End > spans[i].Start {
			return errors.Wrapf(ErrSpanOrder, "span %d (%s) overlaps span %d (%s)", i-1, spans[i-1], i, spans[i])
		}
	}
	return nil
}

// Residue removes every span from content and returns what is left,
// trimmed of surrounding whitespace. spans must satisfy Validate.
func Residue(content []byte, spans []source.Span) string {
	var sb strings.Builder
	sb.Grow(len(content))
	prev := uint32(0)
	for _, sp := range spans {
		start, end := clamp(sp.Start, content), clamp(sp.End, content)
		if start > prev {
			sb.Write(content[prev:start])
		}
		prev = max(prev, end)
	}
	if int(prev) < len(content) {
		sb.Write(content[prev:])
	}
	return strings.TrimSpace(sb.String())
}

// Analyze computes the residue of f together with its fragments.
func Analyze(f *source.File, spans []source.Span) Report {
	rep := Report{
		Residue: Residue(f.Content, spans),
		Total:   f.Len(),
	}
	prev := uint32(0)
	for _, sp := range spans {
		start, end := clamp(sp.Start, f.Content), clamp(sp.End, f.Content)
		if start > prev {
			rep.Fragments = appendFragments(rep.Fragments, f, prev, start)
		}
		if end > start {
			rep.Covered += end - max(start, min(prev, end))
		}
		prev = max(prev, end)
	}
	if prev < f.Len() {
		rep.Fragments = appendFragments(rep.Fragments, f, prev, f.Len())
	}
	return rep
}

// appendFragments splits [start, end) into per-line pieces and keeps the
// non-blank ones, trimmed.
func appendFragments(out []Fragment, f *source.File, start, end uint32) []Fragment {
	for start < end {
		lineEnd := start
		for lineEnd < end && f.Content[lineEnd] != '\n' {
			lineEnd++
		}
		s, e := start, lineEnd
		for s < e && isSpace(f.Content[s]) {
			s++
		}
		for e > s && isSpace(f.Content[e-1]) {
			e--
		}
		if e > s {
			sp := source.Span{File: f.ID, Start: s, End: e}
			out = append(out, Fragment{Span: sp, Text: string(f.Content[s:e])})
		}
		start = lineEnd + 1
	}
	return out
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\r' || b == '\f' || b == '\v'
}

func clamp(off uint32, content []byte) uint32 {
	n, err := safecast.Conv[uint32](len(content))
	if err != nil {
		return off
	}
	return min(off, n)
}
