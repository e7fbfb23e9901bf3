package parser

import (
	"cystub/internal/layout"
)

// section collects consecutive lines at the indent of line i that entry
// accepts, skipping blank lines between them. It returns the last accepted
// line, or ok=false when line i itself is rejected.
func (p *Parser) section(i, end int, kind layout.Kind, entry func(j int) bool) (last int, ok bool) {
	if !entry(i) {
		return i, false
	}
	indent := p.lay.Lines[i].Indent
	last = i
	for j := i + 1; j < end; j++ {
		ln := p.lay.Lines[j]
		if ln.Kind == layout.Blank {
			continue
		}
		if ln.Kind != kind || ln.Indent != indent || !entry(j) {
			break
		}
		last = j
	}
	return last, true
}
