package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/layout"
)

// directivePrefixes open compiler directive comments.
var directivePrefixes = []string{"cython:", "distutils:"}

// matchDirective groups "# cython: ..." and "# distutils: ..." comment
// lines. They have no stub equivalent but count as covered.
func matchDirective(p *Parser, i, end int) (ast.Decl, int, bool) {
	if p.lay.Lines[i].Kind != layout.Comment {
		return nil, i, false
	}
	d := &ast.Directive{}
	last, ok := p.section(i, end, layout.Comment, func(j int) bool {
		c := p.cursorAt(j)
		text := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(c.Rest()), "#"))
		for _, prefix := range directivePrefixes {
			if strings.HasPrefix(text, prefix) {
				d.Lines = append(d.Lines, text)
				return true
			}
		}
		return false
	})
	if !ok {
		return nil, i, false
	}
	d.Span = p.span(p.lay.Lines[i].Text, p.lay.Lines[last].End)
	return d, last + 1, true
}
