package parser

import (
	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/token"
)

// matchTypeAlias: one or more "ctypedef type name" lines.
func matchTypeAlias(p *Parser, i, end int) (ast.Decl, int, bool) {
	sec := &ast.TypeAlias{}
	last, ok := p.section(i, end, layout.Code, func(j int) bool {
		e, ok := p.parseAlias(j)
		if ok {
			sec.Entries = append(sec.Entries, e)
		}
		return ok
	})
	if !ok {
		return nil, i, false
	}
	sec.Span = p.span(p.lay.Lines[i].Text, p.lay.Lines[last].End)
	return sec, last + 1, true
}

func (p *Parser) parseAlias(j int) (ast.AliasEntry, bool) {
	c := p.cursorAt(j)
	if !c.EatKeyword("ctypedef") {
		return ast.AliasEntry{}, false
	}
	c.SkipBlanks()
	c.EatKeyword("public")
	t, ok := parseType(&c, false)
	if !ok || t.RawBuffer || token.IsReserved(t.Name) {
		return ast.AliasEntry{}, false
	}
	c.SkipBlanks()
	for c.Eat('*') {
		t.Name += "*"
		c.SkipBlanks()
	}
	name := c.ScanIdent()
	if name == "" || token.IsReserved(name) || !atEnd(&c) {
		return ast.AliasEntry{}, false
	}
	ln := p.lay.Lines[j]
	return ast.AliasEntry{Target: t, Name: name, Span: p.span(ln.Text, ln.End)}, true
}
