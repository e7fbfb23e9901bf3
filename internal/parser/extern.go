package parser

import (
	"cystub/internal/ast"
)

// matchExtern: 'cdef' 'extern' 'from' (string|'*') ['namespace' string] [word] ':' raw
func matchExtern(p *Parser, i, end int) (ast.Decl, int, bool) {
	c := p.cursorAt(i)
	if !c.EatKeyword("cdef") {
		return nil, i, false
	}
	c.SkipBlanks()
	if !c.EatKeyword("extern") {
		return nil, i, false
	}
	c.SkipBlanks()
	if !c.EatKeyword("from") {
		return nil, i, false
	}
	c.SkipBlanks()
	x := &ast.Extern{}
	switch {
	case c.Eat('*'):
		x.Library = "*"
	case c.AtString():
		lit, info := c.ScanString()
		if !info.Closed {
			return nil, i, false
		}
		x.Library = lit
	default:
		return nil, i, false
	}
	c.SkipBlanks()
	if c.EatKeyword("namespace") {
		c.SkipBlanks()
		if !c.AtString() {
			return nil, i, false
		}
		lit, info := c.ScanString()
		if !info.Closed {
			return nil, i, false
		}
		x.Namespace = lit
		c.SkipBlanks()
	}
	if c.AtIdentStart() {
		x.Directive = c.ScanIdent()
		c.SkipBlanks()
	}
	if !c.Eat(':') {
		return nil, i, false
	}
	b := p.block(i, &c, end)
	x.Header = p.header("", i, b)
	if b.inline != "" {
		x.Raw = []string{b.inline}
	} else {
		x.Raw = p.lay.Raw(b.start, b.end)
	}
	return x, b.next, true
}
