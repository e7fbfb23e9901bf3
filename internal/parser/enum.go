package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/lexer"
)

// matchEnum: ('cdef'|'cpdef'|'ctypedef') ['public'] 'enum' [name] ':' members
func matchEnum(p *Parser, i, end int) (ast.Decl, int, bool) {
	c := p.cursorAt(i)
	if !c.EatKeyword("cdef") && !c.EatKeyword("cpdef") && !c.EatKeyword("ctypedef") {
		return nil, i, false
	}
	c.SkipBlanks()
	c.EatKeyword("public")
	c.SkipBlanks()
	if !c.EatKeyword("enum") {
		return nil, i, false
	}
	c.SkipBlanks()
	name := c.ScanIdent()
	c.SkipTrivia()
	if !c.Eat(':') {
		return nil, i, false
	}
	b := p.block(i, &c, end)
	e := &ast.Enum{Header: p.header(name, i, b)}
	if b.inline != "" {
		lc := lexer.Window(p.file, b.inlineAt, p.lay.Lines[i].End)
		if members, ok := parseMembers(&lc); ok {
			e.Members = members
		}
		return e, b.next, true
	}
	p.bodyLines(b, func(j int) {
		if p.lay.Lines[j].Kind != layout.Code {
			return
		}
		lc := p.cursorAt(j)
		if members, ok := parseMembers(&lc); ok {
			e.Members = append(e.Members, members...)
			return
		}
		e.Body = append(e.Body, p.textLine(j))
	})
	return e, b.next, true
}

// parseMembers reads "NAME [= value]" items separated by commas, with an
// optional trailing comma.
func parseMembers(c *lexer.Cursor) ([]ast.EnumMember, bool) {
	var out []ast.EnumMember
	for {
		c.SkipTrivia()
		if c.EOF() {
			break
		}
		name := c.ScanIdent()
		if name == "" || name == "pass" {
			return nil, false
		}
		m := ast.EnumMember{Name: name}
		c.SkipBlanks()
		if c.Peek() == '=' {
			c.Bump()
			c.SkipBlanks()
			start := c.Mark()
			if _, ok := parseExpr(c); !ok {
				return nil, false
			}
			m.Value = strings.TrimSpace(c.TextFrom(start))
		}
		out = append(out, m)
		c.SkipTrivia()
		if !c.Eat(',') {
			break
		}
	}
	if len(out) == 0 || !atEnd(c) {
		return nil, false
	}
	return out, true
}
