package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/lexer"
)

// matchStruct: ('cdef' ['public'] ['packed'] | 'ctypedef' ['packed']) ('struct'|'union') name ':' fields
func matchStruct(p *Parser, i, end int) (ast.Decl, int, bool) {
	c := p.cursorAt(i)
	if !c.EatKeyword("cdef") && !c.EatKeyword("ctypedef") {
		return nil, i, false
	}
	c.SkipBlanks()
	c.EatKeyword("public")
	c.SkipBlanks()
	c.EatKeyword("packed")
	c.SkipBlanks()
	if !c.EatKeyword("struct") && !c.EatKeyword("union") {
		return nil, i, false
	}
	c.SkipBlanks()
	name := c.ScanIdent()
	if name == "" {
		return nil, i, false
	}
	c.SkipTrivia()
	if !c.Eat(':') {
		return nil, i, false
	}
	b := p.block(i, &c, end)
	s := &ast.Struct{Header: p.header(name, i, b)}
	if b.inline != "" {
		return s, b.next, true
	}
	p.bodyLines(b, func(j int) {
		if p.lay.Lines[j].Kind != layout.Code {
			return
		}
		lc := p.cursorAt(j)
		if f, ok := parseField(&lc); ok {
			s.Fields = append(s.Fields, f)
			return
		}
		s.Body = append(s.Body, p.textLine(j))
	})
	return s, b.next, true
}

// parseField reads "type name[, name...]". Pointer stars and array
// suffixes attach to the names and are dropped.
func parseField(c *lexer.Cursor) (ast.StructField, bool) {
	t, ok := parseType(c, false)
	if !ok || t.RawBuffer || t.Name == "pass" {
		return ast.StructField{}, false
	}
	var f ast.StructField
	f.Type = t
	for {
		c.SkipBlanks()
		for c.Eat('*') {
			f.Type.Name += "*"
			c.SkipBlanks()
		}
		name := c.ScanIdent()
		if name == "" {
			return ast.StructField{}, false
		}
		c.SkipBlanks()
		if c.Peek() == '[' && !skipBalanced(c, '[', ']') {
			return ast.StructField{}, false
		}
		f.Names = append(f.Names, name)
		c.SkipBlanks()
		if !c.Eat(',') {
			break
		}
	}
	if !atEnd(c) || strings.HasSuffix(f.Type.Name, ".") {
		return ast.StructField{}, false
	}
	return f, true
}
