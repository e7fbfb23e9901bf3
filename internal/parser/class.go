package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/lexer"
)

// classRule: 'class' name ['(' bases ')'] ':' block
// The native form is prefixed with cdef or cpdef and may carry public/api.
func classRule(native bool, body Rule) matchFunc {
	return func(p *Parser, i, end int) (ast.Decl, int, bool) {
		c := p.cursorAt(i)
		if native && !eatNativePrefix(&c) {
			return nil, i, false
		}
		name, parent, ok := parseClassHeader(&c)
		if !ok {
			return nil, i, false
		}
		b := p.block(i, &c, end)
		cls := &ast.Class{Header: p.header(name, i, b), Native: native}
		cls.Parent = parent
		cls.Body = p.scanBody(body, i, b)
		return cls, b.next, true
	}
}

// eatNativePrefix consumes "cdef" or "cpdef" plus visibility modifiers.
func eatNativePrefix(c *lexer.Cursor) bool {
	if !c.EatKeyword("cdef") && !c.EatKeyword("cpdef") {
		return false
	}
	for {
		c.SkipBlanks()
		if !c.EatKeyword("public") && !c.EatKeyword("api") && !c.EatKeyword("final") {
			return true
		}
	}
}

// parseClassHeader reads "class Name[(bases)]:" and leaves c after the colon.
func parseClassHeader(c *lexer.Cursor) (name, parent string, ok bool) {
	c.SkipBlanks()
	if !c.EatKeyword("class") {
		return "", "", false
	}
	c.SkipBlanks()
	name = c.ScanDotted(false)
	if name == "" {
		return "", "", false
	}
	c.SkipBlanks()
	if c.Peek() == '[' {
		// extension type options: cdef class A [object A_obj, type A_type]
		if !skipBalanced(c, '[', ']') {
			return "", "", false
		}
		c.SkipBlanks()
	}
	if c.Eat('(') {
		parent, ok = parseBases(c)
		if !ok {
			return "", "", false
		}
	}
	c.SkipTrivia()
	if !c.Eat(':') {
		return "", "", false
	}
	return name, parent, true
}

// parseBases reads a comma-separated base list up to and including ')'.
// Each base is any balanced expression text; the result keeps them joined
// with ", ".
func parseBases(c *lexer.Cursor) (string, bool) {
	var bases []string
	for {
		c.SkipTrivia()
		if c.Eat(')') {
			return strings.Join(bases, ", "), true
		}
		start := c.Mark()
		for !c.EOF() && c.Peek() != ',' && c.Peek() != ')' {
			switch c.Peek() {
			case '(':
				if !skipBalanced(c, '(', ')') {
					return "", false
				}
			case '[':
				if !skipBalanced(c, '[', ']') {
					return "", false
				}
			default:
				if c.AtString() {
					if _, info := c.ScanString(); !info.Closed {
						return "", false
					}
					continue
				}
				c.Bump()
			}
		}
		base := collapseSpace(c.TextFrom(start))
		if base == "" {
			return "", false
		}
		bases = append(bases, base)
		c.Eat(',')
	}
}

// skipBalanced consumes a bracketed group starting at open.
func skipBalanced(c *lexer.Cursor, open, close byte) bool {
	if !c.Eat(open) {
		return false
	}
	depth := 1
	for !c.EOF() {
		if c.AtString() {
			c.ScanString()
			continue
		}
		switch c.Bump() {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	return false
}

// collapseSpace joins whitespace runs, including line breaks, into one space.
func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// matchDataRecord: '@' dataclass-decorator, then a class header at the same
// indent. The body is kept verbatim.
func matchDataRecord(p *Parser, i, end int) (ast.Decl, int, bool) {
	c := p.cursorAt(i)
	if !c.Eat('@') {
		return nil, i, false
	}
	start := c.Mark()
	path := c.ScanDotted(false)
	if path != "dataclass" && !strings.HasSuffix(path, ".dataclass") {
		return nil, i, false
	}
	c.SkipBlanks()
	if c.Peek() == '(' && !skipBalanced(&c, '(', ')') {
		return nil, i, false
	}
	decorator := collapseSpace(c.TextFrom(start))
	if !atEnd(&c) {
		return nil, i, false
	}

	j := i + 1
	for j < end && p.lay.Lines[j].Kind != layout.Code {
		j++
	}
	if j >= end || p.lay.Lines[j].Indent != p.lay.Lines[i].Indent {
		return nil, i, false
	}
	c = p.cursorAt(j)
	native := eatNativePrefix(&c)
	if !native {
		c = p.cursorAt(j)
	}
	name, parent, ok := parseClassHeader(&c)
	if !ok {
		return nil, i, false
	}
	b := p.block(j, &c, end)
	rec := &ast.DataRecord{Header: p.header(name, j, b), Decorator: decorator}
	rec.Parent = parent
	rec.Span.Start = p.lay.Lines[i].Text
	if b.inline != "" {
		rec.Raw = []string{b.inline}
	} else {
		rec.Raw = p.lay.Raw(b.start, b.end)
	}
	return rec, b.next, true
}
