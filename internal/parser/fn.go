package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/lexer"
)

// defRule: ['async'] 'def' name args ['->' type] ':' block
func defRule(body Rule) matchFunc {
	return func(p *Parser, i, end int) (ast.Decl, int, bool) {
		c := p.cursorAt(i)
		async := c.EatKeyword("async")
		c.SkipBlanks()
		if !c.EatKeyword("def") {
			return nil, i, false
		}
		c.SkipBlanks()
		name := c.ScanIdent()
		if name == "" {
			return nil, i, false
		}
		args, ok := p.parseArgs(&c)
		if !ok {
			return nil, i, false
		}
		var ret *ast.TypeSpec
		c.SkipTrivia()
		if c.EatString("->") {
			t, ok := parseType(&c, false)
			if !ok {
				return nil, i, false
			}
			ret = &t
			c.SkipTrivia()
		}
		if !c.Eat(':') {
			return nil, i, false
		}
		b := p.block(i, &c, end)
		fn := &ast.Func{
			Header: p.header(name, i, b),
			Async:  async,
			Args:   args,
			Return: ret,
		}
		fn.Body = p.scanBody(body, i, b)
		return fn, b.next, true
	}
}

// nativeModifiers may sit between cdef/cpdef and the return type.
var nativeModifiers = []string{"inline", "public", "api", "static"}

// nativeFuncRule: ('cdef'|'cpdef') modifiers [type] name args trailer* ':' block
// The optional return type is only taken when the next token is not the
// opening parenthesis, otherwise the type was really the function name.
func nativeFuncRule(body Rule) matchFunc {
	return func(p *Parser, i, end int) (ast.Decl, int, bool) {
		c := p.cursorAt(i)
		var kw string
		switch {
		case c.EatKeyword("cpdef"):
			kw = "cpdef"
		case c.EatKeyword("cdef"):
			kw = "cdef"
		default:
			return nil, i, false
		}
		fn := &ast.NativeFunc{Keyword: kw}
		for {
			c.SkipBlanks()
			matched := false
			for _, mod := range nativeModifiers {
				if c.EatKeyword(mod) {
					fn.Modifiers = append(fn.Modifiers, mod)
					matched = true
				}
			}
			if !matched {
				break
			}
		}

		m := c.Mark()
		if t, ok := parseType(&c, false); ok {
			probe := c.Mark()
			c.SkipTrivia()
			if c.Peek() == '(' {
				c.Reset(m)
			} else {
				c.Reset(probe)
				fn.Return = &t
			}
		} else {
			c.Reset(m)
		}
		if fn.Return == nil {
			if t, ok := bareSignedness(&c); ok {
				fn.Return = &t
			}
		}

		c.SkipTrivia()
		for c.Eat('*') {
			if fn.Return == nil {
				return nil, i, false
			}
			fn.Return.Name += "*"
			c.SkipBlanks()
		}
		name := c.ScanIdent()
		if name == "" {
			return nil, i, false
		}
		args, ok := p.parseArgs(&c)
		if !ok {
			return nil, i, false
		}
		trailer, ok := parseTrailer(&c)
		if !ok {
			return nil, i, false
		}
		if !c.Eat(':') {
			return nil, i, false
		}
		fn.Trailer = trailer
		fn.Args = args
		b := p.block(i, &c, end)
		fn.Header = p.header(name, i, b)
		fn.Body = p.scanBody(body, i, b)
		return fn, b.next, true
	}
}

// parseTrailer reads markers between the argument list and the colon:
// bare words such as nogil or noexcept, "with gil", and except clauses
// ("except -1", "except? NULL", "except *", "except +").
func parseTrailer(c *lexer.Cursor) ([]string, bool) {
	var out []string
	for {
		c.SkipTrivia()
		if c.Peek() == ':' || c.EOF() {
			return out, true
		}
		if c.EatKeyword("except") {
			clause := "except"
			c.SkipBlanks()
			switch c.Peek() {
			case '?', '*', '+':
				clause += string(c.Bump())
			}
			c.SkipBlanks()
			if c.Peek() != ':' && !c.PeekKeyword("nogil") && !c.PeekKeyword("noexcept") {
				start := c.Mark()
				if _, ok := parseExpr(c); ok {
					clause += " " + strings.TrimSpace(c.TextFrom(start))
				}
			}
			out = append(out, clause)
			continue
		}
		word := c.ScanIdent()
		if word == "" {
			return nil, false
		}
		if word == "with" {
			c.SkipBlanks()
			if !c.EatKeyword("gil") {
				return nil, false
			}
			word = "with gil"
		}
		out = append(out, word)
	}
}

// decoratedRule: one or more '@' lines followed by a decorable declaration
// at the same indentation.
func decoratedRule(target Rule) matchFunc {
	return func(p *Parser, i, end int) (ast.Decl, int, bool) {
		indent := p.lay.Lines[i].Indent
		var decorators []string
		j := i
		for j < end {
			ln := p.lay.Lines[j]
			if ln.Kind == layout.Blank || ln.Kind == layout.Comment {
				j++
				continue
			}
			c := p.cursorAt(j)
			if ln.Indent != indent || !c.Eat('@') {
				break
			}
			decorators = append(decorators, strings.TrimSpace(stripComment(c.Rest())))
			j++
		}
		if len(decorators) == 0 || j >= end || p.lay.Lines[j].Indent != indent {
			return nil, i, false
		}
		d, next, ok := target.match(p, j, end)
		if !ok {
			return nil, i, false
		}
		switch fn := d.(type) {
		case *ast.Func:
			fn.Decorators = decorators
		case *ast.NativeFunc:
			fn.Decorators = decorators
		}
		d.Head().Span.Start = p.lay.Lines[i].Text
		return d, next, true
	}
}

// stripComment drops a trailing '#' comment that is not inside a string.
func stripComment(s string) string {
	c := textCursor(s)
	for !c.EOF() {
		switch {
		case c.AtString():
			c.ScanString()
		case c.Peek() == '#':
			return s[:c.Off]
		default:
			c.Bump()
		}
	}
	return s
}

// bareSignedness reads "unsigned" or "signed" written without a base type;
// C reads both as int.
func bareSignedness(c *lexer.Cursor) (ast.TypeSpec, bool) {
	m := c.Mark()
	c.SkipTrivia()
	if c.EatKeyword("unsigned") || c.EatKeyword("signed") {
		probe := c.Mark()
		c.SkipBlanks()
		named := c.AtIdentStart() || c.Peek() == '*'
		c.Reset(probe)
		if named {
			return ast.TypeSpec{Name: "int"}, true
		}
	}
	c.Reset(m)
	return ast.TypeSpec{}, false
}
