package parser

import (
	"cystub/internal/ast"
	"cystub/internal/diag"
	"cystub/internal/lexer"
)

// parseArgs reads a parenthesised parameter list. Each parameter is tried in
// the C-typed form first ("int x = 1"), then in the Python form
// ("x: int = 1"). A trailing comma is allowed.
func (p *Parser) parseArgs(c *lexer.Cursor) ([]ast.Argument, bool) {
	c.SkipTrivia()
	if !c.Eat('(') {
		return nil, false
	}
	args := []ast.Argument{}
	for {
		c.SkipTrivia()
		if c.Eat(')') {
			return args, true
		}
		start := c.Mark()
		arg, ok := parseArg(c)
		if !ok {
			return nil, false
		}
		if hasRawBuffer(arg.Type) {
			diag.ReportInfo(p.opts.Reporter, diag.ScnRawBufferGuess, c.SpanFrom(start),
				"memory-view slot read as a raw-buffer type").Emit()
		}
		args = append(args, arg)
		c.SkipTrivia()
		if c.Eat(',') {
			continue
		}
		if c.Eat(')') {
			return args, true
		}
		return nil, false
	}
}

func parseArg(c *lexer.Cursor) (ast.Argument, bool) {
	// bare separators
	if c.Peek() == '/' || (c.Peek() == '*' && c.PeekAt(1) != '*' && !identAfterStars(c)) {
		sep := string(c.Bump())
		if !followedByArgEnd(c) {
			return ast.Argument{}, false
		}
		return ast.Argument{Name: sep}, true
	}
	if c.PeekKeyword("self") {
		m := c.Mark()
		c.EatKeyword("self")
		if followedByArgEnd(c) {
			return ast.Argument{Name: "self", Self: true}, true
		}
		c.Reset(m)
	}
	if arg, ok := parseNativeArg(c); ok {
		return arg, true
	}
	return parsePythonArg(c)
}

func identAfterStars(c *lexer.Cursor) bool {
	m := c.Mark()
	defer c.Reset(m)
	for c.Eat('*') {
	}
	return c.AtIdentStart()
}

func followedByArgEnd(c *lexer.Cursor) bool {
	m := c.Mark()
	defer c.Reset(m)
	c.SkipTrivia()
	return c.Peek() == ',' || c.Peek() == ')'
}

// parseNativeArg: type ['*'...] name ['=' expr]
func parseNativeArg(c *lexer.Cursor) (ast.Argument, bool) {
	start := c.Mark()
	t, ok := parseType(c, false)
	if !ok || t.RawBuffer {
		c.Reset(start)
		return ast.Argument{}, false
	}
	c.SkipTrivia()
	for c.Eat('*') {
		t.Name += "*"
		c.SkipBlanks()
	}
	name := c.ScanIdent()
	if name == "" {
		c.Reset(start)
		return ast.Argument{}, false
	}
	// C array parameter: "int xs[]"
	if c.Eat('[') {
		for !c.EOF() && c.Peek() != ']' {
			c.Bump()
		}
		if !c.Eat(']') {
			c.Reset(start)
			return ast.Argument{}, false
		}
		t.Name += "*"
	}
	arg := ast.Argument{Name: name, Type: &t, Native: true}
	if !parseDefault(c, &arg) {
		c.Reset(start)
		return ast.Argument{}, false
	}
	return arg, true
}

// parsePythonArg: ['*'|'**'] name [':' type] ['=' expr]
func parsePythonArg(c *lexer.Cursor) (ast.Argument, bool) {
	start := c.Mark()
	stars := ""
	for len(stars) < 2 && c.Eat('*') {
		stars += "*"
	}
	name := c.ScanIdent()
	if name == "" {
		c.Reset(start)
		return ast.Argument{}, false
	}
	arg := ast.Argument{Name: stars + name}
	m := c.Mark()
	c.SkipTrivia()
	if c.Eat(':') {
		t, ok := parseType(c, false)
		if !ok {
			c.Reset(start)
			return ast.Argument{}, false
		}
		arg.Type = &t
	} else {
		c.Reset(m)
	}
	if !parseDefault(c, &arg) {
		c.Reset(start)
		return ast.Argument{}, false
	}
	return arg, true
}

// parseDefault reads an optional "= expr" and requires the argument to end
// right after it.
func parseDefault(c *lexer.Cursor, arg *ast.Argument) bool {
	c.SkipTrivia()
	if c.Peek() == '=' && c.PeekAt(1) != '=' {
		c.Bump()
		d, ok := parseExpr(c)
		if !ok {
			return false
		}
		arg.Default = d
	}
	return followedByArgEnd(c)
}
