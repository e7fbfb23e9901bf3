package parser

import (
	"github.com/cockroachdb/errors"

	"cystub/internal/ast"
	"cystub/internal/lexer"
	"cystub/internal/source"
)

// ParseExpression parses a complete default-value expression.
func ParseExpression(text string) (ast.Expr, error) {
	c := textCursor(text)
	e, ok := parseExpr(&c)
	if !ok {
		return nil, errors.Newf("not an expression: %q", text)
	}
	if !atEnd(&c) {
		return nil, errors.Newf("unexpected %q after expression", c.Rest())
	}
	return e, nil
}

func textCursor(text string) lexer.Cursor {
	return lexer.NewCursor(&source.File{Path: "<expr>", Content: []byte(text)})
}

// parseExpr: term (('+'|'-') term)*
func parseExpr(c *lexer.Cursor) (ast.Expr, bool) {
	left, ok := parseTerm(c)
	if !ok {
		return nil, false
	}
	for {
		m := c.Mark()
		c.SkipTrivia()
		op := c.Peek()
		if op != '+' && op != '-' {
			c.Reset(m)
			return left, true
		}
		c.Bump()
		right, ok := parseTerm(c)
		if !ok {
			c.Reset(m)
			return left, true
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

// parseTerm: atom (('*'|'/') atom)*
func parseTerm(c *lexer.Cursor) (ast.Expr, bool) {
	left, ok := parseAtom(c)
	if !ok {
		return nil, false
	}
	for {
		m := c.Mark()
		c.SkipTrivia()
		op := c.Peek()
		if (op != '*' && op != '/') || c.PeekAt(1) == op || c.PeekAt(1) == '=' {
			c.Reset(m)
			return left, true
		}
		c.Bump()
		right, ok := parseAtom(c)
		if !ok {
			c.Reset(m)
			return left, true
		}
		left = &ast.Binary{Op: op, Left: left, Right: right}
	}
}

func parseAtom(c *lexer.Cursor) (ast.Expr, bool) {
	c.SkipTrivia()
	start := c.Mark()
	b := c.Peek()
	switch {
	case b == '[':
		c.Bump()
		elems, _, ok := parseSeq(c, ']')
		if !ok {
			c.Reset(start)
			return nil, false
		}
		return &ast.List{Elems: elems}, true
	case b == '(':
		c.Bump()
		elems, trailing, ok := parseSeq(c, ')')
		if !ok {
			c.Reset(start)
			return nil, false
		}
		if len(elems) == 1 && !trailing {
			return elems[0], true
		}
		return &ast.Tuple{Elems: elems}, true
	case b == '{':
		e, ok := parseBraces(c)
		if !ok {
			c.Reset(start)
		}
		return e, ok
	case c.AtString():
		text, info := c.ScanString()
		if !info.Closed {
			c.Reset(start)
			return nil, false
		}
		return &ast.Literal{Text: text}, true
	case c.HasPrefix("..."):
		c.EatString("...")
		return &ast.Literal{Text: "..."}, true
	case isDigit(b) || ((b == '+' || b == '-') && isDigit(c.PeekAt(1))):
		text, kind := c.ScanNumber()
		if kind == lexer.NumberNone {
			c.Reset(start)
			return nil, false
		}
		return &ast.Literal{Text: text}, true
	case c.AtIdentStart():
		name := c.ScanDotted(false)
		switch name {
		case "True", "False", "None":
			return &ast.Literal{Text: name}, true
		}
		m := c.Mark()
		c.SkipBlanks()
		if c.Peek() != '(' {
			c.Reset(m)
			return &ast.Literal{Text: name}, true
		}
		call := &ast.Call{Name: name}
		for c.Peek() == '(' {
			c.Bump()
			group, ok := parseCallArgs(c)
			if !ok {
				c.Reset(start)
				return nil, false
			}
			call.Groups = append(call.Groups, group)
			m = c.Mark()
			c.SkipBlanks()
		}
		c.Reset(m)
		return call, true
	}
	return nil, false
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }

// parseSeq reads comma separated expressions up to closer, which it consumes.
// trailing reports a comma right before the closer.
func parseSeq(c *lexer.Cursor, closer byte) (elems []ast.Expr, trailing, ok bool) {
	for {
		c.SkipTrivia()
		if c.Eat(closer) {
			return elems, trailing, true
		}
		e, ok := parseExpr(c)
		if !ok {
			return nil, false, false
		}
		elems = append(elems, e)
		trailing = false
		c.SkipTrivia()
		if c.Eat(',') {
			trailing = true
			continue
		}
		if c.Eat(closer) {
			return elems, false, true
		}
		return nil, false, false
	}
}

// parseBraces reads a dict or a set; "{}" is an empty dict.
func parseBraces(c *lexer.Cursor) (ast.Expr, bool) {
	c.Bump() // '{'
	c.SkipTrivia()
	if c.Eat('}') {
		return &ast.Dict{}, true
	}
	first, ok := parseExpr(c)
	if !ok {
		return nil, false
	}
	c.SkipTrivia()
	if c.Peek() != ':' {
		elems, _, ok := parseSeqAfter(c, first, '}')
		if !ok {
			return nil, false
		}
		return &ast.Set{Elems: elems}, true
	}
	d := &ast.Dict{}
	key := first
	for {
		if !c.Eat(':') {
			return nil, false
		}
		val, ok := parseExpr(c)
		if !ok {
			return nil, false
		}
		d.Pairs = append(d.Pairs, ast.Pair{Key: key, Value: val})
		c.SkipTrivia()
		if c.Eat('}') {
			return d, true
		}
		if !c.Eat(',') {
			return nil, false
		}
		c.SkipTrivia()
		if c.Eat('}') {
			return d, true
		}
		if key, ok = parseExpr(c); !ok {
			return nil, false
		}
		c.SkipTrivia()
	}
}

// parseSeqAfter continues a sequence whose first element is already parsed.
func parseSeqAfter(c *lexer.Cursor, first ast.Expr, closer byte) ([]ast.Expr, bool, bool) {
	c.SkipTrivia()
	if c.Eat(closer) {
		return []ast.Expr{first}, false, true
	}
	if !c.Eat(',') {
		return nil, false, false
	}
	rest, trailing, ok := parseSeq(c, closer)
	if !ok {
		return nil, false, false
	}
	if len(rest) == 0 {
		trailing = true
	}
	return append([]ast.Expr{first}, rest...), trailing, true
}

// parseCallArgs reads one parenthesised group after '(' up to ')'.
func parseCallArgs(c *lexer.Cursor) ([]ast.CallArg, bool) {
	var args []ast.CallArg
	for {
		c.SkipTrivia()
		if c.Eat(')') {
			return args, true
		}
		var arg ast.CallArg
		m := c.Mark()
		if name := c.ScanIdent(); name != "" {
			c.SkipTrivia()
			if c.Peek() == '=' && c.PeekAt(1) != '=' {
				c.Bump()
				arg.Name = name
			} else {
				c.Reset(m)
			}
		}
		val, ok := parseExpr(c)
		if !ok {
			return nil, false
		}
		arg.Value = val
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
