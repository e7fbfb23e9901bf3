package parser

import (
	"github.com/cockroachdb/errors"

	"cystub/internal/ast"
	"cystub/internal/lexer"
)

// ParseType parses a complete type spec, including an optional "= default"
// suffix.
func ParseType(text string) (ast.TypeSpec, error) {
	c := textCursor(text)
	t, ok := parseType(&c, true)
	if !ok {
		return ast.TypeSpec{}, errors.Newf("not a type: %q", text)
	}
	if !atEnd(&c) {
		return ast.TypeSpec{}, errors.Newf("unexpected %q after type", c.Rest())
	}
	return t, nil
}

// qualifiers are recognised before a type name and dropped.
var qualifiers = []string{"unsigned", "const"}

// cWords may combine into multi-word C types such as "long long".
var cWords = map[string]bool{"long": true, "short": true, "int": true, "double": true, "char": true}

// parseType: primary ('|' primary)* ['=' default]
// A default is dropped again when a ')' follows it, so a type never eats the
// end of an enclosing argument list.
func parseType(c *lexer.Cursor, allowDefault bool) (ast.TypeSpec, bool) {
	start := c.Mark()
	t, ok := parsePrimaryType(c)
	if !ok {
		c.Reset(start)
		return ast.TypeSpec{}, false
	}
	for {
		m := c.Mark()
		c.SkipTrivia()
		if !c.Eat('|') {
			c.Reset(m)
			break
		}
		alt, ok := parsePrimaryType(c)
		if !ok {
			c.Reset(m)
			break
		}
		t.Alternatives = append(t.Alternatives, alt)
	}
	if allowDefault {
		m := c.Mark()
		c.SkipTrivia()
		if c.Peek() == '=' && c.PeekAt(1) != '=' {
			c.Bump()
			if d, ok := parseExpr(c); ok {
				after := c.Mark()
				c.SkipTrivia()
				if c.Peek() != ')' {
					c.Reset(after)
					t.Default = d
					return t, true
				}
			}
		}
		c.Reset(m)
	}
	return t, true
}

func parsePrimaryType(c *lexer.Cursor) (ast.TypeSpec, bool) {
	c.SkipTrivia()
	start := c.Mark()
	if c.Peek() == ':' {
		return parseRawBuffer(c)
	}
	if c.AtString() {
		text, info := c.ScanString()
		if !info.Closed {
			c.Reset(start)
			return ast.TypeSpec{}, false
		}
		return ast.TypeSpec{Name: text}, true
	}
	for {
		dropped := false
		for _, q := range qualifiers {
			if c.EatKeyword(q) {
				c.SkipBlanks()
				dropped = true
			}
		}
		if !dropped {
			break
		}
	}
	name := c.ScanDotted(false)
	if name == "" {
		c.Reset(start)
		return ast.TypeSpec{}, false
	}
	name = extendCType(c, name)
	for c.Eat('*') {
		name += "*"
	}
	t := ast.TypeSpec{Name: name}

	m := c.Mark()
	c.SkipBlanks()
	if c.Peek() != '[' {
		c.Reset(m)
		return t, true
	}
	c.Bump()
	params, ok := parseTypeParams(c)
	if !ok {
		c.Reset(m)
		return t, true
	}
	t.Params = params
	t.HasParams = true
	return t, true
}

// extendCType joins "long long", "unsigned long int", "long double" and
// similar into one name. A word is only taken when another identifier
// follows it, so "long x" stays a type and a name.
func extendCType(c *lexer.Cursor, name string) string {
	if name != "long" && name != "short" && name != "signed" {
		return name
	}
	for {
		m := c.Mark()
		c.SkipBlanks()
		word := c.ScanIdent()
		if !cWords[word] {
			c.Reset(m)
			return name
		}
		probe := c.Mark()
		c.SkipBlanks()
		for c.Eat('*') {
		}
		c.SkipBlanks()
		followed := c.AtIdentStart() || c.Peek() == '(' || c.Peek() == '['
		c.Reset(probe)
		if !followed {
			c.Reset(m)
			return name
		}
		name += " " + word
	}
}

// parseRawBuffer reads a memory-view slot: ':' [':' | digits]* that must be
// followed by ',' or ']'.
func parseRawBuffer(c *lexer.Cursor) (ast.TypeSpec, bool) {
	start := c.Mark()
	for c.Peek() == ':' || isDigit(c.Peek()) {
		c.Bump()
	}
	text := c.TextFrom(start)
	m := c.Mark()
	c.SkipTrivia()
	if c.Peek() != ',' && c.Peek() != ']' {
		c.Reset(start)
		return ast.TypeSpec{}, false
	}
	c.Reset(m)
	return ast.TypeSpec{Name: text, RawBuffer: true}, true
}

// parseTypeParams reads the parameters after '[' up to and including ']'.
func parseTypeParams(c *lexer.Cursor) ([]ast.TypeSpec, bool) {
	params := []ast.TypeSpec{}
	for {
		c.SkipTrivia()
		if c.Eat(']') {
			return params, true
		}
		p, ok := parseType(c, true)
		if !ok {
			return nil, false
		}
		params = append(params, p)
		c.SkipTrivia()
		if c.Eat(',') {
			continue
		}
		if c.Eat(']') {
			return params, true
		}
		return nil, false
	}
}

// hasRawBuffer reports whether t or any nested parameter is a raw buffer.
func hasRawBuffer(t *ast.TypeSpec) bool {
	if t == nil {
		return false
	}
	if t.RawBuffer {
		return true
	}
	for i := range t.Params {
		if hasRawBuffer(&t.Params[i]) {
			return true
		}
	}
	for i := range t.Alternatives {
		if hasRawBuffer(&t.Alternatives[i]) {
			return true
		}
	}
	return false
}
