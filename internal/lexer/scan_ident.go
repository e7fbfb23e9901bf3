package lexer

import (
	"unicode"
	"unicode/utf8"
)

// ASCII fast-path для идентификаторов; Unicode через unicode.IsLetter.
func isIdentStartByte(b byte) bool {
	return b == '_' || (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isIdentContinueByte(b byte) bool {
	return isIdentStartByte(b) || isDec(b)
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

// IsIdentStart reports whether r may start an identifier.
func IsIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

// IsIdentContinue reports whether r may continue an identifier.
func IsIdentContinue(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (c *Cursor) peekRune() (rune, uint32) {
	if c.EOF() {
		return utf8.RuneError, 0
	}
	b := c.Peek()
	if b < utf8.RuneSelf {
		return rune(b), 1
	}
	r, sz := utf8.DecodeRune(c.File.Content[c.Off:c.Limit])
	return r, uint32(sz)
}

// AtIdentStart reports whether an identifier begins at the cursor.
func (c *Cursor) AtIdentStart() bool {
	r, sz := c.peekRune()
	return sz > 0 && IsIdentStart(r)
}

// AtWordEnd reports whether the cursor is not inside an identifier.
func (c *Cursor) AtWordEnd() bool {
	r, sz := c.peekRune()
	return sz == 0 || !IsIdentContinue(r)
}

// ScanIdent consumes one identifier and returns it, or "" when none starts here.
func (c *Cursor) ScanIdent() string {
	if !c.AtIdentStart() {
		return ""
	}
	start := c.Mark()
	for {
		r, sz := c.peekRune()
		if sz == 0 || !IsIdentContinue(r) {
			break
		}
		c.Off += sz
	}
	return c.TextFrom(start)
}

// ScanDotted consumes a dotted name such as "np.ndarray" or ".relative.mod".
// Leading dots are accepted for relative module paths.
func (c *Cursor) ScanDotted(allowLeadingDots bool) string {
	start := c.Mark()
	if allowLeadingDots {
		for c.Eat('.') {
		}
		if c.Off > uint32(start) && !c.AtIdentStart() {
			return c.TextFrom(start)
		}
	}
	if c.ScanIdent() == "" {
		c.Reset(start)
		return ""
	}
	for c.Peek() == '.' {
		m := c.Mark()
		c.Bump()
		if c.ScanIdent() == "" {
			c.Reset(m)
			break
		}
	}
	return c.TextFrom(start)
}

// EatKeyword consumes kw when it appears as a whole word.
func (c *Cursor) EatKeyword(kw string) bool {
	m := c.Mark()
	if !c.EatString(kw) {
		return false
	}
	if !c.AtWordEnd() {
		c.Reset(m)
		return false
	}
	return true
}

// PeekKeyword reports whether kw starts at the cursor as a whole word.
func (c *Cursor) PeekKeyword(kw string) bool {
	m := c.Mark()
	ok := c.EatKeyword(kw)
	c.Reset(m)
	return ok
}
