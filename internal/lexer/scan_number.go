package lexer

// NumberKind distinguishes integer from floating literals.
type NumberKind uint8

const (
	NumberNone NumberKind = iota
	NumberInt
	NumberFloat
)

// ScanNumber consumes a signed decimal literal.
// A float needs digits on both sides of the point and may carry an exponent;
// an integer must not be followed by a point.
func (c *Cursor) ScanNumber() (string, NumberKind) {
	start := c.Mark()
	if c.Peek() == '+' || c.Peek() == '-' {
		c.Bump()
	}
	if !c.scanDigits() {
		c.Reset(start)
		return "", NumberNone
	}
	if c.Peek() == '.' {
		if !isDec(c.PeekAt(1)) {
			c.Reset(start)
			return "", NumberNone
		}
		c.Bump()
		c.scanDigits()
		c.scanExponent()
		return c.TextFrom(start), NumberFloat
	}
	if c.scanExponent() {
		return c.TextFrom(start), NumberFloat
	}
	return c.TextFrom(start), NumberInt
}

func (c *Cursor) scanDigits() bool {
	n := 0
	for isDec(c.Peek()) || (n > 0 && c.Peek() == '_' && isDec(c.PeekAt(1))) {
		c.Bump()
		n++
	}
	return n > 0
}

func (c *Cursor) scanExponent() bool {
	if c.Peek() != 'e' && c.Peek() != 'E' {
		return false
	}
	m := c.Mark()
	c.Bump()
	if c.Peek() == '+' || c.Peek() == '-' {
		c.Bump()
	}
	if !c.scanDigits() {
		c.Reset(m)
		return false
	}
	return true
}
