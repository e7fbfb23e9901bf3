package lexer

import "strings"

// stringPrefix reports the length of a valid literal prefix (b, r, u, f,
// rb, br, fr, rf in any case) followed by a quote.
func (c *Cursor) stringPrefix() uint32 {
	var n uint32
	for n < 2 && isPrefixByte(c.PeekAt(n)) {
		n++
	}
	q := c.PeekAt(n)
	if q != '\'' && q != '"' {
		return 0
	}
	if n == 2 && !validPair(c.PeekAt(0), c.PeekAt(1)) {
		return 0
	}
	return n
}

func isPrefixByte(b byte) bool {
	switch b {
	case 'b', 'B', 'r', 'R', 'u', 'U', 'f', 'F':
		return true
	}
	return false
}

func validPair(a, b byte) bool {
	pair := strings.ToLower(string([]byte{a, b}))
	return pair == "rb" || pair == "br" || pair == "rf" || pair == "fr"
}

// AtString reports whether a string literal starts at the cursor.
func (c *Cursor) AtString() bool {
	q := c.PeekAt(c.stringPrefix())
	return q == '\'' || q == '"'
}

// StringInfo describes a scanned string literal.
type StringInfo struct {
	Triple bool
	Quote  byte
	Closed bool
}

// ScanString consumes a quoted literal including its prefix and quotes.
// Single-quoted literals stop at a newline; triple-quoted ones may span lines.
func (c *Cursor) ScanString() (string, StringInfo) {
	start := c.Mark()
	if !c.AtString() {
		return "", StringInfo{}
	}
	c.Off += c.stringPrefix()
	q := c.Bump()
	info := StringInfo{Quote: q}
	if c.Peek() == q && c.PeekAt(1) == q {
		c.Off += 2
		info.Triple = true
	}
	for !c.EOF() {
		b := c.Peek()
		if b == '\\' {
			c.Bump()
			c.Bump()
			continue
		}
		if b == '\n' && !info.Triple {
			break
		}
		if b == q {
			if !info.Triple {
				c.Bump()
				info.Closed = true
				break
			}
			if c.PeekAt(1) == q && c.PeekAt(2) == q {
				c.Off += 3
				info.Closed = true
				break
			}
		}
		c.Bump()
	}
	return c.TextFrom(start), info
}

// Unquote strips prefix letters and quotes from a literal returned by ScanString.
// Escapes are kept as written.
func Unquote(lit string) string {
	i := strings.IndexAny(lit, `'"`)
	if i < 0 {
		return lit
	}
	body := lit[i:]
	for _, d := range []string{`"""`, `'''`, `"`, `'`} {
		if len(body) >= 2*len(d) && strings.HasPrefix(body, d) && strings.HasSuffix(body, d) {
			return body[len(d) : len(body)-len(d)]
		}
	}
	return body
}
