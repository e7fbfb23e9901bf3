package lexer

// SkipBlanks пропускает пробелы, табы, '\r' и продолжения строки через '\'.
// Переводы строк не пропускаются.
func (c *Cursor) SkipBlanks() {
	for !c.EOF() {
		switch c.Peek() {
		case ' ', '\t', '\r', '\f':
			c.Bump()
		case '\\':
			if !c.skipContinuation() {
				return
			}
		default:
			return
		}
	}
}

// SkipTrivia пропускает всё незначащее: пробелы, переводы строк, комментарии
// и продолжения строки. Используется внутри логической строки, где перевод
// строки возможен только в скобках.
func (c *Cursor) SkipTrivia() {
	for !c.EOF() {
		switch c.Peek() {
		case ' ', '\t', '\r', '\f', '\n':
			c.Bump()
		case '#':
			c.SkipComment()
		case '\\':
			if !c.skipContinuation() {
				return
			}
		default:
			return
		}
	}
}

// SkipComment consumes a '#' comment up to, not including, the newline.
func (c *Cursor) SkipComment() {
	if c.Peek() != '#' {
		return
	}
	for !c.EOF() && c.Peek() != '\n' {
		c.Bump()
	}
}

// AtLineEnd reports whether only blanks and an optional comment remain
// before the newline or the window limit.
func (c *Cursor) AtLineEnd() bool {
	m := c.Mark()
	defer c.Reset(m)
	c.SkipBlanks()
	return c.EOF() || c.Peek() == '\n' || c.Peek() == '#'
}

func (c *Cursor) skipContinuation() bool {
	if c.PeekAt(1) == '\n' {
		c.Off += 2
		return true
	}
	if c.PeekAt(1) == '\r' && c.PeekAt(2) == '\n' {
		c.Off += 3
		return true
	}
	return false
}
