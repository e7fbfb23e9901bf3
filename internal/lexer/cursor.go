package lexer

import (
	"cystub/internal/source"
)

// Cursor представляет собой позицию в файле.
type Cursor struct {
	File *source.File
	Off  uint32
	// Limit is the exclusive upper bound for Off; defaults to len(File.Content).
	Limit uint32
}

// NewCursor creates a new cursor for the provided file.
func NewCursor(f *source.File) Cursor {
	return Cursor{File: f, Off: 0, Limit: f.Len()}
}

// Window returns a cursor restricted to [start, limit).
func Window(f *source.File, start, limit uint32) Cursor {
	limit = min(limit, f.Len())
	return Cursor{File: f, Off: start, Limit: limit}
}

// EOF проверяет, достигнут ли конец окна.
func (c *Cursor) EOF() bool {
	return c.Off >= c.Limit
}

// Peek читает текущий байт, если есть, иначе возвращает 0.
func (c *Cursor) Peek() byte {
	if c.EOF() {
		return 0
	}
	return c.File.Content[c.Off]
}

// PeekAt returns the byte n positions ahead, or 0 past the limit.
func (c *Cursor) PeekAt(n uint32) byte {
	if c.Off+n >= c.Limit {
		return 0
	}
	return c.File.Content[c.Off+n]
}

// Bump перемещает курсор на один байт вперед и возвращает прочитанный байт.
func (c *Cursor) Bump() byte {
	if c.EOF() {
		return 0
	}
	b := c.File.Content[c.Off]
	c.Off++
	return b
}

// Mark это метка, что бы быстро получать Span читаемого фрагмента.
type Mark uint32

// Mark сохраняет текущую позицию курсора.
func (c *Cursor) Mark() Mark {
	return Mark(c.Off)
}

// SpanFrom получает Span для фрагмента, начиная с метки.
func (c *Cursor) SpanFrom(m Mark) source.Span {
	return source.Span{File: c.File.ID, Start: uint32(m), End: c.Off}
}

// TextFrom returns the bytes consumed since m.
func (c *Cursor) TextFrom(m Mark) string {
	return string(c.File.Content[uint32(m):c.Off])
}

// Reset возвращает курсор назад к метке.
func (c *Cursor) Reset(m Mark) {
	c.Off = uint32(m)
}

// Eat consumes the next byte if it matches the provided byte.
func (c *Cursor) Eat(b byte) bool {
	if !c.EOF() && c.File.Content[c.Off] == b {
		c.Off++
		return true
	}
	return false
}

// EatString consumes s when the window continues with it.
func (c *Cursor) EatString(s string) bool {
	if !c.HasPrefix(s) {
		return false
	}
	c.Off += uint32(len(s))
	return true
}

// HasPrefix reports whether the window continues with s.
func (c *Cursor) HasPrefix(s string) bool {
	end := c.Off + uint32(len(s))
	if end > c.Limit {
		return false
	}
	return string(c.File.Content[c.Off:end]) == s
}

// Rest returns the remaining text of the window.
func (c *Cursor) Rest() string {
	if c.EOF() {
		return ""
	}
	return string(c.File.Content[c.Off:c.Limit])
}
