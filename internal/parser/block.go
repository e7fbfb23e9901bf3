package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/lexer"
)

// blockInfo describes the body following a header colon.
type blockInfo struct {
	inline   string // body written after the colon on the header line
	inlineAt uint32
	start    int    // first body line (after the docstring, if any)
	end      int    // one past the last body line
	next     int    // first line after the declaration
	spanEnd  uint32 // end offset of the declaration
	doc      string
	hasDoc   bool
}

// block locates the body of header line i. c must sit right after the colon.
func (p *Parser) block(i int, c *lexer.Cursor, end int) blockInfo {
	ln := p.lay.Lines[i]
	info := blockInfo{spanEnd: ln.End, start: i + 1, end: i + 1, next: i + 1}

	c.SkipBlanks()
	if !c.EOF() && c.Peek() != '#' {
		info.inlineAt = c.Off
		rest := strings.TrimSpace(c.Rest())
		if doc, ok := docstring(rest); ok {
			info.doc, info.hasDoc = doc, true
		} else {
			info.inline = rest
		}
		return info
	}

	s, e := p.lay.Block(i)
	e = min(e, end)
	if e <= s {
		return info
	}
	info.start, info.end, info.next = s, e, e
	info.spanEnd = p.lay.Lines[e-1].End

	first := p.lay.NextNonBlank(s)
	if first < e && p.lay.Lines[first].Kind == layout.Code {
		c := p.cursorAt(first)
		if doc, ok := docstring(c.Rest()); ok {
			info.doc, info.hasDoc = doc, true
			info.start = first + 1
		}
	}
	return info
}

// docstring accepts a line consisting of one triple-quoted literal.
func docstring(line string) (string, bool) {
	c := textCursor(line)
	text, info := c.ScanString()
	if text == "" || !info.Triple || !info.Closed || !atEnd(&c) {
		return "", false
	}
	return lexer.Unquote(text), true
}

// header fills the fields shared by all declarations.
func (p *Parser) header(name string, i int, b blockInfo) ast.Header {
	return ast.Header{
		Name:   name,
		Doc:    b.doc,
		HasDoc: b.hasDoc,
		Span:   p.span(p.lay.Lines[i].Text, b.spanEnd),
	}
}

// scanBody parses the block content with rule r. An inline body becomes a
// single text line.
func (p *Parser) scanBody(r Rule, i int, b blockInfo) ast.Body {
	if b.inline != "" {
		sp := p.span(b.inlineAt, p.lay.Lines[i].End)
		return ast.Body{&ast.TextLine{Text: b.inline, Span: sp}}
	}
	return p.body(r, b.start, b.end)
}

// bodyLines iterates the non-blank lines of a flat block.
func (p *Parser) bodyLines(b blockInfo, fn func(i int)) {
	for i := b.start; i < b.end; i++ {
		if p.lay.Lines[i].Kind != layout.Blank {
			fn(i)
		}
	}
}
