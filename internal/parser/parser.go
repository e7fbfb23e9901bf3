package parser

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/diag"
	"cystub/internal/layout"
	"cystub/internal/lexer"
	"cystub/internal/source"
)

// DefaultMaxDepth bounds block nesting; deeper bodies are kept as text lines.
const DefaultMaxDepth = 64

type Options struct {
	Reporter diag.Reporter
	MaxDepth int
}

// Match is one top-level declaration and the bytes it consumed.
type Match struct {
	Decl ast.Decl
	Span source.Span
}

type Result struct {
	Matches []Match
	Layout  *layout.Layout
}

// Spans returns the spans of all matches in order.
func (r Result) Spans() []source.Span {
	out := make([]source.Span, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Span
	}
	return out
}

// Parser: состояние сканирования одного файла.
type Parser struct {
	file  *source.File
	lay   *layout.Layout
	opts  Options
	depth int
}

// Scan finds every declaration in file, in source order and without overlap.
// Lines that no rule accepts are skipped; they make up the residue.
func Scan(file *source.File, opts Options) Result {
	if opts.MaxDepth <= 0 {
		opts.MaxDepth = DefaultMaxDepth
	}
	if opts.Reporter == nil {
		opts.Reporter = diag.NopReporter{}
	}
	p := &Parser{file: file, lay: layout.Compute(file), opts: opts}
	top := defaultGrammar().rule(ruleDecl)
	p.reportUnterminated()

	var matches []Match
	i, end := 0, len(p.lay.Lines)
	for i < end {
		if p.lay.Lines[i].Kind == layout.Blank {
			i++
			continue
		}
		d, next, ok := top.match(p, i, end)
		if !ok {
			p.reportMalformed(i)
			i++
			continue
		}
		matches = append(matches, Match{Decl: d, Span: d.Head().Span})
		i = next
	}
	return Result{Matches: matches, Layout: p.lay}
}

// body scans lines [start, end) of a block with rule r, keeping unmatched
// lines as text.
func (p *Parser) body(r Rule, start, end int) ast.Body {
	var out ast.Body
	if p.depth >= p.opts.MaxDepth {
		for i := start; i < end; i++ {
			if p.lay.Lines[i].Kind != layout.Blank {
				out = append(out, p.textLine(i))
			}
		}
		return out
	}
	p.depth++
	defer func() { p.depth-- }()

	i := start
	for i < end {
		if p.lay.Lines[i].Kind == layout.Blank {
			i++
			continue
		}
		if d, next, ok := r.match(p, i, end); ok {
			out = append(out, d)
			i = next
			continue
		}
		p.reportMalformed(i)
		out = append(out, p.textLine(i))
		i++
	}
	return out
}

func (p *Parser) textLine(i int) *ast.TextLine {
	ln := p.lay.Lines[i]
	sp := ln.Span(p.file.ID)
	return &ast.TextLine{Text: p.file.Text(sp), Span: sp}
}

// cursorAt returns a cursor over logical line i, starting at its first
// non-blank byte.
func (p *Parser) cursorAt(i int) lexer.Cursor {
	ln := p.lay.Lines[i]
	return lexer.Window(p.file, ln.Text, ln.End)
}

func (p *Parser) span(start, end uint32) source.Span {
	return source.Span{File: p.file.ID, Start: start, End: end}
}

// atEnd reports whether c has only trivia (and an optional ';') left.
func atEnd(c *lexer.Cursor) bool {
	c.SkipTrivia()
	c.Eat(';')
	c.SkipTrivia()
	return c.EOF()
}

func trimText(s string) string {
	return strings.TrimSpace(s)
}
