package parser

import (
	"fmt"
	"strings"

	"cystub/internal/diag"
	"cystub/internal/layout"
	"cystub/internal/token"
)

// reportMalformed warns when line i opens with a declaration keyword but no
// rule accepted it. Plain statements and cdef attributes stay silent; they
// only show up in the residue.
func (p *Parser) reportMalformed(i int) {
	ln := p.lay.Lines[i]
	if ln.Kind != layout.Code {
		return
	}
	c := p.cursorAt(i)
	if c.Eat('@') {
		if path := c.ScanDotted(false); path == "dataclass" || strings.HasSuffix(path, ".dataclass") {
			p.warnMalformed(i, "dataclass")
		}
		return
	}
	word := c.ScanIdent()
	kw, ok := token.LookupKeyword(word)
	if !ok {
		return
	}
	switch kw {
	case token.KwCdef, token.KwCpdef:
		c.SkipBlanks()
		next, _ := token.LookupKeyword(c.ScanIdent())
		switch next {
		case token.KwClass, token.KwStruct, token.KwEnum, token.KwExtern:
		default:
			if !strings.Contains(c.Rest(), "(") {
				return
			}
		}
	case token.KwAsync:
		c.SkipBlanks()
		if !c.EatKeyword("def") {
			return
		}
		word = "async def"
	default:
		if !isDeclKeyword(kw) {
			return
		}
	}
	p.warnMalformed(i, word)
}

func isDeclKeyword(kw token.Kind) bool {
	for _, k := range token.DeclKeywords {
		if k == kw {
			return true
		}
	}
	return false
}

func (p *Parser) warnMalformed(i int, word string) {
	sp := p.lay.Lines[i].Span(p.file.ID)
	diag.ReportWarning(p.opts.Reporter, diag.ScnMalformedDecl, sp,
		fmt.Sprintf("%q declaration could not be parsed; kept as text", word)).Emit()
}

// reportUnterminated warns about lines whose bracket or triple string runs
// to the end of the file.
func (p *Parser) reportUnterminated() {
	for _, ln := range p.lay.Lines {
		if !ln.Recovered {
			continue
		}
		diag.ReportWarning(p.opts.Reporter, diag.ScnUnterminatedBlock, ln.Span(p.file.ID),
			"bracket or string is never closed; scanning resumes on the next line").Emit()
	}
}
