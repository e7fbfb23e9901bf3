package parser

import (
	"cystub/internal/ast"
	"cystub/internal/layout"
	"cystub/internal/lexer"
)

// matchImports: one or more import lines at the same indent.
//
//	import a.b [as c], d
//	from [.]mod (import|cimport) (names | '(' names ')' | '*')
//	cimport a
func matchImports(p *Parser, i, end int) (ast.Decl, int, bool) {
	sec := &ast.ImportSection{}
	last, ok := p.section(i, end, layout.Code, func(j int) bool {
		e, ok := p.parseImport(j)
		if ok {
			sec.Entries = append(sec.Entries, e)
		}
		return ok
	})
	if !ok {
		return nil, i, false
	}
	sec.Span = p.span(p.lay.Lines[i].Text, p.lay.Lines[last].End)
	return sec, last + 1, true
}

func (p *Parser) parseImport(j int) (ast.ImportEntry, bool) {
	c := p.cursorAt(j)
	var e ast.ImportEntry
	switch {
	case c.EatKeyword("from"):
		c.SkipBlanks()
		e.Module = c.ScanDotted(true)
		if e.Module == "" {
			return e, false
		}
		c.SkipBlanks()
		switch {
		case c.EatKeyword("cimport"):
			e.Native = true
		case c.EatKeyword("import"):
		default:
			return e, false
		}
		c.SkipBlanks()
		names, ok := parseImportNames(&c, true)
		if !ok {
			return e, false
		}
		e.Names = names
	case c.PeekKeyword("cimport") || c.PeekKeyword("import"):
		e.Native = c.EatKeyword("cimport")
		if !e.Native {
			c.EatKeyword("import")
		}
		names, ok := parseImportNames(&c, false)
		if !ok {
			return e, false
		}
		e.Names = names
	default:
		return e, false
	}
	if !atEnd(&c) {
		return ast.ImportEntry{}, false
	}
	ln := p.lay.Lines[j]
	e.Span = p.span(ln.Text, ln.End)
	return e, true
}

// parseImportNames reads "name [as alias]" items. In a from-import the list
// may be parenthesised or a single '*'.
func parseImportNames(c *lexer.Cursor, from bool) ([]ast.ImportName, bool) {
	c.SkipBlanks()
	if from && c.Eat('*') {
		return []ast.ImportName{{Name: "*"}}, true
	}
	paren := from && c.Eat('(')
	var names []ast.ImportName
	for {
		c.SkipTrivia()
		if paren && c.Eat(')') {
			break
		}
		var n ast.ImportName
		if from {
			n.Name = c.ScanIdent()
		} else {
			n.Name = c.ScanDotted(false)
		}
		if n.Name == "" {
			return nil, false
		}
		c.SkipTrivia()
		if c.EatKeyword("as") {
			c.SkipTrivia()
			n.Alias = c.ScanIdent()
			if n.Alias == "" {
				return nil, false
			}
		}
		names = append(names, n)
		c.SkipTrivia()
		if c.Eat(',') {
			continue
		}
		if paren && !c.Eat(')') {
			return nil, false
		}
		break
	}
	return names, len(names) > 0
}
