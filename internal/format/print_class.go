package format

import (
	"strings"

	"cystub/internal/ast"
	"cystub/internal/lexer"
	"cystub/internal/source"
)

// enumBases are parents whose class body holds enum members.
var enumBases = map[string]bool{
	"Enum":         true,
	"enum.Enum":    true,
	"IntEnum":      true,
	"enum.IntEnum": true,
}

func classHeader(name, parent string) string {
	if parent == "" {
		return "class " + name + ":"
	}
	return "class " + name + "(" + parent + "):"
}

func (p *printer) printClass(c *ast.Class) {
	p.w.Line(classHeader(c.Name, c.Parent))
	p.w.IndentPush()
	defer p.w.IndentPop()
	p.printDoc(&c.Header)

	if isEnumBase(c.Parent) {
		p.printEnumClassBody(c)
		return
	}

	p.w.Newline()
	members := Members(c)
	if len(members) == 0 {
		p.w.Line("...")
		return
	}
	for i, m := range members {
		if i > 0 {
			p.w.Newline()
		}
		p.printDecl(m)
	}
}

// Members returns the nested declarations a class stub shows. A native
// class only nests native classes.
func Members(c *ast.Class) []ast.Decl {
	var out []ast.Decl
	for _, d := range c.Body.Decls() {
		switch d := d.(type) {
		case *ast.Func, *ast.NativeFunc, *ast.DataRecord:
			out = append(out, d)
		case *ast.Class:
			if !c.Native || d.Native {
				out = append(out, d)
			}
		}
	}
	return out
}

// printEnumClassBody writes "NAME: int" for each member line, then any
// nested declarations.
func (p *printer) printEnumClassBody(c *ast.Class) {
	wrote := false
	for _, n := range c.Body {
		tl, ok := n.(*ast.TextLine)
		if !ok {
			continue
		}
		if name, ok := enumMemberName(tl.Text); ok {
			p.w.Line(name + ": int")
			wrote = true
		}
	}
	for _, d := range Members(c) {
		if wrote {
			p.w.Newline()
		}
		p.printDecl(d)
		wrote = true
	}
	if !wrote {
		p.w.Line("...")
	}
}

// isEnumBase reports whether a class with this parent renders its body as
// enum members.
func isEnumBase(parent string) bool {
	return enumBases[parent]
}

// enumMemberName accepts "NAME" and "NAME = value".
func enumMemberName(line string) (string, bool) {
	c := textCursor(line)
	name := c.ScanIdent()
	if name == "" || name == "pass" {
		return "", false
	}
	c.SkipBlanks()
	if c.EOF() || c.Peek() == '#' {
		return name, true
	}
	if c.Peek() == '=' && c.PeekAt(1) != '=' {
		return name, true
	}
	return "", false
}

func (p *printer) printEnum(e *ast.Enum) {
	if e.Name == "" {
		for _, m := range e.Members {
			p.w.Line(m.Name + ": int")
		}
		return
	}
	p.w.Line(classHeader(e.Name, "Enum"))
	p.w.IndentPush()
	defer p.w.IndentPop()
	p.printDoc(&e.Header)
	if len(e.Members) == 0 {
		p.w.Line("...")
		return
	}
	for _, m := range e.Members {
		p.w.Line(m.Name + ": int")
	}
}

func (p *printer) printStruct(s *ast.Struct) {
	p.w.Line(classHeader(s.Name, ""))
	p.w.IndentPush()
	defer p.w.IndentPop()
	p.printDoc(&s.Header)
	if len(s.Fields) == 0 {
		p.w.Line("...")
		return
	}
	for _, f := range s.Fields {
		typ := p.typeString(f.Type)
		for _, name := range f.Names {
			p.w.Line(name + ": " + typ)
		}
	}
}

func (p *printer) printDataRecord(d *ast.DataRecord) {
	p.w.Line("@" + d.Decorator)
	p.w.Line(classHeader(d.Name, d.Parent))
	p.w.IndentPush()
	defer p.w.IndentPop()
	p.printDoc(&d.Header)
	if len(d.Raw) == 0 {
		p.w.Line("...")
		return
	}
	for _, line := range d.Raw {
		p.w.Line(strings.TrimRight(line, " \t"))
	}
}

func textCursor(s string) lexer.Cursor {
	return lexer.NewCursor(&source.File{Content: []byte(s)})
}
