package format

import (
	"fmt"
	"strings"

	"cystub/internal/ast"
	"cystub/internal/typemap"
)

// Defaults for Options.
const (
	DefaultIndentWidth = 4
	DefaultLineWidth   = 100
)

type Options struct {
	Hooks       typemap.Hooks
	IndentWidth int
	// LineWidth is the widest argument list, in display columns, kept on
	// the header line.
	LineWidth int
}

func (o Options) withDefaults() Options {
	if o.IndentWidth <= 0 {
		o.IndentWidth = DefaultIndentWidth
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}

type printer struct {
	w   *Writer
	opt Options
}

// Render turns declarations into stub text. Each declaration becomes one
// fragment; empty fragments are dropped and the rest are joined with a
// newline, in source order.
func Render(decls []ast.Decl, opt Options) string {
	fragments := make([]string, 0, len(decls))
	for _, d := range decls {
		if s := RenderDecl(d, opt); s != "" {
			fragments = append(fragments, s)
		}
	}
	return strings.Join(fragments, "\n")
}

// RenderDecl renders one declaration; kinds without a stub form give "".
func RenderDecl(d ast.Decl, opt Options) string {
	p := printer{w: NewWriter(opt), opt: opt.withDefaults()}
	p.printDecl(d)
	return p.w.String()
}

func (p *printer) printDecl(d ast.Decl) {
	switch d := d.(type) {
	case *ast.ImportSection:
		p.printImports(d)
	case *ast.TypeAlias:
		p.printTypeAlias(d)
	case *ast.Enum:
		p.printEnum(d)
	case *ast.Class:
		p.printClass(d)
	case *ast.Func:
		p.printFunc(d.Decorators, d.Async, d.Name, d.Args, d.Return, &d.Header)
	case *ast.NativeFunc:
		p.printFunc(d.Decorators, false, d.Name, d.Args, d.Return, &d.Header)
	case *ast.Struct:
		p.printStruct(d)
	case *ast.DataRecord:
		p.printDataRecord(d)
	case *ast.Extern, *ast.Directive:
		// no stub equivalent
	default:
		panic(fmt.Sprintf("format: unhandled declaration %T", d))
	}
}

// printDoc writes an indented docstring line when the header has one.
func (p *printer) printDoc(h *ast.Header) {
	if !h.HasDoc {
		return
	}
	q := `"""`
	if strings.Contains(h.Doc, q) {
		q = `'''`
	}
	p.w.Raw(q + h.Doc + q)
	p.w.Newline()
}
