package format

import (
	"strings"

	"cystub/internal/ast"
)

// fromImportInline is the most names a from-import keeps on one line.
const fromImportInline = 2

func importName(n ast.ImportName) string {
	if n.Alias == "" {
		return n.Name
	}
	return n.Name + " as " + n.Alias
}

// printImports writes one line per entry; cimport becomes import.
func (p *printer) printImports(sec *ast.ImportSection) {
	for _, e := range sec.Entries {
		names := make([]string, len(e.Names))
		for i, n := range e.Names {
			names[i] = importName(n)
		}
		if !e.IsFrom() {
			p.w.Line("import " + strings.Join(names, ", "))
			continue
		}
		if len(names) <= fromImportInline {
			p.w.Line("from " + e.Module + " import " + strings.Join(names, ", "))
			continue
		}
		p.w.Line("from " + e.Module + " import (")
		p.w.IndentPush()
		for i, n := range names {
			if i < len(names)-1 {
				n += ","
			}
			p.w.Line(n)
		}
		p.w.IndentPop()
		p.w.Line(")")
	}
}

func (p *printer) printTypeAlias(sec *ast.TypeAlias) {
	for _, e := range sec.Entries {
		p.w.Line(e.Name + " = " + p.typeString(e.Target))
	}
}
