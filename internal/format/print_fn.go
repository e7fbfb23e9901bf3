package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"cystub/internal/ast"
)

// stubDecorators survive into stubs; every other decorator is dropped.
var stubDecorators = map[string]bool{
	"staticmethod":              true,
	"classmethod":               true,
	"property":                  true,
	"overload":                  true,
	"typing.overload":           true,
	"abstractmethod":            true,
	"abc.abstractmethod":        true,
	"final":                     true,
	"typing.final":              true,
	"functools.cached_property": true,
}

func keepDecorator(dec string) bool {
	if stubDecorators[dec] {
		return true
	}
	for _, suffix := range []string{".setter", ".getter", ".deleter"} {
		if strings.HasSuffix(dec, suffix) {
			return true
		}
	}
	return false
}

func (p *printer) printFunc(decorators []string, async bool, name string, args []ast.Argument, ret *ast.TypeSpec, h *ast.Header) {
	for _, dec := range decorators {
		if keepDecorator(dec) {
			p.w.Line("@" + dec)
		}
	}
	if async {
		p.w.WriteString("async ")
	}
	p.w.WriteString("def " + name + "(")

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = p.argString(a)
	}
	joined := strings.Join(parts, ", ")
	if runewidth.StringWidth(joined) > p.opt.LineWidth {
		p.w.Newline()
		p.w.IndentPush()
		for _, part := range parts {
			p.w.Line(part + ",")
		}
		p.w.IndentPop()
	} else {
		p.w.WriteString(joined)
	}
	p.w.WriteString(")")

	if ret != nil {
		p.w.WriteString(" -> " + p.typeString(*ret))
	}
	p.w.Line(":")
	p.w.IndentPush()
	p.printDoc(h)
	p.w.Line("...")
	p.w.IndentPop()
}

// argString renders one parameter. Python parameters keep the compact
// "name: T=d" form, C-typed ones use "name: T = d".
func (p *printer) argString(a ast.Argument) string {
	if a.Self {
		return "self"
	}
	var sb strings.Builder
	sb.WriteString(a.Name)
	if a.Type != nil {
		sb.WriteString(": ")
		sb.WriteString(p.typeString(*a.Type))
	}
	if a.Default != nil {
		if a.Native {
			sb.WriteString(" = ")
		} else {
			sb.WriteString("=")
		}
		sb.WriteString(exprString(a.Default))
	}
	return sb.String()
}
