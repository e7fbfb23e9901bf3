package format

import (
	"strings"

	"cystub/internal/ast"
)

// typeString renders t through the hooks: Partial on each bare name,
// Complete on each composed alternative.
func (p *printer) typeString(t ast.TypeSpec) string {
	parts := make([]string, 0, 1+len(t.Alternatives))
	parts = append(parts, p.opt.Hooks.ApplyComplete(p.primaryString(t)))
	for _, alt := range t.Alternatives {
		parts = append(parts, p.opt.Hooks.ApplyComplete(p.primaryString(alt)))
	}
	return strings.Join(parts, " | ")
}

func (p *printer) primaryString(t ast.TypeSpec) string {
	var sb strings.Builder
	sb.WriteString(p.opt.Hooks.ApplyPartial(t.Name))
	if t.HasParams {
		sb.WriteByte('[')
		for i, param := range t.Params {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(p.paramString(param))
		}
		sb.WriteByte(']')
	}
	if t.Default != nil {
		sb.WriteByte('=')
		sb.WriteString(exprString(t.Default))
	}
	return sb.String()
}

// paramString renders a nested parameter; only the outermost type sees the
// complete hook.
func (p *printer) paramString(t ast.TypeSpec) string {
	parts := make([]string, 0, 1+len(t.Alternatives))
	parts = append(parts, p.primaryString(t))
	for _, alt := range t.Alternatives {
		parts = append(parts, p.primaryString(alt))
	}
	return strings.Join(parts, " | ")
}

// TypeString renders t with the given options.
func TypeString(t ast.TypeSpec, opt Options) string {
	p := printer{opt: opt.withDefaults()}
	return p.typeString(t)
}
