package format

import (
	"strings"

	"cystub/internal/ast"
)

// ExprString renders a default-value expression.
func ExprString(e ast.Expr) string {
	return exprString(e)
}

func exprString(e ast.Expr) string {
	var sb strings.Builder
	writeExpr(&sb, e)
	return sb.String()
}

func writeExpr(sb *strings.Builder, e ast.Expr) {
	switch e := e.(type) {
	case *ast.Literal:
		sb.WriteString(e.Text)
	case *ast.List:
		sb.WriteByte('[')
		writeSeq(sb, e.Elems)
		sb.WriteByte(']')
	case *ast.Tuple:
		sb.WriteByte('(')
		writeSeq(sb, e.Elems)
		if len(e.Elems) == 1 {
			sb.WriteByte(',')
		}
		sb.WriteByte(')')
	case *ast.Set:
		sb.WriteByte('{')
		writeSeq(sb, e.Elems)
		sb.WriteByte('}')
	case *ast.Dict:
		sb.WriteByte('{')
		for i, pair := range e.Pairs {
			if i > 0 {
				sb.WriteString(", ")
			}
			writeExpr(sb, pair.Key)
			sb.WriteString(": ")
			writeExpr(sb, pair.Value)
		}
		sb.WriteByte('}')
	case *ast.Call:
		sb.WriteString(e.Name)
		for _, group := range e.Groups {
			sb.WriteByte('(')
			for i, arg := range group {
				if i > 0 {
					sb.WriteString(", ")
				}
				if arg.Name != "" {
					sb.WriteString(arg.Name)
					sb.WriteByte('=')
				}
				writeExpr(sb, arg.Value)
			}
			sb.WriteByte(')')
		}
	case *ast.Binary:
		prec := ast.Precedence(e.Op)
		writeOperand(sb, e.Left, prec, false)
		sb.WriteByte(' ')
		sb.WriteByte(e.Op)
		sb.WriteByte(' ')
		writeOperand(sb, e.Right, prec, true)
	}
}

// writeOperand adds parentheses where the child binds looser than its
// parent; operators are left-associative, so an equal right child needs
// them too.
func writeOperand(sb *strings.Builder, e ast.Expr, parent int, right bool) {
	b, ok := e.(*ast.Binary)
	if !ok {
		writeExpr(sb, e)
		return
	}
	child := ast.Precedence(b.Op)
	if child < parent || (right && child == parent) {
		sb.WriteByte('(')
		writeExpr(sb, e)
		sb.WriteByte(')')
		return
	}
	writeExpr(sb, e)
}

func writeSeq(sb *strings.Builder, elems []ast.Expr) {
	for i, el := range elems {
		if i > 0 {
			sb.WriteString(", ")
		}
		writeExpr(sb, el)
	}
}
