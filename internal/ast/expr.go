package ast

// Expr is a default-value expression.
type Expr interface {
	expr()
}

// Literal is a number, string, constant or dotted name, kept as written.
type Literal struct {
	Text string
}

type List struct {
	Elems []Expr
}

type Tuple struct {
	Elems []Expr
}

type Set struct {
	Elems []Expr
}

type Dict struct {
	Pairs []Pair
}

// Pair is one dict entry.
type Pair struct {
	Key, Value Expr
}

// Call is a constructor call such as Foo(1, x=2); each group is one
// parenthesised argument list, so Foo(1)(2) has two groups.
type Call struct {
	Name   string
	Groups [][]CallArg
}

// CallArg is a positional (Name empty) or keyword argument.
type CallArg struct {
	Name  string
	Value Expr
}

// Binary is an arithmetic expression.
type Binary struct {
	Op          byte // one of + - * /
	Left, Right Expr
}

func (*Literal) expr() {}
func (*List) expr()    {}
func (*Tuple) expr()   {}
func (*Set) expr()     {}
func (*Dict) expr()    {}
func (*Call) expr()    {}
func (*Binary) expr()  {}

// Precedence returns the binding strength of an operator; 0 for non-operators.
func Precedence(op byte) int {
	switch op {
	case '+', '-':
		return 1
	case '*', '/':
		return 2
	}
	return 0
}
