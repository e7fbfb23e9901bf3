package ast

// TypeSpec is a type as written in a signature.
type TypeSpec struct {
	Name         string
	RawBuffer    bool // memory-view slot such as ":" or "::1"
	Params       []TypeSpec
	HasParams    bool // brackets were present, possibly empty
	Default      Expr
	Alternatives []TypeSpec // members after '|'
}
