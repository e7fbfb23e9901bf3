package ast

import "cystub/internal/source"

// Node is a body element: a nested declaration or an opaque text line.
type Node interface {
	node()
	NodeSpan() source.Span
}

// Decl is a recognised declaration.
type Decl interface {
	Node
	Kind() Kind
	Head() *Header
}

// Header carries what every declaration has.
type Header struct {
	Name   string
	Parent string // base list as written, "" when absent
	Doc    string // docstring without quotes
	HasDoc bool
	Body   Body
	Span   source.Span
}

func (h *Header) Head() *Header          { return h }
func (h *Header) NodeSpan() source.Span { return h.Span }
func (h *Header) node()                 {}

// Body is the ordered content of an indented block.
type Body []Node

// Decls returns the nested declarations, skipping text lines.
func (b Body) Decls() []Decl {
	out := make([]Decl, 0, len(b))
	for _, n := range b {
		if d, ok := n.(Decl); ok {
			out = append(out, d)
		}
	}
	return out
}

// TextLine is a body line no rule recognised.
type TextLine struct {
	Text string
	Span source.Span
}

func (t *TextLine) node()                 {}
func (t *TextLine) NodeSpan() source.Span { return t.Span }

// ImportSection groups consecutive import lines.
type ImportSection struct {
	Header
	Entries []ImportEntry
}

// ImportEntry is one import line. Module is empty for a bare import.
type ImportEntry struct {
	Module string
	Native bool // cimport form
	Names  []ImportName
	Span   source.Span
}

// IsFrom reports whether the entry is a from-import.
func (e ImportEntry) IsFrom() bool { return e.Module != "" }

// ImportName is one imported name with an optional alias.
type ImportName struct {
	Name  string
	Alias string
}

// TypeAlias groups consecutive ctypedef lines.
type TypeAlias struct {
	Header
	Entries []AliasEntry
}

// AliasEntry maps Name to Target.
type AliasEntry struct {
	Target TypeSpec
	Name   string
	Span   source.Span
}

// Enum is a C enumeration.
type Enum struct {
	Header
	Members []EnumMember
}

// EnumMember is one enumerator; Value keeps the literal text when given.
type EnumMember struct {
	Name  string
	Value string
}

// Extern is a foreign block; its body is kept as raw lines only.
type Extern struct {
	Header
	Library   string // quoted path as written, or "*"
	Namespace string
	Directive string
	Raw       []string
}

// Class is a Python class or, with Native set, an extension type.
type Class struct {
	Header
	Native bool
}

// Func is a Python function.
type Func struct {
	Header
	Decorators []string
	Async      bool
	Args       []Argument
	Return     *TypeSpec
}

// NativeFunc is a cdef or cpdef function.
type NativeFunc struct {
	Header
	Decorators []string
	Keyword    string   // cdef or cpdef
	Modifiers  []string // inline, public, api
	Args       []Argument
	Return     *TypeSpec
	Trailer    []string // nogil, noexcept, except clauses
}

// Struct is a C struct.
type Struct struct {
	Header
	Fields []StructField
}

// StructField is one body line: a type shared by one or more names.
type StructField struct {
	Type  TypeSpec
	Names []string
}

// DataRecord is a dataclass; its body is reproduced verbatim.
type DataRecord struct {
	Header
	Decorator string // without '@'
	Raw       []string
}

// Directive groups consecutive comment lines.
type Directive struct {
	Header
	Lines []string
}

func (*ImportSection) Kind() Kind { return KindImport }
func (*TypeAlias) Kind() Kind     { return KindTypeAlias }
func (*Enum) Kind() Kind          { return KindEnum }
func (*Extern) Kind() Kind        { return KindExtern }
func (*Class) Kind() Kind         { return KindClass }
func (*Func) Kind() Kind          { return KindFunc }
func (*NativeFunc) Kind() Kind    { return KindNativeFunc }
func (*Struct) Kind() Kind        { return KindStruct }
func (*DataRecord) Kind() Kind    { return KindDataRecord }
func (*Directive) Kind() Kind     { return KindDirective }

// Argument is one parameter of a function.
type Argument struct {
	Name    string // may carry a "*" or "**" prefix, or be a bare "*" or "/"
	Type    *TypeSpec
	Default Expr
	Self    bool // bare self in a native signature
	Native  bool // C-typed form "int x"
}
