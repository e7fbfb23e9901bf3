package ast

// Kind enumerates declaration variants.
type Kind uint8

const (
	KindImport Kind = iota
	KindTypeAlias
	KindEnum
	KindExtern
	KindClass
	KindFunc
	KindNativeFunc
	KindStruct
	KindDataRecord
	KindDirective

	kindCount
)

var kindNames = [...]string{
	KindImport:     "import",
	KindTypeAlias:  "ctypedef",
	KindEnum:       "enum",
	KindExtern:     "extern",
	KindClass:      "class",
	KindFunc:       "def",
	KindNativeFunc: "cdef",
	KindStruct:     "struct",
	KindDataRecord: "dataclass",
	KindDirective:  "directive",
}

func (k Kind) String() string {
	if k < kindCount {
		return kindNames[k]
	}
	return "unknown"
}

// Kinds lists every declaration kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, 0, kindCount)
	for k := range kindCount {
		out = append(out, k)
	}
	return out
}
