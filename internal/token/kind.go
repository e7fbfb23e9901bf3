package token

// Kind identifies a dialect keyword.
type Kind uint8

const (
	// Invalid marks a word that is not a keyword.
	Invalid Kind = iota
	KwDef       // def
	KwCdef      // cdef
	KwCpdef     // cpdef
	KwClass     // class
	KwStruct    // struct
	KwEnum      // enum
	KwCtypedef  // ctypedef
	KwExtern    // extern
	KwFrom      // from
	KwImport    // import
	KwCimport   // cimport
	KwAs        // as
	KwDataclass // dataclass
	KwSelf      // self
	KwUnsigned  // unsigned
	KwNamespace // namespace
	KwAsync     // async
	KwPacked    // packed
	KwInline    // inline
	KwPublic    // public
	KwAPI       // api
	KwNogil     // nogil
	KwNoexcept  // noexcept
	KwExcept    // except
	KwWith      // with
	KwGil       // gil
	KwTrue      // True
	KwFalse     // False
	KwNone      // None
)

var names = [...]string{
	Invalid:     "<invalid>",
	KwDef:       "def",
	KwCdef:      "cdef",
	KwCpdef:     "cpdef",
	KwClass:     "class",
	KwStruct:    "struct",
	KwEnum:      "enum",
	KwCtypedef:  "ctypedef",
	KwExtern:    "extern",
	KwFrom:      "from",
	KwImport:    "import",
	KwCimport:   "cimport",
	KwAs:        "as",
	KwDataclass: "dataclass",
	KwSelf:      "self",
	KwUnsigned:  "unsigned",
	KwNamespace: "namespace",
	KwAsync:     "async",
	KwPacked:    "packed",
	KwInline:    "inline",
	KwPublic:    "public",
	KwAPI:       "api",
	KwNogil:     "nogil",
	KwNoexcept:  "noexcept",
	KwExcept:    "except",
	KwWith:      "with",
	KwGil:       "gil",
	KwTrue:      "True",
	KwFalse:     "False",
	KwNone:      "None",
}

func (k Kind) String() string {
	if int(k) < len(names) {
		return names[k]
	}
	return "<invalid>"
}

// IsLiteral reports whether the keyword is a constant literal.
func (k Kind) IsLiteral() bool {
	return k == KwTrue || k == KwFalse || k == KwNone
}
