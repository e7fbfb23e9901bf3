package token

var keywords = func() map[string]Kind {
	m := make(map[string]Kind, len(names))
	for k := KwDef; int(k) < len(names); k++ {
		m[names[k]] = k
	}
	return m
}()

// reserved may not appear as a ctypedef target or alias.
var reserved = map[Kind]bool{
	KwClass:     true,
	KwStruct:    true,
	KwDef:       true,
	KwCpdef:     true,
	KwCdef:      true,
	KwEnum:      true,
	KwDataclass: true,
	KwSelf:      true,
	KwExtern:    true,
}

// LookupKeyword возвращает тип и bool если это ключевое слово.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsReserved reports whether ident is one of the words a type alias may not use.
func IsReserved(ident string) bool {
	k, ok := keywords[ident]
	return ok && reserved[k]
}

// DeclKeywords are the words that open a declaration header.
// A logical line starting with one of them that no rule accepts is malformed.
var DeclKeywords = []Kind{KwDef, KwCdef, KwCpdef, KwClass, KwCtypedef, KwFrom, KwImport, KwCimport, KwAsync}
