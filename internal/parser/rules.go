package parser

import (
	"fmt"
	"sync"

	"cystub/internal/ast"
)

// Rule tries to recognise a declaration starting at logical line i.
// end bounds the lines available to the rule. On success it returns the
// declaration and the index of the first line after it.
type Rule interface {
	Name() string
	match(p *Parser, i, end int) (ast.Decl, int, bool)
}

// Rule names used for lazy references.
const (
	ruleDecl      = "decl"
	ruleDecorable = "decorable"
)

type matchFunc func(p *Parser, i, end int) (ast.Decl, int, bool)

type funcRule struct {
	name string
	fn   matchFunc
}

func (r *funcRule) Name() string { return r.name }
func (r *funcRule) match(p *Parser, i, end int) (ast.Decl, int, bool) {
	return r.fn(p, i, end)
}

// choice tries alternatives in order; the first success wins.
type choice struct {
	name string
	alts []Rule
}

func (r *choice) Name() string { return r.name }
func (r *choice) match(p *Parser, i, end int) (ast.Decl, int, bool) {
	for _, alt := range r.alts {
		if d, next, ok := alt.match(p, i, end); ok {
			return d, next, true
		}
	}
	return nil, i, false
}

// ref is a named placeholder bound after every rule is defined, which lets
// a block rule refer to the set that contains it.
type ref struct {
	name   string
	target Rule
}

func (r *ref) Name() string { return r.name }
func (r *ref) match(p *Parser, i, end int) (ast.Decl, int, bool) {
	return r.target.match(p, i, end)
}

// Grammar is a registry of named rules.
type Grammar struct {
	rules map[string]Rule
	refs  []*ref
}

func newGrammar() *Grammar {
	return &Grammar{rules: make(map[string]Rule)}
}

func (g *Grammar) define(r Rule) {
	if _, dup := g.rules[r.Name()]; dup {
		panic(fmt.Sprintf("parser: rule %q defined twice", r.Name()))
	}
	g.rules[r.Name()] = r
}

func (g *Grammar) fn(name string, fn matchFunc) Rule {
	r := &funcRule{name: name, fn: fn}
	g.define(r)
	return r
}

func (g *Grammar) oneOf(name string, alts ...Rule) Rule {
	r := &choice{name: name, alts: alts}
	g.define(r)
	return r
}

// ref returns a lazy reference to a rule that may not exist yet.
func (g *Grammar) ref(name string) Rule {
	r := &ref{name: name}
	g.refs = append(g.refs, r)
	return r
}

// bind resolves all references; an unknown name is a programming error.
func (g *Grammar) bind() {
	for _, r := range g.refs {
		target, ok := g.rules[r.name]
		if !ok {
			panic(fmt.Sprintf("parser: unbound rule reference %q", r.name))
		}
		r.target = target
	}
}

func (g *Grammar) rule(name string) Rule {
	r, ok := g.rules[name]
	if !ok {
		panic(fmt.Sprintf("parser: unknown rule %q", name))
	}
	return r
}

var (
	grammarOnce sync.Once
	grammar     *Grammar
)

// defaultGrammar builds the dialect grammar once; it is immutable afterwards
// and shared by concurrent scans.
func defaultGrammar() *Grammar {
	grammarOnce.Do(func() {
		g := newGrammar()
		body := g.ref(ruleDecl)

		dataRecord := g.fn("dataclass", matchDataRecord)
		nativeClass := g.fn("cdef class", classRule(true, body))
		class := g.fn("class", classRule(false, body))
		structDecl := g.fn("struct", matchStruct)
		enum := g.fn("enum", matchEnum)
		extern := g.fn("extern", matchExtern)
		nativeFunc := g.fn("cdef function", nativeFuncRule(body))
		function := g.fn("def", defRule(body))
		g.oneOf(ruleDecorable, nativeClass, class, function, nativeFunc)
		decorated := g.fn("decorated", decoratedRule(g.ref(ruleDecorable)))
		typedef := g.fn("ctypedef", matchTypeAlias)
		imports := g.fn("import", matchImports)
		directive := g.fn("directive", matchDirective)

		g.oneOf(ruleDecl,
			dataRecord,
			decorated,
			nativeClass,
			structDecl,
			enum,
			extern,
			nativeFunc,
			class,
			function,
			typedef,
			imports,
			directive,
		)
		g.bind()
		grammar = g
	})
	return grammar
}
