package stubgen

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"

	"cystub/internal/ast"
	"cystub/internal/format"
	"cystub/internal/parser"
	"cystub/internal/source"
)

// ErrRoundTrip is returned when a rendered stub does not scan back to the
// same signatures.
var ErrRoundTrip = errors.New("stub does not round-trip")

// signature is what must survive a render and re-scan.
type signature struct {
	kind   string
	args   int
	result string
}

// CheckRoundTrip re-scans stub and verifies that every function and class
// rendered from decls comes back with the same name, argument count and
// return type.
func CheckRoundTrip(decls []ast.Decl, stub string, opt format.Options) error {
	want := map[string]signature{}
	var order []string
	collect(decls, "", func(path string, s signature) {
		want[path] = s
		order = append(order, path)
	}, func(t ast.TypeSpec) string { return format.TypeString(t, opt) })

	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<stub>", []byte(stub)))
	scan := parser.Scan(f, parser.Options{})
	rescanned := make([]ast.Decl, len(scan.Matches))
	for i, m := range scan.Matches {
		rescanned[i] = m.Decl
	}
	got := map[string]signature{}
	collect(rescanned, "", func(path string, s signature) {
		got[path] = s
	}, func(t ast.TypeSpec) string { return format.TypeString(t, format.Options{}) })

	var problems []string
	for _, path := range order {
		g, ok := got[path]
		w := want[path]
		switch {
		case !ok:
			problems = append(problems, fmt.Sprintf("%s %s missing", w.kind, trimOrdinal(path)))
		case g != w:
			problems = append(problems, fmt.Sprintf("%s changed: %d args -> %s, got %d args -> %s",
				trimOrdinal(path), w.args, w.result, g.args, g.result))
		}
	}
	if len(problems) > 0 {
		return errors.Wrap(ErrRoundTrip, strings.Join(problems, "; "))
	}
	return nil
}

// collect walks the declarations a stub shows. Paths carry an ordinal so
// overloads with the same name stay distinct.
func collect(decls []ast.Decl, prefix string, add func(string, signature), typ func(ast.TypeSpec) string) {
	seen := map[string]int{}
	key := func(name string) string {
		path := prefix + name
		n := seen[path]
		seen[path] = n + 1
		return fmt.Sprintf("%s#%d", path, n)
	}
	for _, d := range decls {
		switch d := d.(type) {
		case *ast.Func:
			add(key(d.Name), signature{kind: "def", args: len(d.Args), result: returnString(d.Return, typ)})
		case *ast.NativeFunc:
			add(key(d.Name), signature{kind: "def", args: len(d.Args), result: returnString(d.Return, typ)})
		case *ast.Class:
			add(key(d.Name), signature{kind: "class"})
			collect(format.Members(d), prefix+d.Name+".", add, typ)
		}
	}
}

func returnString(t *ast.TypeSpec, typ func(ast.TypeSpec) string) string {
	if t == nil {
		return "-"
	}
	return typ(*t)
}

func trimOrdinal(path string) string {
	if i := strings.LastIndexByte(path, '#'); i >= 0 {
		return path[:i]
	}
	return path
}
