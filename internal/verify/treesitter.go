//go:build cgo

package verify

import (
	"fortio.org/safecast"
	"github.com/cockroachdb/errors"
	sitter "github.com/tree-sitter/go-tree-sitter"
	python "github.com/tree-sitter/tree-sitter-python/bindings/go"
)

var language = sitter.NewLanguage(python.Language())

// Available reports whether Check can run.
func Available() bool { return true }

// Check parses stub and returns its syntax errors in document order.
func Check(stub []byte) ([]Problem, error) {
	parser := sitter.NewParser()
	defer parser.Close()
	if err := parser.SetLanguage(language); err != nil {
		return nil, errors.Wrap(err, "failed to load python grammar")
	}

	tree := parser.Parse(stub, nil)
	if tree == nil {
		return nil, errors.New("python parser returned no tree")
	}
	defer tree.Close()

	root := tree.RootNode()
	if !root.HasError() {
		return nil, nil
	}
	var out []Problem
	collect(root, &out)
	return out, nil
}

// collect walks only subtrees that contain errors.
func collect(n *sitter.Node, out *[]Problem) {
	if len(*out) >= maxProblems {
		return
	}
	if n.IsError() || n.IsMissing() {
		pos := n.StartPosition()
		*out = append(*out, Problem{
			Line:    toU32(pos.Row) + 1,
			Col:     toU32(pos.Column) + 1,
			Kind:    n.Kind(),
			Missing: n.IsMissing(),
		})
		if n.IsMissing() {
			return
		}
	}
	for i := range n.ChildCount() {
		child := n.Child(i)
		if child != nil && (child.HasError() || child.IsMissing()) {
			collect(child, out)
		}
	}
}

func toU32(v uint) uint32 {
	out, err := safecast.Conv[uint32](v)
	if err != nil {
		return ^uint32(0)
	}
	return out
}
