// Package verify parses generated stubs as Python and reports syntax
// errors. The parser needs cgo; without it Available reports false and
// Check returns ErrUnavailable.
package verify

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrUnavailable is returned by Check in builds without a Python parser.
var ErrUnavailable = errors.New("stub verification needs a cgo build")

// maxProblems caps the problems reported for one stub.
const maxProblems = 16

// Problem is one syntax error in a stub. Line and Col are 1-based.
type Problem struct {
	Line uint32
	Col  uint32
	// Kind is the parser node kind; "ERROR" for unexpected input, the
	// missing token otherwise.
	Kind    string
	Missing bool
}

func (p Problem) String() string {
	if p.Missing {
		return fmt.Sprintf("%d:%d: missing %s", p.Line, p.Col, p.Kind)
	}
	return fmt.Sprintf("%d:%d: syntax error", p.Line, p.Col)
}
