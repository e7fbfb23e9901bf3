package verify

import (
	"testing"

	"github.com/cockroachdb/errors"
)

func TestCheckValidStub(t *testing.T) {
	stub := "class Point:\n\n    def norm(self) -> double: ...\n\ndef f(x: int=1, *args, **kw) -> list[int] | None: ...\n"
	problems, err := Check([]byte(stub))
	if !Available() {
		if !errors.Is(err, ErrUnavailable) {
			t.Fatalf("want ErrUnavailable, got %v", err)
		}
		t.Skip("python parser unavailable")
	}
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(problems) != 0 {
		t.Fatalf("unexpected problems: %v", problems)
	}
}

func TestCheckReportsErrors(t *testing.T) {
	if !Available() {
		t.Skip("python parser unavailable")
	}
	stub := "def ok() -> int: ...\n\ndef broken(x: int -> int: ...\n"
	problems, err := Check([]byte(stub))
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(problems) == 0 {
		t.Fatal("want at least one problem")
	}
	if problems[0].Line != 3 {
		t.Errorf("first problem on line %d, want 3 (%v)", problems[0].Line, problems[0])
	}
}

func TestProblemString(t *testing.T) {
	if got := (Problem{Line: 2, Col: 5, Kind: ")", Missing: true}).String(); got != "2:5: missing )" {
		t.Errorf("got %q", got)
	}
	if got := (Problem{Line: 1, Col: 1, Kind: "ERROR"}).String(); got != "1:1: syntax error" {
		t.Errorf("got %q", got)
	}
}
