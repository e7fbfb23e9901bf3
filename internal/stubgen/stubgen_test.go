package stubgen

import (
	"errors"
	"strings"
	"testing"

	"cystub/internal/ast"
	"cystub/internal/diag"
	"cystub/internal/format"
	"cystub/internal/source"
	"cystub/internal/typemap"
)

func usePython(t *testing.T) {
	t.Helper()
	tbl, err := typemap.Preset("python")
	if err != nil {
		t.Fatal(err)
	}
	typemap.SetDefault(tbl.Hooks())
	t.Cleanup(func() { typemap.SetDefault(typemap.Identity()) })
}

func TestScanAndRenderExamples(t *testing.T) {
	usePython(t)
	tests := []struct {
		name    string
		src     string
		stub    string
		residue string
	}{
		{"def", "def add(a, b):\n    pass\n", "def add(a, b):\n    ...\n", ""},
		{"cpdef", "cpdef int square(int x):\n    return x * x\n", "def square(x: int) -> int:\n    ...\n", ""},
		{"enum", "class Color(Enum):\n    RED = 1\n    GREEN = 2\n", "class Color(Enum):\n    RED: int\n    GREEN: int\n", ""},
		{"struct", "cdef struct Point:\n    double x, y\n", "class Point:\n    x: float\n    y: float\n", ""},
		{"statement", "def f():\n    pass\nx = compute()\n", "def f():\n    ...\n", "x = compute()"},
		{"pointers", "cdef double* scale(double* xs, int n):\n    pass\n", "def scale(xs: int, n: int) -> int:\n    ...\n", ""},
		{"void pointer", "cdef void* raw(object o):\n    pass\n", "def raw(o: object) -> int:\n    ...\n", ""},
		{"bare unsigned", "cdef unsigned f(int x):\n    pass\n", "def f(x: int) -> int:\n    ...\n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stub, residue := ScanAndRender(tt.src)
			if stub != tt.stub {
				t.Errorf("stub:\n%s\nwant:\n%s", stub, tt.stub)
			}
			if residue != tt.residue {
				t.Errorf("residue = %q, want %q", residue, tt.residue)
			}
		})
	}
}

func TestNothingRecognised(t *testing.T) {
	src := "\n  import_me = 3\nprint(import_me)  \n\n"
	stub, residue := ScanAndRender(src)
	if stub != "" || residue != strings.TrimSpace(src) {
		t.Fatalf("stub = %q, residue = %q", stub, residue)
	}
}

func convert(t *testing.T, src string, opt format.Options) *Result {
	t.Helper()
	fs := source.NewFileSet()
	return Convert(fs.Get(fs.AddVirtual("m.pyx", []byte(src))), Options{Format: opt})
}

func TestConvertReportsResidue(t *testing.T) {
	res := convert(t, "a = 1\ndef f():\n    pass\nb = 2\n", format.Options{})
	var found *diag.Diagnostic
	for _, d := range res.Bag.Items() {
		if d.Code == diag.ScnResidue {
			found = &d
		}
	}
	if found == nil {
		t.Fatal("no residue diagnostic")
	}
	if found.Message != "12 unparsed characters" || len(found.Notes) != 1 {
		t.Fatalf("diagnostic = %q with %d notes", found.Message, len(found.Notes))
	}
	if res.Coverage.Covered == 0 || res.Coverage.Total != 30 {
		t.Fatalf("coverage = %+v", res.Coverage)
	}
}

func TestConvertForeignOnly(t *testing.T) {
	res := convert(t, "cdef extern from \"a.h\":\n    int x\n", format.Options{})
	if res.Stub != "" || res.Residue != "" {
		t.Fatalf("stub = %q, residue = %q", res.Stub, res.Residue)
	}
	if res.Bag.Len() != 1 || res.Bag.Items()[0].Code != diag.RndEmptyOutput {
		t.Fatalf("diagnostics = %v", res.Bag.Items())
	}
}

const roundTripSrc = `from libc.math cimport sqrt

cdef class Vec:
    """Vector."""
    cdef double x, y

    def __init__(self, double x=0, double y=0):
        pass

    cpdef double norm(self) nogil:
        return sqrt(self.x * self.x)

    @property
    def x(self) -> float:
        return self.x

    @x.setter
    def x(self, value: float):
        self.x = value

def make(int n, *args, name: str = "v", **kw) -> Vec:
    pass

class Outer(object):
    class Inner:
        def method(self, a, b, c):
            pass
`

func TestCheckRoundTrip(t *testing.T) {
	for _, hooks := range []string{"identity", "python"} {
		tbl, err := typemap.Preset(hooks)
		if err != nil {
			t.Fatal(err)
		}
		opt := format.Options{Hooks: tbl.Hooks()}
		res := convert(t, roundTripSrc, opt)
		if err := CheckRoundTrip(res.Decls(), res.Stub, opt); err != nil {
			t.Fatalf("%s: %v\n%s", hooks, err, res.Stub)
		}
	}
}

func TestCheckRoundTripDetectsLoss(t *testing.T) {
	res := convert(t, "def f(a, b) -> int:\n    pass\n", format.Options{})
	broken := strings.Replace(res.Stub, "(a, b)", "(a)", 1)
	err := CheckRoundTrip(res.Decls(), broken, format.Options{})
	if !errors.Is(err, ErrRoundTrip) {
		t.Fatalf("err = %v", err)
	}
	if err := CheckRoundTrip(res.Decls(), "", format.Options{}); !errors.Is(err, ErrRoundTrip) {
		t.Fatalf("missing function not reported: %v", err)
	}
}

func TestDecls(t *testing.T) {
	res := convert(t, "import os\ndef f(): pass\n", format.Options{})
	decls := res.Decls()
	if len(decls) != 2 || decls[0].Kind() != ast.KindImport || decls[1].Kind() != ast.KindFunc {
		t.Fatalf("decls = %v", decls)
	}
}
