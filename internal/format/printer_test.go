package format

import (
	"strings"
	"testing"

	"cystub/internal/ast"
	"cystub/internal/parser"
	"cystub/internal/source"
	"cystub/internal/typemap"
)

func render(t *testing.T, src string, opt Options) string {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("test.pyx", []byte(src)))
	res := parser.Scan(f, parser.Options{})
	decls := make([]ast.Decl, len(res.Matches))
	for i, m := range res.Matches {
		decls[i] = m.Decl
	}
	return Render(decls, opt)
}

func pythonHooks(t *testing.T) typemap.Hooks {
	t.Helper()
	tbl, err := typemap.Preset("python")
	if err != nil {
		t.Fatal(err)
	}
	return tbl.Hooks()
}

func TestRenderExamples(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "function",
			src:  "def add(a, b):\n    pass\n",
			want: "def add(a, b):\n    ...\n",
		},
		{
			name: "native function",
			src:  "cpdef int square(int x):\n    return x * x\n",
			want: "def square(x: int) -> int:\n    ...\n",
		},
		{
			name: "enum class",
			src:  "class Color(Enum):\n    RED = 1\n    GREEN = 2\n",
			want: "class Color(Enum):\n    RED: int\n    GREEN: int\n",
		},
		{
			name: "qualified enum base",
			src:  "class Level(enum.IntEnum):\n    LOW = 0\n",
			want: "class Level(enum.IntEnum):\n    LOW: int\n",
		},
		{
			name: "enum-like name is not an enum base",
			src:  "class Color(EnumBase):\n    RED = 1\n",
			want: "class Color(EnumBase):\n\n    ...\n",
		},
		{
			name: "struct",
			src:  "cdef struct Point:\n    double x, y\n",
			want: "class Point:\n    x: float\n    y: float\n",
		},
		{
			name: "unrecognised statement",
			src:  "print('hello')\n",
			want: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := render(t, tt.src, Options{Hooks: pythonHooks(t)})
			if got != tt.want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, tt.want)
			}
		})
	}
}

func TestRenderClass(t *testing.T) {
	src := `cdef class Vec(Base):
    """A vector."""

    cdef double x

    def __init__(self, double x=0.0):
        self.x = x

    @property
    def norm(self) -> float:
        """Length."""
        return abs(self.x)

    @cython.boundscheck(False)
    cpdef double dot(self, Vec other) nogil:
        return self.x * other.x
`
	want := `class Vec(Base):
    """A vector."""

    def __init__(self, x: double = 0.0):
        ...

    @property
    def norm(self) -> float:
        """Length."""
        ...

    def dot(self, other: Vec) -> double:
        ...
`
	if got := render(t, src, Options{}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderEmptyClass(t *testing.T) {
	got := render(t, "class A:\n    x = 1\n", Options{})
	if got != "class A:\n\n    ...\n" {
		t.Fatalf("got %q", got)
	}
}

func TestRenderLongArguments(t *testing.T) {
	var args []string
	for _, n := range []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"} {
		args = append(args, n+"_value: int = 1")
	}
	src := "def f(" + strings.Join(args, ", ") + ") -> None:\n    pass\n"
	got := render(t, src, Options{})
	lines := strings.Split(strings.TrimSuffix(got, "\n"), "\n")
	if lines[0] != "def f(" || lines[len(lines)-2] != ") -> None:" {
		t.Fatalf("unexpected layout:\n%s", got)
	}
	if n := len(lines) - 3; n != len(args) {
		t.Fatalf("got %d argument lines, want %d", n, len(args))
	}
	for _, l := range lines[1 : len(lines)-2] {
		if !strings.HasPrefix(l, "    ") || !strings.HasSuffix(l, ",") {
			t.Fatalf("bad argument line %q", l)
		}
	}

	short := render(t, "def f(a: int=1, b=2):\n    pass\n", Options{})
	if short != "def f(a: int=1, b=2):\n    ...\n" {
		t.Fatalf("short form = %q", short)
	}
}

func TestRenderArgumentWidthBoundary(t *testing.T) {
	tests := []struct {
		name  string
		width int
		split bool
	}{
		{"at limit", 100, false},
		{"one over", 101, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := strings.Repeat("a", 48)
			second := strings.Repeat("b", tt.width-len(first)-len(", "))
			got := render(t, "def f("+first+", "+second+"):\n    pass\n", Options{})
			flat := "def f(" + first + ", " + second + "):\n    ...\n"
			wrapped := "def f(\n    " + first + ",\n    " + second + ",\n):\n    ...\n"
			want := flat
			if tt.split {
				want = wrapped
			}
			if got != want {
				t.Fatalf("got:\n%s\nwant:\n%s", got, want)
			}
		})
	}

	narrow := render(t, "def f(abc, de):\n    pass\n", Options{LineWidth: 7})
	if narrow != "def f(abc, de):\n    ...\n" {
		t.Fatalf("width 7 = %q", narrow)
	}
	narrow = render(t, "def f(abc, def_):\n    pass\n", Options{LineWidth: 7})
	if !strings.HasPrefix(narrow, "def f(\n") {
		t.Fatalf("width 9 over 7 = %q", narrow)
	}
}

func TestRenderImports(t *testing.T) {
	src := "import os\nfrom typing import List, Dict\nfrom a.b cimport c, d as e, f\n"
	want := "import os\nfrom typing import List, Dict\nfrom a.b import (\n    c,\n    d as e,\n    f\n)\n"
	if got := render(t, src, Options{}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderTypeAliasAndEnum(t *testing.T) {
	src := "ctypedef double real\n\ncdef enum Mode:\n    FAST = 1, SLOW\n\ncdef enum:\n    LIMIT = 10\n"
	want := "real = float\n\nclass Mode(Enum):\n    FAST: int\n    SLOW: int\n\nLIMIT: int\n"
	if got := render(t, src, Options{Hooks: pythonHooks(t)}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderDataRecordAndForeign(t *testing.T) {
	src := "cdef extern from \"m.h\":\n    int f(int)\n\n@dataclass\nclass P:\n    \"\"\"Point.\"\"\"\n    x: int\n    y: int = 0\n"
	want := "@dataclass\nclass P:\n    \"\"\"Point.\"\"\"\n    x: int\n    y: int = 0\n"
	if got := render(t, src, Options{}); got != want {
		t.Fatalf("got:\n%s\nwant:\n%s", got, want)
	}
}

func TestRenderBufferHook(t *testing.T) {
	got := render(t, "def f(double[:, ::1] a, int[:] b=None):\n    pass\n", Options{Hooks: pythonHooks(t)})
	if got != "def f(a: memoryview, b: memoryview = None):\n    ...\n" {
		t.Fatalf("got %q", got)
	}
}

func TestExprString(t *testing.T) {
	tests := []struct {
		src, want string
	}{
		{"(1,)", "(1,)"},
		{"(1, 2)", "(1, 2)"},
		{"{'a': 1}", "{'a': 1}"},
		{"{1, 2}", "{1, 2}"},
		{"a - (b - c)", "a - (b - c)"},
		{"(a + b) * c", "(a + b) * c"},
		{"a + b * c", "a + b * c"},
		{"Foo(1, k=2)(3)", "Foo(1, k=2)(3)"},
	}
	for _, tt := range tests {
		e, err := parser.ParseExpression(tt.src)
		if err != nil {
			t.Fatalf("%q: %v", tt.src, err)
		}
		if got := ExprString(e); got != tt.want {
			t.Errorf("%q: got %q, want %q", tt.src, got, tt.want)
		}
	}
}
