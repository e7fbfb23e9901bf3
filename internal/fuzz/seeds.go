package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB, ограничение для тестового корпуса
	maxFuzzInput = 1 << 16
)

// handSeeds cover constructs that stress block and bracket handling.
var handSeeds = []string{
	"",
	"def f(:\n",
	"cdef class A:\n\tcdef int x\n  def g(self): pass\n",
	"cpdef inline object f(double[:, ::1] a, int *b=NULL) except? -1 nogil:\n    pass\n",
	"cdef extern from *:\n    \"\"\"\n    int x;\n    \"\"\"\n",
	"@dataclass\n@other\nclass R:\n    x: int\n",
	"class E(IntEnum):\n    A = (1,\n    2)\n",
	"from a import (\n    b,\n    c as d,\n)\n",
	"def f(a=\"unterminated):\n    pass\n",
	"ctypedef fused T:\n    int\n    double\n",
	"def f(x: dict[str, list[int]] | None = {1: [2, (3,)]}) -> 'Q':\n    ...\n",
	"cdef enum:\n    A, B, C\n",
	"\ufeffdef f():\r\n    pass\r\n",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range handSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все исходники Cython
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() {
			return nil
		}
		switch filepath.Ext(path) {
		case ".pyx", ".pxd", ".pxi":
		default:
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}

func clampInput(input []byte) []byte {
	if len(input) > maxFuzzInput {
		return append([]byte(nil), input[:maxFuzzInput]...)
	}
	return append([]byte(nil), input...)
}
