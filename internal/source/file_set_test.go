package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestAddVirtualLineIdx(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.pyx", []byte("a\nbc\n\nd"))
	f := fs.Get(id)
	want := []uint32{1, 4, 5}
	if len(f.LineIdx) != len(want) {
		t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
	}
	for i := range want {
		if f.LineIdx[i] != want[i] {
			t.Fatalf("LineIdx = %v, want %v", f.LineIdx, want)
		}
	}
	if f.Flags&FileVirtual == 0 {
		t.Fatalf("virtual flag not set")
	}
}

func TestResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("mem.pyx", []byte("def f():\n    pass\n"))
	tests := []struct {
		off  uint32
		want LineCol
	}{
		{0, LineCol{Line: 1, Col: 1}},
		{8, LineCol{Line: 1, Col: 9}},
		{9, LineCol{Line: 2, Col: 1}},
		{13, LineCol{Line: 2, Col: 5}},
		{18, LineCol{Line: 3, Col: 1}},
	}
	for _, tt := range tests {
		start, _ := fs.Resolve(Span{File: id, Start: tt.off, End: tt.off})
		if start != tt.want {
			t.Errorf("Resolve(%d) = %+v, want %+v", tt.off, start, tt.want)
		}
	}
}

func TestGetLine(t *testing.T) {
	fs := NewFileSet()
	f := fs.Get(fs.AddVirtual("mem.pyx", []byte("first\nsecond\n")))
	if got := f.GetLine(1); got != "first" {
		t.Fatalf("line 1 = %q", got)
	}
	if got := f.GetLine(2); got != "second" {
		t.Fatalf("line 2 = %q", got)
	}
	if got := f.GetLine(3); got != "" {
		t.Fatalf("line 3 = %q", got)
	}
	if got := f.GetLine(9); got != "" {
		t.Fatalf("line 9 = %q", got)
	}
}

func TestFileVersioning(t *testing.T) {
	fs := NewFileSet()
	first := fs.AddVirtual("a/b/../c.pyx", []byte("x"))
	second := fs.AddVirtual("a/c.pyx", []byte("y"))
	if first == second {
		t.Fatalf("expected distinct ids")
	}
	latest, ok := fs.GetLatest("a/c.pyx")
	if !ok || latest != second {
		t.Fatalf("GetLatest = %d, %v; want %d", latest, ok, second)
	}
}

func TestLoadNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mod.pyx")
	// BOM, CRLF and a decomposed "é" (e + U+0301)
	raw := []byte("\xEF\xBB\xBFdef caf\x65\xCC\x81():\r\n    pass\r\n")
	if err := os.WriteFile(path, raw, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fs := NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	f := fs.Get(id)
	if got, want := string(f.Content), "def café():\n    pass\n"; got != want {
		t.Fatalf("content = %q, want %q", got, want)
	}
	for _, flag := range []FileFlags{FileHadBOM, FileNormalizedCRLF, FileNormalizedNFC} {
		if f.Flags&flag == 0 {
			t.Errorf("flag %b not set (flags %b)", flag, f.Flags)
		}
	}
}

func TestLoadMissing(t *testing.T) {
	fs := NewFileSet()
	if _, err := fs.Load(filepath.Join(t.TempDir(), "missing.pyx")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
