package coverage

import (
	"testing"

	"cystub/internal/source"
)

func file(t *testing.T, src string) *source.File {
	t.Helper()
	fs := source.NewFileSet()
	return fs.Get(fs.AddVirtual("cov.pyx", []byte(src)))
}

func span(start, end uint32) source.Span {
	return source.Span{Start: start, End: end}
}

func TestResidueNoSpans(t *testing.T) {
	src := "\n  x = 1\n  \n"
	if got := Residue([]byte(src), nil); got != "x = 1" {
		t.Fatalf("residue = %q", got)
	}
}

func TestResidueRemovesSpans(t *testing.T) {
	src := "def f():\n    pass\nx = 1\ndef g():\n    pass\n"
	spans := []source.Span{span(0, 17), span(24, 41)}
	if got := Residue([]byte(src), spans); got != "x = 1" {
		t.Fatalf("residue = %q", got)
	}
}

func TestAnalyze(t *testing.T) {
	src := "a = 1\ndef f():\n    pass\n  b = 2  \n"
	f := file(t, src)
	rep := Analyze(f, []source.Span{span(6, 23)})
	if rep.Residue != "a = 1\n\n  b = 2" {
		t.Fatalf("residue = %q", rep.Residue)
	}
	if len(rep.Fragments) != 2 || rep.Fragments[0].Text != "a = 1" || rep.Fragments[1].Text != "b = 2" {
		t.Fatalf("fragments = %#v", rep.Fragments)
	}
	if rep.Covered != 17 || rep.Total != uint32(len(src)) {
		t.Fatalf("covered %d of %d", rep.Covered, rep.Total)
	}
	if rep.Chars() != len("a = 1\n\n  b = 2") {
		t.Fatalf("chars = %d", rep.Chars())
	}
}

func TestValidate(t *testing.T) {
	if err := Validate([]source.Span{span(0, 3), span(3, 5), span(9, 9)}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Validate([]source.Span{span(0, 4), span(3, 5)}); err == nil {
		t.Fatal("overlap not detected")
	}
	if err := Validate([]source.Span{span(5, 2)}); err == nil {
		t.Fatal("inverted span not detected")
	}
}
