package diag

import (
	"testing"

	"cystub/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	file := fs.Add("testdata/golden/sample.pyx", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		{
			Severity: SevWarning,
			Code:     ScnResidue,
			Message:  "first line\nsecond",
			Primary:  source.Span{File: file, Start: 2, End: 3},
		},
		{
			Severity: SevError,
			Code:     ScnMalformedDecl,
			Message:  "bad header",
			Primary:  source.Span{File: file, Start: 0, End: 1},
			Notes:    []Note{{Span: source.Span{File: file, Start: 2, End: 3}, Msg: "body here"}},
		},
		{
			Severity: SevInfo,
			Code:     ScnInfo,
			Message:  "unknown file",
			Primary:  source.Span{File: 42},
		},
	}

	expected := "error SCN1002 testdata/golden/sample.pyx:1:1 bad header\n" +
		"note SCN1002 testdata/golden/sample.pyx:2:1 body here\n" +
		"warning SCN1001 testdata/golden/sample.pyx:2:1 first line second"

	if got := FormatShortDiagnostics(diags, fs, true); got != expected {
		t.Fatalf("unexpected short diagnostics:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestBagLimitSortDedup(t *testing.T) {
	b := NewBag(3)
	sp := func(s uint32) source.Span { return source.Span{Start: s, End: s + 1} }
	b.Add(New(SevInfo, ScnInfo, sp(5), "late"))
	b.Add(New(SevWarning, ScnResidue, sp(1), "early"))
	b.Add(New(SevWarning, ScnResidue, sp(1), "dup"))
	if b.Add(New(SevError, IOLoadFileError, sp(0), "over")) {
		t.Fatalf("Add past the limit must fail")
	}
	if b.Dropped() != 1 {
		t.Fatalf("Dropped = %d, want 1", b.Dropped())
	}
	b.Sort()
	b.Dedup()
	if b.Len() != 2 || b.Items()[0].Message != "early" {
		t.Fatalf("unexpected items after sort/dedup: %+v", b.Items())
	}
	if !b.HasWarnings() || b.HasErrors() {
		t.Fatalf("severity helpers disagree with contents")
	}
	b.Filter(SevWarning)
	if b.Len() != 1 {
		t.Fatalf("Filter kept %d items", b.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := map[Code]string{
		ScnResidue:       "SCN1001",
		VfySyntaxError:   "VFY3001",
		IOWriteFileError: "IO4002",
		CfgTypemap:       "CFG5002",
		UnknownCode:      "E0000",
	}
	for code, want := range tests {
		if got := code.ID(); got != want {
			t.Errorf("%d.ID() = %q, want %q", code, got, want)
		}
	}
}
