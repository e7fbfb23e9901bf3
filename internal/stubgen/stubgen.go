// Package stubgen ties scanning, coverage and rendering together.
package stubgen

import (
	"fmt"

	"cystub/internal/ast"
	"cystub/internal/coverage"
	"cystub/internal/diag"
	"cystub/internal/format"
	"cystub/internal/parser"
	"cystub/internal/source"
	"cystub/internal/typemap"
)

// maxResidueNotes caps the fragment notes attached to a residue warning.
const maxResidueNotes = 8

type Options struct {
	Format         format.Options
	MaxDiagnostics int
	MaxDepth       int
}

// Result is the outcome of converting one file.
type Result struct {
	Stub     string
	Residue  string
	Matches  []parser.Match
	Coverage coverage.Report
	Bag      *diag.Bag
}

// Decls returns the matched declarations in source order.
func (r *Result) Decls() []ast.Decl {
	out := make([]ast.Decl, len(r.Matches))
	for i, m := range r.Matches {
		out[i] = m.Decl
	}
	return out
}

// ScanAndRender converts source text with the process-wide hooks. It never
// fails: unparsed text is returned as residue.
func ScanAndRender(text string) (stub, residue string) {
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("<input>", []byte(text)))
	res := Convert(f, Options{Format: format.Options{Hooks: typemap.Default()}})
	return res.Stub, res.Residue
}

// Convert scans f, renders the stub and computes the residue. Diagnostics
// go to the returned bag.
func Convert(f *source.File, opts Options) *Result {
	bag := diag.NewBag(opts.MaxDiagnostics)
	reporter := diag.BagReporter{Bag: bag}

	scan := parser.Scan(f, parser.Options{Reporter: reporter, MaxDepth: opts.MaxDepth})
	spans := scan.Spans()
	if err := coverage.Validate(spans); err != nil {
		panic(fmt.Sprintf("stubgen: scanner produced invalid spans: %v", err))
	}

	res := &Result{Matches: scan.Matches, Bag: bag}
	res.Coverage = coverage.Analyze(f, spans)
	res.Residue = res.Coverage.Residue
	res.Stub = format.Render(res.Decls(), opts.Format)

	if len(res.Coverage.Fragments) > 0 {
		first := res.Coverage.Fragments[0]
		b := diag.ReportWarning(reporter, diag.ScnResidue, first.Span,
			fmt.Sprintf("%d unparsed characters", res.Coverage.Chars()))
		for i, fr := range res.Coverage.Fragments[1:] {
			if i == maxResidueNotes {
				break
			}
			b.WithNote(fr.Span, "also unparsed")
		}
		b.Emit()
	}
	if len(scan.Matches) > 0 && res.Stub == "" {
		diag.ReportInfo(reporter, diag.RndEmptyOutput, scan.Matches[0].Span,
			"declarations found but none has a stub form").Emit()
	}
	return res
}
