// Package testkit holds invariant checks shared by tests and fuzz targets.
package testkit

import (
	"fmt"
	"strings"

	"fortio.org/safecast"

	"cystub/internal/coverage"
	"cystub/internal/format"
	"cystub/internal/parser"
	"cystub/internal/source"
	"cystub/internal/stubgen"
)

// CheckSpanInvariants verifies a scan result against its file:
// 1) every match span is non-empty, belongs to sf and lies within its content
// 2) matches are in source order and do not overlap
// 3) every match starts at a line start (after indentation)
func CheckSpanInvariants(res parser.Result, sf *source.File) error {
	if sf == nil {
		return fmt.Errorf("nil file")
	}
	size, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}
	var prevEnd uint32
	for i, m := range res.Matches {
		sp := m.Span
		if sp.End <= sp.Start {
			return fmt.Errorf("match %d: empty span %v", i, sp)
		}
		if sp.File != sf.ID {
			return fmt.Errorf("match %d: span file mismatch: got=%d want=%d", i, sp.File, sf.ID)
		}
		if sp.End > size {
			return fmt.Errorf("match %d: span %v beyond content (%d bytes)", i, sp, size)
		}
		if sp.Start < prevEnd {
			return fmt.Errorf("match %d: span %v overlaps or precedes previous end %d", i, sp, prevEnd)
		}
		if !atLineStart(sf.Content, sp.Start) {
			return fmt.Errorf("match %d: span %v does not start a line", i, sp)
		}
		if m.Decl == nil {
			return fmt.Errorf("match %d: nil declaration", i)
		}
		prevEnd = sp.End
	}
	if err := coverage.Validate(res.Spans()); err != nil {
		return err
	}
	return nil
}

func atLineStart(content []byte, off uint32) bool {
	for i := int(off) - 1; i >= 0; i-- {
		switch content[i] {
		case '\n':
			return true
		case ' ', '\t':
			continue
		default:
			return false
		}
	}
	return true
}

// CheckConversion verifies the end-to-end properties of stubgen.Convert:
// spans are well formed, the residue is exactly the uncovered text, the
// stub ends with a newline when non-empty, and the stub round-trips.
func CheckConversion(sf *source.File, opt format.Options) error {
	scan := parser.Scan(sf, parser.Options{})
	if err := CheckSpanInvariants(scan, sf); err != nil {
		return fmt.Errorf("spans: %w", err)
	}
	res := stubgen.Convert(sf, stubgen.Options{Format: opt})
	if want := coverage.Residue(sf.Content, scan.Spans()); res.Residue != want {
		return fmt.Errorf("residue mismatch: got %q want %q", res.Residue, want)
	}
	if res.Stub != "" && !strings.HasSuffix(res.Stub, "\n") {
		return fmt.Errorf("stub does not end with a newline: %q", res.Stub)
	}
	if len(res.Matches) != len(scan.Matches) {
		return fmt.Errorf("scan is not deterministic: %d vs %d matches", len(res.Matches), len(scan.Matches))
	}
	if err := stubgen.CheckRoundTrip(res.Decls(), res.Stub, opt); err != nil {
		return err
	}
	return nil
}
