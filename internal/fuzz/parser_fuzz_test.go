package fuzztests

import (
	"context"
	"strings"
	"testing"
	"time"

	"cystub/internal/coverage"
	"cystub/internal/diag"
	"cystub/internal/parser"
	"cystub/internal/source"
	"cystub/internal/stubgen"
	"cystub/internal/testkit"
)

// scanTimeout is the maximum time allowed for converting a single input.
// If conversion takes longer, it indicates a potential infinite loop.
const scanTimeout = 5 * time.Second

func FuzzScanInvariants(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		fs := source.NewFileSet()
		file := fs.Get(fs.AddVirtual("fuzz.pyx", input))
		bag := diag.NewBag(128)
		res := parser.Scan(file, parser.Options{Reporter: diag.BagReporter{Bag: bag}})

		if err := testkit.CheckSpanInvariants(res, file); err != nil {
			t.Fatalf("span invariant broken: %v\ninput: %q", err, truncateForLog(input, 200))
		}
		residue := coverage.Residue(file.Content, res.Spans())
		if len(residue) > len(file.Content) {
			t.Fatalf("residue longer than input: %d > %d", len(residue), len(file.Content))
		}
	})
}

// FuzzScanAndRenderNoHang tests that conversion terminates and never
// panics on any input.
func FuzzScanAndRenderNoHang(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		input = clampInput(input)

		ctx, cancel := context.WithTimeout(context.Background(), scanTimeout)
		defer cancel()

		type outcome struct{ stub, residue string }
		done := make(chan outcome, 1)
		go func() {
			stub, residue := stubgen.ScanAndRender(string(input))
			done <- outcome{stub, residue}
		}()

		select {
		case out := <-done:
			if out.stub != "" && !strings.HasSuffix(out.stub, "\n") {
				t.Fatalf("stub without trailing newline: %q", out.stub)
			}
			if out.residue != strings.TrimSpace(out.residue) {
				t.Fatalf("residue not trimmed: %q", out.residue)
			}
		case <-ctx.Done():
			t.Fatalf("conversion hang detected: took longer than %v\ninput (%d bytes): %q",
				scanTimeout, len(input), truncateForLog(input, 200))
		}
	})
}

func FuzzParseExpression(f *testing.F) {
	for _, s := range []string{"1", "a.b(c)[d]", "-x ** 2", "{1: (2,)}", "lambda: 0", "f(", "'q"} {
		f.Add(s)
	}
	f.Fuzz(func(t *testing.T, text string) {
		if len(text) > 4096 {
			text = text[:4096]
		}
		_, _ = parser.ParseExpression(text)
		_, _ = parser.ParseType(text)
	})
}

// truncateForLog truncates input for logging purposes
func truncateForLog(input []byte, maxLen int) []byte {
	if len(input) <= maxLen {
		return input
	}
	return append(input[:maxLen:maxLen], []byte("...")...)
}
