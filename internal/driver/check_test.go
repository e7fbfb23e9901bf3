package driver

import (
	"testing"

	"github.com/cockroachdb/errors"

	"cystub/internal/diag"
	"cystub/internal/format"
	"cystub/internal/source"
	"cystub/internal/stubgen"
	"cystub/internal/verify"
)

func verifyWith(t *testing.T, check func([]byte) ([]verify.Problem, error)) []diag.Diagnostic {
	t.Helper()
	prev := pythonCheck
	pythonCheck = check
	t.Cleanup(func() { pythonCheck = prev })

	fs := source.NewFileSet()
	file := fs.Get(fs.AddVirtual("m.pyx", []byte("def f(x):\n    pass\n")))
	conv := stubgen.Convert(file, stubgen.Options{})
	verifyStub(file, conv, format.Options{})
	return conv.Bag.Items()
}

func codesOf(items []diag.Diagnostic) map[diag.Code]diag.Severity {
	out := make(map[diag.Code]diag.Severity, len(items))
	for _, d := range items {
		out[d.Code] = d.Severity
	}
	return out
}

func TestVerifyStubCheckerFailure(t *testing.T) {
	codes := codesOf(verifyWith(t, func([]byte) ([]verify.Problem, error) {
		return nil, errors.New("parser crashed")
	}))
	if sev, ok := codes[diag.VfyCheckFailed]; !ok || sev != diag.SevWarning {
		t.Fatalf("checker failure not reported as a warning: %v", codes)
	}
	if _, ok := codes[diag.VfyUnavailable]; ok {
		t.Fatal("checker failure reported as an unavailable verifier")
	}
}

func TestVerifyStubUnavailable(t *testing.T) {
	codes := codesOf(verifyWith(t, func([]byte) ([]verify.Problem, error) {
		return nil, verify.ErrUnavailable
	}))
	if sev, ok := codes[diag.VfyUnavailable]; !ok || sev != diag.SevInfo {
		t.Fatalf("unavailable verifier not reported as info: %v", codes)
	}
	if _, ok := codes[diag.VfyCheckFailed]; ok {
		t.Fatal("unavailable verifier reported as a failure")
	}
}
