package driver

import (
	"fmt"

	"github.com/cockroachdb/errors"

	"cystub/internal/diag"
	"cystub/internal/format"
	"cystub/internal/source"
	"cystub/internal/stubgen"
	"cystub/internal/verify"
)

// pythonCheck parses a stub as Python.
var pythonCheck = verify.Check

// verifyStub re-scans the stub for lost declarations and parses it as
// Python. Findings go to conv.Bag so they are cached with the stub.
func verifyStub(file *source.File, conv *stubgen.Result, opt format.Options) {
	reporter := diag.BagReporter{Bag: conv.Bag}
	at := source.Span{File: file.ID}
	if conv.Stub == "" {
		return
	}

	if err := stubgen.CheckRoundTrip(conv.Decls(), conv.Stub, opt); err != nil {
		diag.ReportWarning(reporter, diag.VfyRoundTrip, at, err.Error()).Emit()
	}

	problems, err := pythonCheck([]byte(conv.Stub))
	switch {
	case errors.Is(err, verify.ErrUnavailable):
		diag.ReportInfo(reporter, diag.VfyUnavailable, at, "python syntax check skipped: "+err.Error()).Emit()
	case err != nil:
		diag.ReportWarning(reporter, diag.VfyCheckFailed, at, "python syntax check failed: "+err.Error()).Emit()
	default:
		for _, p := range problems {
			diag.ReportError(reporter, diag.VfySyntaxError, at, fmt.Sprintf("generated stub %s", p)).Emit()
		}
	}
}
