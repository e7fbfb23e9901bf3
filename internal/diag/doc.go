// Package diag defines the diagnostic model shared by the scanner, the
// verifier and the driver.
//
// Diagnostic is the central record: a Severity, a compact Code with a stable
// string form, a short Message, the Primary span and optional Notes.
// Producers emit through a Reporter so they stay decoupled from storage;
// BagReporter collects into a Bag, which supports limits, sorting and
// deduplication. Rendering lives in internal/diagfmt.
//
// Scanning never fails: a construct the grammar cannot read is reported here
// and left in the residue, so most diagnostics are warnings or infos.
package diag
