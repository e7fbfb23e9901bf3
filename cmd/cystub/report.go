package main

import (
	"fmt"
	"io"

	"cystub/internal/diag"
	"cystub/internal/diagfmt"
	"cystub/internal/driver"
	"cystub/internal/source"
)

// collectDiagnostics merges per-file bags, keeps what the verbosity asks
// for and cuts the list at max.
func collectDiagnostics(run *driver.Run, s *session) *diag.Bag {
	all := diag.NewBag(0)
	for i := range run.Results {
		all.Merge(run.Results[i].Bag)
	}
	switch {
	case s.quiet:
		all.Filter(diag.SevError)
	case s.verbose == 0:
		all.Filter(diag.SevWarning)
	}
	all.Sort()
	all.Dedup()
	return limitBag(all, s.maxDiag)
}

func limitBag(bag *diag.Bag, max int) *diag.Bag {
	if max <= 0 || bag.Len() <= max {
		return bag
	}
	out := diag.NewBag(max)
	for _, d := range bag.Items() {
		if !out.Add(d) {
			break
		}
	}
	return out
}

// diagFormat selects how diagnostics are printed.
type diagFormat string

const (
	diagText  diagFormat = "text"
	diagShort diagFormat = "short"
	diagJSON  diagFormat = "json"
)

func printDiagnostics(w io.Writer, bag *diag.Bag, fs *source.FileSet, s *session, format diagFormat) error {
	switch format {
	case diagShort:
		if out := diag.FormatShortDiagnostics(bag.Items(), fs, s.verbose > 0); out != "" {
			_, err := fmt.Fprintln(w, out)
			return err
		}
		return nil
	case diagJSON:
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         diagfmt.PathModeAuto,
			BaseDir:          s.cfg.Root,
			Max:              s.maxDiag,
			IncludeNotes:     true,
		})
	}
	if bag.Len() == 0 {
		return nil
	}
	diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
		Color:     s.color,
		Context:   1,
		PathMode:  diagfmt.PathModeAuto,
		BaseDir:   s.cfg.Root,
		ShowNotes: true,
	})
	return nil
}

// runSummary holds the counters printed after generation.
type runSummary struct {
	files, written, unchanged, cached, skipped, failed int
}

func summarize(run *driver.Run) runSummary {
	sum := runSummary{files: len(run.Results)}
	for i := range run.Results {
		r := &run.Results[i]
		switch {
		case r.Err != nil:
			sum.failed++
		case r.Changed:
			sum.written++
		case r.Skipped != "":
			sum.skipped++
		default:
			sum.unchanged++
		}
		if r.Cached {
			sum.cached++
		}
	}
	return sum
}

func printSummary(w io.Writer, sum runSummary, check bool) {
	verb := "written"
	if check {
		verb = "out of date"
	}
	fmt.Fprintf(w, "%d files: %d %s, %d unchanged, %d skipped, %d cached",
		sum.files, sum.written, verb, sum.unchanged, sum.skipped, sum.cached)
	if sum.failed > 0 {
		fmt.Fprintf(w, ", %d failed", sum.failed)
	}
	fmt.Fprintln(w)
}

func printFailures(w io.Writer, run *driver.Run) {
	for i := range run.Results {
		if err := run.Results[i].Err; err != nil {
			fmt.Fprintf(w, "error: %v\n", err)
		}
	}
}
