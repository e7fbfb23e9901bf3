package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cystub/internal/driver"
	"cystub/internal/ui"
)

var genCmd = &cobra.Command{
	Use:   "gen [paths|globs...]",
	Short: "Generate .pyi stubs",
	Long: `Generate stubs for the given files, directories or glob patterns. Without
arguments the project root (the directory of cystub.toml, or the working
directory) is scanned.`,
	RunE: runGen,
}

func init() {
	genCmd.Flags().Bool("check", false, "report out-of-date stubs without writing them")
	genCmd.Flags().Bool("verify", false, "parse every stub as Python and check that it round-trips")
	genCmd.Flags().IntP("jobs", "j", 0, "parallel workers (0: config or GOMAXPROCS)")
	genCmd.Flags().String("ui", "auto", "progress UI (auto|on|off|bar)")
	genCmd.Flags().Bool("no-cache", false, "ignore and do not update the stub cache")
	genCmd.Flags().String("format", "text", "diagnostics format (text|short|json)")
}

func runGen(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	check, _ := cmd.Flags().GetBool("check")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	formatFlag, _ := cmd.Flags().GetString("format")
	uiFlag, _ := cmd.Flags().GetString("ui")
	if cmd.Flags().Changed("verify") {
		s.cfg.Run.Verify, _ = cmd.Flags().GetBool("verify")
	}
	if cmd.Flags().Changed("jobs") {
		s.cfg.Run.Jobs, _ = cmd.Flags().GetInt("jobs")
	}

	format := diagFormat(strings.ToLower(formatFlag))
	switch format {
	case diagText, diagShort, diagJSON:
	default:
		return errors.Newf("unsupported format %q (must be text, short or json)", formatFlag)
	}
	asJSON := format == diagJSON
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	if s.quiet || asJSON {
		mode = uiModeOff
	}

	disc, err := s.discovery()
	if err != nil {
		return err
	}
	files, err := disc.Expand(cmd.Context(), s.inputsOrRoot(args))
	if err != nil {
		return err
	}

	opts := s.driverOptions()
	opts.Check = check
	opts.Cache = s.openCache(noCache)

	run, err := generate(cmd.Context(), mode, files, opts)
	if err != nil {
		return err
	}
	return reportRun(cmd, s, run, check, format)
}

// generate runs the driver behind the selected progress display.
func generate(ctx context.Context, mode uiMode, files []string, opts driver.Options) (*driver.Run, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	switch {
	case shouldUseTUI(mode):
		return runGenerateWithUI(ctx, "cystub gen", files, opts)
	case mode == uiModeBar || (mode == uiModeAuto && isTerminal(os.Stderr)):
		bar := ui.NewBarSink(os.Stderr, len(files), "generating")
		opts.Sink = bar
		run, err := driver.Generate(ctx, files, opts)
		bar.Finish()
		return run, err
	default:
		return driver.Generate(ctx, files, opts)
	}
}

func reportRun(cmd *cobra.Command, s *session, run *driver.Run, check bool, format diagFormat) error {
	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	asJSON := format == diagJSON
	bag := collectDiagnostics(run, s)
	diagOut := errOut
	if asJSON {
		diagOut = out
	}
	if err := printDiagnostics(diagOut, bag, run.Files, s, format); err != nil {
		return errors.Wrap(err, "failed to print diagnostics")
	}
	printFailures(errOut, run)

	if !s.quiet && !asJSON {
		printSummary(errOut, summarize(run), check)
	}
	if s.timings {
		fmt.Fprint(errOut, run.Timings().Summary())
	}

	switch {
	case run.HasErrors():
		return &exitError{code: 1}
	case check && len(run.Changed()) > 0:
		if !s.quiet && !asJSON {
			for _, p := range run.Changed() {
				fmt.Fprintf(out, "%s\n", p)
			}
		}
		return &exitError{code: 1}
	}
	return nil
}
