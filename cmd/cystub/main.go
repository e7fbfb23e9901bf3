package main

import (
	"fmt"
	"os"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"cystub/internal/logger"
	"cystub/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "cystub",
	Short: "Stub generator for Cython sources",
	Long: `cystub scans Cython sources (.pyx, .pxd, .pxi) for declarations and writes
.pyi stubs next to them for type checkers and IDEs.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupRuntime,
}

// exitError carries a process exit code without an extra message; the
// command has already reported the problem.
type exitError struct{ code int }

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

func main() {
	// Устанавливаем версию для автоматического флага --version
	rootCmd.Version = version.Version

	err := rootCmd.Execute()
	teardownRuntime()
	os.Exit(exitCode(err))
}

func init() {
	rootCmd.AddCommand(genCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(cleanCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(versionCmd)

	// Глобальные флаги
	pf := rootCmd.PersistentFlags()
	pf.String("color", "auto", "colorize output (auto|on|off)")
	pf.Bool("quiet", false, "suppress non-essential output")
	pf.Bool("timings", false, "show timing information")
	pf.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	pf.String("config", "", "path to cystub.toml (default: search upwards from the working directory)")
	pf.CountP("verbose", "v", "increase log verbosity (-v, -vv)")
	pf.Bool("json-log", false, "emit logs as JSON")
	pf.String("cpu-profile", "", "write a CPU profile to file")
	pf.String("mem-profile", "", "write a heap profile to file on exit")
	pf.String("runtime-trace", "", "write a runtime trace to file")
}

func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var ee *exitError
	if errors.As(err, &ee) {
		return ee.code
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if hint := errors.FlattenHints(err); hint != "" {
		fmt.Fprintf(os.Stderr, "hint: %s\n", hint)
	}
	logger.L().Debugw("command failed", "error", fmt.Sprintf("%+v", err))
	return 1
}

// isTerminal проверяет, является ли файл терминалом
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
