package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cystub/internal/prof"
)

// setupProfiling inspects persistent profiling flags and enables the
// corresponding profilers. It returns a cleanup function that is safe to call
// multiple times.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	pf := cmd.Root().PersistentFlags()
	opts := prof.Options{}
	opts.CPU, _ = pf.GetString("cpu-profile")
	opts.Mem, _ = pf.GetString("mem-profile")
	opts.Trace, _ = pf.GetString("runtime-trace")
	if opts == (prof.Options{}) {
		return func() {}, nil
	}

	session, err := prof.Start(opts)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "profiling: %v\n", err)
		}
	}, nil
}
