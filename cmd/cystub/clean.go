package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"cystub/internal/driver"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [paths...]",
	Short: "Drop the stub cache",
	Long: `Remove every cached stub. With --stubs the generated stub files of the
given sources (default: the project root) are deleted as well.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().Bool("stubs", false, "also delete generated stub files")
}

func runClean(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	stubs, _ := cmd.Flags().GetBool("stubs")

	if cache := s.openCache(false); cache != nil {
		if err := cache.DropAll(); err != nil {
			return err
		}
		if !s.quiet {
			fmt.Fprintf(out, "removed cache %s\n", cache.Dir())
		}
	}
	if !stubs {
		return nil
	}

	disc, err := s.discovery()
	if err != nil {
		return err
	}
	files, err := disc.Expand(cmd.Context(), s.inputsOrRoot(args))
	if err != nil {
		return err
	}
	removed, err := driver.RemoveStubs(cmd.Context(), files, s.cfg.Output.Extension)
	if !s.quiet {
		for _, p := range removed {
			fmt.Fprintf(out, "removed %s\n", p)
		}
	}
	return err
}
