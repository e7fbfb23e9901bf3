package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cystub/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Write a default cystub.toml",
	Long: `Write cystub.toml with the built-in defaults into dir (default: the working
directory). The directory is created when missing; an existing file is left
alone.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func runInit(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) > 0 && args[0] != "" {
		target = args[0]
	}
	target, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	if st, err := os.Stat(target); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return err
		}
		if err := os.MkdirAll(target, 0o755); err != nil {
			return errors.Wrapf(err, "failed to create directory %q", target)
		}
	} else if !st.IsDir() {
		return errors.Newf("%q is not a directory", target)
	}

	path, err := config.WriteDefault(target)
	if err != nil {
		if errors.Is(err, config.ErrExists) {
			return errors.WithHint(err, "edit the existing file or remove it first")
		}
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", path)
	return nil
}
