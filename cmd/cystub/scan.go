package main

import (
	"fmt"
	"io"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"cystub/internal/diag"
	"cystub/internal/source"
	"cystub/internal/stubgen"
)

var scanCmd = &cobra.Command{
	Use:   "scan <file|->",
	Short: "Print the stub of one file to stdout",
	Long: `Convert a single file (or stdin with "-") and print the stub. Nothing is
written to disk. With --residue the unparsed text follows on stderr.`,
	Args: cobra.ExactArgs(1),
	RunE: runScan,
}

func init() {
	scanCmd.Flags().Bool("residue", false, "print the unparsed residue to stderr")
}

func runScan(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	showResidue, _ := cmd.Flags().GetBool("residue")

	fs := source.NewFileSet()
	var id source.FileID
	if args[0] == "-" {
		data, readErr := io.ReadAll(cmd.InOrStdin())
		if readErr != nil {
			return errors.Wrap(readErr, "failed to read stdin")
		}
		id = fs.AddVirtual("<stdin>", data)
	} else {
		id, err = fs.Load(args[0])
		if err != nil {
			return errors.Wrapf(err, "failed to load %s", args[0])
		}
	}

	res := stubgen.Convert(fs.Get(id), stubgen.Options{
		Format:         s.cfg.FormatOptions(s.hooks),
		MaxDiagnostics: s.maxDiag,
	})
	if _, err := io.WriteString(cmd.OutOrStdout(), res.Stub); err != nil {
		return err
	}

	errOut := cmd.ErrOrStderr()
	bag := res.Bag
	switch {
	case s.quiet:
		bag.Filter(diag.SevError)
	case s.verbose == 0:
		bag.Filter(diag.SevWarning)
	}
	bag.Sort()
	if err := printDiagnostics(errOut, limitBag(bag, s.maxDiag), fs, s, diagText); err != nil {
		return err
	}
	if showResidue && res.Residue != "" {
		fmt.Fprintf(errOut, "--- residue (%d chars) ---\n%s\n", res.Coverage.Chars(), res.Residue)
	}
	if res.Bag.HasErrors() {
		return &exitError{code: 1}
	}
	return nil
}

