package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"strata/internal/driver"
	"strata/internal/ui"
)

var parseCmd = &cobra.Command{
	Use:   "parse file.sta",
	Short: "Syntax-check a strata source file",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func runParse(cmd *cobra.Command, args []string) error {
	res, err := driver.Parse(args[0], driver.Options{MaxDiagnostics: maxDiagnostics(cmd)})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		ui.PrintDiagnostics(os.Stderr, res.Bag, res.FileSet, useColor(cmd, os.Stderr))
	}
	if res.Bag.HasErrors() {
		return fmt.Errorf("%s: %d diagnostic(s)", args[0], res.Bag.Len())
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return nil
}
