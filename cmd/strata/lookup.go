package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"strata/internal/driver"
	"strata/internal/scopes"
	"strata/internal/ui"
)

var lookupCmd = &cobra.Command{
	Use:   "lookup file.sta name",
	Short: "Resolve an unqualified name at a source position",
	Long: `Lookup builds the scope tree for the file, then walks it from the
innermost scope at --at outward, printing every declaration the name could
refer to, innermost first.`,
	Args: cobra.ExactArgs(2),
	RunE: runLookup,
}

func init() {
	lookupCmd.Flags().Uint32("at", 0, "byte offset of the use site")
	lookupCmd.Flags().Bool("first", false, "stop at the innermost match")
	_ = lookupCmd.MarkFlagRequired("at")
}

func runLookup(cmd *cobra.Command, args []string) error {
	path, name := args[0], args[1]
	at, _ := cmd.Flags().GetUint32("at")
	first, _ := cmd.Flags().GetBool("first")

	res, err := driver.Build(path, driver.Options{MaxDiagnostics: maxDiagnostics(cmd)})
	if err != nil {
		return err
	}
	if res.Bag.Len() > 0 {
		ui.PrintDiagnostics(os.Stderr, res.Bag, res.FileSet, useColor(cmd, os.Stderr))
	}
	if span := res.FileSet.Span(res.FileID); !span.Contains(at) && at != span.End {
		return fmt.Errorf("offset %d is outside %s (%d bytes)", at, path, span.End)
	}

	var collector scopes.Collector
	if first {
		collector.Max = 1
	}
	cascade := scopes.Resolve(res.Tree, name, at, &collector)

	color.NoColor = !useColor(cmd, os.Stdout)
	out := cmd.OutOrStdout()
	if len(collector.Results) == 0 {
		fmt.Fprintf(out, "%s: no declaration found (%s)\n", name, cascade)
		return nil
	}
	nameStyle := color.New(color.Bold)
	visStyle := color.New(color.FgCyan)
	for _, r := range collector.Results {
		start, _ := res.FileSet.Resolve(r.Span)
		fmt.Fprintf(out, "%s  %s  %s:%d:%d\n",
			nameStyle.Sprint(name), visStyle.Sprint(r.Vis.String()),
			res.File.Path, start.Line, start.Col)
	}
	fmt.Fprintf(out, "lookup is %s\n", cascade)
	return nil
}
