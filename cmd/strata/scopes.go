package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"strata/internal/driver"
	"strata/internal/project"
	"strata/internal/scopes"
	"strata/internal/ui"
)

var scopesCmd = &cobra.Command{
	Use:   "scopes [path]",
	Short: "Build and print the lexical scope tree",
	Long: `Scopes parses the given file or directory, builds the scope tree for
each source file, expands it fully, and prints it. Without an argument the
nearest strata.toml decides which directories to walk.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScopes,
}

func init() {
	scopesCmd.Flags().Bool("plain", false, "raw debug dump without styling")
	scopesCmd.Flags().Bool("positions", false, "print line:col ranges instead of byte offsets")
	scopesCmd.Flags().Bool("verify", false, "check structural invariants after expansion")
	scopesCmd.Flags().Int("jobs", 0, "parallel workers for directories (0 = GOMAXPROCS)")
}

func runScopes(cmd *cobra.Command, args []string) error {
	plain, _ := cmd.Flags().GetBool("plain")
	positions, _ := cmd.Flags().GetBool("positions")
	verify, _ := cmd.Flags().GetBool("verify")
	jobs, _ := cmd.Flags().GetInt("jobs")

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics(cmd),
		Jobs:           jobs,
		Verify:         verify,
	}

	targets, err := resolveTargets(args)
	if err != nil {
		return err
	}

	var results []*driver.FileResult
	for _, target := range targets {
		info, err := os.Stat(target)
		if err != nil {
			return err
		}
		if info.IsDir() {
			dirResults, err := driver.BuildDir(context.Background(), target, opts)
			if err != nil {
				return err
			}
			results = append(results, dirResults...)
		} else {
			res, err := driver.Build(target, opts)
			if err != nil {
				return err
			}
			results = append(results, res)
		}
	}
	if len(results) == 0 {
		return fmt.Errorf("no %s files found", driver.SourceExt)
	}

	treeOpts := ui.TreeOptions{
		Color:     useColor(cmd, os.Stdout),
		Positions: positions,
	}
	if isTerminal(os.Stdout) {
		if width, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			treeOpts.MaxWidth = width
		}
	}

	for _, res := range results {
		if res.Bag.Len() > 0 {
			ui.PrintDiagnostics(os.Stderr, res.Bag, res.FileSet, useColor(cmd, os.Stderr))
		}
		if len(results) > 1 {
			fmt.Fprintf(cmd.OutOrStdout(), "== %s\n", res.Path)
		}
		if plain {
			if err := scopes.Dump(res.Tree, cmd.OutOrStdout()); err != nil {
				return err
			}
			continue
		}
		if err := ui.RenderTree(cmd.OutOrStdout(), res.Tree, res.FileSet, treeOpts); err != nil {
			return err
		}
	}
	return nil
}

// resolveTargets maps the optional positional argument to concrete
// paths, falling back to the project manifest and then the CWD.
func resolveTargets(args []string) ([]string, error) {
	if len(args) == 1 {
		return []string{args[0]}, nil
	}
	manifest, ok, err := project.Load(".")
	if err != nil {
		return nil, err
	}
	if !ok {
		return []string{"."}, nil
	}
	return manifest.SourceDirs()
}
