package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"graft/internal/diag"
	"graft/internal/diagfmt"
	"graft/internal/merge"
	"graft/internal/project"
	"graft/internal/resolve"
	"graft/internal/schema"
	"graft/internal/source"
	"graft/internal/sourcemap"
	"graft/internal/store"
)

var mergeCmd = &cobra.Command{
	Use:   "merge [flags] [root.gs]",
	Short: "Merge a root file and its imports into one output",
	Long: `Merge resolves the import closure of a root file, splices every imported
file in place of its directive and writes the merged text plus an optional
source map. Without an argument the root comes from graft.toml.`,
	Args:         cobra.MaximumNArgs(1),
	RunE:         runMerge,
	SilenceUsage: true,
}

func init() {
	mergeCmd.Flags().StringP("output", "o", "", "write merged text to file (default stdout)")
	mergeCmd.Flags().String("map", "", "write msgpack source map to file")
	mergeCmd.Flags().String("format", "pretty", "diagnostics format (pretty|json)")
	mergeCmd.Flags().Int("max-depth", 0, "maximum import chain depth")
	mergeCmd.Flags().Int("jobs", 0, "concurrent downloads per wave")
}

func runMerge(cmd *cobra.Command, args []string) error {
	maxDepth, _ := cmd.Flags().GetInt("max-depth")
	jobs, _ := cmd.Flags().GetInt("jobs")

	rootArg := ""
	if len(args) == 1 {
		rootArg = args[0]
	} else {
		manifest, ok, err := project.Load(".")
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("no root argument and no graft.toml found")
		}
		rootArg = manifest.RootURL()
		if maxDepth == 0 {
			maxDepth = manifest.Config.Preprocess.MaxDepth
		}
		if jobs == 0 {
			jobs = manifest.Config.Preprocess.Jobs
		}
	}
	if !strings.Contains(rootArg, "://") {
		abs, err := filepath.Abs(rootArg)
		if err != nil {
			return err
		}
		rootArg = abs
	}

	st := store.New()
	set := source.NewResourceSet()
	bag := diag.NewBag(maxDiagnostics(cmd))
	reporter := diag.BagReporter{Bag: bag}

	resolver := &resolve.Resolver{
		Store:    st,
		Schema:   schema.Script(),
		Reporter: reporter,
		Set:      set,
		MaxDepth: maxDepth,
		Jobs:     jobs,
	}
	rootID := st.CanonicalRoot(rootArg)
	resolved := resolver.Resolve(cmd.Context(), rootID)

	result := merge.Merge(cmd.Context(), resolved.Resources, &merge.Context{
		Reporter: reporter,
		Resolved: resolved.Resolved,
		Known:    resolved.Known,
		Set:      set,
	})

	bag.Sort()
	if err := renderDiagnostics(cmd, bag, set); err != nil {
		return err
	}

	if result.Tree != nil {
		if err := writeMergedText(cmd, result.Tree.Text()); err != nil {
			return err
		}
		if mapPath, _ := cmd.Flags().GetString("map"); mapPath != "" {
			payload := sourcemap.Payload(result.Map, rootID, result.Map.GeneratedLength())
			if err := sourcemap.WriteFile(mapPath, payload); err != nil {
				return fmt.Errorf("failed to write source map: %w", err)
			}
		}
	}

	if bag.HasErrors() {
		return fmt.Errorf("merge finished with errors")
	}
	return nil
}

func writeMergedText(cmd *cobra.Command, text string) error {
	outPath, _ := cmd.Flags().GetString("output")
	if outPath == "" {
		_, err := fmt.Fprint(cmd.OutOrStdout(), text)
		return err
	}
	return os.WriteFile(outPath, []byte(text), 0644)
}

func renderDiagnostics(cmd *cobra.Command, bag *diag.Bag, set *source.ResourceSet) error {
	if bag.Len() == 0 {
		return nil
	}
	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "pretty":
		diagfmt.Pretty(os.Stderr, bag, set, diagfmt.PrettyOpts{
			Color:       useColor(cmd, os.Stderr),
			ShowContext: true,
			ShowNotes:   true,
		})
		return nil
	case "json":
		return diagfmt.JSON(os.Stderr, bag, set, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
