package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"graft/internal/diag"
	"graft/internal/diagfmt"
	"graft/internal/parser"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.gs",
	Short: "Parse a graft source file and dump the tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	res, set, bag, err := loadArgResource(cmd, args[0])
	if err != nil {
		return fmt.Errorf("parsing failed: %w", err)
	}

	tr := parser.Parse(res, diag.BagReporter{Bag: bag})
	reportBag(cmd, bag, set)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "pretty":
		return diagfmt.FormatTreePretty(cmd.OutOrStdout(), tr)
	case "json":
		return diagfmt.FormatTreeJSON(cmd.OutOrStdout(), tr)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
