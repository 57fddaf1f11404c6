package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"graft/internal/diag"
	"graft/internal/diagfmt"
	"graft/internal/lexer"
	"graft/internal/source"
	"graft/internal/store"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.gs",
	Short: "Tokenize a graft source file",
	Long:  `Tokenize breaks down a graft source file into its constituent tokens, including the attached trivia`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

// loadArgResource fetches one file argument into a fresh resource set.
func loadArgResource(cmd *cobra.Command, arg string) (*source.Resource, *source.ResourceSet, *diag.Bag, error) {
	st := store.New()
	id := st.CanonicalRoot(arg)
	data, err := st.Load(cmd.Context(), id)
	if err != nil {
		return nil, nil, nil, err
	}
	set := source.NewResourceSet()
	res := set.Add(id, string(id), data, 0)
	return res, set, diag.NewBag(maxDiagnostics(cmd)), nil
}

func reportBag(cmd *cobra.Command, bag *diag.Bag, set *source.ResourceSet) {
	if bag.Len() == 0 {
		return
	}
	bag.Sort()
	diagfmt.Pretty(os.Stderr, bag, set, diagfmt.PrettyOpts{
		Color:       useColor(cmd, os.Stderr),
		ShowContext: true,
		ShowNotes:   true,
	})
}

func runTokenize(cmd *cobra.Command, args []string) error {
	res, set, bag, err := loadArgResource(cmd, args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	tokens := lexer.New(res, diag.BagReporter{Bag: bag}).Tokenize()
	reportBag(cmd, bag, set)

	format, _ := cmd.Flags().GetString("format")
	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), tokens, set)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
