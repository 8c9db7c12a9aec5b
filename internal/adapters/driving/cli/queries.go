package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var queriesCmd = &cobra.Command{
	Use:   "queries <file>",
	Short: "Show the search queries that would be issued for a document",
	Long: `Build and print the web search query set for a document without
running retrieval or scoring. Useful for inspecting how a document
will be matched against published content.`,
	Args: cobra.ExactArgs(1),
	RunE: runQueries,
}

func init() {
	rootCmd.AddCommand(queriesCmd)
}

func runQueries(cmd *cobra.Command, args []string) error {
	if err := ensureServices(); err != nil {
		return err
	}

	raw, err := readInput(args[0])
	if err != nil {
		return err
	}

	normalised, err := registry.Normalise(cmd.Context(), raw)
	if err != nil {
		return fmt.Errorf("normalise %s: %w", raw.URI, err)
	}

	queries := queryService.BuildQueries(cmd.Context(), normalised.Document.Content)
	for i, q := range queries {
		cmd.Printf("%2d. %s\n", i+1, q)
	}
	return nil
}
