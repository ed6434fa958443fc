package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

var (
	searchTopK  int
	searchAlpha float64
	searchJSON  bool
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the tax code",
	Long: `Searches the ingested tax code corpus.
Combines semantic (vector) and keyword (BM25) search, with extra weight
on keyword matching for section-number queries like "Section 164".`,
	Args: cobra.ExactArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchTopK, "top-k", "n", 0, "number of results (default 5, max 20)")
	searchCmd.Flags().Float64Var(&searchAlpha, "alpha", -1, "semantic weight in [0,1] (default: automatic)")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	opts := domain.RetrievalOptions{
		TopK:  domain.ClampTopK(searchTopK),
		Alpha: searchAlpha,
	}

	result, err := retrievalService.Search(cmd.Context(), args[0], opts)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if searchJSON {
		return outputSearchJSON(cmd, result)
	}

	return outputSearchText(cmd, result)
}

func outputSearchJSON(cmd *cobra.Command, result *domain.RetrievalResult) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSearchText(cmd *cobra.Command, result *domain.RetrievalResult) error {
	if len(result.Chunks) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println(result.Context)
	return nil
}
