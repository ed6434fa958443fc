package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var ingestRebuild bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [pdf]",
	Short: "Ingest a tax code PDF into the local corpus",
	Long: `Extracts text from the given PDF, splits it into section-aware
chunks, embeds each chunk, and stores the result in the local corpus.

Ingestion refuses to run over an existing corpus unless --rebuild is
given, in which case the corpus is dropped and rebuilt from scratch.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestRebuild, "rebuild", false, "drop the existing corpus and re-ingest")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	stats, err := ingestService.Ingest(cmd.Context(), args[0], ingestRebuild)
	if err != nil {
		return fmt.Errorf("ingest failed: %w", err)
	}

	cmd.Printf("Ingested %d pages, %d sections, %d chunks\n",
		stats.Pages, stats.Sections, stats.Chunks)
	return nil
}
