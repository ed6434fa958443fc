// Package cli implements the taxsearch command-line interface.
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/revenue-labs/taxsearch/internal/adapters/driven/ai"
	"github.com/revenue-labs/taxsearch/internal/adapters/driven/config/file"
	"github.com/revenue-labs/taxsearch/internal/adapters/driven/index/bm25"
	"github.com/revenue-labs/taxsearch/internal/adapters/driven/storage/sqlite"
	pdfloader "github.com/revenue-labs/taxsearch/internal/ingest/pdf"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driving"
	"github.com/revenue-labs/taxsearch/internal/core/services"
	"github.com/revenue-labs/taxsearch/internal/logger"
)

var version = "0.1.0"

var (
	verboseFlag bool
	configFlag  string
)

// Services are wired lazily by initServices and shared across commands.
var (
	settings         domain.Settings
	store            *sqlite.Store
	retrievalService driving.RetrievalService
	ingestService    driving.IngestService
)

var rootCmd = &cobra.Command{
	Use:   "taxsearch",
	Short: "Search the US Tax Code",
	Long: `taxsearch is a retrieval tool for the US Tax Code (Title 26).

It ingests the tax code PDF into a local corpus, then answers queries
with hybrid semantic + keyword search. Results can be consumed from
the command line, over an HTTP API, or by AI assistants through the
Model Context Protocol (MCP).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "path to config file (default ~/.taxsearch/config.toml)")
}

// Execute runs the root command. The context is cancelled on SIGINT
// or SIGTERM so long-running servers shut down cleanly.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	defer closeServices()
	return rootCmd.ExecuteContext(ctx)
}

// initServices wires the full service graph from configuration.
// Commands that need the pipeline call this from their RunE; version
// and help stay dependency-free.
func initServices(ctx context.Context) error {
	if retrievalService != nil {
		return nil
	}

	var err error
	settings, err = file.Load(configFlag)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	store, err = sqlite.NewStore(settings.DataDir)
	if err != nil {
		return fmt.Errorf("opening corpus store: %w", err)
	}

	// Fail fast on a dead provider instead of on the first query.
	embedder, err := ai.CreateAndValidateEmbeddingService(settings.Embedding)
	if err != nil {
		return err
	}

	// Keyword index is rebuilt from the corpus on startup. An empty
	// corpus leaves it nil so retrieval runs purely semantic.
	var keywords driven.KeywordSearcher
	chunks, err := store.AllChunks(ctx)
	if err != nil {
		return fmt.Errorf("loading corpus for keyword index: %w", err)
	}
	if len(chunks) > 0 {
		idx := bm25.New()
		idx.Build(chunks)
		logger.Debug("BM25 index built over %d chunks", idx.Len())
		keywords = idx
	}

	retrievalService = services.NewRetrievalService(embedder, store, keywords, store, settings)
	ingestService = services.NewIngestService(pdfloader.NewLoader(), embedder, store)

	return nil
}

func closeServices() {
	if store != nil {
		store.Close() //nolint:errcheck
	}
}
