package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/revenue-labs/taxsearch/internal/adapters/driving/httpapi"
)

var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP search API",
	Long: `Start the JSON HTTP API for search.

Endpoints:
  POST /search          {"query": "...", "top_k": 5, "alpha": 0.5}
  GET  /search/{query}  with optional top_k and alpha query params
  GET  /healthz`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "listen address")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if err := initServices(cmd.Context()); err != nil {
		return err
	}

	server, err := httpapi.NewServer(retrievalService, httpapi.WithChunkCounter(store.CountChunks))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "HTTP API listening on %s\n", serveAddr)
	return server.Run(cmd.Context(), serveAddr)
}
