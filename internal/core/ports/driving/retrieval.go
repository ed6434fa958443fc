package driving

import (
	"context"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

// RetrievalService exposes the retrieval pipeline to serving shims
// (CLI, MCP, HTTP). One call is one stateless pipeline pass.
type RetrievalService interface {
	// Search embeds the query, runs hybrid similarity search,
	// post-processes and assembles the grounding context.
	Search(ctx context.Context, query string, opts domain.RetrievalOptions) (*domain.RetrievalResult, error)
}
