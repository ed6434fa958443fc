// Package mcp provides an MCP (Model Context Protocol) server adapter
// for taxsearch. It lets AI assistants ground answers in tax-code
// passages via a search tool.
package mcp

import (
	"errors"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

// ErrMissingRetrievalService is returned when the retrieval service is not provided.
var ErrMissingRetrievalService = errors.New("mcp: retrieval service is required")

// redactError maps pipeline failures to stable, client-safe messages.
// Raw adapter error text (URLs, SQL, provider responses) never crosses
// the protocol boundary.
func redactError(err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidQuery):
		return errors.New("invalid query: query must be non-empty")
	case errors.Is(err, domain.ErrEmbeddingUnavailable):
		return errors.New("embedding provider unavailable, try again later")
	case errors.Is(err, domain.ErrStoreUnavailable):
		return errors.New("vector store unavailable, try again later")
	default:
		return errors.New("search failed")
	}
}
