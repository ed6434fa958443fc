package mcp

import (
	"github.com/revenue-labs/taxsearch/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the MCP
// server. Single injection point for dependency injection.
type Ports struct {
	// Retrieval provides the search pipeline.
	Retrieval driving.RetrievalService
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Retrieval == nil {
		return ErrMissingRetrievalService
	}
	return nil
}
