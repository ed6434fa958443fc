package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/logger"
)

// SearchInput is the input schema for the search_tax_code tool.
type SearchInput struct {
	Query string `json:"query" jsonschema:"the search query, e.g. 'SALT deduction limits' or 'Section 164'"`
	TopK  int    `json:"top_k,omitempty" jsonschema:"number of passages to return (default 5, max 20)"`
}

// SearchOutput is the output schema for the search_tax_code tool.
type SearchOutput struct {
	Context string         `json:"context"`
	Sources []SourceOutput `json:"sources"`
	Count   int            `json:"count"`
}

// SourceOutput identifies one retrieved passage for traceability.
type SourceOutput struct {
	ChunkID string  `json:"chunk_id"`
	Section string  `json:"section"`
	Page    int     `json:"page"`
	Score   float64 `json:"score"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "search_tax_code",
		Description: "Search the US Tax Code (Title 26 - Internal Revenue Code) for relevant passages. " +
			"Returns the top k most relevant passages with section references and page numbers. " +
			"Useful for finding information about tax deductions, credits, income rules, " +
			"and other tax law provisions.",
	}, s.handleSearch)
}

// handleSearch handles the search_tax_code tool invocation.
func (s *Server) handleSearch(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchInput,
) (*mcp.CallToolResult, SearchOutput, error) {
	opts := domain.RetrievalOptions{
		TopK:  domain.ClampTopK(input.TopK),
		Alpha: -1, // auto
	}

	logger.Info("MCP search: %q (top_k=%d)", input.Query, opts.TopK)

	result, err := s.ports.Retrieval.Search(ctx, input.Query, opts)
	if err != nil {
		logger.Warn("MCP search failed: %v", err)
		return nil, SearchOutput{}, redactError(err)
	}

	output := SearchOutput{
		Context: result.Context,
		Sources: make([]SourceOutput, len(result.Chunks)),
		Count:   len(result.Chunks),
	}
	for i, c := range result.Chunks {
		output.Sources[i] = SourceOutput{
			ChunkID: c.ChunkID,
			Section: c.Section,
			Page:    c.Page,
			Score:   c.Score,
		}
	}

	return nil, output, nil
}
