package driven

import (
	"context"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

// DocumentStore persists documents and their chunks.
// Retrieval reads chunks; only ingestion writes, and ingestion never
// runs concurrently with itself.
type DocumentStore interface {
	// SaveDocument stores a document record.
	SaveDocument(ctx context.Context, doc *domain.Document) error

	// SaveChunks stores chunks with their embeddings.
	SaveChunks(ctx context.Context, chunks []domain.Chunk) error

	// GetChunk retrieves a chunk by ID. Returns domain.ErrNotFound
	// if it does not exist.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// AllChunks returns every stored chunk. Used to build the keyword
	// index at startup; embeddings are omitted to save memory.
	AllChunks(ctx context.Context) ([]domain.Chunk, error)

	// CountChunks returns the number of stored chunks.
	CountChunks(ctx context.Context) (int, error)

	// DeleteAll removes all documents and chunks (rebuild).
	DeleteAll(ctx context.Context) error

	// Close releases resources.
	Close() error
}

// CorpusLoader reads a source document into pages of plain text.
type CorpusLoader interface {
	// LoadPages extracts the text of each page, 1-indexed.
	LoadPages(ctx context.Context, path string) ([]Page, error)
}

// Page is one page of extracted corpus text.
type Page struct {
	// Number is the 1-indexed page number.
	Number int

	// Text is the whitespace-normalised page text.
	Text string
}
