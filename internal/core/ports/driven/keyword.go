package driven

import "context"

// KeywordSearcher provides lexical (BM25) search over chunk text.
// It complements VectorSearcher in hybrid retrieval.
type KeywordSearcher interface {
	// Search returns chunk IDs matching the query terms with their
	// BM25 scores, best first. Ties are broken by ascending chunk ID.
	Search(ctx context.Context, query string, limit int) ([]KeywordHit, error)
}

// KeywordHit is a lexical search result.
type KeywordHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Score is the raw BM25 score (unbounded, >= 0).
	Score float64
}
