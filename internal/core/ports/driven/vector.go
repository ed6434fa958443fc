package driven

import "context"

// VectorSearcher performs nearest-neighbour search over stored chunk
// embeddings. The store is a black box: it may hold fewer than k
// records, in which case it returns everything it has (no error).
type VectorSearcher interface {
	// Search finds the k most similar chunks to the query vector,
	// ordered by descending similarity. Ties are broken by ascending
	// chunk ID so results are reproducible.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)
}

// VectorHit is a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score (0-1).
	Similarity float64
}
