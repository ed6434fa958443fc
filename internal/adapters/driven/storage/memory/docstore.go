// Package memory provides in-memory store implementations used by
// tests and as a lightweight stand-in for the SQLite store.
package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
)

// Ensure DocumentStore implements both read paths used by retrieval.
var (
	_ driven.DocumentStore  = (*DocumentStore)(nil)
	_ driven.VectorSearcher = (*DocumentStore)(nil)
)

// DocumentStore is an in-memory corpus store with brute-force vector
// search. Safe for concurrent use.
type DocumentStore struct {
	mu        sync.RWMutex
	documents map[string]domain.Document
	chunks    map[string]domain.Chunk
}

// NewDocumentStore creates a new in-memory document store.
func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		documents: make(map[string]domain.Document),
		chunks:    make(map[string]domain.Chunk),
	}
}

// SaveDocument stores a document record.
func (s *DocumentStore) SaveDocument(_ context.Context, doc *domain.Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents[doc.ID] = *doc
	return nil
}

// SaveChunks stores chunks with their embeddings.
func (s *DocumentStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, chunk := range chunks {
		s.chunks[chunk.ID] = chunk
	}
	return nil
}

// GetChunk retrieves a chunk by ID.
func (s *DocumentStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	chunk, ok := s.chunks[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &chunk, nil
}

// AllChunks returns every stored chunk ordered by section and position.
func (s *DocumentStore) AllChunks(_ context.Context) ([]domain.Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chunks := make([]domain.Chunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		chunks = append(chunks, chunk)
	}

	sort.Slice(chunks, func(i, j int) bool {
		if chunks[i].Section != chunks[j].Section {
			return chunks[i].Section < chunks[j].Section
		}
		return chunks[i].Position < chunks[j].Position
	})
	return chunks, nil
}

// CountChunks returns the number of stored chunks.
func (s *DocumentStore) CountChunks(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.chunks), nil
}

// DeleteAll removes all documents and chunks.
func (s *DocumentStore) DeleteAll(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.documents = make(map[string]domain.Document)
	s.chunks = make(map[string]domain.Chunk)
	return nil
}

// Close releases resources.
func (s *DocumentStore) Close() error {
	return nil
}

// Search scans stored embeddings and returns the k most similar
// chunks, best first, ties by ascending chunk ID.
func (s *DocumentStore) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var hits []driven.VectorHit
	for id, chunk := range s.chunks {
		if len(chunk.Embedding) == 0 {
			continue
		}
		hits = append(hits, driven.VectorHit{
			ChunkID:    id,
			Similarity: cosineSimilarity(query, chunk.Embedding),
		})
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Similarity != hits[j].Similarity {
			return hits[i].Similarity > hits[j].Similarity
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if k < len(hits) {
		hits = hits[:k]
	}
	return hits, nil
}

// cosineSimilarity maps the cosine of the angle between a and b to
// [0, 1]. Zero or mismatched vectors score 0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	cos := dot / (math.Sqrt(normA) * math.Sqrt(normB))
	return (cos + 1) / 2
}
