package services

import (
	"context"
	"fmt"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
)

// mockEmbedder returns a fixed vector, or fails when err is set.
type mockEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (m *mockEmbedder) Embed(_ context.Context, _ string) ([]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	return m.vector, nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.err != nil {
		return nil, m.err
	}
	out := make([][]float32, len(texts))
	for i := range texts {
		out[i] = m.vector
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int { return len(m.vector) }

func (m *mockEmbedder) ModelName() string { return "mock-embedder" }

func (m *mockEmbedder) Ping(_ context.Context) error { return m.err }

func (m *mockEmbedder) Close() error { return nil }

// mockVectorSearcher returns canned hits.
type mockVectorSearcher struct {
	hits []driven.VectorHit
	err  error
}

func (m *mockVectorSearcher) Search(_ context.Context, _ []float32, _ int) ([]driven.VectorHit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockKeywordSearcher returns canned hits.
type mockKeywordSearcher struct {
	hits []driven.KeywordHit
	err  error
}

func (m *mockKeywordSearcher) Search(_ context.Context, _ string, _ int) ([]driven.KeywordHit, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.hits, nil
}

// mockDocStore serves chunks from a map.
type mockDocStore struct {
	chunks map[string]domain.Chunk
	err    error
}

func newMockDocStore(chunks ...domain.Chunk) *mockDocStore {
	m := &mockDocStore{chunks: make(map[string]domain.Chunk, len(chunks))}
	for _, c := range chunks {
		m.chunks[c.ID] = c
	}
	return m
}

func (m *mockDocStore) SaveDocument(_ context.Context, _ *domain.Document) error { return m.err }

func (m *mockDocStore) SaveChunks(_ context.Context, chunks []domain.Chunk) error {
	if m.err != nil {
		return m.err
	}
	for _, c := range chunks {
		m.chunks[c.ID] = c
	}
	return nil
}

func (m *mockDocStore) GetChunk(_ context.Context, id string) (*domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	c, ok := m.chunks[id]
	if !ok {
		return nil, fmt.Errorf("%w: chunk %s", domain.ErrNotFound, id)
	}
	return &c, nil
}

func (m *mockDocStore) AllChunks(_ context.Context) ([]domain.Chunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	out := make([]domain.Chunk, 0, len(m.chunks))
	for _, c := range m.chunks {
		out = append(out, c)
	}
	return out, nil
}

func (m *mockDocStore) CountChunks(_ context.Context) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	return len(m.chunks), nil
}

func (m *mockDocStore) DeleteAll(_ context.Context) error {
	if m.err != nil {
		return m.err
	}
	m.chunks = make(map[string]domain.Chunk)
	return nil
}

func (m *mockDocStore) Close() error { return nil }

// testSettings are valid defaults for pipeline tests.
func testSettings() domain.Settings {
	s := domain.DefaultSettings()
	return s
}

// chunkFixture builds a stored chunk with content derived from its ID.
func chunkFixture(id, section string, page int) domain.Chunk {
	return domain.Chunk{
		ID:       id,
		Content:  "Content of " + id,
		Section:  section,
		Page:     page,
		Position: 0,
	}
}
