package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/time/rate"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driving"
	"github.com/revenue-labs/taxsearch/internal/ingest/sections"
	"github.com/revenue-labs/taxsearch/internal/ingest/textsplitter"
	"github.com/revenue-labs/taxsearch/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// DefaultEmbedBatchSize is the number of chunks embedded per provider
// call during ingestion.
const DefaultEmbedBatchSize = 64

// defaultEmbedRate caps embedding calls per second so a long ingest
// stays inside provider quotas.
const defaultEmbedRate = 2

// IngestService builds the searchable corpus: load the PDF, parse it
// into sections, split sections into chunks, embed the chunks and
// persist everything. It is the only writer; runs are one-shot and
// never concurrent.
type IngestService struct {
	loader    driven.CorpusLoader
	embedder  driven.EmbeddingService
	store     driven.DocumentStore
	splitter  textsplitter.RecursiveCharacter
	limiter   *rate.Limiter
	batchSize int
}

// IngestOption configures the ingest service.
type IngestOption func(*IngestService)

// WithBatchSize sets the embedding batch size.
func WithBatchSize(n int) IngestOption {
	return func(s *IngestService) {
		if n > 0 {
			s.batchSize = n
		}
	}
}

// WithEmbedLimiter overrides the embedding call rate limiter.
func WithEmbedLimiter(l *rate.Limiter) IngestOption {
	return func(s *IngestService) {
		if l != nil {
			s.limiter = l
		}
	}
}

// WithSplitter overrides the text splitter.
func WithSplitter(sp textsplitter.RecursiveCharacter) IngestOption {
	return func(s *IngestService) {
		s.splitter = sp
	}
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	loader driven.CorpusLoader,
	embedder driven.EmbeddingService,
	store driven.DocumentStore,
	opts ...IngestOption,
) *IngestService {
	s := &IngestService{
		loader:    loader,
		embedder:  embedder,
		store:     store,
		splitter:  textsplitter.New(),
		limiter:   rate.NewLimiter(rate.Limit(defaultEmbedRate), 1),
		batchSize: DefaultEmbedBatchSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ingest runs the full pipeline for the document at path.
func (s *IngestService) Ingest(ctx context.Context, path string, rebuild bool) (*driving.IngestStats, error) {
	logger.Section("Ingestion")

	count, err := s.store.CountChunks(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: count chunks: %w", domain.ErrStoreUnavailable, err)
	}
	if count > 0 {
		if !rebuild {
			return nil, fmt.Errorf("%w: store holds %d chunks", domain.ErrCorpusExists, count)
		}
		logger.Info("Rebuilding: dropping %d existing chunks", count)
		if err := s.store.DeleteAll(ctx); err != nil {
			return nil, fmt.Errorf("%w: delete corpus: %w", domain.ErrStoreUnavailable, err)
		}
	}

	pages, err := s.loader.LoadPages(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("load pages: %w", err)
	}
	if len(pages) == 0 {
		return nil, fmt.Errorf("no extractable text in %s", path)
	}
	logger.Info("Loaded %d pages", len(pages))

	parsed := sections.Parse(pages)
	logger.Info("Parsed %d sections", len(parsed))

	doc := &domain.Document{
		ID:        uuid.New().String(),
		URI:       path,
		Title:     domain.DefaultSource,
		Pages:     len(pages),
		CreatedAt: time.Now().UTC(),
	}

	chunks := s.chunkSections(doc.ID, parsed)
	logger.Info("Created %d chunks", len(chunks))

	if err := s.embedChunks(ctx, chunks); err != nil {
		return nil, err
	}

	if err := s.store.SaveDocument(ctx, doc); err != nil {
		return nil, fmt.Errorf("%w: save document: %w", domain.ErrStoreUnavailable, err)
	}
	if err := s.store.SaveChunks(ctx, chunks); err != nil {
		return nil, fmt.Errorf("%w: save chunks: %w", domain.ErrStoreUnavailable, err)
	}

	return &driving.IngestStats{
		Pages:    len(pages),
		Sections: len(parsed),
		Chunks:   len(chunks),
	}, nil
}

// chunkSections splits each section's text, carrying the section
// header and page through to every chunk for traceability.
func (s *IngestService) chunkSections(documentID string, parsed []sections.Section) []domain.Chunk {
	var chunks []domain.Chunk

	for _, sec := range parsed {
		parts := s.splitter.SplitText(sec.Text)
		for i, part := range parts {
			chunks = append(chunks, domain.Chunk{
				ID:         uuid.New().String(),
				DocumentID: documentID,
				Content:    part,
				Section:    sec.Header,
				Page:       sec.Page,
				Position:   i,
				Metadata: map[string]any{
					"source":       domain.DefaultSource,
					"total_chunks": len(parts),
				},
			})
		}
	}

	return chunks
}

// embedChunks fills in chunk embeddings batch by batch, rate-limited.
func (s *IngestService) embedChunks(ctx context.Context, chunks []domain.Chunk) error {
	for start := 0; start < len(chunks); start += s.batchSize {
		end := start + s.batchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%w: rate limiter: %w", domain.ErrEmbeddingUnavailable, err)
		}

		texts := make([]string, end-start)
		for i := start; i < end; i++ {
			texts[i-start] = chunks[i].Content
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return fmt.Errorf("%w: embed batch %d-%d: %w", domain.ErrEmbeddingUnavailable, start, end, err)
		}
		if len(embeddings) != len(texts) {
			return fmt.Errorf("%w: expected %d embeddings, got %d",
				domain.ErrEmbeddingUnavailable, len(texts), len(embeddings))
		}

		for i := start; i < end; i++ {
			chunks[i].Embedding = embeddings[i-start]
		}

		logger.Debug("Embedded chunks %d-%d of %d", start, end, len(chunks))
	}

	return nil
}
