package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driving"
	"github.com/revenue-labs/taxsearch/internal/logger"
)

// Ensure RetrievalService implements the interface.
var _ driving.RetrievalService = (*RetrievalService)(nil)

// sectionQueryPattern detects direct section-number lookups such as
// "§ 164", "Sec. 24" or "section 401". Those queries are weighted
// towards keyword matching.
var sectionQueryPattern = regexp.MustCompile(`(?i)(§|section|sec\.?)\s*\d+`)

// RetrievalService orchestrates one stateless retrieval pass:
// embed the query, run hybrid similarity search, post-process the raw
// hits and assemble the grounding context. It owns no mutable state;
// concurrent requests are fully independent.
type RetrievalService struct {
	embedder driven.EmbeddingService
	vectors  driven.VectorSearcher
	keywords driven.KeywordSearcher
	docStore driven.DocumentStore
	settings domain.Settings
}

// NewRetrievalService creates a new retrieval service.
// The keywords searcher is optional; when nil, retrieval is purely
// semantic and alpha weighting is ignored.
func NewRetrievalService(
	embedder driven.EmbeddingService,
	vectors driven.VectorSearcher,
	keywords driven.KeywordSearcher,
	docStore driven.DocumentStore,
	settings domain.Settings,
) *RetrievalService {
	return &RetrievalService{
		embedder: embedder,
		vectors:  vectors,
		keywords: keywords,
		docStore: docStore,
		settings: settings,
	}
}

// Search runs the retrieval pipeline for one query.
//
// Any adapter failure aborts the whole request: no partial or empty
// result ever stands in for an error. An empty store yields an empty
// result with a nil error.
func (s *RetrievalService) Search(
	ctx context.Context, query string, opts domain.RetrievalOptions,
) (*domain.RetrievalResult, error) {
	logger.Section("Retrieval")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is empty", domain.ErrInvalidQuery)
	}

	k := opts.TopK
	if k <= 0 {
		k = s.settings.DefaultTopK
	}
	if k > domain.MaxTopK {
		k = domain.MaxTopK
	}

	alpha := s.resolveAlpha(query, opts.Alpha)

	minScore := opts.MinScore
	if minScore <= 0 {
		minScore = s.settings.MinScore
	}

	budget := opts.MaxContextChars
	if budget <= 0 {
		budget = s.settings.MaxContextChars
	}

	logger.Debug("Query: %q (k=%d, alpha=%.2f, min_score=%.2f)", query, k, alpha, minScore)

	// Fetch extra raw hits so dedup and filtering still leave k results.
	internalLimit := k * 3

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		logger.Warn("Query embedding failed: %v", err)
		return nil, fmt.Errorf("%w: embed query: %w", domain.ErrEmbeddingUnavailable, err)
	}
	logger.Debug("Query embedding: %d dimensions", len(embedding))

	semHits, err := s.vectors.Search(ctx, embedding, internalLimit)
	if err != nil {
		logger.Warn("Vector search failed: %v", err)
		return nil, fmt.Errorf("%w: vector search: %w", domain.ErrStoreUnavailable, err)
	}
	logger.Debug("Vector search: %d hits", len(semHits))

	semantic := make([]rankedChunk, len(semHits))
	for i, h := range semHits {
		semantic[i] = rankedChunk{chunkID: h.ChunkID, score: h.Similarity}
	}

	var ranked []rankedChunk
	if s.keywords != nil {
		keyHits, err := s.keywords.Search(ctx, query, internalLimit)
		if err != nil {
			logger.Warn("Keyword search failed: %v", err)
			return nil, fmt.Errorf("%w: keyword search: %w", domain.ErrStoreUnavailable, err)
		}
		logger.Debug("Keyword search: %d hits", len(keyHits))

		keyword := make([]rankedChunk, len(keyHits))
		for i, h := range keyHits {
			keyword[i] = rankedChunk{chunkID: h.ChunkID, score: h.Score}
		}

		ranked = mergeHybrid(semantic, keyword, alpha)
	} else {
		ranked = rankRaw(semantic)
	}

	ranked = filterMinScore(ranked, minScore)
	ranked = truncateTopK(ranked, k)
	logger.Debug("Post-processed: %d results", len(ranked))

	scored, err := s.hydrate(ctx, ranked)
	if err != nil {
		return nil, err
	}

	scored, contextText := assembleContext(scored, budget)
	logger.Info("Final results: %d (context %d chars)", len(scored), len(contextText))

	return &domain.RetrievalResult{
		Query:   query,
		Chunks:  scored,
		Context: contextText,
		Alpha:   alpha,
	}, nil
}

// resolveAlpha picks the semantic/keyword weighting for a query.
// A negative option means "auto": section-number queries lean on
// keyword matching, everything else uses the configured default.
func (s *RetrievalService) resolveAlpha(query string, alpha float64) float64 {
	if alpha >= 0 {
		if alpha > 1 {
			return 1
		}
		return alpha
	}
	if sectionQueryPattern.MatchString(query) {
		logger.Debug("Section-number query detected, alpha=%.2f", domain.SectionQueryAlpha)
		return domain.SectionQueryAlpha
	}
	return s.settings.Alpha
}

// hydrate resolves ranked chunk IDs into full scored chunks.
// Chunks deleted since indexing are skipped; any other store error is
// fatal for the request.
func (s *RetrievalService) hydrate(ctx context.Context, ranked []rankedChunk) ([]domain.ScoredChunk, error) {
	results := make([]domain.ScoredChunk, 0, len(ranked))

	for _, rc := range ranked {
		chunk, err := s.docStore.GetChunk(ctx, rc.chunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: get chunk %s: %w", domain.ErrStoreUnavailable, rc.chunkID, err)
		}

		results = append(results, domain.ScoredChunk{
			ChunkID: chunk.ID,
			Content: chunk.Content,
			Section: chunk.Section,
			Page:    chunk.Page,
			Score:   rc.score,
		})
	}

	return results, nil
}
