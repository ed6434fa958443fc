// Package ai provides factory functions for creating embedding
// service adapters from validated settings.
package ai

import (
	"context"
	"fmt"
	"time"

	ollamaembed "github.com/revenue-labs/taxsearch/internal/adapters/driven/embedding/ollama"
	openaiembed "github.com/revenue-labs/taxsearch/internal/adapters/driven/embedding/openai"
	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
)

// pingTimeout is the maximum time to wait for connectivity validation.
const pingTimeout = 5 * time.Second

// CreateEmbeddingService builds the embedding adapter for the
// configured provider. Settings must already be validated.
func CreateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	switch settings.Provider {
	case domain.EmbeddingProviderOpenAI:
		return openaiembed.NewEmbeddingService(openaiembed.Config{
			APIKey:     settings.APIKey,
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		})

	case domain.EmbeddingProviderOllama:
		return ollamaembed.NewEmbeddingService(ollamaembed.Config{
			BaseURL:    settings.BaseURL,
			Model:      settings.Model,
			Timeout:    settings.Timeout,
			Dimensions: settings.Dimensions,
		}), nil

	default:
		return nil, fmt.Errorf("%w: unknown embedding provider %q",
			domain.ErrConfiguration, settings.Provider)
	}
}

// CreateAndValidateEmbeddingService builds the adapter and verifies
// the provider is reachable before committing to it, so a dead
// provider fails at startup rather than on the first query.
func CreateAndValidateEmbeddingService(settings domain.EmbeddingSettings) (driven.EmbeddingService, error) {
	svc, err := CreateEmbeddingService(settings)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()

	if err := svc.Ping(ctx); err != nil {
		svc.Close()
		return nil, fmt.Errorf("%w: %w", domain.ErrEmbeddingUnavailable, err)
	}

	return svc, nil
}
