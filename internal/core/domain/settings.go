package domain

import (
	"fmt"
	"time"
)

// EmbeddingProvider identifies the embedding backend.
type EmbeddingProvider string

// Supported embedding providers.
const (
	EmbeddingProviderOpenAI EmbeddingProvider = "openai"
	EmbeddingProviderOllama EmbeddingProvider = "ollama"
)

// EmbeddingSettings configures the embedding service.
type EmbeddingSettings struct {
	// Provider selects the backend ("openai" or "ollama").
	Provider EmbeddingProvider

	// Model is the embedding model name.
	Model string

	// BaseURL overrides the provider API endpoint.
	BaseURL string

	// APIKey authenticates with the provider (OpenAI only).
	APIKey string

	// Dimensions is the embedding vector size. Must match the
	// dimensionality of the ingested corpus.
	Dimensions int

	// Timeout bounds each provider call.
	Timeout time.Duration
}

// IsConfigured returns true if a provider is selected.
func (s EmbeddingSettings) IsConfigured() bool {
	return s.Provider != ""
}

// Settings enumerates every recognised configuration option.
// All values are validated once at startup; the pipeline never sees
// an invalid configuration.
type Settings struct {
	// DataDir is where the SQLite store lives.
	DataDir string

	// DefaultTopK is the result count when a query omits top_k.
	DefaultTopK int

	// Alpha is the default semantic/keyword weighting in [0, 1].
	Alpha float64

	// MinScore drops results below the threshold. Zero disables.
	MinScore float64

	// MaxContextChars bounds the assembled context length.
	MaxContextChars int

	// Embedding configures the embedding provider.
	Embedding EmbeddingSettings
}

// DefaultMaxContextChars is the context budget when unconfigured.
const DefaultMaxContextChars = 8000

// DefaultSettings returns settings with all defaults applied.
func DefaultSettings() Settings {
	return Settings{
		DefaultTopK:     DefaultTopK,
		Alpha:           DefaultAlpha,
		MaxContextChars: DefaultMaxContextChars,
		Embedding: EmbeddingSettings{
			Provider: EmbeddingProviderOllama,
			Timeout:  30 * time.Second,
		},
	}
}

// Validate checks every option's type and range. It returns an error
// wrapping ErrConfiguration so callers can fail fast at startup.
func (s Settings) Validate() error {
	if s.DefaultTopK < 1 || s.DefaultTopK > MaxTopK {
		return fmt.Errorf("%w: default_top_k must be in [1, %d], got %d",
			ErrConfiguration, MaxTopK, s.DefaultTopK)
	}
	if s.Alpha < 0 || s.Alpha > 1 {
		return fmt.Errorf("%w: alpha must be in [0, 1], got %g", ErrConfiguration, s.Alpha)
	}
	if s.MinScore < 0 || s.MinScore > 1 {
		return fmt.Errorf("%w: min_score must be in [0, 1], got %g", ErrConfiguration, s.MinScore)
	}
	if s.MaxContextChars < 1 {
		return fmt.Errorf("%w: max_context_chars must be positive, got %d",
			ErrConfiguration, s.MaxContextChars)
	}
	if !s.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider is required", ErrConfiguration)
	}
	switch s.Embedding.Provider {
	case EmbeddingProviderOpenAI:
		if s.Embedding.APIKey == "" {
			return fmt.Errorf("%w: openai embedding requires an API key", ErrConfiguration)
		}
	case EmbeddingProviderOllama:
		// No credentials required.
	default:
		return fmt.Errorf("%w: unknown embedding provider %q",
			ErrConfiguration, s.Embedding.Provider)
	}
	if s.Embedding.Timeout <= 0 {
		return fmt.Errorf("%w: embedding timeout must be positive", ErrConfiguration)
	}
	return nil
}
