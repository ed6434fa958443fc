package domain

import "errors"

// Domain errors represent the retrieval failure taxonomy.
// The pipeline never substitutes an empty result for one of these:
// callers can always distinguish "no matches" from "retrieval failed".
var (
	// ErrInvalidQuery indicates empty or malformed query input.
	// This is a caller error and must not be retried.
	ErrInvalidQuery = errors.New("invalid query")

	// ErrEmbeddingUnavailable indicates the embedding provider failed
	// or timed out. Surfaced as-is, never retried automatically.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrStoreUnavailable indicates the vector store failed or is
	// unreachable. Fatal for the request.
	ErrStoreUnavailable = errors.New("vector store unavailable")

	// ErrConfiguration indicates missing or malformed configuration.
	// Raised once at startup; fatal.
	ErrConfiguration = errors.New("configuration error")

	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrCorpusExists indicates the store already holds an ingested
	// corpus and a rebuild was not requested.
	ErrCorpusExists = errors.New("corpus already ingested")
)
