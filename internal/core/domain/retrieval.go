package domain

// Retrieval parameter bounds enforced at the serving boundaries.
const (
	// DefaultTopK is the number of results returned when the caller
	// does not specify one.
	DefaultTopK = 5

	// MaxTopK caps the number of results a single query may request.
	MaxTopK = 20

	// DefaultAlpha balances semantic (1.0) against keyword (0.0) scores.
	DefaultAlpha = 0.5

	// SectionQueryAlpha is used when the query references a section
	// number directly; keyword matching works better for exact lookups.
	SectionQueryAlpha = 0.3
)

// RetrievalOptions configures a single retrieval request.
type RetrievalOptions struct {
	// TopK is the maximum number of results. Must be >= 1.
	TopK int

	// Alpha weights semantic vs keyword scores in hybrid search.
	// 0 is pure keyword, 1 is pure semantic. Negative means "auto":
	// DefaultAlpha, or SectionQueryAlpha for section-number queries.
	Alpha float64

	// MinScore drops results scoring below the threshold after
	// normalisation. Zero means no filtering.
	MinScore float64

	// MaxContextChars bounds the assembled context length.
	// Zero means the configured default.
	MaxContextChars int
}

// ScoredChunk is one entry of a RetrievalResult.
type ScoredChunk struct {
	// ChunkID identifies the matched chunk.
	ChunkID string

	// Content is the chunk text.
	Content string

	// Section is the source locator (tax-code section header).
	Section string

	// Page is the page number where the section starts.
	Page int

	// Score is the combined relevance score in [0, 1].
	Score float64

	// Truncated marks a chunk whose content was cut to fit the
	// context budget.
	Truncated bool
}

// RetrievalResult is the ordered outcome of one retrieval request.
// Invariants: len(Chunks) <= TopK, chunk IDs are unique, and scores
// are monotonically non-increasing (ties broken by ascending ID).
type RetrievalResult struct {
	// Query is the original query text.
	Query string

	// Chunks are the ranked matches, best first.
	Chunks []ScoredChunk

	// Context is the assembled text blob for downstream grounding.
	Context string

	// Alpha is the weighting that produced the scores.
	Alpha float64
}

// ClampTopK normalises a caller-supplied k into the allowed range.
// Zero or negative falls back to the default.
func ClampTopK(k int) int {
	if k <= 0 {
		return DefaultTopK
	}
	if k > MaxTopK {
		return MaxTopK
	}
	return k
}
