package domain

import "time"

// DefaultSource is the display name of the indexed corpus.
const DefaultSource = "Title 26 - Internal Revenue Code"

// Document represents one ingested corpus document (e.g. the Title 26 PDF).
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// URI is the original location (file path).
	URI string

	// Title is the human-readable title.
	Title string

	// Pages is the number of pages loaded from the source.
	Pages int

	// CreatedAt is when the document was first ingested.
	CreatedAt time.Time
}

// Chunk is the unit of corpus text stored with its embedding.
// Chunks are immutable once ingested; retrieval only reads them.
type Chunk struct {
	// ID is the unique identifier for the chunk.
	ID string

	// DocumentID links to the parent Document.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// Section is the tax-code section header this chunk belongs to,
	// e.g. "§ 164. Taxes". Together with Page it forms the source locator.
	Section string

	// Page is the 1-indexed page number where the section starts.
	Page int

	// Position is the ordinal position within the section.
	Position int

	// Embedding is the vector representation for semantic search.
	Embedding []float32

	// Metadata contains chunk-specific key-value pairs.
	Metadata map[string]any
}
