package driving

import "context"

// IngestStats summarises one ingestion run.
type IngestStats struct {
	// Pages is the number of pages loaded from the source.
	Pages int

	// Sections is the number of parsed sections.
	Sections int

	// Chunks is the number of chunks created and embedded.
	Chunks int
}

// IngestService builds the corpus: load PDF, parse sections, chunk,
// embed, persist. Single-writer; must not run concurrently with itself.
type IngestService interface {
	// Ingest runs the full pipeline for the document at path.
	// Returns domain.ErrCorpusExists when the store is already
	// populated and rebuild is false.
	Ingest(ctx context.Context, path string, rebuild bool) (*IngestStats, error)
}
