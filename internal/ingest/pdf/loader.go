// Package pdf extracts page text from the corpus PDF.
package pdf

import (
	"context"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
	"github.com/revenue-labs/taxsearch/internal/logger"
)

// Ensure Loader implements the interface.
var _ driven.CorpusLoader = (*Loader)(nil)

// Loader reads PDF files into plain-text pages.
type Loader struct{}

// NewLoader creates a PDF corpus loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadPages extracts the text of every page, 1-indexed. Whitespace is
// squashed because PDF extraction preserves layout artefacts that only
// hurt chunking. Pages that fail to extract are skipped with a warning
// rather than aborting a multi-thousand-page ingest.
func (l *Loader) LoadPages(ctx context.Context, path string) ([]driven.Page, error) {
	file, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer file.Close()

	total := reader.NumPage()
	pages := make([]driven.Page, 0, total)

	for i := 1; i <= total; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			logger.Warn("Page %d: text extraction failed: %v", i, err)
			continue
		}

		text = strings.Join(strings.Fields(text), " ")
		if text == "" {
			continue
		}

		pages = append(pages, driven.Page{Number: i, Text: text})
	}

	logger.Info("Loaded %d/%d pages from %s", len(pages), total, path)
	return pages, nil
}
