package services

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

// blockSeparator divides rendered results in the assembled context.
var blockSeparator = "\n" + strings.Repeat("-", 80) + "\n\n"

// truncatedMark annotates the locator of a chunk whose content was cut.
const truncatedMark = " [truncated]"

// assembleContext joins ranked chunks into a single grounding blob of
// at most maxChars characters. When the budget is exceeded, whole
// lowest-scored chunks are dropped first; a chunk is never split
// mid-way unless even the single highest-scored chunk alone exceeds
// the budget, in which case its content is cut and the chunk is
// flagged as truncated. Pure function: identical input yields
// byte-identical output.
func assembleContext(chunks []domain.ScoredChunk, maxChars int) ([]domain.ScoredChunk, string) {
	if len(chunks) == 0 {
		return chunks, ""
	}

	kept := make([]domain.ScoredChunk, len(chunks))
	copy(kept, chunks)

	for len(kept) > 1 {
		text := renderChunks(kept)
		if len(text) <= maxChars {
			return kept, text
		}
		kept = kept[:len(kept)-1]
	}

	text := renderChunks(kept)
	if len(text) <= maxChars {
		return kept, text
	}

	// Single over-budget chunk: cut the content, keep the envelope.
	top := kept[0]
	top.Truncated = true

	probe := top
	probe.Content = ""
	overhead := len(renderChunk(1, probe))

	allowed := maxChars - overhead
	if allowed < 0 {
		allowed = 0
	}
	top.Content = cutToBytes(top.Content, allowed)

	kept[0] = top
	return kept, renderChunks(kept)
}

// renderChunks renders all chunks separated by rule lines.
func renderChunks(chunks []domain.ScoredChunk) string {
	var b strings.Builder
	for i, c := range chunks {
		if i > 0 {
			b.WriteString(blockSeparator)
		}
		b.WriteString(renderChunk(i+1, c))
	}
	return b.String()
}

// renderChunk renders one result with its source locator so every
// passage stays traceable to a tax-code section and page.
func renderChunk(n int, c domain.ScoredChunk) string {
	section := c.Section
	if c.Truncated {
		section += truncatedMark
	}
	return fmt.Sprintf("**Result %d**\nSection: %s\nPage: %d\nRelevance Score: %.3f\n\nContent:\n%s\n",
		n, section, c.Page, c.Score, c.Content)
}

// cutToBytes trims s to at most n bytes without splitting a rune.
func cutToBytes(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}
