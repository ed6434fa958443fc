package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

func scoredFixture(id, section, content string, score float64) domain.ScoredChunk {
	return domain.ScoredChunk{
		ChunkID: id,
		Content: content,
		Section: section,
		Page:    12,
		Score:   score,
	}
}

func TestAssembleContext_Empty(t *testing.T) {
	kept, text := assembleContext(nil, 8000)

	assert.Empty(t, kept)
	assert.Equal(t, "", text)
}

func TestAssembleContext_RendersLocators(t *testing.T) {
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 164. Taxes", "State and local taxes are deductible.", 0.91),
	}

	_, text := assembleContext(chunks, 8000)

	assert.Contains(t, text, "**Result 1**")
	assert.Contains(t, text, "Section: § 164. Taxes")
	assert.Contains(t, text, "Page: 12")
	assert.Contains(t, text, "Relevance Score: 0.910")
	assert.Contains(t, text, "Content:\nState and local taxes are deductible.")
}

func TestAssembleContext_SeparatesResultsWithRule(t *testing.T) {
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 1", "first", 0.9),
		scoredFixture("c2", "§ 2", "second", 0.8),
	}

	_, text := assembleContext(chunks, 8000)

	assert.Contains(t, text, strings.Repeat("-", 80))
	assert.Contains(t, text, "**Result 1**")
	assert.Contains(t, text, "**Result 2**")
}

func TestAssembleContext_DropsWholeChunksToFit(t *testing.T) {
	long := strings.Repeat("x", 300)
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 1", long, 0.9),
		scoredFixture("c2", "§ 2", long, 0.8),
		scoredFixture("c3", "§ 3", long, 0.7),
	}

	kept, text := assembleContext(chunks, 500)

	// Lowest-scored chunks are dropped whole; the survivor is intact.
	require.Len(t, kept, 1)
	assert.Equal(t, "c1", kept[0].ChunkID)
	assert.False(t, kept[0].Truncated)
	assert.LessOrEqual(t, len(text), 500)
	assert.Contains(t, text, long)
}

func TestAssembleContext_TruncatesSingleOverBudgetChunk(t *testing.T) {
	long := strings.Repeat("abc ", 500)
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 61. Gross income", long, 0.95),
	}

	kept, text := assembleContext(chunks, 400)

	require.Len(t, kept, 1)
	assert.True(t, kept[0].Truncated)
	assert.LessOrEqual(t, len(text), 400)
	assert.Contains(t, text, "§ 61. Gross income [truncated]")
	assert.Less(t, len(kept[0].Content), len(long))
}

func TestAssembleContext_FitsWithinBudgetUnchanged(t *testing.T) {
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 1", "short", 0.9),
		scoredFixture("c2", "§ 2", "also short", 0.8),
	}

	kept, _ := assembleContext(chunks, 8000)

	require.Len(t, kept, 2)
	assert.False(t, kept[0].Truncated)
	assert.False(t, kept[1].Truncated)
}

func TestAssembleContext_Idempotent(t *testing.T) {
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 1", strings.Repeat("a", 200), 0.9),
		scoredFixture("c2", "§ 2", strings.Repeat("b", 200), 0.8),
	}

	kept1, text1 := assembleContext(chunks, 450)
	kept2, text2 := assembleContext(chunks, 450)

	assert.Equal(t, kept1, kept2)
	assert.Equal(t, text1, text2)
}

func TestAssembleContext_DoesNotMutateInput(t *testing.T) {
	long := strings.Repeat("y", 1000)
	chunks := []domain.ScoredChunk{
		scoredFixture("c1", "§ 1", long, 0.9),
	}

	assembleContext(chunks, 200)

	assert.Equal(t, long, chunks[0].Content)
	assert.False(t, chunks[0].Truncated)
}

func TestCutToBytes_RuneSafe(t *testing.T) {
	s := "taxé" // 'é' is two bytes
	cut := cutToBytes(s, 4)

	assert.Equal(t, "tax", cut)
	assert.True(t, strings.HasPrefix(s, cut))
}
