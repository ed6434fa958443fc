package bm25

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

func testChunks() []domain.Chunk {
	return []domain.Chunk{
		{ID: "c1", Content: "§ 164. Taxes. State and local taxes shall be allowed as a deduction."},
		{ID: "c2", Content: "§ 61. Gross income defined. Gross income means all income from whatever source derived."},
		{ID: "c3", Content: "§ 151. Allowance of deductions for personal exemptions."},
	}
}

func buildIndex(t *testing.T) *Index {
	t.Helper()
	idx := New()
	idx.Build(testChunks())
	return idx
}

func TestIndex_Len(t *testing.T) {
	idx := buildIndex(t)
	assert.Equal(t, 3, idx.Len())
}

func TestIndex_EmptyIndexReturnsNothing(t *testing.T) {
	idx := New()

	hits, err := idx.Search(context.Background(), "taxes", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_MatchesQueryTerms(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "gross income", 10)

	require.NoError(t, err)
	require.NotEmpty(t, hits)
	assert.Equal(t, "c2", hits[0].ChunkID)
}

func TestIndex_OnlyPositiveScores(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "deduction", 10)

	require.NoError(t, err)
	for _, h := range hits {
		assert.Greater(t, h.Score, 0.0)
	}
	// "deduction" appears in c1 only; "deductions" is a different token.
	require.Len(t, hits, 1)
	assert.Equal(t, "c1", hits[0].ChunkID)
}

func TestIndex_NoMatchesYieldsEmpty(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "cryptocurrency staking", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_SectionSymbolTokenizesLikeNumber(t *testing.T) {
	idx := buildIndex(t)

	withSymbol, err := idx.Search(context.Background(), "§164", 10)
	require.NoError(t, err)
	bare, err := idx.Search(context.Background(), "164", 10)
	require.NoError(t, err)

	assert.Equal(t, bare, withSymbol)
	require.NotEmpty(t, bare)
	assert.Equal(t, "c1", bare[0].ChunkID)
}

func TestIndex_LimitRespected(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "income taxes deduction", 1)

	require.NoError(t, err)
	assert.Len(t, hits, 1)
}

func TestIndex_EmptyQueryReturnsNothing(t *testing.T) {
	idx := buildIndex(t)

	hits, err := idx.Search(context.Background(), "   ", 10)

	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestIndex_DeterministicOrdering(t *testing.T) {
	idx := buildIndex(t)

	first, err := idx.Search(context.Background(), "income deduction taxes", 10)
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		again, err := idx.Search(context.Background(), "income deduction taxes", 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestIndex_BuildReplacesContents(t *testing.T) {
	idx := buildIndex(t)

	idx.Build([]domain.Chunk{{ID: "only", Content: "alimony payments"}})

	assert.Equal(t, 1, idx.Len())
	hits, err := idx.Search(context.Background(), "taxes", 10)
	require.NoError(t, err)
	assert.Empty(t, hits)
}

func TestTokenize(t *testing.T) {
	terms := tokenize("State and local taxes, § 164(b)(6)!")

	assert.Equal(t, []string{"state", "and", "local", "taxes", "164", "b", "6"}, terms)
}
