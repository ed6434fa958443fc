package cli

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
)

// mockRetrieval returns a canned result or error.
type mockRetrieval struct {
	result *domain.RetrievalResult
	err    error
}

func (m *mockRetrieval) Search(_ context.Context, query string, _ domain.RetrievalOptions) (*domain.RetrievalResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.result != nil {
		return m.result, nil
	}
	return &domain.RetrievalResult{Query: query, Alpha: 0.5}, nil
}

// setupTestServices swaps the wired services for mocks so commands run
// without configuration, a store or a provider.
func setupTestServices(retrieval *mockRetrieval) func() {
	oldRetrieval := retrievalService
	retrievalService = retrieval
	return func() {
		retrievalService = oldRetrieval
		rootCmd.SetArgs(nil)
		searchJSON = false
		searchTopK = 0
		searchAlpha = -1
	}
}

func TestSearchCmd_Use(t *testing.T) {
	assert.Equal(t, "search [query]", searchCmd.Use)
}

func TestSearchCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestSearchCmd_HasTopKFlag(t *testing.T) {
	flag := searchCmd.Flags().Lookup("top-k")
	require.NotNil(t, flag, "top-k flag should exist")
	assert.Equal(t, "n", flag.Shorthand)
}

func TestSearchCmd_PrintsContext(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{result: &domain.RetrievalResult{
		Query: "SALT deduction",
		Chunks: []domain.ScoredChunk{
			{ChunkID: "c1", Content: "State and local taxes", Section: "§ 164", Page: 12, Score: 0.91},
		},
		Context: "**Result 1**\nSection: § 164\n",
		Alpha:   0.5,
	}})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "SALT deduction"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "**Result 1**")
	assert.Contains(t, buf.String(), "§ 164")
}

func TestSearchCmd_NoResults(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "nothing matches this"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "No results found")
}

func TestSearchCmd_JSONOutput(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{result: &domain.RetrievalResult{
		Query: "gross income",
		Chunks: []domain.ScoredChunk{
			{ChunkID: "c1", Content: "All income", Section: "§ 61", Page: 4, Score: 0.8},
		},
		Alpha: 0.5,
	}})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"search", "--json", "gross income"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), `"Query"`)
	assert.Contains(t, buf.String(), `"ChunkID"`)
}

func TestSearchCmd_ServiceError(t *testing.T) {
	cleanup := setupTestServices(&mockRetrieval{err: errors.New("provider down")})
	defer cleanup()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"search", "anything"})

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "search failed")
}
