package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/revenue-labs/taxsearch/internal/core/ports/driving"
)

// mockIngest returns canned stats.
type mockIngest struct {
	stats *driving.IngestStats
	err   error
}

func (m *mockIngest) Ingest(_ context.Context, _ string, _ bool) (*driving.IngestStats, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.stats, nil
}

func TestIngestCmd_RequiresExactlyOneArg(t *testing.T) {
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs([]string{"ingest"})
	defer rootCmd.SetArgs(nil)

	err := rootCmd.Execute()

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "accepts 1 arg(s)")
}

func TestIngestCmd_PrintsStats(t *testing.T) {
	oldRetrieval := retrievalService
	oldIngest := ingestService
	retrievalService = &mockRetrieval{}
	ingestService = &mockIngest{stats: &driving.IngestStats{Pages: 6871, Sections: 2100, Chunks: 31000}}
	defer func() {
		retrievalService = oldRetrieval
		ingestService = oldIngest
		rootCmd.SetArgs(nil)
		ingestRebuild = false
	}()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetArgs([]string{"ingest", "title26.pdf"})

	err := rootCmd.Execute()

	assert.NoError(t, err)
	assert.Contains(t, buf.String(), "6871 pages")
	assert.Contains(t, buf.String(), "31000 chunks")
}

func TestIngestCmd_HasRebuildFlag(t *testing.T) {
	flag := ingestCmd.Flags().Lookup("rebuild")
	assert.NotNil(t, flag)
}
