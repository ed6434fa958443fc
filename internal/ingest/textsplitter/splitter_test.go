package textsplitter

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitText_EmptyInput(t *testing.T) {
	s := New()

	assert.Nil(t, s.SplitText(""))
	assert.Nil(t, s.SplitText("   \n\t  "))
}

func TestSplitText_ShortTextSingleChunk(t *testing.T) {
	s := New()

	chunks := s.SplitText("Gross income means all income from whatever source derived.")

	require.Len(t, chunks, 1)
	assert.Equal(t, "Gross income means all income from whatever source derived.", chunks[0])
}

func TestSplitText_RespectsChunkSize(t *testing.T) {
	s := New(WithChunkSize(100), WithChunkOverlap(20))

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("The deduction shall be allowed. ")
	}

	chunks := s.SplitText(b.String())

	require.Greater(t, len(chunks), 1)
	for _, c := range chunks {
		assert.LessOrEqual(t, len(c), 100)
	}
}

func TestSplitText_PrefersParagraphBoundaries(t *testing.T) {
	s := New(WithChunkSize(40), WithChunkOverlap(0))

	text := "First paragraph about taxes.\n\nSecond paragraph about income."

	chunks := s.SplitText(text)

	require.Len(t, chunks, 2)
	assert.Equal(t, "First paragraph about taxes.", chunks[0])
	assert.Equal(t, "Second paragraph about income.", chunks[1])
}

func TestSplitText_OverlapCarriesTrailingText(t *testing.T) {
	s := New(WithChunkSize(50), WithChunkOverlap(25))

	text := "alpha beta gamma delta epsilon zeta eta theta iota kappa lambda mu"

	chunks := s.SplitText(text)

	require.Greater(t, len(chunks), 1)
	// Adjacent chunks share at least one word.
	firstWords := strings.Fields(chunks[0])
	secondWords := strings.Fields(chunks[1])
	shared := false
	for _, w := range secondWords {
		for _, f := range firstWords {
			if w == f {
				shared = true
			}
		}
	}
	assert.True(t, shared, "expected overlap between %q and %q", chunks[0], chunks[1])
}

func TestSplitText_OversizedWordFallsBackToRunes(t *testing.T) {
	s := New(WithChunkSize(10), WithChunkOverlap(0))

	chunks := s.SplitText(strings.Repeat("x", 35))

	require.Len(t, chunks, 4)
	for _, c := range chunks[:3] {
		assert.Len(t, c, 10)
	}
	assert.Len(t, chunks[3], 5)
}

func TestNew_OverlapLargerThanSizeReduced(t *testing.T) {
	s := New(WithChunkSize(100), WithChunkOverlap(200))

	assert.Equal(t, 25, s.ChunkOverlap)
}

func TestSplitRunes_MultibyteSafe(t *testing.T) {
	pieces := splitRunes("ééééé", 2)

	require.Len(t, pieces, 3)
	assert.Equal(t, "éé", pieces[0])
	assert.Equal(t, "é", pieces[2])
}
