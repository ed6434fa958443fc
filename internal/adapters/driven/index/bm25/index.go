// Package bm25 provides an in-memory BM25 keyword index over chunk
// text. It is rebuilt from the document store at startup; the corpus
// is small enough (tens of thousands of chunks) that this takes well
// under a second.
package bm25

import (
	"context"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/revenue-labs/taxsearch/internal/core/domain"
	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.KeywordSearcher = (*Index)(nil)

// Standard BM25 parameters (Okapi defaults).
const (
	k1 = 1.5
	b  = 0.75
)

// indexedDoc is one chunk's term statistics.
type indexedDoc struct {
	chunkID string
	length  int
	freqs   map[string]int
}

// Index is an immutable-after-build BM25 index. Concurrent searches
// are safe; Build replaces the whole index atomically.
type Index struct {
	mu        sync.RWMutex
	docs      []indexedDoc
	docFreq   map[string]int
	avgLength float64
}

// New creates an empty index.
func New() *Index {
	return &Index{docFreq: make(map[string]int)}
}

// Build indexes the given chunks, replacing any previous contents.
func (idx *Index) Build(chunks []domain.Chunk) {
	docs := make([]indexedDoc, 0, len(chunks))
	docFreq := make(map[string]int)
	totalLength := 0

	for _, chunk := range chunks {
		terms := tokenize(chunk.Content)
		freqs := make(map[string]int, len(terms))
		for _, term := range terms {
			freqs[term]++
		}
		for term := range freqs {
			docFreq[term]++
		}
		docs = append(docs, indexedDoc{
			chunkID: chunk.ID,
			length:  len(terms),
			freqs:   freqs,
		})
		totalLength += len(terms)
	}

	avgLength := 0.0
	if len(docs) > 0 {
		avgLength = float64(totalLength) / float64(len(docs))
	}

	idx.mu.Lock()
	idx.docs = docs
	idx.docFreq = docFreq
	idx.avgLength = avgLength
	idx.mu.Unlock()
}

// Len returns the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.docs)
}

// Search scores every indexed chunk against the query terms and
// returns up to limit positive-scoring hits, best first. Ties break
// by ascending chunk ID for reproducibility.
func (idx *Index) Search(_ context.Context, query string, limit int) ([]driven.KeywordHit, error) {
	terms := tokenize(query)
	if len(terms) == 0 || limit < 1 {
		return nil, nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.docs) == 0 {
		return nil, nil
	}

	n := float64(len(idx.docs))
	hits := make([]driven.KeywordHit, 0, limit)

	for _, doc := range idx.docs {
		score := 0.0
		for _, term := range terms {
			tf := doc.freqs[term]
			if tf == 0 {
				continue
			}
			df := float64(idx.docFreq[term])
			idf := math.Log(1 + (n-df+0.5)/(df+0.5))
			norm := 1 - b + b*float64(doc.length)/idx.avgLength
			score += idf * float64(tf) * (k1 + 1) / (float64(tf) + k1*norm)
		}
		if score > 0 {
			hits = append(hits, driven.KeywordHit{ChunkID: doc.chunkID, Score: score})
		}
	}

	sort.Slice(hits, func(i, j int) bool {
		if hits[i].Score != hits[j].Score {
			return hits[i].Score > hits[j].Score
		}
		return hits[i].ChunkID < hits[j].ChunkID
	})

	if limit < len(hits) {
		hits = hits[:limit]
	}
	return hits, nil
}

// tokenize lower-cases and splits on non-alphanumeric runes, keeping
// section symbols attached to numbers out of the way. "§164" and
// "164" tokenize identically.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z':
			return false
		case r >= '0' && r <= '9':
			return false
		default:
			return true
		}
	})
}
