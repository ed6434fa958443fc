package services

import "sort"

// Result post-processing. Everything in this file is a pure function
// of the raw hit lists and the weighting parameters: no external
// calls, deterministic output for identical input.

// rankedChunk is an intermediate scored result before hydration.
type rankedChunk struct {
	chunkID string
	score   float64
}

// rankRaw deduplicates and orders a single raw hit list without
// rescaling scores.
func rankRaw(hits []rankedChunk) []rankedChunk {
	return sortRanked(dedupeKeepHighest(hits))
}

// dedupeKeepHighest collapses duplicate chunk IDs, keeping the
// highest-scored occurrence of each.
func dedupeKeepHighest(hits []rankedChunk) []rankedChunk {
	best := make(map[string]float64, len(hits))
	for _, h := range hits {
		if score, ok := best[h.chunkID]; !ok || h.score > score {
			best[h.chunkID] = h.score
		}
	}

	out := make([]rankedChunk, 0, len(best))
	for id, score := range best {
		out = append(out, rankedChunk{chunkID: id, score: score})
	}
	return out
}

// normalizeScores rescales scores to [0, 1] with min-max
// normalisation. Lists shorter than two entries are returned as-is;
// a list where every score is equal maps to all ones.
func normalizeScores(hits []rankedChunk) []rankedChunk {
	if len(hits) < 2 {
		return hits
	}

	minScore, maxScore := hits[0].score, hits[0].score
	for _, h := range hits[1:] {
		if h.score < minScore {
			minScore = h.score
		}
		if h.score > maxScore {
			maxScore = h.score
		}
	}

	out := make([]rankedChunk, len(hits))
	if maxScore == minScore {
		for i, h := range hits {
			out[i] = rankedChunk{chunkID: h.chunkID, score: 1.0}
		}
		return out
	}

	for i, h := range hits {
		out[i] = rankedChunk{
			chunkID: h.chunkID,
			score:   (h.score - minScore) / (maxScore - minScore),
		}
	}
	return out
}

// consensusBoost is applied to chunks found by both search legs.
const consensusBoost = 1.2

// mergeHybrid combines semantic and keyword hit lists into one ranked
// list. Each list is deduplicated and min-max normalised, then merged
// with alpha weighting (1 = pure semantic, 0 = pure keyword). Chunks
// appearing in both lists get a consensus boost. Final scores are
// clamped to [0, 1].
func mergeHybrid(semantic, keyword []rankedChunk, alpha float64) []rankedChunk {
	semantic = normalizeScores(dedupeKeepHighest(semantic))
	keyword = normalizeScores(dedupeKeepHighest(keyword))

	type combined struct {
		semScore float64
		keyScore float64
		count    int
	}

	merged := make(map[string]*combined, len(semantic)+len(keyword))
	for _, h := range semantic {
		merged[h.chunkID] = &combined{semScore: h.score, count: 1}
	}
	for _, h := range keyword {
		if c, ok := merged[h.chunkID]; ok {
			c.keyScore = h.score
			c.count++
			continue
		}
		merged[h.chunkID] = &combined{keyScore: h.score, count: 1}
	}

	out := make([]rankedChunk, 0, len(merged))
	for id, c := range merged {
		score := alpha*c.semScore + (1-alpha)*c.keyScore
		if c.count > 1 {
			score *= consensusBoost
		}
		if score > 1 {
			score = 1
		}
		if score < 0 {
			score = 0
		}
		out = append(out, rankedChunk{chunkID: id, score: score})
	}

	return sortRanked(out)
}

// filterMinScore drops results scoring below the threshold.
// A threshold of zero disables filtering.
func filterMinScore(hits []rankedChunk, minScore float64) []rankedChunk {
	if minScore <= 0 {
		return hits
	}
	out := make([]rankedChunk, 0, len(hits))
	for _, h := range hits {
		if h.score >= minScore {
			out = append(out, h)
		}
	}
	return out
}

// truncateTopK keeps the first k results.
func truncateTopK(hits []rankedChunk, k int) []rankedChunk {
	if k < len(hits) {
		return hits[:k]
	}
	return hits
}

// sortRanked orders by descending score; ties break by ascending
// chunk ID so identical inputs always rank identically.
func sortRanked(hits []rankedChunk) []rankedChunk {
	sort.Slice(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].chunkID < hits[j].chunkID
	})
	return hits
}
