// Package textsplitter splits section text into overlapping chunks
// sized for embedding.
package textsplitter

import "strings"

// Defaults tuned for tax-code sections: roughly a paragraph per chunk
// with enough overlap to keep cross-boundary sentences searchable.
const (
	DefaultChunkSize    = 1000
	DefaultChunkOverlap = 150
)

// DefaultSeparators are tried in order: paragraph, line, sentence,
// word, and finally raw characters.
func DefaultSeparators() []string {
	return []string{"\n\n", "\n", ". ", " ", ""}
}

// RecursiveCharacter splits text recursively by a separator hierarchy,
// merging small fragments back together up to the chunk size.
type RecursiveCharacter struct {
	Separators   []string
	ChunkSize    int
	ChunkOverlap int
}

// Option configures the splitter.
type Option func(*RecursiveCharacter)

// WithChunkSize sets the maximum chunk size in characters.
func WithChunkSize(size int) Option {
	return func(s *RecursiveCharacter) {
		if size > 0 {
			s.ChunkSize = size
		}
	}
}

// WithChunkOverlap sets the overlap between adjacent chunks.
func WithChunkOverlap(overlap int) Option {
	return func(s *RecursiveCharacter) {
		if overlap >= 0 {
			s.ChunkOverlap = overlap
		}
	}
}

// WithSeparators overrides the separator hierarchy.
func WithSeparators(seps []string) Option {
	return func(s *RecursiveCharacter) {
		if len(seps) > 0 {
			s.Separators = seps
		}
	}
}

// New creates a splitter with defaults applied.
func New(opts ...Option) RecursiveCharacter {
	s := RecursiveCharacter{
		Separators:   DefaultSeparators(),
		ChunkSize:    DefaultChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.ChunkOverlap >= s.ChunkSize {
		s.ChunkOverlap = s.ChunkSize / 4
	}
	return s
}

// SplitText splits text into chunks of at most ChunkSize characters,
// preferring the earliest separator present in the text.
func (s RecursiveCharacter) SplitText(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	return s.split(text, s.Separators)
}

func (s RecursiveCharacter) split(text string, separators []string) []string {
	// Pick the first separator that occurs in the text; the empty
	// separator always matches and splits into characters.
	separator := separators[len(separators)-1]
	remaining := separators
	for i, sep := range separators {
		if sep == "" || strings.Contains(text, sep) {
			separator = sep
			remaining = separators[i+1:]
			break
		}
	}

	var splits []string
	if separator == "" {
		splits = splitRunes(text, s.ChunkSize)
	} else {
		splits = strings.Split(text, separator)
	}

	final := make([]string, 0, len(splits))
	good := make([]string, 0, len(splits))

	for _, part := range splits {
		if len(part) < s.ChunkSize {
			good = append(good, part)
			continue
		}

		if len(good) > 0 {
			final = append(final, s.merge(good, separator)...)
			good = good[:0]
		}

		// Oversized fragment: recurse with finer separators.
		if len(remaining) == 0 {
			final = append(final, part)
			continue
		}
		final = append(final, s.split(part, remaining)...)
	}

	if len(good) > 0 {
		final = append(final, s.merge(good, separator)...)
	}

	return final
}

// merge packs small fragments into chunks close to ChunkSize, carrying
// ChunkOverlap characters of trailing fragments into the next chunk.
func (s RecursiveCharacter) merge(splits []string, separator string) []string {
	var chunks []string
	var current []string
	total := 0

	for _, part := range splits {
		projected := total + len(part)
		if len(current) > 0 {
			projected += len(separator)
		}

		if projected > s.ChunkSize && len(current) > 0 {
			if chunk := joinParts(current, separator); chunk != "" {
				chunks = append(chunks, chunk)
			}

			// Slide the window: drop leading fragments until the
			// retained tail fits inside the overlap budget.
			for total > s.ChunkOverlap && len(current) > 0 {
				total -= len(current[0])
				if len(current) > 1 {
					total -= len(separator)
				}
				current = current[1:]
			}
		}

		current = append(current, part)
		total += len(part)
		if len(current) > 1 {
			total += len(separator)
		}
	}

	if chunk := joinParts(current, separator); chunk != "" {
		chunks = append(chunks, chunk)
	}

	return chunks
}

// joinParts combines fragments with the separator that split them.
func joinParts(parts []string, separator string) string {
	return strings.TrimSpace(strings.Join(parts, separator))
}

// splitRunes breaks text into size-bounded pieces at rune boundaries.
func splitRunes(text string, size int) []string {
	runes := []rune(text)
	if size < 1 {
		size = 1
	}
	var out []string
	for start := 0; start < len(runes); start += size {
		end := start + size
		if end > len(runes) {
			end = len(runes)
		}
		out = append(out, string(runes[start:end]))
	}
	return out
}
