// Package sections parses extracted corpus pages into tax-code
// sections keyed by their headers.
package sections

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/revenue-labs/taxsearch/internal/core/ports/driven"
)

// Section is a contiguous span of corpus text under one header.
type Section struct {
	// Header is the cleaned section header, e.g. "§ 164. Taxes".
	Header string

	// Text is the section body, including the header line.
	Text string

	// Page is the 1-indexed page where the section starts.
	Page int
}

// headerPatterns match the section formats used in Title 26.
// Tried in order; the first pattern with any match on a page wins.
var headerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(§\s*\d+[A-Za-z\-]*\.?\s+[A-Z][^\n§]+)`),
	regexp.MustCompile(`(Sec\.\s*\d+[A-Za-z\-]*\.?\s+[A-Z][^\n]+)`),
	regexp.MustCompile(`(Section\s+\d+[A-Za-z\-]*\.?\s+[A-Z][^\n]+)`),
}

// SplitPage splits a single page's text into sections. A page with no
// recognisable headers becomes one section labelled by its page number
// so no corpus text is ever dropped.
func SplitPage(text string, page int) []Section {
	var matches [][]int
	for _, p := range headerPatterns {
		if found := p.FindAllStringSubmatchIndex(text, -1); len(found) > 0 {
			matches = found
			break
		}
	}

	if len(matches) == 0 {
		body := strings.TrimSpace(text)
		if body == "" {
			return nil
		}
		return []Section{{
			Header: fmt.Sprintf("Page %d", page),
			Text:   body,
			Page:   page,
		}}
	}

	sections := make([]Section, 0, len(matches))
	for i, m := range matches {
		start := m[0]
		end := len(text)
		if i+1 < len(matches) {
			end = matches[i+1][0]
		}

		header := strings.Join(strings.Fields(text[m[2]:m[3]]), " ")
		body := strings.TrimSpace(text[start:end])

		sections = append(sections, Section{
			Header: header,
			Text:   body,
			Page:   page,
		})
	}

	return sections
}

// Parse splits every page and merges sections that span page breaks:
// same-header sections are concatenated, keeping the earliest page.
// Section order follows first appearance in the corpus.
func Parse(pages []driven.Page) []Section {
	var order []string
	merged := make(map[string]*Section)

	for _, page := range pages {
		for _, sec := range SplitPage(page.Text, page.Number) {
			existing, ok := merged[sec.Header]
			if !ok {
				s := sec
				merged[sec.Header] = &s
				order = append(order, sec.Header)
				continue
			}
			existing.Text += "\n" + sec.Text
			if sec.Page < existing.Page {
				existing.Page = sec.Page
			}
		}
	}

	out := make([]Section, 0, len(order))
	for _, header := range order {
		out = append(out, *merged[header])
	}
	return out
}
