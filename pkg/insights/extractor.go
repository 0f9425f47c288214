package insights

import (
	"context"
	"strings"

	"podcast-insights/pkg/llm"
)

const extractMaxTokens = 1200

// DefaultCategories is the fixed category taxonomy used when the caller does
// not supply its own.
var DefaultCategories = []string{
	"Business Ideas",
	"Mental Models",
	"Frameworks",
	"Stories",
	"Products Mentioned",
	"Actionable Advice",
	"Quotes",
	"Numbers & Metrics",
}

// Extractor issues one completion per transcript chunk and parses the
// semi-structured response into per-category insight strings.
type Extractor struct {
	completer  llm.Completer
	categories []string
}

// NewExtractor creates an extractor with the given taxonomy. A nil or empty
// categories slice selects DefaultCategories.
func NewExtractor(completer llm.Completer, categories []string) *Extractor {
	if len(categories) == 0 {
		categories = DefaultCategories
	}
	return &Extractor{completer: completer, categories: categories}
}

// Categories returns a copy of the configured taxonomy.
func (e *Extractor) Categories() []string {
	out := make([]string, len(e.categories))
	copy(out, e.categories)
	return out
}

// Extract runs one completion for the chunk and parses the result. A
// completion error is returned to the caller, who isolates it to this chunk;
// a malformed response is not an error and simply yields empty categories.
func (e *Extractor) Extract(ctx context.Context, chunkText string) (map[string][]string, error) {
	response, err := e.completer.Complete(ctx, llm.ExtractInsightsPrompt(chunkText, e.categories), extractMaxTokens)
	if err != nil {
		return nil, err
	}
	return ParseResponse(response, e.categories), nil
}

// ParseResponse parses a model response into per-category insight lists.
//
// A line is a category header when, stripped and case-insensitively, it
// equals a configured category name, or contains that name and ends with a
// colon. A line is an insight when a category is current and the line starts
// with a "-" or "*" bullet; the marker is stripped and a non-empty remainder
// is recorded under the current category. Lines before the first header are
// discarded. Every configured category is present in the result, possibly
// with an empty list.
func ParseResponse(response string, categories []string) map[string][]string {
	parsed := make(map[string][]string, len(categories))
	for _, category := range categories {
		parsed[category] = []string{}
	}

	current := ""
	for _, line := range strings.Split(response, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if category, ok := matchCategoryHeader(line, categories); ok {
			current = category
			continue
		}

		if current == "" {
			continue
		}
		if strings.HasPrefix(line, "-") || strings.HasPrefix(line, "*") {
			insight := strings.TrimSpace(line[1:])
			if insight != "" {
				parsed[current] = append(parsed[current], insight)
			}
		}
	}

	return parsed
}

// matchCategoryHeader reports whether line names one of the configured
// categories, returning the canonical category name.
//
// Categories are tried in configuration order and the first containment
// match wins, so when one configured name is a substring of another (say
// "Stories" and "Stories and Anecdotes"), a header naming the longer one is
// credited to whichever appears first in the taxonomy. Taxonomies with
// overlapping names should list the more specific name first.
func matchCategoryHeader(line string, categories []string) (string, bool) {
	lower := strings.ToLower(line)
	for _, category := range categories {
		categoryLower := strings.ToLower(category)
		if lower == categoryLower {
			return category, true
		}
		if strings.Contains(lower, categoryLower) && strings.HasSuffix(line, ":") {
			return category, true
		}
	}
	return "", false
}
