package insights

import (
	"log"
	"strings"

	"podcast-insights/pkg/domain"
)

// dedupeKeyLength is the content prefix compared when collapsing duplicates.
// Overlapping chunks rediscover the same insight with near-identical
// phrasing, so comparing a coarse prefix catches near-duplicates that an
// exact match would miss.
const dedupeKeyLength = 100

// Dedupe collapses insights whose content shares the same lowercase,
// whitespace-trimmed prefix. The first occurrence of each key is kept and
// output order is first-seen order.
func Dedupe(insights []domain.Insight) []domain.Insight {
	if len(insights) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(insights))
	unique := make([]domain.Insight, 0, len(insights))

	for _, insight := range insights {
		key := dedupeKey(insight.Content)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, insight)
	}

	log.Printf("Dedupe: %d insights reduced to %d", len(insights), len(unique))
	return unique
}

func dedupeKey(content string) string {
	runes := []rune(content)
	if len(runes) > dedupeKeyLength {
		runes = runes[:dedupeKeyLength]
	}
	return strings.TrimSpace(strings.ToLower(string(runes)))
}
