package insights

import (
	"strings"

	"github.com/tsawler/prose/v3"
)

const maxTags = 5

// Tagger derives short keyword tags from insight content. Tagging is a pure
// function of the text and deliberately separate from the category taxonomy,
// which is extraction configuration.
type Tagger func(text string) []string

// businessVocabulary is the fixed substring list the default tagger matches
// against, in priority order.
var businessVocabulary = []string{
	"startup", "business", "revenue", "profit", "growth", "marketing",
	"sales", "customer", "product", "market", "strategy", "investment",
	"funding", "scaling", "team", "leadership", "innovation", "technology",
}

// KeywordTagger tags content by case-insensitive substring match against the
// fixed business vocabulary, Title-Cased, capped at five tags.
func KeywordTagger(text string) []string {
	lower := strings.ToLower(text)

	var tags []string
	for _, keyword := range businessVocabulary {
		if strings.Contains(lower, keyword) {
			tags = append(tags, titleCase(keyword))
			if len(tags) == maxTags {
				break
			}
		}
	}
	return tags
}

// EntityTagger tags content with named entities recognized by the prose NLP
// library. It satisfies the same Tagger seam as KeywordTagger and can be
// swapped in where vocabulary matching is too coarse.
func EntityTagger(text string) []string {
	doc, err := prose.NewDocument(text)
	if err != nil {
		return nil
	}

	var tags []string
	seen := make(map[string]struct{})
	for _, ent := range doc.Entities() {
		name := strings.TrimSpace(ent.Text)
		if name == "" {
			continue
		}
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		tags = append(tags, name)
		if len(tags) == maxTags {
			break
		}
	}
	return tags
}

func titleCase(word string) string {
	if word == "" {
		return word
	}
	return strings.ToUpper(word[:1]) + word[1:]
}
