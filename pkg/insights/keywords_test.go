package insights

import (
	"reflect"
	"strings"
	"testing"
)

func TestKeywordTagger_MatchesFixedVocabulary(t *testing.T) {
	tags := KeywordTagger("Their STARTUP doubled revenue after a new marketing push.")

	// "market" matches as a substring of "marketing", same as the other
	// vocabulary entries match inside larger words.
	want := []string{"Startup", "Revenue", "Marketing", "Market"}
	if !reflect.DeepEqual(tags, want) {
		t.Errorf("got %v, want %v", tags, want)
	}
}

func TestKeywordTagger_CapsAtFiveTags(t *testing.T) {
	text := "startup business revenue profit growth marketing sales"
	tags := KeywordTagger(text)
	if len(tags) != 5 {
		t.Errorf("expected at most 5 tags, got %d: %v", len(tags), tags)
	}
}

func TestKeywordTagger_NoMatches(t *testing.T) {
	if tags := KeywordTagger("a quiet walk in the park"); len(tags) != 0 {
		t.Errorf("expected no tags, got %v", tags)
	}
}

func TestKeywordTagger_TitleCasesTags(t *testing.T) {
	for _, tag := range KeywordTagger("funding and scaling and leadership") {
		if tag != strings.ToUpper(tag[:1])+tag[1:] {
			t.Errorf("tag %q is not title-cased", tag)
		}
	}
}
