package insights

import (
	"strings"
	"testing"

	"podcast-insights/pkg/domain"
)

func TestDedupe_FirstSeenWins(t *testing.T) {
	prefix := strings.Repeat("a", 100)
	first := domain.Insight{Category: "Stories", Content: prefix + " first tail"}
	second := domain.Insight{Category: "Stories", Content: prefix + " second tail"}

	out := Dedupe([]domain.Insight{first, second})

	if len(out) != 1 {
		t.Fatalf("expected 1 insight after dedupe, got %d", len(out))
	}
	if out[0].Content != first.Content {
		t.Errorf("expected the first occurrence to survive, got %q", out[0].Content)
	}
}

func TestDedupe_CaseAndWhitespaceInsensitiveKey(t *testing.T) {
	out := Dedupe([]domain.Insight{
		{Content: "The CRAP method works."},
		{Content: "  the crap method works.  "},
	})
	if len(out) != 1 {
		t.Fatalf("expected case/whitespace variants to collapse, got %d", len(out))
	}
}

func TestDedupe_DistinctPrefixesSurviveInOrder(t *testing.T) {
	in := []domain.Insight{
		{Content: "alpha insight"},
		{Content: "beta insight"},
		{Content: "alpha insight"},
		{Content: "gamma insight"},
	}
	out := Dedupe(in)

	want := []string{"alpha insight", "beta insight", "gamma insight"}
	if len(out) != len(want) {
		t.Fatalf("expected %d insights, got %d", len(want), len(out))
	}
	for i, content := range want {
		if out[i].Content != content {
			t.Errorf("position %d: got %q, want %q", i, out[i].Content, content)
		}
	}
}

func TestDedupe_Empty(t *testing.T) {
	if out := Dedupe(nil); out != nil {
		t.Errorf("expected nil for empty input, got %v", out)
	}
}
