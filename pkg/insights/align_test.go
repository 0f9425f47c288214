package insights

import (
	"fmt"
	"strings"
	"testing"

	"podcast-insights/pkg/domain"
)

// numberedWords returns n distinct words w00..w(n-1).
func numberedWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%02d", i)
	}
	return words
}

func TestAlign_ThresholdIsStrict(t *testing.T) {
	words := numberedWords(10)

	insight := domain.Insight{Content: strings.Join(words, " ")}
	// Segment shares exactly 3 of the 10 insight words: score 0.30.
	segments := []domain.CleanedSegment{
		{CleanedText: strings.Join(words[:3], " ") + " unrelated filler terms", StartTime: 5, EndTime: 15},
	}

	Align(&insight, segments)

	if insight.StartTime != nil || insight.EndTime != nil {
		t.Errorf("score of exactly 0.30 must not align (strict > required)")
	}
	if insight.Confidence != 0 {
		t.Errorf("unaligned insight must carry no confidence, got %v", insight.Confidence)
	}
}

func TestAlign_JustAboveThreshold(t *testing.T) {
	words := numberedWords(100)

	insight := domain.Insight{Content: strings.Join(words, " ")}
	// Segment shares exactly 31 of the 100 insight words: score 0.31.
	segments := []domain.CleanedSegment{
		{CleanedText: strings.Join(words[:31], " "), StartTime: 40, EndTime: 55},
	}

	Align(&insight, segments)

	if insight.StartTime == nil || insight.EndTime == nil {
		t.Fatalf("score of 0.31 must align")
	}
	if *insight.StartTime != 40 || *insight.EndTime != 55 {
		t.Errorf("wrong time range: [%v, %v]", *insight.StartTime, *insight.EndTime)
	}
	if insight.Confidence != 0.31 {
		t.Errorf("confidence must equal the overlap score: got %v, want 0.31", insight.Confidence)
	}
}

func TestAlign_VerbatimSubstringMatchesOwningSegment(t *testing.T) {
	segments := []domain.CleanedSegment{
		{CleanedText: "Opening chatter about the weather and sports.", StartTime: 0, EndTime: 10},
		{CleanedText: "We sold the newsletter business for fifty million dollars last spring.", StartTime: 10, EndTime: 20},
		{CleanedText: "Closing thoughts and listener questions.", StartTime: 20, EndTime: 30},
	}

	insight := domain.Insight{Content: "sold the newsletter business for fifty million dollars"}
	Align(&insight, segments)

	if insight.StartTime == nil || insight.EndTime == nil {
		t.Fatalf("verbatim substring must align")
	}
	if *insight.StartTime != 10 || *insight.EndTime != 20 {
		t.Errorf("aligned to wrong segment: [%v, %v]", *insight.StartTime, *insight.EndTime)
	}
	if insight.Confidence != 1.0 {
		t.Errorf("expected confidence 1.0 for full containment, got %v", insight.Confidence)
	}
}

func TestAlign_TieBrokenByFirstSegment(t *testing.T) {
	segments := []domain.CleanedSegment{
		{CleanedText: "alpha beta gamma", StartTime: 0, EndTime: 10},
		{CleanedText: "alpha beta gamma", StartTime: 10, EndTime: 20},
	}

	insight := domain.Insight{Content: "alpha beta gamma"}
	Align(&insight, segments)

	if insight.StartTime == nil || *insight.StartTime != 0 {
		t.Errorf("tie must resolve to the first segment encountered")
	}
}

func TestAlign_EmptyContentLeavesInsightUntouched(t *testing.T) {
	insight := domain.Insight{Content: "   "}
	Align(&insight, []domain.CleanedSegment{{CleanedText: "anything", StartTime: 0, EndTime: 1}})
	if insight.StartTime != nil || insight.EndTime != nil || insight.Confidence != 0 {
		t.Errorf("empty content must not align")
	}
}

func TestAlignAll_MixedOutcome(t *testing.T) {
	segments := []domain.CleanedSegment{
		{CleanedText: "discussing startup funding rounds and venture capital", StartTime: 0, EndTime: 30},
	}
	list := []domain.Insight{
		{Content: "startup funding rounds and venture capital"},
		{Content: "totally unrelated topic about gardening tomatoes"},
	}

	AlignAll(list, segments)

	if list[0].StartTime == nil {
		t.Errorf("first insight should align")
	}
	if list[1].StartTime != nil {
		t.Errorf("second insight should remain unaligned")
	}
}
