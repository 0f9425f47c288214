package cleaner

import (
	"context"
	"errors"
	"strings"
	"testing"

	"podcast-insights/pkg/domain"
)

// mockCompleter is a scriptable Completer: responses are returned in call
// order, and err (if set) fails every call.
type mockCompleter struct {
	responses []string
	err       error
	calls     int
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	m.calls++
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}
	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp, nil
}

func TestClean_Success(t *testing.T) {
	completer := &mockCompleter{
		responses: []string{
			"We sold the newsletter for fifty million dollars.",
			"Selling the Newsletter",
		},
	}
	c := New(completer)

	segment := domain.TranscriptSegment{
		Text:      "we sold the newsletter for fifty million dollars",
		StartTime: 10,
		EndTime:   20,
		Speaker:   "Sam",
	}

	cleaned := c.Clean(context.Background(), segment, 0)

	if cleaned.CleanedText != "We sold the newsletter for fifty million dollars." {
		t.Errorf("unexpected cleaned text: %q", cleaned.CleanedText)
	}
	if cleaned.Title != "Selling the Newsletter" {
		t.Errorf("unexpected title: %q", cleaned.Title)
	}
	if cleaned.OriginalText != segment.Text {
		t.Errorf("original text not retained")
	}
	if cleaned.StartTime != 10 || cleaned.EndTime != 20 {
		t.Errorf("time range not inherited verbatim: [%v, %v]", cleaned.StartTime, cleaned.EndTime)
	}
	if cleaned.Speaker != "Sam" {
		t.Errorf("speaker not retained: %q", cleaned.Speaker)
	}
}

func TestClean_CompletionFailureFallsBack(t *testing.T) {
	completer := &mockCompleter{err: errors.New("model unavailable")}
	c := New(completer)

	segment := domain.TranscriptSegment{Text: "raw words here", StartTime: 1, EndTime: 2}
	cleaned := c.Clean(context.Background(), segment, 4)

	if cleaned.CleanedText != "raw words here" {
		t.Errorf("expected original text fallback, got %q", cleaned.CleanedText)
	}
	if cleaned.Title != "Segment 5" {
		t.Errorf("expected positional placeholder title, got %q", cleaned.Title)
	}
}

func TestClean_TitleFailureRevertsToOriginalText(t *testing.T) {
	// First call (cleaning) succeeds, second call (title) fails. The two
	// completions stand or fall together: a title failure discards the
	// cleaning result as well.
	completer := &sequenceCompleter{
		results: []result{
			{text: "Model-normalized prose."},
			{err: errors.New("timeout")},
		},
	}
	c := New(completer)

	cleaned := c.Clean(context.Background(), domain.TranscriptSegment{Text: "raw original words"}, 0)

	if cleaned.CleanedText != "raw original words" {
		t.Errorf("expected original text fallback on title failure, got %q", cleaned.CleanedText)
	}
	if cleaned.Title != "Segment 1" {
		t.Errorf("expected placeholder title, got %q", cleaned.Title)
	}
}

type result struct {
	text string
	err  error
}

type sequenceCompleter struct {
	results []result
	calls   int
}

func (s *sequenceCompleter) Complete(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if s.calls >= len(s.results) {
		return "", errors.New("unexpected call")
	}
	r := s.results[s.calls]
	s.calls++
	return r.text, r.err
}

func TestCleanAll_OneEntryPerSegment(t *testing.T) {
	completer := &mockCompleter{err: errors.New("down")}
	c := New(completer)

	segments := []domain.TranscriptSegment{
		{Text: "one", StartTime: 0, EndTime: 10},
		{Text: "two", StartTime: 10, EndTime: 20},
		{Text: "three", StartTime: 20, EndTime: 30},
	}

	cleaned := c.CleanAll(context.Background(), segments)

	if len(cleaned) != len(segments) {
		t.Fatalf("expected %d cleaned segments, got %d", len(segments), len(cleaned))
	}
	for i, cs := range cleaned {
		if cs.StartTime != segments[i].StartTime || cs.EndTime != segments[i].EndTime {
			t.Errorf("segment %d time range changed", i)
		}
		if !strings.HasPrefix(cs.Title, "Segment ") {
			t.Errorf("segment %d expected placeholder title, got %q", i, cs.Title)
		}
	}
}
