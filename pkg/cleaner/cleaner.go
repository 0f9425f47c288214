package cleaner

import (
	"context"
	"fmt"
	"log"
	"strings"

	"podcast-insights/pkg/domain"
	"podcast-insights/pkg/llm"
)

const titleMaxTokens = 20

// Cleaner normalizes raw transcript segments and gives each one a short
// title, using the text-completion collaborator.
type Cleaner struct {
	completer llm.Completer
}

// New creates a segment cleaner backed by the given completer.
func New(completer llm.Completer) *Cleaner {
	return &Cleaner{completer: completer}
}

// Clean produces the CleanedSegment for one raw segment. index is the
// zero-based position of the segment in the transcript, used only for the
// fallback title.
//
// A completion failure never aborts processing. The two calls succeed or
// fail as a unit: if either the cleaning or the title call fails, the
// original text is kept verbatim as the cleaned text and the title falls
// back to "Segment N". A successful cleaning is never kept alongside a
// failed title.
func (c *Cleaner) Clean(ctx context.Context, segment domain.TranscriptSegment, index int) domain.CleanedSegment {
	cleaned := domain.CleanedSegment{
		OriginalText: segment.Text,
		CleanedText:  segment.Text,
		Title:        fmt.Sprintf("Segment %d", index+1),
		StartTime:    segment.StartTime,
		EndTime:      segment.EndTime,
		Speaker:      segment.Speaker,
	}

	cleanedText, err := c.completer.Complete(ctx, llm.CleanTranscriptPrompt(segment.Text), cleanMaxTokens(segment.Text))
	if err != nil {
		log.Printf("Cleaner: segment %d: cleaning failed, keeping original text: %v", index+1, err)
		return cleaned
	}
	cleanedText = strings.TrimSpace(cleanedText)
	if cleanedText == "" {
		cleanedText = segment.Text
	}

	title, err := c.completer.Complete(ctx, llm.SegmentTitlePrompt(cleanedText), titleMaxTokens)
	if err != nil {
		log.Printf("Cleaner: segment %d: title generation failed, keeping original text and placeholder title: %v", index+1, err)
		return cleaned
	}

	cleaned.CleanedText = cleanedText
	if title = strings.TrimSpace(title); title != "" {
		cleaned.Title = title
	}
	return cleaned
}

// CleanAll processes every segment in order. Per-segment failures degrade to
// fallbacks inside Clean; the returned slice always has one entry per input
// segment.
func (c *Cleaner) CleanAll(ctx context.Context, segments []domain.TranscriptSegment) []domain.CleanedSegment {
	log.Printf("Cleaner: processing %d transcript segments", len(segments))

	cleaned := make([]domain.CleanedSegment, 0, len(segments))
	for i, segment := range segments {
		cleaned = append(cleaned, c.Clean(ctx, segment, i))
	}
	return cleaned
}

// cleanMaxTokens sizes the completion budget to the segment: roughly the
// word count of the input plus headroom for added punctuation.
func cleanMaxTokens(text string) int {
	return len(strings.Fields(text)) + 100
}
