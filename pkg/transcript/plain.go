package transcript

import (
	"strings"

	"podcast-insights/pkg/domain"
)

// Plain transcripts (PDF or TXT) carry no timing information. Segments are
// cut on paragraph boundaries and their time ranges are estimated by
// spreading the episode duration over the segments proportionally to word
// count. Callers label these transcripts with an *_estimated method so the
// approximation is visible downstream.

const (
	// assumedWordsPerSecond approximates conversational speech (~150 wpm)
	// when the episode duration is unknown.
	assumedWordsPerSecond = 2.5

	// plainSegmentTargetWords bounds segment size when paragraphs are too
	// long or the text has no paragraph structure at all.
	plainSegmentTargetWords = 120
)

// SegmentPlainText splits transcript text into timed segments. durationSec
// is the episode duration in seconds; zero or negative means unknown and the
// duration is estimated from the word count.
func SegmentPlainText(text string, durationSec int) []domain.TranscriptSegment {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	blocks := splitBlocks(text)
	if len(blocks) == 0 {
		return nil
	}

	totalWords := 0
	wordCounts := make([]int, len(blocks))
	for i, block := range blocks {
		wordCounts[i] = len(strings.Fields(block))
		totalWords += wordCounts[i]
	}
	if totalWords == 0 {
		return nil
	}

	duration := float64(durationSec)
	if duration <= 0 {
		duration = float64(totalWords) / assumedWordsPerSecond
	}

	segments := make([]domain.TranscriptSegment, 0, len(blocks))
	elapsed := 0.0
	for i, block := range blocks {
		share := duration * float64(wordCounts[i]) / float64(totalWords)
		segments = append(segments, domain.TranscriptSegment{
			Text:      block,
			StartTime: elapsed,
			EndTime:   elapsed + share,
		})
		elapsed += share
	}

	return segments
}

// splitBlocks cuts the text into paragraph blocks, further splitting
// paragraphs that exceed the target word count on sentence boundaries.
func splitBlocks(text string) []string {
	var blocks []string
	for _, para := range strings.Split(text, "\n\n") {
		para = strings.TrimSpace(strings.ReplaceAll(para, "\n", " "))
		if para == "" {
			continue
		}
		if len(strings.Fields(para)) <= plainSegmentTargetWords {
			blocks = append(blocks, para)
			continue
		}
		blocks = append(blocks, splitLongParagraph(para)...)
	}
	return blocks
}

// splitLongParagraph accumulates sentences until the target word count is
// reached, then starts a new block.
func splitLongParagraph(para string) []string {
	var blocks []string
	var current []string
	words := 0

	for _, sentence := range splitSentences(para) {
		current = append(current, sentence)
		words += len(strings.Fields(sentence))
		if words >= plainSegmentTargetWords {
			blocks = append(blocks, strings.Join(current, " "))
			current = nil
			words = 0
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, strings.Join(current, " "))
	}
	return blocks
}

// splitSentences cuts on sentence terminators, keeping the terminator with
// its sentence.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '.', '!', '?':
			sentence := strings.TrimSpace(text[start : i+1])
			if sentence != "" {
				sentences = append(sentences, sentence)
			}
			start = i + 1
		}
	}
	if tail := strings.TrimSpace(text[start:]); tail != "" {
		sentences = append(sentences, tail)
	}
	return sentences
}
