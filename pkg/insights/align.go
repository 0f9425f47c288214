package insights

import (
	"strings"

	"podcast-insights/pkg/domain"
)

// AlignThreshold is the minimum lexical overlap (strictly exceeded) between
// an insight and a segment before the segment's time range is assigned.
const AlignThreshold = 0.3

// Align assigns a time range and confidence to the insight by matching its
// content against the cleaned segments with bag-of-words overlap. The
// segment maximizing |insight words ∩ segment words| / |insight words| wins,
// ties broken by iteration order. A best score not strictly above
// AlignThreshold leaves the insight's times unset.
//
// This is a deep-link heuristic, not sequence alignment: word-exact
// positioning is out of reach once the generative step has rephrased the
// source.
func Align(insight *domain.Insight, segments []domain.CleanedSegment) {
	insightWords := wordSet(insight.Content)
	if len(insightWords) == 0 {
		return
	}

	bestScore := 0.0
	bestSegment := -1

	for i, segment := range segments {
		segmentWords := wordSet(segment.CleanedText)

		overlap := 0
		for word := range insightWords {
			if _, ok := segmentWords[word]; ok {
				overlap++
			}
		}

		score := float64(overlap) / float64(len(insightWords))
		if score > bestScore {
			bestScore = score
			bestSegment = i
		}
	}

	if bestSegment >= 0 && bestScore > AlignThreshold {
		start := segments[bestSegment].StartTime
		end := segments[bestSegment].EndTime
		insight.StartTime = &start
		insight.EndTime = &end
		insight.Confidence = bestScore
	}
}

// AlignAll aligns every insight in place against the same segment list.
func AlignAll(list []domain.Insight, segments []domain.CleanedSegment) {
	for i := range list {
		Align(&list[i], segments)
	}
}

func wordSet(text string) map[string]struct{} {
	words := strings.Fields(strings.ToLower(text))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}
