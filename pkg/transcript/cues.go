package transcript

import (
	"regexp"
	"strconv"
	"strings"

	"podcast-insights/pkg/domain"
)

// Cue file parsing for WebVTT and SRT caption files. Both formats carry
// timing lines ("00:00:01.234 --> 00:00:03.456", SRT uses commas) followed
// by one or more text lines.

var (
	// timingLineRe matches a VTT/SRT timing cue with optional metadata after
	// the timestamps.
	timingLineRe = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2})[.,](\d{3})\s*-->\s*(\d{2}):(\d{2}):(\d{2})[.,](\d{3})`)

	// htmlTagRe matches inline tags commonly found in VTT files (<c>, <i>,
	// <font> and friends).
	htmlTagRe = regexp.MustCompile(`<[^>]+>`)

	// cueIDRe matches standalone numeric cue identifiers on their own line.
	cueIDRe = regexp.MustCompile(`^\d+$`)

	// metadataLineRe matches VTT header/metadata lines.
	metadataLineRe = regexp.MustCompile(`^(WEBVTT|Kind|Language|NOTE|STYLE|REGION)\b`)
)

// cueGroupGap is the silence between cues that starts a new transcript
// segment; cueGroupMaxSeconds caps segment length regardless of gaps.
const (
	cueGroupGap        = 2.0
	cueGroupMaxSeconds = 30.0
)

type cue struct {
	start, end float64
	text       string
}

// ParseCues parses WebVTT or SRT content into transcript segments.
// Consecutive cues are grouped into one segment until a pause of more than
// two seconds or thirty seconds of speech, whichever comes first; the
// segment's time range spans its first cue's start to its last cue's end.
func ParseCues(raw string) []domain.TranscriptSegment {
	cues := splitCues(raw)
	if len(cues) == 0 {
		return nil
	}

	var segments []domain.TranscriptSegment
	current := cues[0]

	flush := func() {
		text := strings.TrimSpace(current.text)
		if text != "" {
			segments = append(segments, domain.TranscriptSegment{
				Text:      text,
				StartTime: current.start,
				EndTime:   current.end,
			})
		}
	}

	for _, c := range cues[1:] {
		gap := c.start - current.end
		length := c.end - current.start
		if gap > cueGroupGap || length > cueGroupMaxSeconds {
			flush()
			current = c
			continue
		}
		current.text += " " + c.text
		current.end = c.end
	}
	flush()

	return segments
}

// splitCues walks the raw lines and produces one cue per timing line,
// skipping headers, metadata, cue IDs, and rolling-caption repeats.
func splitCues(raw string) []cue {
	var cues []cue
	var current *cue
	prevText := ""

	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimRight(line, "\r")

		if m := timingLineRe.FindStringSubmatch(line); m != nil {
			if current != nil && strings.TrimSpace(current.text) != "" {
				cues = append(cues, *current)
			}
			current = &cue{start: cueSeconds(m[1:5]), end: cueSeconds(m[5:9])}
			continue
		}

		if metadataLineRe.MatchString(line) || cueIDRe.MatchString(strings.TrimSpace(line)) {
			continue
		}

		text := strings.TrimSpace(htmlTagRe.ReplaceAllString(line, ""))
		if text == "" || current == nil {
			continue
		}
		// Auto-generated captions repeat partial text across overlapping
		// cues; drop exact repeats of the previous line.
		if text == prevText {
			continue
		}
		prevText = text

		if current.text == "" {
			current.text = text
		} else {
			current.text += " " + text
		}
	}
	if current != nil && strings.TrimSpace(current.text) != "" {
		cues = append(cues, *current)
	}

	return cues
}

// cueSeconds converts [hh mm ss mmm] capture groups into seconds.
func cueSeconds(parts []string) float64 {
	h, _ := strconv.Atoi(parts[0])
	m, _ := strconv.Atoi(parts[1])
	s, _ := strconv.Atoi(parts[2])
	ms, _ := strconv.Atoi(parts[3])
	return float64(h)*3600 + float64(m)*60 + float64(s) + float64(ms)/1000
}
