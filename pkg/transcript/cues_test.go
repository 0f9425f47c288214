package transcript

import "testing"

const sampleVTT = `WEBVTT
Kind: captions
Language: en

00:00:00.000 --> 00:00:02.500
welcome back to the show

00:00:02.500 --> 00:00:04.000
<c>today we talk about</c> startups

00:00:09.000 --> 00:00:11.000
a new topic after a pause
`

func TestParseCues_GroupsByGap(t *testing.T) {
	segments := ParseCues(sampleVTT)

	if len(segments) != 2 {
		t.Fatalf("expected 2 segments (5s pause splits them), got %d", len(segments))
	}

	first := segments[0]
	if first.StartTime != 0 || first.EndTime != 4 {
		t.Errorf("first segment range [%v, %v], want [0, 4]", first.StartTime, first.EndTime)
	}
	if first.Text != "welcome back to the show today we talk about startups" {
		t.Errorf("first segment text %q", first.Text)
	}

	second := segments[1]
	if second.StartTime != 9 || second.EndTime != 11 {
		t.Errorf("second segment range [%v, %v], want [9, 11]", second.StartTime, second.EndTime)
	}
}

func TestParseCues_SRTCommaTimestampsAndCueIDs(t *testing.T) {
	srt := `1
00:00:01,000 --> 00:00:02,000
hello there

2
00:00:02,200 --> 00:00:03,000
general listener
`
	segments := ParseCues(srt)
	if len(segments) != 1 {
		t.Fatalf("expected 1 grouped segment, got %d", len(segments))
	}
	if segments[0].Text != "hello there general listener" {
		t.Errorf("got %q", segments[0].Text)
	}
	if segments[0].StartTime != 1 || segments[0].EndTime != 3 {
		t.Errorf("range [%v, %v], want [1, 3]", segments[0].StartTime, segments[0].EndTime)
	}
}

func TestParseCues_DeduplicatesRollingCaptions(t *testing.T) {
	vtt := `WEBVTT

00:00:00.000 --> 00:00:01.000
the same line

00:00:01.000 --> 00:00:02.000
the same line
`
	segments := ParseCues(vtt)
	if len(segments) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segments))
	}
	if segments[0].Text != "the same line" {
		t.Errorf("rolling caption repeat not removed: %q", segments[0].Text)
	}
}

func TestParseCues_CapsSegmentLength(t *testing.T) {
	// Continuous cues with no gaps: a 40-second stretch must be split once
	// it exceeds the 30-second cap.
	vtt := `WEBVTT

00:00:00.000 --> 00:00:20.000
first half of the stretch

00:00:20.000 --> 00:00:40.000
second half of the stretch
`
	segments := ParseCues(vtt)
	if len(segments) != 2 {
		t.Fatalf("expected the 40s stretch to split, got %d segments", len(segments))
	}
}

func TestParseCues_EmptyAndGarbageInput(t *testing.T) {
	if got := ParseCues(""); got != nil {
		t.Errorf("empty input: got %v", got)
	}
	if got := ParseCues("not a caption file at all"); got != nil {
		t.Errorf("garbage input: got %v", got)
	}
}
