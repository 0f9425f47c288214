package discovery

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestFeedSource_Discover(t *testing.T) {
	rssXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:itunes="http://www.itunes.com/dtds/podcast-1.0.dtd">
	<channel>
		<title>Test Podcast</title>
		<link>https://example.com</link>
		<item>
			<title>Episode 1: Getting Started</title>
			<link>https://example.com/episodes/getting-started</link>
			<description>The first episode.</description>
			<pubDate>Mon, 02 Jan 2023 10:00:00 GMT</pubDate>
			<itunes:duration>01:02:30</itunes:duration>
		</item>
		<item>
			<title>Episode 2</title>
			<link>https://example.com/episodes/ep-2</link>
			<itunes:duration>1800</itunes:duration>
		</item>
	</channel>
</rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		w.Write([]byte(rssXML))
	}))
	defer server.Close()

	source := NewFeedSource()
	videos, err := source.Discover(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(videos))
	}

	first := videos[0]
	if first.VideoID != "getting-started" {
		t.Errorf("VideoID = %q, want %q", first.VideoID, "getting-started")
	}
	if first.Title != "Episode 1: Getting Started" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Duration != 3750 {
		t.Errorf("Duration = %d, want 3750", first.Duration)
	}
	if first.PublishDate == nil {
		t.Error("PublishDate not parsed")
	}

	if videos[1].Duration != 1800 {
		t.Errorf("plain-seconds duration = %d, want 1800", videos[1].Duration)
	}
}

func TestFeedSource_EmptyFeed(t *testing.T) {
	rssXML := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"><channel><title>Empty</title></channel></rss>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(rssXML))
	}))
	defer server.Close()

	source := NewFeedSource()
	if _, err := source.Discover(context.Background(), server.URL); !errors.Is(err, ErrNoEpisodes) {
		t.Errorf("err = %v, want ErrNoEpisodes", err)
	}
}

func TestParseITunesDuration(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"01:02:30", 3750},
		{"02:30", 150},
		{"1800", 1800},
		{"", 0},
		{"abc", 0},
		{"1:2:3:4", 0},
	}

	for _, tc := range cases {
		if got := parseITunesDuration(tc.raw); got != tc.want {
			t.Errorf("parseITunesDuration(%q) = %d, want %d", tc.raw, got, tc.want)
		}
	}
}
