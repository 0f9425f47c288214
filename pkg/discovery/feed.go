package discovery

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mmcdole/gofeed"

	"podcast-insights/pkg/domain"
)

// FeedSource discovers episodes from an RSS/Atom podcast feed.
type FeedSource struct {
	parser *gofeed.Parser
}

// NewFeedSource creates a feed-based episode source.
func NewFeedSource() *FeedSource {
	return &FeedSource{parser: gofeed.NewParser()}
}

// Discover implements Source. Episode metadata comes from standard feed
// fields plus the iTunes podcast extension when present (duration,
// artwork).
func (s *FeedSource) Discover(ctx context.Context, feedURL string) ([]domain.VideoInfo, error) {
	feed, err := s.parser.ParseURLWithContext(feedURL, ctx)
	if err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}
	if feed == nil || len(feed.Items) == 0 {
		return nil, ErrNoEpisodes
	}

	videos := make([]domain.VideoInfo, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item.Link == "" {
			continue
		}

		video := domain.VideoInfo{
			VideoID:     VideoIDFromURL(item.Link),
			Title:       item.Title,
			Description: item.Description,
			URL:         item.Link,
			PublishDate: item.PublishedParsed,
		}
		if item.Image != nil {
			video.ThumbnailURL = item.Image.URL
		}
		if item.ITunesExt != nil {
			video.Duration = parseITunesDuration(item.ITunesExt.Duration)
			if video.ThumbnailURL == "" {
				video.ThumbnailURL = item.ITunesExt.Image
			}
			if video.Description == "" {
				video.Description = item.ITunesExt.Summary
			}
		}

		videos = append(videos, video)
	}

	if len(videos) == 0 {
		return nil, ErrNoEpisodes
	}
	return videos, nil
}

// parseITunesDuration parses the itunes:duration value, which feeds publish
// as plain seconds, "MM:SS", or "HH:MM:SS". Returns 0 when unparseable.
func parseITunesDuration(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}

	parts := strings.Split(raw, ":")
	if len(parts) == 1 {
		sec, err := strconv.Atoi(parts[0])
		if err != nil || sec < 0 {
			return 0
		}
		return sec
	}
	if len(parts) > 3 {
		return 0
	}

	total := 0
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 0 {
			return 0
		}
		total = total*60 + n
	}
	return total
}
