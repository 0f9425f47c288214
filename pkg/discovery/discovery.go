package discovery

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"podcast-insights/pkg/domain"
)

var (
	// ErrNoEpisodes is returned when a source location parses but yields no
	// usable episode entries.
	ErrNoEpisodes = errors.New("no episodes found")
)

// Source discovers podcast episodes from a location: an RSS/Atom feed URL, a
// sitemap URL, or a local file of episode page URLs.
type Source interface {
	Discover(ctx context.Context, location string) ([]domain.VideoInfo, error)
}

// Filter decides whether a discovered episode should be processed.
type Filter interface {
	ShouldKeep(ctx context.Context, video domain.VideoInfo) (bool, error)
}

// Apply runs the filter chain over discovered episodes, keeping only those
// every filter accepts.
func Apply(ctx context.Context, videos []domain.VideoInfo, filters ...Filter) ([]domain.VideoInfo, error) {
	kept := make([]domain.VideoInfo, 0, len(videos))

	for _, video := range videos {
		keep := true
		for _, f := range filters {
			ok, err := f.ShouldKeep(ctx, video)
			if err != nil {
				return nil, err
			}
			if !ok {
				keep = false
				break
			}
		}
		if keep {
			kept = append(kept, video)
		}
	}

	return kept, nil
}

// VideoIDFromURL derives a stable episode identifier from an episode page
// URL: the last non-empty path segment, sanitized for use in filenames.
func VideoIDFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return sanitizeID(rawURL)
	}

	segments := strings.Split(strings.Trim(parsed.Path, "/"), "/")
	for i := len(segments) - 1; i >= 0; i-- {
		if segments[i] != "" {
			return sanitizeID(segments[i])
		}
	}
	return sanitizeID(parsed.Host)
}

// sanitizeID keeps letters, digits, dashes and underscores; everything else
// becomes a dash. IDs end up in cache filenames, so they must be path-safe.
func sanitizeID(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}
