package discovery

import (
	"context"
	"net/url"
	"strings"

	"podcast-insights/pkg/domain"
)

// RootURLFilter drops entries whose URL is a bare site root, which sitemaps
// often list alongside episode pages.
type RootURLFilter struct{}

// NewRootURLFilter creates a root URL filter.
func NewRootURLFilter() *RootURLFilter {
	return &RootURLFilter{}
}

// ShouldKeep implements Filter.
func (f *RootURLFilter) ShouldKeep(ctx context.Context, video domain.VideoInfo) (bool, error) {
	parsed, err := url.Parse(video.URL)
	if err != nil {
		// Unparseable URLs fail later with a better error; keep them.
		return true, nil
	}
	return strings.Trim(parsed.Path, "/") != "", nil
}

// ProcessedFilter drops episodes whose IDs are already indexed, so reruns
// only pick up new episodes.
type ProcessedFilter struct {
	processed map[string]bool
}

// NewProcessedFilter creates a filter over a set of already-processed
// episode IDs.
func NewProcessedFilter(processed map[string]bool) *ProcessedFilter {
	return &ProcessedFilter{processed: processed}
}

// ShouldKeep implements Filter.
func (f *ProcessedFilter) ShouldKeep(ctx context.Context, video domain.VideoInfo) (bool, error) {
	return !f.processed[video.VideoID], nil
}

// PathFilter keeps only episodes whose URL contains a path segment, e.g.
// "/podcast/" on sites that mix episode pages with blog posts.
type PathFilter struct {
	segment string
}

// NewPathFilter creates a path containment filter.
func NewPathFilter(segment string) *PathFilter {
	return &PathFilter{segment: segment}
}

// ShouldKeep implements Filter.
func (f *PathFilter) ShouldKeep(ctx context.Context, video domain.VideoInfo) (bool, error) {
	return strings.Contains(video.URL, f.segment), nil
}

// LimitFilter keeps the first n episodes it sees. A zero or negative limit
// keeps everything.
type LimitFilter struct {
	limit int
	seen  int
}

// NewLimitFilter creates an episode count limiter.
func NewLimitFilter(limit int) *LimitFilter {
	return &LimitFilter{limit: limit}
}

// ShouldKeep implements Filter.
func (f *LimitFilter) ShouldKeep(ctx context.Context, video domain.VideoInfo) (bool, error) {
	if f.limit <= 0 {
		return true, nil
	}
	f.seen++
	return f.seen <= f.limit, nil
}
