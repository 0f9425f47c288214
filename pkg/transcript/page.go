package transcript

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"podcast-insights/pkg/domain"
	"podcast-insights/pkg/httpclient"
)

// PageSource obtains transcripts from episode web pages: it fetches the
// page, locates a caption or transcript link, downloads it, and parses it
// into timed segments. Results are cached per video when a cache is set.
type PageSource struct {
	client *httpclient.HTTPClient
	cache  *Cache
}

// NewPageSource creates a page-based transcript source. cache may be nil to
// disable the transcript cache.
func NewPageSource(client *httpclient.HTTPClient, cache *Cache) *PageSource {
	if client == nil {
		client = httpclient.NewClient(httpclient.BrowserClient)
	}
	return &PageSource{client: client, cache: cache}
}

// Transcript implements Source.
func (s *PageSource) Transcript(ctx context.Context, video domain.VideoInfo) ([]domain.TranscriptSegment, string, error) {
	if s.cache != nil {
		if segments, ok := s.cache.Load(video.VideoID); ok {
			return segments, MethodCached, nil
		}
	}

	if video.URL == "" {
		return nil, "", ErrEmptyEpisodeURL
	}

	html, err := s.fetch(ctx, video.URL)
	if err != nil {
		return nil, "", fmt.Errorf("fetch episode page: %w", err)
	}

	link, err := FindTranscriptURL(html)
	if err != nil {
		return nil, "", err
	}
	link, err = resolveLink(video.URL, link)
	if err != nil {
		return nil, "", fmt.Errorf("resolve transcript link: %w", err)
	}

	segments, method, err := s.download(ctx, link, video.Duration)
	if err != nil {
		return nil, "", err
	}
	if len(segments) == 0 {
		return nil, "", ErrEmptyTranscript
	}

	if s.cache != nil {
		s.cache.Save(video, method, segments)
	}
	return segments, method, nil
}

// ShowNotes extracts the readable show-notes text from the episode page,
// used to enrich episode descriptions for indexing.
func (s *PageSource) ShowNotes(ctx context.Context, pageURL string) (string, error) {
	if pageURL == "" {
		return "", ErrEmptyEpisodeURL
	}
	html, err := s.fetch(ctx, pageURL)
	if err != nil {
		return "", err
	}

	article, err := readability.FromReader(strings.NewReader(html), nil)
	if err != nil {
		return "", fmt.Errorf("extract show notes: %w", err)
	}
	return strings.TrimSpace(article.TextContent), nil
}

// download fetches the transcript file and parses it according to its
// extension.
func (s *PageSource) download(ctx context.Context, link string, durationSec int) ([]domain.TranscriptSegment, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return nil, "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("download transcript: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("download transcript: unexpected status code %d", resp.StatusCode)
	}

	switch transcriptExt(link) {
	case ".vtt", ".srt":
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", err
		}
		return ParseCues(string(body)), MethodCaptions, nil
	case ".pdf":
		text, err := ExtractTextFromPDFReader(resp.Body)
		if err != nil {
			return nil, "", fmt.Errorf("extract pdf transcript: %w", err)
		}
		return SegmentPlainText(text, durationSec), MethodPDFEstimated, nil
	case ".txt":
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, "", err
		}
		return SegmentPlainText(string(body), durationSec), MethodTextEstimated, nil
	}
	return nil, "", ErrUnsupportedFile
}

func (s *PageSource) fetch(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// FindTranscriptURL locates the most promising caption or transcript link in
// episode page HTML.
//
// Candidates are ranked:
//  1. href is a caption file (.vtt/.srt)
//  2. anchor text mentions a transcript/caption and href is a document
//  3. href is a document (.pdf/.txt)
//  4. anchor text mentions a transcript
//
// The returned href may be relative; callers resolve it against the page
// URL.
func FindTranscriptURL(html string) (string, error) {
	html = strings.TrimSpace(html)
	if html == "" {
		return "", ErrEmptyEpisodeHTML
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse episode page: %w", err)
	}

	// One slice per rank, filled in document order.
	var ranked [4][]string

	collect := func(href, text string) {
		ext := transcriptExt(href)
		caption := ext == ".vtt" || ext == ".srt"
		document := ext == ".pdf" || ext == ".txt"
		mentions := anchorMentionsTranscript(text)

		switch {
		case caption:
			ranked[0] = append(ranked[0], href)
		case document && mentions:
			ranked[1] = append(ranked[1], href)
		case document:
			ranked[2] = append(ranked[2], href)
		case mentions:
			ranked[3] = append(ranked[3], href)
		}
	}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists {
			return
		}
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		collect(href, strings.TrimSpace(sel.Text()))
	})
	// <track> elements carry caption files directly.
	doc.Find("track[src]").Each(func(_ int, sel *goquery.Selection) {
		if src, exists := sel.Attr("src"); exists {
			if src = strings.TrimSpace(src); src != "" {
				collect(src, "captions")
			}
		}
	})

	for _, candidates := range ranked {
		if len(candidates) > 0 {
			return candidates[0], nil
		}
	}
	return "", ErrNoCaptionLink
}

// transcriptExt returns the lowercase file extension of a link's path.
func transcriptExt(href string) string {
	parsed, err := url.Parse(href)
	if err != nil {
		return strings.ToLower(path.Ext(href))
	}
	return strings.ToLower(path.Ext(parsed.Path))
}

func anchorMentionsTranscript(text string) bool {
	if text == "" {
		return false
	}
	lower := strings.ToLower(text)
	return strings.Contains(lower, "transcript") || strings.Contains(lower, "caption")
}

// resolveLink resolves a possibly relative transcript link against the
// episode page URL.
func resolveLink(pageURL, link string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}
