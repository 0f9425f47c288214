package discovery

import (
	"context"
	"encoding/xml"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"podcast-insights/pkg/domain"
	"podcast-insights/pkg/httpclient"
)

// SitemapSource discovers episode pages from an XML sitemap. Sitemap indexes
// are followed recursively; entries carry no titles, so metadata beyond the
// URL is filled in later from the episode page itself.
type SitemapSource struct {
	client *httpclient.HTTPClient
}

// NewSitemapSource creates a sitemap-based episode source.
func NewSitemapSource(client *httpclient.HTTPClient) *SitemapSource {
	if client == nil {
		client = httpclient.NewClient(httpclient.BrowserClient)
	}
	return &SitemapSource{client: client}
}

// Discover implements Source.
func (s *SitemapSource) Discover(ctx context.Context, sitemapURL string) ([]domain.VideoInfo, error) {
	locations, err := s.fetch(ctx, sitemapURL)
	if err != nil {
		return nil, err
	}
	if len(locations) == 0 {
		return nil, ErrNoEpisodes
	}

	videos := make([]domain.VideoInfo, 0, len(locations))
	for _, loc := range locations {
		videos = append(videos, domain.VideoInfo{
			VideoID: VideoIDFromURL(loc),
			URL:     loc,
		})
	}
	return videos, nil
}

// fetch downloads one sitemap and returns its page URLs, recursing into
// child sitemaps when the document is a sitemap index.
func (s *SitemapSource) fetch(ctx context.Context, sitemapURL string) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sitemapURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch sitemap: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch sitemap: unexpected status code %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read sitemap: %w", err)
	}

	if strings.Contains(string(body), "<sitemapindex") {
		var index sitemapIndex
		if err := xml.Unmarshal(body, &index); err != nil {
			return nil, fmt.Errorf("decode sitemap index: %w", err)
		}

		var all []string
		for _, ref := range index.Sitemaps {
			if ref.Location == "" {
				continue
			}
			child, err := s.fetch(ctx, ref.Location)
			if err != nil {
				log.Printf("SitemapSource: skipping child sitemap %s: %v", ref.Location, err)
				continue
			}
			all = append(all, child...)
		}
		return all, nil
	}

	var set urlSet
	if err := xml.Unmarshal(body, &set); err != nil {
		return nil, fmt.Errorf("decode sitemap: %w", err)
	}

	locations := make([]string, 0, len(set.URLs))
	for _, entry := range set.URLs {
		if entry.Location != "" {
			locations = append(locations, entry.Location)
		}
	}
	return locations, nil
}

type urlSet struct {
	XMLName xml.Name   `xml:"urlset"`
	URLs    []urlEntry `xml:"url"`
}

type urlEntry struct {
	Location string `xml:"loc"`
	LastMod  string `xml:"lastmod,omitempty"`
}

type sitemapIndex struct {
	XMLName  xml.Name     `xml:"sitemapindex"`
	Sitemaps []sitemapRef `xml:"sitemap"`
}

type sitemapRef struct {
	Location string `xml:"loc"`
}
