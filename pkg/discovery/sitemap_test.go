package discovery

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSitemapSource_Discover(t *testing.T) {
	sitemapXML := `<?xml version="1.0" encoding="UTF-8"?>
<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<url><loc>https://example.com/podcast/ep-1</loc></url>
	<url><loc>https://example.com/podcast/ep-2</loc></url>
</urlset>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/xml")
		w.Write([]byte(sitemapXML))
	}))
	defer server.Close()

	source := NewSitemapSource(nil)
	videos, err := source.Discover(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 episodes, got %d", len(videos))
	}
	if videos[0].URL != "https://example.com/podcast/ep-1" {
		t.Errorf("first URL = %q", videos[0].URL)
	}
	if videos[0].VideoID != "ep-1" {
		t.Errorf("first VideoID = %q, want %q", videos[0].VideoID, "ep-1")
	}
}

func TestSitemapSource_FollowsIndex(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<?xml version="1.0" encoding="UTF-8"?>
<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">
	<sitemap><loc>%s/sitemap-1.xml</loc></sitemap>
	<sitemap><loc>%s/sitemap-2.xml</loc></sitemap>
</sitemapindex>`, server.URL, server.URL)
	})
	mux.HandleFunc("/sitemap-1.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<urlset><url><loc>https://example.com/podcast/a</loc></url></urlset>`))
	})
	mux.HandleFunc("/sitemap-2.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<urlset><url><loc>https://example.com/podcast/b</loc></url></urlset>`))
	})

	source := NewSitemapSource(nil)
	videos, err := source.Discover(context.Background(), server.URL+"/sitemap.xml")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(videos) != 2 {
		t.Fatalf("expected 2 episodes from index, got %d", len(videos))
	}
}

func TestSitemapSource_SkipsBrokenChild(t *testing.T) {
	mux := http.NewServeMux()
	server := httptest.NewServer(mux)
	defer server.Close()

	mux.HandleFunc("/sitemap.xml", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<sitemapindex>
	<sitemap><loc>%s/missing.xml</loc></sitemap>
	<sitemap><loc>%s/good.xml</loc></sitemap>
</sitemapindex>`, server.URL, server.URL)
	})
	mux.HandleFunc("/good.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<urlset><url><loc>https://example.com/podcast/only</loc></url></urlset>`))
	})

	source := NewSitemapSource(nil)
	videos, err := source.Discover(context.Background(), server.URL+"/sitemap.xml")
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(videos) != 1 {
		t.Fatalf("expected 1 episode after skipping broken child, got %d", len(videos))
	}
}
