package transcript

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"podcast-insights/pkg/domain"
)

// CachedTranscript is the JSON artifact written per video so reruns skip
// re-extraction. The field set is part of the cache contract: changing it
// invalidates every previously written cache file.
type CachedTranscript struct {
	VideoID          string          `json:"video_id"`
	Title            string          `json:"title"`
	URL              string          `json:"url"`
	ExtractionMethod string          `json:"extraction_method"`
	ExtractedAt      time.Time       `json:"extracted_at"`
	Segments         []CachedSegment `json:"segments"`
}

// CachedSegment is one transcript segment in the cache artifact.
type CachedSegment struct {
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
	Text      string  `json:"text"`
	Speaker   string  `json:"speaker"`
}

// Cache stores transcript artifacts as one JSON file per video.
type Cache struct {
	dir string
}

// NewCache creates a cache rooted at dir, creating it if needed.
func NewCache(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create cache dir: %w", err)
	}
	return &Cache{dir: dir}, nil
}

// Load returns the cached segments for a video, or ok=false on a miss.
// Unreadable or corrupt cache files are treated as misses.
func (c *Cache) Load(videoID string) ([]domain.TranscriptSegment, bool) {
	data, err := os.ReadFile(c.path(videoID))
	if err != nil {
		return nil, false
	}

	var doc CachedTranscript
	if err := json.Unmarshal(data, &doc); err != nil {
		log.Printf("Cache: corrupt transcript file for %s, ignoring: %v", videoID, err)
		return nil, false
	}

	segments := make([]domain.TranscriptSegment, 0, len(doc.Segments))
	for _, s := range doc.Segments {
		segments = append(segments, domain.TranscriptSegment{
			Text:      s.Text,
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Speaker:   s.Speaker,
		})
	}
	return segments, true
}

// Save writes the cache artifact for a video. A write failure is logged and
// swallowed: caching is best-effort and never blocks processing.
func (c *Cache) Save(video domain.VideoInfo, method string, segments []domain.TranscriptSegment) {
	doc := CachedTranscript{
		VideoID:          video.VideoID,
		Title:            video.Title,
		URL:              video.URL,
		ExtractionMethod: method,
		ExtractedAt:      time.Now().UTC(),
		Segments:         make([]CachedSegment, 0, len(segments)),
	}
	for _, s := range segments {
		doc.Segments = append(doc.Segments, CachedSegment{
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			Text:      s.Text,
			Speaker:   s.Speaker,
		})
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		log.Printf("Cache: marshal transcript for %s: %v", video.VideoID, err)
		return
	}
	if err := os.WriteFile(c.path(video.VideoID), data, 0o644); err != nil {
		log.Printf("Cache: write transcript for %s: %v", video.VideoID, err)
		return
	}
	log.Printf("Cache: saved transcript for %s (%d segments)", video.VideoID, len(segments))
}

func (c *Cache) path(videoID string) string {
	return filepath.Join(c.dir, videoID+"_transcript.json")
}
