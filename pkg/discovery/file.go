package discovery

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"podcast-insights/pkg/domain"
)

// FileSource discovers episodes from a local file listing one episode page
// URL per line. Blank lines and # comments are skipped.
type FileSource struct{}

// NewFileSource creates a file-based episode source.
func NewFileSource() *FileSource {
	return &FileSource{}
}

// Discover implements Source; location is a local file path.
func (s *FileSource) Discover(ctx context.Context, path string) ([]domain.VideoInfo, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open episode list: %w", err)
	}
	defer file.Close()

	var videos []domain.VideoInfo
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimRight(line, ", \t")
		if line == "" {
			continue
		}
		videos = append(videos, domain.VideoInfo{
			VideoID: VideoIDFromURL(line),
			URL:     line,
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read episode list: %w", err)
	}

	if len(videos) == 0 {
		return nil, ErrNoEpisodes
	}
	return videos, nil
}
