package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"podcast-insights/pkg/chunker"
	"podcast-insights/pkg/cleaner"
	"podcast-insights/pkg/domain"
	"podcast-insights/pkg/insights"
	"podcast-insights/pkg/worker"
)

var ErrNoTranscript = errors.New("no transcript segments available")

// TranscriptSource supplies the ordered transcript for a video, along with a
// label naming the extraction method. The mechanism (speech-to-text, caption
// files, cached artifacts) is the source's business.
type TranscriptSource interface {
	Transcript(ctx context.Context, video domain.VideoInfo) ([]domain.TranscriptSegment, string, error)
}

// EpisodeIndexer receives finished episodes for persistence and search
// indexing. The pipeline makes no assumption about how indexing succeeds.
type EpisodeIndexer interface {
	IndexEpisode(ctx context.Context, episode *domain.Episode) error
}

// Config holds the pipeline tuning knobs. Zero values select the package
// defaults.
type Config struct {
	ChunkSize    int
	ChunkOverlap int
	ChunkWorkers int
	Tagger       insights.Tagger
}

// Processor runs the per-episode insight pipeline: clean segments, chunk the
// joined text, extract insights per chunk concurrently, dedupe, align, and
// assemble the Episode.
type Processor struct {
	cleaner   *cleaner.Cleaner
	extractor *insights.Extractor
	pool      *worker.Pool
	tagger    insights.Tagger

	chunkSize    int
	chunkOverlap int
}

// NewProcessor wires a processor from its collaborators.
func NewProcessor(segmentCleaner *cleaner.Cleaner, extractor *insights.Extractor, cfg Config) *Processor {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = chunker.DefaultChunkSize
	}
	if cfg.ChunkOverlap <= 0 {
		cfg.ChunkOverlap = chunker.DefaultChunkOverlap
	}
	if cfg.ChunkWorkers <= 0 {
		cfg.ChunkWorkers = worker.DefaultWorkers
	}
	if cfg.Tagger == nil {
		cfg.Tagger = insights.KeywordTagger
	}

	return &Processor{
		cleaner:      segmentCleaner,
		extractor:    extractor,
		pool:         worker.NewPool(cfg.ChunkWorkers),
		tagger:       cfg.Tagger,
		chunkSize:    cfg.ChunkSize,
		chunkOverlap: cfg.ChunkOverlap,
	}
}

// ProcessEpisode runs the full pipeline over one video's raw transcript.
//
// A chunk-level extraction failure contributes zero insights and does not
// fail the episode. Only an unobtainable transcript fails it: the returned
// episode then carries StatusFailed and the error is non-nil.
func (p *Processor) ProcessEpisode(ctx context.Context, video domain.VideoInfo, rawTranscript []domain.TranscriptSegment) (*domain.Episode, error) {
	now := time.Now().UTC()
	episode := &domain.Episode{
		VideoInfo:        video,
		RawTranscript:    rawTranscript,
		ProcessingStatus: domain.StatusProcessing,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if len(rawTranscript) == 0 {
		episode.ProcessingStatus = domain.StatusFailed
		return episode, fmt.Errorf("video %s: %w", video.VideoID, ErrNoTranscript)
	}

	log.Printf("Pipeline: processing %q (%d segments)", video.Title, len(rawTranscript))

	cleanedSegments := p.cleaner.CleanAll(ctx, rawTranscript)
	episode.CleanedSegments = cleanedSegments

	episode.Insights = p.extractInsights(ctx, video.VideoID, cleanedSegments)
	episode.ProcessingStatus = domain.StatusCompleted
	episode.UpdatedAt = time.Now().UTC()

	log.Printf("Pipeline: %q completed with %d insights", video.Title, len(episode.Insights))
	return episode, nil
}

// extractInsights joins the cleaned text, chunks it, fans extraction out over
// the worker pool, then dedupes and aligns the merged candidates.
//
// Chunk results are merged in chunk-index order, so the first-seen rule in
// dedup is deterministic for a given transcript even though chunk completion
// order is not.
func (p *Processor) extractInsights(ctx context.Context, videoID string, segments []domain.CleanedSegment) []domain.Insight {
	texts := make([]string, 0, len(segments))
	for _, segment := range segments {
		texts = append(texts, segment.CleanedText)
	}
	fullText := strings.Join(texts, " ")

	chunks := chunker.Chunk(fullText, p.chunkSize, p.chunkOverlap)
	log.Printf("Pipeline: split transcript into %d chunks", len(chunks))

	results := p.pool.Process(ctx, chunks, func(ctx context.Context, index int, chunk string) ([]domain.Insight, error) {
		return p.processChunk(ctx, videoID, chunk)
	})

	var merged []domain.Insight
	for _, res := range results {
		if res.Err != nil {
			// Already logged by the pool; the chunk simply contributes
			// nothing.
			continue
		}
		merged = append(merged, res.Insights...)
	}

	deduped := insights.Dedupe(merged)
	insights.AlignAll(deduped, segments)
	return deduped
}

// processChunk turns one chunk's per-category extraction output into Insight
// records.
func (p *Processor) processChunk(ctx context.Context, videoID, chunk string) ([]domain.Insight, error) {
	byCategory, err := p.extractor.Extract(ctx, chunk)
	if err != nil {
		return nil, fmt.Errorf("extract chunk: %w", err)
	}

	var list []domain.Insight
	for _, category := range p.extractor.Categories() {
		for _, content := range byCategory[category] {
			content = strings.TrimSpace(content)
			if content == "" {
				continue
			}
			list = append(list, domain.Insight{
				Category: category,
				Title:    insights.DeriveTitle(content),
				Content:  content,
				Quote:    insights.DeriveQuote(content),
				VideoID:  videoID,
				Tags:     p.tagger(content),
			})
		}
	}
	return list, nil
}
