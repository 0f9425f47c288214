package pipeline

import (
	"context"
	"log"

	"podcast-insights/pkg/domain"
)

// Batch drives the per-episode pipeline across a list of discovered videos:
// transcript supply, insight extraction, then indexing. Each video is fault
// isolated; a failed episode is logged, skipped, and never emitted.
type Batch struct {
	processor *Processor
	source    TranscriptSource
	indexer   EpisodeIndexer
}

// NewBatch wires a batch runner. indexer may be nil when the caller only
// wants the episodes back.
func NewBatch(processor *Processor, source TranscriptSource, indexer EpisodeIndexer) *Batch {
	return &Batch{processor: processor, source: source, indexer: indexer}
}

// ProcessChannel processes the videos synchronously and returns the episodes
// that completed. Failed videos simply do not appear in the result.
func (b *Batch) ProcessChannel(ctx context.Context, videos []domain.VideoInfo) []*domain.Episode {
	var episodes []*domain.Episode
	b.run(ctx, videos, nil, func(episode *domain.Episode) {
		episodes = append(episodes, episode)
	})
	return episodes
}

// Start launches channel processing in the background and returns its Job
// handle immediately.
func (b *Batch) Start(ctx context.Context, videos []domain.VideoInfo) *Job {
	jobCtx, cancel := context.WithCancel(ctx)
	job := &Job{
		id:     newJobID(),
		cancel: cancel,
		done:   make(chan struct{}),
		status: Status{State: JobRunning, Total: len(videos)},
	}

	go func() {
		defer close(job.done)
		defer cancel()

		b.run(jobCtx, videos, job, func(episode *domain.Episode) {
			job.appendEpisode(episode)
		})

		job.update(func(s *Status) {
			s.CurrentVideo = ""
			if jobCtx.Err() != nil {
				s.State = JobCanceled
				return
			}
			s.State = JobCompleted
		})
	}()

	return job
}

// run is the shared worker loop behind ProcessChannel and Start. job may be
// nil for synchronous runs.
func (b *Batch) run(ctx context.Context, videos []domain.VideoInfo, job *Job, emit func(*domain.Episode)) {
	for _, video := range videos {
		if ctx.Err() != nil {
			log.Printf("Batch: canceled after %d videos", countProcessed(job))
			return
		}
		if job != nil {
			job.update(func(s *Status) { s.CurrentVideo = video.Title })
		}

		episode := b.processVideo(ctx, video)

		if job != nil {
			job.update(func(s *Status) {
				s.Processed++
				if episode != nil {
					s.Succeeded++
				}
			})
		}
		if episode != nil {
			emit(episode)
		}
	}
}

// processVideo runs one video end to end. Any failure is contained here: a
// nil return means the video produced no episode.
func (b *Batch) processVideo(ctx context.Context, video domain.VideoInfo) *domain.Episode {
	segments, method, err := b.source.Transcript(ctx, video)
	if err != nil {
		log.Printf("Batch: no transcript for %s: %v", video.VideoID, err)
		return nil
	}
	log.Printf("Batch: transcript for %s via %s (%d segments)", video.VideoID, method, len(segments))

	episode, err := b.processor.ProcessEpisode(ctx, video, segments)
	if err != nil {
		log.Printf("Batch: processing failed for %s: %v", video.VideoID, err)
		return nil
	}

	if b.indexer != nil {
		if err := b.indexer.IndexEpisode(ctx, episode); err != nil {
			// Indexing is downstream of the pipeline contract; the episode
			// is still returned to the caller.
			log.Printf("Batch: indexing failed for %s: %v", video.VideoID, err)
		}
	}
	return episode
}

func countProcessed(job *Job) int {
	if job == nil {
		return 0
	}
	return job.Snapshot().Processed
}
