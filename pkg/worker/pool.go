package worker

import (
	"context"
	"log"
	"sort"
	"sync"

	"podcast-insights/pkg/domain"
)

// DefaultWorkers is the default number of concurrent chunk workers.
const DefaultWorkers = 3

// ChunkFunc extracts insights from one transcript chunk.
type ChunkFunc func(ctx context.Context, index int, chunk string) ([]domain.Insight, error)

// Result pairs a chunk's originating index with its outcome. A non-nil Err
// means that chunk failed; other chunks are unaffected.
type Result struct {
	Index    int
	Insights []domain.Insight
	Err      error
}

// Pool runs chunk extraction across a fixed number of workers.
type Pool struct {
	workers int
}

// NewPool creates a pool. workers <= 0 is coerced to 1.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = 1
	}
	return &Pool{workers: workers}
}

// Process fans the chunks out over the pool's workers and gathers one Result
// per chunk. Results are sorted by chunk index before returning, so callers
// see a deterministic order regardless of which worker finished first.
//
// Failures are isolated per chunk: a chunk whose fn returns an error is
// logged and reported with Err set, and the remaining chunks proceed.
func (p *Pool) Process(ctx context.Context, chunks []string, fn ChunkFunc) []Result {
	if len(chunks) == 0 {
		return nil
	}

	type job struct {
		index int
		chunk string
	}

	jobChan := make(chan job, len(chunks))
	for i, chunk := range chunks {
		jobChan <- job{index: i, chunk: chunk}
	}
	close(jobChan)

	resultsChan := make(chan Result, len(chunks))

	var wg sync.WaitGroup
	for w := 0; w < p.workers; w++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for j := range jobChan {
				extracted, err := fn(ctx, j.index, j.chunk)
				if err != nil {
					log.Printf("Worker %d: error processing chunk %d: %v", workerID, j.index, err)
				}
				resultsChan <- Result{Index: j.index, Insights: extracted, Err: err}
			}
		}(w)
	}

	go func() {
		wg.Wait()
		close(resultsChan)
	}()

	// Single goroutine gathers results, so no shared counters are needed.
	results := make([]Result, 0, len(chunks))
	var failed int
	for res := range resultsChan {
		if res.Err != nil {
			failed++
		}
		results = append(results, res)
	}
	if failed > 0 {
		log.Printf("Completed %d chunks, %d failed", len(results), failed)
	}

	sort.Slice(results, func(i, j int) bool { return results[i].Index < results[j].Index })
	return results
}
