package pipeline

import (
	"context"
	"crypto/rand"
	"fmt"
	"sync"

	"podcast-insights/pkg/domain"
)

// Job states.
const (
	JobRunning   = "running"
	JobCompleted = "completed"
	JobCanceled  = "canceled"
)

// Status is a point-in-time snapshot of a channel-processing job.
type Status struct {
	State        string
	CurrentVideo string
	Processed    int // videos attempted so far
	Succeeded    int // episodes completed and indexed
	Total        int
}

// Job is the handle for one background channel-processing run. Callers poll
// Snapshot for progress, wait on Done for completion, and Cancel to stop the
// run between videos. All progress lives in the handle; there is no ambient
// shared state.
type Job struct {
	id     string
	cancel context.CancelFunc
	done   chan struct{}

	mu       sync.Mutex
	status   Status
	episodes []*domain.Episode
}

// ID returns the job's identifier.
func (j *Job) ID() string { return j.id }

// Snapshot returns the current status.
func (j *Job) Snapshot() Status {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.status
}

// Done is closed when the job finishes, whether completed or canceled.
func (j *Job) Done() <-chan struct{} { return j.done }

// Cancel stops the job after the in-flight video finishes.
func (j *Job) Cancel() { j.cancel() }

// Episodes returns the episodes produced so far. After Done is closed this
// is the job's final result set.
func (j *Job) Episodes() []*domain.Episode {
	j.mu.Lock()
	defer j.mu.Unlock()
	out := make([]*domain.Episode, len(j.episodes))
	copy(out, j.episodes)
	return out
}

func (j *Job) update(fn func(*Status)) {
	j.mu.Lock()
	defer j.mu.Unlock()
	fn(&j.status)
}

func (j *Job) appendEpisode(episode *domain.Episode) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.episodes = append(j.episodes, episode)
}

// newJobID generates a random 16-hex-character identifier.
func newJobID() string {
	b := make([]byte, 8)
	_, _ = rand.Read(b)
	return fmt.Sprintf("%x", b)
}
