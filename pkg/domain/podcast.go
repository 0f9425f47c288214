package domain

import "time"

// Processing status values for an Episode.
const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// VideoInfo describes a podcast episode as discovered from a feed or site.
type VideoInfo struct {
	VideoID      string     `bson:"video_id" json:"video_id"`
	Title        string     `bson:"title" json:"title"`
	Description  string     `bson:"description,omitempty" json:"description,omitempty"`
	URL          string     `bson:"url" json:"url"`
	Duration     int        `bson:"duration,omitempty" json:"duration,omitempty"` // seconds
	PublishDate  *time.Time `bson:"publish_date,omitempty" json:"publish_date,omitempty"`
	ThumbnailURL string     `bson:"thumbnail_url,omitempty" json:"thumbnail_url,omitempty"`
}

// TranscriptSegment is a raw speech unit produced by a transcript source.
// Segments are ordered by StartTime and never mutated after creation.
type TranscriptSegment struct {
	Text       string  `bson:"text" json:"text"`
	StartTime  float64 `bson:"start_time" json:"start_time"` // seconds
	EndTime    float64 `bson:"end_time" json:"end_time"`     // seconds
	Speaker    string  `bson:"speaker,omitempty" json:"speaker,omitempty"`
	Confidence float64 `bson:"confidence,omitempty" json:"confidence,omitempty"`
}

// CleanedSegment is derived 1:1 from a TranscriptSegment. The time range is
// inherited verbatim from the source segment and never recomputed.
type CleanedSegment struct {
	OriginalText string  `bson:"original_text" json:"original_text"`
	CleanedText  string  `bson:"cleaned_text" json:"cleaned_text"`
	Title        string  `bson:"title" json:"title"`
	StartTime    float64 `bson:"start_time" json:"start_time"`
	EndTime      float64 `bson:"end_time" json:"end_time"`
	Speaker      string  `bson:"speaker,omitempty" json:"speaker,omitempty"`
}

// Insight is a categorized, titled unit of extracted meaning anchored to a
// time range in the source recording.
//
// StartTime/EndTime are nil when no transcript segment matched above the
// alignment threshold; they are never zeroed or extrapolated.
type Insight struct {
	Category   string   `bson:"category" json:"category"`
	Title      string   `bson:"title" json:"title"`
	Content    string   `bson:"content" json:"content"`
	Quote      string   `bson:"quote,omitempty" json:"quote,omitempty"`
	StartTime  *float64 `bson:"start_time,omitempty" json:"start_time,omitempty"`
	EndTime    *float64 `bson:"end_time,omitempty" json:"end_time,omitempty"`
	VideoID    string   `bson:"video_id" json:"video_id"`
	Confidence float64  `bson:"confidence,omitempty" json:"confidence,omitempty"`
	Tags       []string `bson:"tags,omitempty" json:"tags,omitempty"`
}

// Episode aggregates one processed video: its metadata, the raw transcript,
// the cleaned segments and the final insight list. The episode exclusively
// owns its transcript/segment/insight slices.
type Episode struct {
	VideoInfo        VideoInfo           `bson:"video_info" json:"video_info"`
	RawTranscript    []TranscriptSegment `bson:"raw_transcript" json:"raw_transcript"`
	CleanedSegments  []CleanedSegment    `bson:"cleaned_segments" json:"cleaned_segments"`
	Insights         []Insight           `bson:"insights" json:"insights"`
	ProcessingStatus string              `bson:"processing_status" json:"processing_status"`
	CreatedAt        time.Time           `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time           `bson:"updated_at" json:"updated_at"`
}
