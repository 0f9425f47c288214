package transcript

import (
	"context"
	"errors"

	"podcast-insights/pkg/domain"
)

var (
	ErrEmptyEpisodeURL  = errors.New("episode URL is empty")
	ErrEmptyEpisodeHTML = errors.New("episode HTML is empty")
	ErrNoCaptionLink    = errors.New("no caption or transcript link found on episode page")
	ErrUnsupportedFile  = errors.New("unsupported transcript file type")
	ErrEmptyTranscript  = errors.New("extracted transcript is empty")
)

// Extraction method labels recorded with cached transcripts.
const (
	MethodCaptions      = "captions"
	MethodPDFEstimated  = "pdf_estimated"
	MethodTextEstimated = "text_estimated"
	MethodCached        = "cached"
)

// Source supplies the ordered transcript for a video. Implementations decide
// the mechanism (caption files, speech-to-text, cached artifacts) and return
// a label naming it.
type Source interface {
	Transcript(ctx context.Context, video domain.VideoInfo) ([]domain.TranscriptSegment, string, error)
}
