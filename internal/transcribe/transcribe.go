// Package transcribe turns extracted speech audio into timed text segments.
// Two backends are available: the local Whisper CLI and Amazon Transcribe.
package transcribe

import (
	"context"
	"errors"
	"strings"

	"github.com/ytget/ytdash/internal/model"
)

// ErrNoSpeech is returned when a backend finds no speech segments in the audio
var ErrNoSpeech = errors.New("no speech segments found")

// Transcriber converts an audio file into a transcript
type Transcriber interface {
	Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error)
}

// cleanSegments trims text and drops empty segments
func cleanSegments(segments []model.Segment) []model.Segment {
	out := make([]model.Segment, 0, len(segments))
	for _, s := range segments {
		s.Text = strings.TrimSpace(s.Text)
		if s.Text == "" {
			continue
		}
		out = append(out, s)
	}
	return out
}

// finish validates a transcript before it is handed to the caller
func finish(t *model.Transcript) (*model.Transcript, error) {
	t.Segments = cleanSegments(t.Segments)
	if len(t.Segments) == 0 {
		return nil, ErrNoSpeech
	}
	if t.Language == "" {
		t.Language = "unknown"
	}
	if t.Duration == 0 {
		t.Duration = t.Segments[len(t.Segments)-1].End
	}
	return t, nil
}
