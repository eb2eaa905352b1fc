package model

import (
	"fmt"
	"math"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// TranslationJob represents a single video translation job
type TranslationJob struct {
	ID                 string     `json:"id"`
	URL                string     `json:"url"`
	TargetLanguage     string     `json:"target_language"`
	VideoName          string     `json:"video_name,omitempty"`
	VideoID            string     `json:"video_id"`
	Title              string     `json:"title,omitempty"`
	Status             TaskStatus `json:"status"`
	Progress           float64    `json:"progress"` // 0.0 to 1.0
	Percent            int        `json:"percent"`  // 0 to 100
	Detail             string     `json:"detail,omitempty"`
	DetectedLanguage   string     `json:"detected_language,omitempty"`
	SegmentsTotal      int        `json:"segments_total"`
	SegmentsTranslated int        `json:"segments_translated"`
	SegmentsSpoken     int        `json:"segments_spoken"`
	OutputPath         string     `json:"output_path,omitempty"`
	FileSize           int64      `json:"file_size,omitempty"`
	LastError          string     `json:"last_error,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	StartedAt          time.Time  `json:"started_at,omitempty"`
	FinishedAt         time.Time  `json:"finished_at,omitempty"`
}

var unsafeNameChars = regexp.MustCompile(`[^A-Za-z0-9_-]+`)

// NewVideoID builds the file stem used for temp and output files of a job.
// A custom name wins; otherwise the creation time keeps ids unique.
func NewVideoID(videoName, targetLanguage string, now time.Time) string {
	name := strings.Trim(unsafeNameChars.ReplaceAllString(strings.TrimSpace(videoName), "_"), "_")
	if name != "" {
		return fmt.Sprintf("%s_%s", name, targetLanguage)
	}
	return fmt.Sprintf("video_%d_%s", now.Unix(), targetLanguage)
}

// SetStage moves the job into a pipeline stage and resets progress to the stage baseline
func (j *TranslationJob) SetStage(status TaskStatus) {
	j.Status = status
	j.Detail = status.StageLabel()
	if p := status.StageProgress(); p > j.Progress {
		j.Progress = p
		j.Percent = int(math.Round(p * 100))
	}
}

// SetSubProgress interpolates progress inside the current stage.
// fraction is clamped to [0,1] and mapped to the span up to the next stage.
func (j *TranslationJob) SetSubProgress(fraction float64) {
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	start := j.Status.StageProgress()
	end := nextStageProgress(j.Status)
	p := start + (end-start)*fraction
	if p > j.Progress {
		j.Progress = p
		j.Percent = int(math.Round(p * 100))
	}
}

func nextStageProgress(status TaskStatus) float64 {
	next := 1.0
	current := status.StageProgress()
	for _, p := range stageProgress {
		if p > current && p < next {
			next = p
		}
	}
	return next
}

// Duration returns how long the job ran, or 0 if it has not started
func (j *TranslationJob) Duration() time.Duration {
	if j.StartedAt.IsZero() {
		return 0
	}
	if j.FinishedAt.IsZero() {
		return time.Since(j.StartedAt)
	}
	return j.FinishedAt.Sub(j.StartedAt)
}

// GetDisplayTitle returns title, output filename, or URL in order of preference
func (j *TranslationJob) GetDisplayTitle() string {
	if j.Title != "" && !strings.HasPrefix(j.Title, "http") {
		return j.Title
	}

	if j.OutputPath != "" {
		filename := filepath.Base(j.OutputPath)
		if idx := strings.LastIndex(filename, "."); idx > 0 {
			filename = filename[:idx]
		}
		return filename
	}

	return j.URL
}

// Segment is one timed piece of recognised speech
type Segment struct {
	Start float64 `json:"start"` // seconds
	End   float64 `json:"end"`   // seconds
	Text  string  `json:"text"`
}

// Transcript is the result of speech recognition over an audio file
type Transcript struct {
	Language string    `json:"language"`
	Duration float64   `json:"duration"`
	Segments []Segment `json:"segments"`
}

// TranslatedSegment pairs a source segment with its translation.
// Fallback is set when the original text was kept because translation failed.
type TranslatedSegment struct {
	Original   string  `json:"original"`
	Translated string  `json:"translated"`
	Start      float64 `json:"start"`
	End        float64 `json:"end"`
	Fallback   bool    `json:"fallback,omitempty"`
}

// TotalDuration returns the end of the last segment, which bounds the synthesized track
func TotalDuration(segments []TranslatedSegment) float64 {
	total := 0.0
	for _, s := range segments {
		if s.End > total {
			total = s.End
		}
	}
	return total
}
