package pipeline

import (
	"context"

	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/platform"
)

// Manager is the job-facing surface used by the UI and the HTTP API
type Manager interface {
	SetUpdateCallback(func(*model.TranslationJob))
	StartTranslation(req Request) (*model.TranslationJob, error)
	GetJob(id string) (*model.TranslationJob, bool)
	GetAllJobs() []*model.TranslationJob
	StopJob(id string) error
	RemoveJob(id string) error
	RecentOutputs(limit int) ([]platform.OutputFile, error)
}

// MediaTool covers the ffmpeg operations the pipeline needs
type MediaTool interface {
	ExtractAudio(ctx context.Context, videoPath, outPath string) error
	ProbeDuration(ctx context.Context, path string) (float64, error)
	GenerateSilence(ctx context.Context, duration float64, outPath string) error
	PositionClip(ctx context.Context, clipPath string, start float64, outPath string) error
	MixTracks(ctx context.Context, inputs []string, outPath string) error
	MergeVideoAudio(ctx context.Context, videoPath, audioPath, outPath string, progress func(float64)) error
}

// SegmentTranslator translates transcript segments
type SegmentTranslator interface {
	TranslateSegments(ctx context.Context, segments []model.Segment, source, target string, progress func(done, total int)) ([]model.TranslatedSegment, int, error)
}

// JobStore persists job snapshots
type JobStore interface {
	SaveJob(ctx context.Context, job *model.TranslationJob) error
	ListJobs(ctx context.Context, limit int) ([]*model.TranslationJob, error)
	DeleteJob(ctx context.Context, id string) error
	MarkInterrupted(ctx context.Context) (int64, error)
}
