package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/download"
	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/platform"
	"github.com/ytget/ytdash/internal/transcribe"
	"github.com/ytget/ytdash/internal/tts"
)

// Service constants
const (
	JobIDPrefix      = "translate-"
	StopPollInterval = 100 * time.Millisecond
	HistoryLoadLimit = 200
	persistTimeout   = 5 * time.Second
)

// Errors
var (
	ErrInvalidURL          = platform.ErrInvalidURL
	ErrUnsupportedLanguage = errors.New("unsupported target language")
	ErrDuplicateJob        = errors.New("translation already in progress")
	ErrJobNotFound         = errors.New("job not found")
	ErrJobNotActive        = errors.New("job is not active")
	ErrJobNotFinished      = errors.New("job is not finished")
	ErrNoSpeechClips       = errors.New("no speech clips were generated")
)

// Request describes a translation job to start
type Request struct {
	URL            string `json:"url"`
	TargetLanguage string `json:"target_language"`
	VideoName      string `json:"video_name,omitempty"`
}

// Options configures directories and concurrency
type Options struct {
	OutputDir   string
	TempDir     string
	MaxParallel int
}

// Deps are the collaborators a job runs through
type Deps struct {
	Fetcher     download.VideoFetcher
	Media       MediaTool
	Transcriber transcribe.Transcriber
	Translator  SegmentTranslator
	Synthesizer tts.Synthesizer
	Store       JobStore
}

// Service handles translation jobs
type Service struct {
	jobs        map[string]*model.TranslationJob
	jobsMutex   sync.RWMutex
	maxParallel int
	activeCount int
	outputDir   string
	tempDir     string
	deps        Deps
	onUpdate    func(*model.TranslationJob) // callback for UI updates
}

// NewService creates a new translation service
func NewService(opts Options, deps Deps) *Service {
	return &Service{
		jobs:        make(map[string]*model.TranslationJob),
		maxParallel: config.ClampParallel(opts.MaxParallel),
		outputDir:   opts.OutputDir,
		tempDir:     opts.TempDir,
		deps:        deps,
	}
}

// SetUpdateCallback sets the callback function for job updates.
// The callback receives a snapshot and may call back into the service.
func (s *Service) SetUpdateCallback(callback func(*model.TranslationJob)) {
	s.jobsMutex.Lock()
	s.onUpdate = callback
	s.jobsMutex.Unlock()
}

// SetMaxParallel changes the number of concurrently running jobs and
// starts pending jobs when capacity grew
func (s *Service) SetMaxParallel(n int) {
	s.jobsMutex.Lock()
	s.maxParallel = config.ClampParallel(n)
	s.jobsMutex.Unlock()
	s.startPendingJobs()
}

// LoadHistory restores persisted jobs. Jobs that were running when the
// process stopped are marked as interrupted errors first.
func (s *Service) LoadHistory(ctx context.Context) error {
	if s.deps.Store == nil {
		return nil
	}
	if n, err := s.deps.Store.MarkInterrupted(ctx); err != nil {
		return fmt.Errorf("mark interrupted jobs: %w", err)
	} else if n > 0 {
		log.Printf("Marked %d interrupted jobs as failed", n)
	}

	jobs, err := s.deps.Store.ListJobs(ctx, HistoryLoadLimit)
	if err != nil {
		return fmt.Errorf("load job history: %w", err)
	}

	s.jobsMutex.Lock()
	for _, job := range jobs {
		if _, exists := s.jobs[job.ID]; !exists {
			s.jobs[job.ID] = job
		}
	}
	s.jobsMutex.Unlock()
	return nil
}

// StartTranslation validates req and queues a new job
func (s *Service) StartTranslation(req Request) (*model.TranslationJob, error) {
	url := strings.TrimSpace(req.URL)
	if !platform.ValidateYouTubeURL(url) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidURL, url)
	}
	if !config.IsSupportedLanguage(req.TargetLanguage) {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLanguage, req.TargetLanguage)
	}

	s.jobsMutex.Lock()

	for _, job := range s.jobs {
		if job.URL == url && job.TargetLanguage == req.TargetLanguage && !job.Status.IsFinished() {
			s.jobsMutex.Unlock()
			return nil, fmt.Errorf("%w: %s (%s)", ErrDuplicateJob, url, req.TargetLanguage)
		}
	}

	now := time.Now()
	job := &model.TranslationJob{
		ID:             generateJobID(),
		URL:            url,
		TargetLanguage: req.TargetLanguage,
		VideoName:      strings.TrimSpace(req.VideoName),
		VideoID:        s.uniqueVideoID(model.NewVideoID(req.VideoName, req.TargetLanguage, now)),
		Status:         model.TaskStatusPending,
		Detail:         model.TaskStatusPending.StageLabel(),
		CreatedAt:      now,
	}
	s.jobs[job.ID] = job

	start := s.activeCount < s.maxParallel
	if start {
		s.activeCount++
		job.Status = model.TaskStatusStarting
		job.Detail = model.TaskStatusStarting.StageLabel()
	}
	snapshot := *job
	s.jobsMutex.Unlock()

	log.Printf("Queued translation job %s for %s (%s)", job.ID, url, req.TargetLanguage)
	s.publish(&snapshot, true)

	if start {
		go s.runJob(job)
	}
	return &snapshot, nil
}

// uniqueVideoID appends a counter when another unfinished job already uses
// id, so concurrent jobs get separate temp directories and output files.
// Caller holds the lock.
func (s *Service) uniqueVideoID(id string) string {
	inUse := func(candidate string) bool {
		for _, job := range s.jobs {
			if job.VideoID == candidate && !job.Status.IsFinished() {
				return true
			}
		}
		return false
	}
	candidate := id
	for n := 2; inUse(candidate); n++ {
		candidate = fmt.Sprintf("%s_%d", id, n)
	}
	return candidate
}

// GetJob returns a snapshot of a job by ID
func (s *Service) GetJob(id string) (*model.TranslationJob, bool) {
	s.jobsMutex.RLock()
	defer s.jobsMutex.RUnlock()
	job, exists := s.jobs[id]
	if !exists {
		return nil, false
	}
	snapshot := *job
	return &snapshot, true
}

// GetAllJobs returns snapshots of all jobs, newest first
func (s *Service) GetAllJobs() []*model.TranslationJob {
	s.jobsMutex.RLock()
	jobs := make([]*model.TranslationJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		snapshot := *job
		jobs = append(jobs, &snapshot)
	}
	s.jobsMutex.RUnlock()

	sort.Slice(jobs, func(i, j int) bool {
		if jobs[i].CreatedAt.Equal(jobs[j].CreatedAt) {
			return jobs[i].ID > jobs[j].ID
		}
		return jobs[i].CreatedAt.After(jobs[j].CreatedAt)
	})
	return jobs
}

// StopJob requests a running job to stop. A pending job is stopped immediately.
func (s *Service) StopJob(id string) error {
	s.jobsMutex.Lock()
	job, exists := s.jobs[id]
	if !exists {
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}

	switch {
	case job.Status == model.TaskStatusPending:
		job.Status = model.TaskStatusStopped
		job.Detail = model.TaskStatusStopped.StageLabel()
		job.FinishedAt = time.Now()
	case job.Status.IsActive() && job.Status != model.TaskStatusStopping:
		// The monitor goroutine of the job cancels its context.
		job.Status = model.TaskStatusStopping
		job.Detail = model.TaskStatusStopping.StageLabel()
	default:
		status := job.Status
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotActive, status)
	}
	snapshot := *job
	s.jobsMutex.Unlock()

	s.publish(&snapshot, true)
	return nil
}

// RemoveJob deletes a finished job from the list and the history
func (s *Service) RemoveJob(id string) error {
	s.jobsMutex.Lock()
	job, exists := s.jobs[id]
	if !exists {
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotFound, id)
	}
	if !job.Status.IsFinished() {
		status := job.Status
		s.jobsMutex.Unlock()
		return fmt.Errorf("%w: %s", ErrJobNotFinished, status)
	}
	delete(s.jobs, id)
	s.jobsMutex.Unlock()

	if s.deps.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		defer cancel()
		if err := s.deps.Store.DeleteJob(ctx, id); err != nil {
			log.Printf("Failed to delete job %s from history: %v", id, err)
		}
	}
	return nil
}

// RecentOutputs lists the newest translated videos in the output directory
func (s *Service) RecentOutputs(limit int) ([]platform.OutputFile, error) {
	return platform.RecentOutputs(s.outputDir, limit)
}

// OutputDir returns the directory translated videos are written to
func (s *Service) OutputDir() string {
	return s.outputDir
}

// runJob runs a job whose slot was already reserved by the caller
func (s *Service) runJob(job *model.TranslationJob) {
	defer func() {
		s.jobsMutex.Lock()
		s.activeCount--
		s.jobsMutex.Unlock()

		// Try to start next pending job
		s.startPendingJobs()
	}()

	s.update(job, true, func(j *model.TranslationJob) {
		if j.Status != model.TaskStatusStopping {
			j.Status = model.TaskStatusStarting
			j.Detail = model.TaskStatusStarting.StageLabel()
		}
		j.StartedAt = time.Now()
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Monitor for stop requests
	go func() {
		for {
			s.jobsMutex.RLock()
			status := job.Status
			s.jobsMutex.RUnlock()

			if status == model.TaskStatusStopping {
				cancel()
				return
			}
			if status.IsFinished() || ctx.Err() != nil {
				return
			}
			time.Sleep(StopPollInterval)
		}
	}()

	outputPath, err := s.execute(ctx, job)

	s.update(job, true, func(j *model.TranslationJob) {
		switch {
		case err != nil && (ctx.Err() != nil || j.Status == model.TaskStatusStopping):
			j.Status = model.TaskStatusStopped
			j.Detail = model.TaskStatusStopped.StageLabel()
		case err != nil:
			j.Status = model.TaskStatusError
			j.LastError = err.Error()
			j.Detail = err.Error()
		default:
			j.SetStage(model.TaskStatusCompleted)
			j.OutputPath = outputPath
			j.FileSize = platform.FileSize(outputPath)
		}
		j.FinishedAt = time.Now()
	})

	if err != nil && ctx.Err() == nil {
		log.Printf("Translation job %s failed: %v", job.ID, err)
	} else if err == nil {
		log.Printf("Translation job %s completed: %s", job.ID, outputPath)
	}
}

// startPendingJobs starts the oldest pending jobs while there is capacity
func (s *Service) startPendingJobs() {
	for {
		s.jobsMutex.Lock()
		if s.activeCount >= s.maxParallel {
			s.jobsMutex.Unlock()
			return
		}

		var next *model.TranslationJob
		for _, job := range s.jobs {
			if job.Status != model.TaskStatusPending {
				continue
			}
			if next == nil || job.CreatedAt.Before(next.CreatedAt) ||
				(job.CreatedAt.Equal(next.CreatedAt) && job.ID < next.ID) {
				next = job
			}
		}
		if next == nil {
			s.jobsMutex.Unlock()
			return
		}
		next.Status = model.TaskStatusStarting
		next.Detail = model.TaskStatusStarting.StageLabel()
		s.activeCount++
		s.jobsMutex.Unlock()

		go s.runJob(next)
	}
}

// update applies fn to the job under the lock and publishes a snapshot
func (s *Service) update(job *model.TranslationJob, persist bool, fn func(*model.TranslationJob)) {
	s.jobsMutex.Lock()
	fn(job)
	snapshot := *job
	s.jobsMutex.Unlock()

	s.publish(&snapshot, persist)
}

// publish persists the snapshot when asked and notifies the callback
func (s *Service) publish(job *model.TranslationJob, persist bool) {
	if persist && s.deps.Store != nil {
		ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
		if err := s.deps.Store.SaveJob(ctx, job); err != nil {
			log.Printf("Failed to persist job %s: %v", job.ID, err)
		}
		cancel()
	}

	s.jobsMutex.RLock()
	callback := s.onUpdate
	s.jobsMutex.RUnlock()
	if callback != nil {
		callback(job)
	}
}

// generateJobID generates a unique job ID using UUID v7 so ids sort by creation time
func generateJobID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(JobIDPrefix+"%d", time.Now().UnixNano())
	}
	return JobIDPrefix + id.String()
}
