package pipeline

import (
	"context"
	"fmt"
	"log"
	"path/filepath"

	"github.com/ytget/ytdash/internal/model"
	"github.com/ytget/ytdash/internal/platform"
)

// Temp file name patterns inside the job's temp directory, all prefixed with its VideoID
const (
	audioFileFormat      = "%s_audio.wav"
	silenceFileFormat    = "%s_base_silence.wav"
	speechFileFormat     = "%s_speech_%04d.mp3"
	positionedFileFormat = "%s_positioned_%04d.wav"
	finalAudioFileFormat = "%s_final_audio.wav"
	unknownLanguage      = "unknown"
)

// execute runs every stage of a job and returns the output video path.
// The job's temp directory is removed before and after the run.
func (s *Service) execute(ctx context.Context, job *model.TranslationJob) (string, error) {
	s.jobsMutex.RLock()
	videoID, url, target := job.VideoID, job.URL, job.TargetLanguage
	s.jobsMutex.RUnlock()

	s.cleanup(videoID)
	defer s.cleanup(videoID)

	if err := platform.CreateDirectoryIfNotExists(platform.JobTempDir(s.tempDir, videoID)); err != nil {
		return "", err
	}
	if err := platform.CreateDirectoryIfNotExists(s.outputDir); err != nil {
		return "", err
	}

	// Download
	s.enterStage(job, model.TaskStatusDownloading)
	video, err := s.deps.Fetcher.Fetch(ctx, url, videoID, s.subProgress(job))
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	if video.Title != "" {
		s.update(job, false, func(j *model.TranslationJob) {
			if j.Title == "" {
				j.Title = video.Title
			}
		})
	}

	// Extract audio
	s.enterStage(job, model.TaskStatusExtracting)
	audioPath := s.tempPath(videoID, audioFileFormat)
	if err := s.deps.Media.ExtractAudio(ctx, video.Path, audioPath); err != nil {
		return "", fmt.Errorf("audio extraction failed: %w", err)
	}
	if duration, err := s.deps.Media.ProbeDuration(ctx, audioPath); err != nil {
		log.Printf("Job %s: could not read audio duration: %v", job.ID, err)
	} else {
		log.Printf("Job %s: audio duration %.1f seconds", job.ID, duration)
	}

	// Transcribe
	s.enterStage(job, model.TaskStatusTranscribing)
	transcript, err := s.deps.Transcriber.Transcribe(ctx, audioPath)
	if err != nil {
		return "", fmt.Errorf("transcription failed: %w", err)
	}
	log.Printf("Job %s: transcribed %d segments (language %s)", job.ID, len(transcript.Segments), transcript.Language)
	s.update(job, true, func(j *model.TranslationJob) {
		j.DetectedLanguage = transcript.Language
		j.SegmentsTotal = len(transcript.Segments)
	})

	// Translate
	s.enterStage(job, model.TaskStatusTranslating)
	source := transcript.Language
	if source == unknownLanguage {
		source = ""
	}
	translated, successful, err := s.deps.Translator.TranslateSegments(ctx, transcript.Segments, source, target, func(done, total int) {
		if total > 0 {
			s.setSubProgress(job, float64(done)/float64(total))
		}
	})
	if err != nil {
		return "", fmt.Errorf("translation failed: %w", err)
	}
	s.update(job, true, func(j *model.TranslationJob) {
		j.SegmentsTranslated = successful
	})

	// Synthesize
	s.enterStage(job, model.TaskStatusSynthesizing)
	finalAudio, err := s.synthesizeTrack(ctx, job, videoID, target, translated)
	if err != nil {
		return "", fmt.Errorf("speech synthesis failed: %w", err)
	}

	// Merge
	s.enterStage(job, model.TaskStatusMerging)
	outputPath := filepath.Join(s.outputDir, videoID+platform.OutputExtension)
	if err := s.deps.Media.MergeVideoAudio(ctx, video.Path, finalAudio, outputPath, s.subProgress(job)); err != nil {
		return "", fmt.Errorf("merge failed: %w", err)
	}
	return outputPath, nil
}

// synthesizeTrack speaks every translated segment at its original start time
// over a silent base track and mixes everything into one audio file
func (s *Service) synthesizeTrack(ctx context.Context, job *model.TranslationJob, videoID, lang string, segments []model.TranslatedSegment) (string, error) {
	total := model.TotalDuration(segments)
	if total <= 0 {
		return "", fmt.Errorf("%w: transcript has no duration", ErrNoSpeechClips)
	}

	basePath := s.tempPath(videoID, silenceFileFormat)
	if err := s.deps.Media.GenerateSilence(ctx, total, basePath); err != nil {
		return "", fmt.Errorf("base track: %w", err)
	}

	inputs := []string{basePath}
	for i, seg := range segments {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		speechPath := s.tempPath(videoID, speechFileFormat, i)
		if err := s.deps.Synthesizer.Synthesize(ctx, seg.Translated, lang, speechPath); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			log.Printf("Job %s: skipping segment %d, synthesis failed: %v", job.ID, i+1, err)
			continue
		}

		positioned := s.tempPath(videoID, positionedFileFormat, i)
		if err := s.deps.Media.PositionClip(ctx, speechPath, seg.Start, positioned); err != nil {
			if ctx.Err() != nil {
				return "", ctx.Err()
			}
			log.Printf("Job %s: skipping segment %d, positioning failed: %v", job.ID, i+1, err)
			continue
		}
		inputs = append(inputs, positioned)

		s.update(job, false, func(j *model.TranslationJob) {
			j.SegmentsSpoken++
			if j.Status == model.TaskStatusSynthesizing {
				j.SetSubProgress(float64(i+1) / float64(len(segments)))
			}
		})
	}

	if len(inputs) == 1 {
		return "", ErrNoSpeechClips
	}
	log.Printf("Job %s: mixing %d speech clips", job.ID, len(inputs)-1)

	finalPath := s.tempPath(videoID, finalAudioFileFormat)
	if err := s.deps.Media.MixTracks(ctx, inputs, finalPath); err != nil {
		return "", fmt.Errorf("mix: %w", err)
	}
	return finalPath, nil
}

// enterStage moves the job to status unless a stop was requested
func (s *Service) enterStage(job *model.TranslationJob, status model.TaskStatus) {
	s.update(job, true, func(j *model.TranslationJob) {
		if j.Status == model.TaskStatusStopping {
			return
		}
		j.SetStage(status)
	})
}

func (s *Service) setSubProgress(job *model.TranslationJob, fraction float64) {
	s.update(job, false, func(j *model.TranslationJob) {
		if j.Status == model.TaskStatusStopping {
			return
		}
		j.SetSubProgress(fraction)
	})
}

func (s *Service) subProgress(job *model.TranslationJob) func(float64) {
	return func(fraction float64) {
		s.setSubProgress(job, fraction)
	}
}

// tempPath names a file in the job's temp directory; format receives videoID first
func (s *Service) tempPath(videoID, format string, args ...any) string {
	name := fmt.Sprintf(format, append([]any{videoID}, args...)...)
	return filepath.Join(platform.JobTempDir(s.tempDir, videoID), name)
}

func (s *Service) cleanup(videoID string) {
	removed, err := platform.CleanupTempFiles(s.tempDir, videoID)
	if err != nil {
		log.Printf("Failed to clean temp files for %s: %v", videoID, err)
		return
	}
	if removed > 0 {
		log.Printf("Removed %d temp files for %s", removed, videoID)
	}
}
