package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Timeouts and thresholds
const (
	ExtractTimeout        = 120 * time.Second
	ProbeTimeout          = 30 * time.Second
	ClipTimeout           = 120 * time.Second
	MixTimeout            = 300 * time.Second
	MergeTimeout          = 300 * time.Second
	MinOutputSize         = 1000
	LongAudioThreshold    = 600.0
	microsecondsPerSecond = 1000000.0
)

var (
	// ErrOutputTooSmall means ffmpeg exited cleanly but produced no usable file
	ErrOutputTooSmall = errors.New("output file missing or too small")
	// ErrNoInputs is returned by MixTracks when called without inputs
	ErrNoInputs = errors.New("no input tracks")
)

// Tool runs ffmpeg/ffprobe operations through a Runner
type Tool struct {
	runner  Runner
	ffmpeg  string
	ffprobe string
}

// New creates a Tool. A nil runner uses ExecRunner.
func New(runner Runner) *Tool {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Tool{
		runner:  runner,
		ffmpeg:  FFmpegCommand,
		ffprobe: FFprobeCommand,
	}
}

// ExtractAudio writes the audio track of videoPath to outPath as speech-ready WAV.
// Argument variants are tried in order until one yields a file larger than MinOutputSize.
func (t *Tool) ExtractAudio(ctx context.Context, videoPath, outPath string) error {
	var lastErr error
	variants := ExtractAudioArgs(videoPath, outPath)

	for i, args := range variants {
		if err := ctx.Err(); err != nil {
			return err
		}

		log.Printf("Audio extraction method %d/%d for %s", i+1, len(variants), videoPath)
		err := t.run(ctx, ExtractTimeout, Command{Name: t.ffmpeg, Args: args})
		if err == nil {
			err = checkOutput(outPath)
		}
		if err == nil {
			log.Printf("Audio extracted (%d KB)", fileSize(outPath)/1024)
			return nil
		}

		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Printf("Audio method %d failed: %v", i+1, err)
		lastErr = err
	}

	return fmt.Errorf("all audio extraction methods failed: %w", lastErr)
}

// ProbeDuration returns the duration of a media file in seconds
func (t *Tool) ProbeDuration(ctx context.Context, path string) (float64, error) {
	ctx, cancel := context.WithTimeout(ctx, ProbeTimeout)
	defer cancel()

	out, err := t.runner.Run(ctx, Command{Name: t.ffprobe, Args: ProbeDurationArgs(path)})
	if err != nil {
		return 0, fmt.Errorf("failed to run ffprobe: %w", err)
	}

	duration, err := parseDuration(string(out))
	if err != nil {
		return 0, err
	}
	if duration > LongAudioThreshold {
		log.Printf("Long media detected (%.1f seconds), processing may take a while", duration)
	}
	return duration, nil
}

// GenerateSilence writes duration seconds of 16 kHz mono silence to outPath
func (t *Tool) GenerateSilence(ctx context.Context, duration float64, outPath string) error {
	if duration <= 0 {
		return fmt.Errorf("invalid silence duration: %.3f", duration)
	}
	if err := t.run(ctx, ClipTimeout, Command{Name: t.ffmpeg, Args: SilenceArgs(duration, outPath)}); err != nil {
		return fmt.Errorf("failed to generate silence: %w", err)
	}
	return nil
}

// PositionClip converts clipPath to 16 kHz mono WAV delayed by start seconds
func (t *Tool) PositionClip(ctx context.Context, clipPath string, start float64, outPath string) error {
	if err := t.run(ctx, ClipTimeout, Command{Name: t.ffmpeg, Args: PositionArgs(clipPath, start, outPath)}); err != nil {
		return fmt.Errorf("failed to position clip: %w", err)
	}
	if fileSize(outPath) == 0 {
		return fmt.Errorf("positioned clip %s: %w", outPath, ErrOutputTooSmall)
	}
	return nil
}

// MixTracks mixes inputs into outPath; the result lasts as long as the longest input.
// A single input is copied as is.
func (t *Tool) MixTracks(ctx context.Context, inputs []string, outPath string) error {
	switch len(inputs) {
	case 0:
		return ErrNoInputs
	case 1:
		return copyFile(inputs[0], outPath)
	}

	if err := t.run(ctx, MixTimeout, Command{Name: t.ffmpeg, Args: MixArgs(inputs, outPath)}); err != nil {
		return fmt.Errorf("failed to mix %d tracks: %w", len(inputs), err)
	}
	if fileSize(outPath) == 0 {
		return fmt.Errorf("mixed audio %s: %w", outPath, ErrOutputTooSmall)
	}
	return nil
}

// MergeVideoAudio copies the video stream of videoPath and replaces its audio with audioPath.
// progress, when set, receives the merge fraction in 0..1.
func (t *Tool) MergeVideoAudio(ctx context.Context, videoPath, audioPath, outPath string, progress func(float64)) error {
	var total float64
	if progress != nil {
		if d, err := t.ProbeDuration(ctx, videoPath); err == nil {
			total = d
		}
	}

	cmd := Command{Name: t.ffmpeg, Args: MergeArgs(videoPath, audioPath, outPath)}
	if progress != nil && total > 0 {
		cmd.OnStderrLine = func(line string) {
			if p, ok := ParseProgressLine(line, total); ok {
				progress(p)
			}
		}
	}

	if err := t.run(ctx, MergeTimeout, cmd); err != nil {
		os.Remove(outPath)
		return fmt.Errorf("video merging failed: %w", err)
	}
	if err := checkOutput(outPath); err != nil {
		os.Remove(outPath)
		return err
	}

	log.Printf("Final video created (%d MB)", fileSize(outPath)/(1024*1024))
	return nil
}

// ParseProgressLine parses an ffmpeg "-progress" line such as out_time_us=123456
// into a fraction of totalDuration
func ParseProgressLine(line string, totalDuration float64) (float64, bool) {
	if !strings.HasPrefix(line, ProgressTimePrefix) || totalDuration <= 0 {
		return 0, false
	}
	us, err := strconv.ParseInt(strings.TrimPrefix(line, ProgressTimePrefix), 10, 64)
	if err != nil || us < 0 {
		return 0, false
	}
	p := float64(us) / microsecondsPerSecond / totalDuration
	if p > 1.0 {
		p = 1.0
	}
	return p, true
}

func (t *Tool) run(ctx context.Context, timeout time.Duration, cmd Command) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	_, err := t.runner.Run(ctx, cmd)
	if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("%s timed out after %s: %w", cmd.Name, timeout, err)
	}
	return err
}

func parseDuration(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	d, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse duration %q: %w", s, err)
	}
	return d, nil
}

func checkOutput(path string) error {
	if fileSize(path) <= MinOutputSize {
		return fmt.Errorf("%s: %w", path, ErrOutputTooSmall)
	}
	return nil
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("failed to copy %s: %w", src, err)
	}
	return out.Close()
}
