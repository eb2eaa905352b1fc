package download

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ytget/ytdash/internal/platform"
)

// Download constants
const (
	MinVideoSize       = 1000
	StrategyPause      = 1 * time.Second
	VideoFileExtension = ".mp4"
)

// ErrAllStrategiesFailed is returned when no format strategy yields a usable file
var ErrAllStrategiesFailed = errors.New("all download methods failed")

// Strategy is one format selection passed to the downloader
type Strategy struct {
	Name    string
	Quality string
	Ext     string
}

// DefaultStrategies are tried in order: MP4 up to 720p, the smallest MP4,
// then the downloader's own progressive-format choice.
// Quality uses the ytdlp selector grammar: best, worst, itag=N, height<=N, height>=N.
var DefaultStrategies = []Strategy{
	{Name: "mp4 up to 720p", Quality: "height<=720", Ext: "mp4"},
	{Name: "smallest mp4", Quality: "worst", Ext: "mp4"},
	{Name: "default progressive", Quality: "", Ext: ""},
}

// Result describes a downloaded video
type Result struct {
	Path     string
	Title    string
	Size     int64
	Strategy string
}

// Fetcher downloads videos into a temp directory
type Fetcher struct {
	client     Client
	tempDir    string
	strategies []Strategy
	pause      time.Duration
}

// NewFetcher creates a fetcher writing into tempDir. A nil client uses ytdlp.
func NewFetcher(client Client, tempDir string) *Fetcher {
	if client == nil {
		client = NewYTDLPClient()
	}
	return &Fetcher{
		client:     client,
		tempDir:    tempDir,
		strategies: DefaultStrategies,
		pause:      StrategyPause,
	}
}

// SetPause changes the delay between failed strategies
func (f *Fetcher) SetPause(d time.Duration) {
	f.pause = d
}

// OutputPath returns where the video for videoID is written, inside the job's own temp directory
func (f *Fetcher) OutputPath(videoID string) string {
	return filepath.Join(platform.JobTempDir(f.tempDir, videoID), videoID+VideoFileExtension)
}

// Fetch downloads url to <tempDir>/<videoID>/<videoID>.mp4. A strategy only counts as
// successful when the file exists and is larger than MinVideoSize.
func (f *Fetcher) Fetch(ctx context.Context, url, videoID string, progress func(float64)) (*Result, error) {
	if err := platform.CreateDirectoryIfNotExists(platform.JobTempDir(f.tempDir, videoID)); err != nil {
		return nil, fmt.Errorf("failed to create temp directory: %w", err)
	}

	outPath := f.OutputPath(videoID)
	var lastErr error

	for i, strategy := range f.strategies {
		if i > 0 {
			select {
			case <-time.After(f.pause):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}

		log.Printf("Trying download method %d/%d (%s) for %s", i+1, len(f.strategies), strategy.Name, videoID)

		title, err := f.client.Download(ctx, url, strategy, outPath, progress)
		if err == nil {
			if size := fileSize(outPath); size > MinVideoSize {
				log.Printf("Download successful: %s (%d bytes)", filepath.Base(outPath), size)
				return &Result{Path: outPath, Title: title, Size: size, Strategy: strategy.Name}, nil
			}
			err = fmt.Errorf("downloaded file missing or too small")
		}

		if ctx.Err() != nil {
			os.Remove(outPath)
			return nil, ctx.Err()
		}

		log.Printf("Download method %d failed for %s: %v", i+1, videoID, truncate(err.Error(), 100))
		os.Remove(outPath)
		lastErr = err
	}

	return nil, fmt.Errorf("%w: %v", ErrAllStrategiesFailed, lastErr)
}

func fileSize(path string) int64 {
	info, err := os.Stat(path)
	if err != nil {
		return 0
	}
	return info.Size()
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
