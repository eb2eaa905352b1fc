package download

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

type fakeClient struct {
	sizes    []int // bytes written per attempt; -1 means return an error
	attempts []Strategy
	title    string
	cancelAt int
	cancel   context.CancelFunc
}

func (c *fakeClient) Download(ctx context.Context, url string, strategy Strategy, outPath string, progress func(float64)) (string, error) {
	c.attempts = append(c.attempts, strategy)
	n := len(c.attempts)
	if c.cancel != nil && n == c.cancelAt {
		c.cancel()
		return "", ctx.Err()
	}

	size := c.sizes[n-1]
	if size < 0 {
		return "", errors.New("HTTP Error 403: Forbidden")
	}
	if progress != nil {
		progress(1.0)
	}
	return c.title, os.WriteFile(outPath, make([]byte, size), 0644)
}

func TestFetch_FirstStrategySucceeds(t *testing.T) {
	client := &fakeClient{sizes: []int{5000}, title: "Demo"}
	f := NewFetcher(client, t.TempDir())

	var reported float64
	res, err := f.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "demo_es", func(p float64) {
		reported = p
	})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if res.Title != "Demo" {
		t.Errorf("Expected title Demo, got %s", res.Title)
	}
	if filepath.Base(res.Path) != "demo_es.mp4" {
		t.Errorf("Expected demo_es.mp4, got %s", res.Path)
	}
	if res.Size != 5000 {
		t.Errorf("Expected size 5000, got %d", res.Size)
	}
	if reported != 1.0 {
		t.Errorf("Expected progress to be forwarded, got %f", reported)
	}
	if len(client.attempts) != 1 {
		t.Errorf("Expected 1 attempt, got %d", len(client.attempts))
	}
}

func TestFetch_FallsBackThroughStrategies(t *testing.T) {
	client := &fakeClient{sizes: []int{-1, 500, 2000}}
	f := NewFetcher(client, t.TempDir())
	f.SetPause(time.Millisecond)

	res, err := f.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "v", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(client.attempts) != 3 {
		t.Fatalf("Expected 3 attempts, got %d", len(client.attempts))
	}
	for i, s := range DefaultStrategies {
		if client.attempts[i] != s {
			t.Errorf("Attempt %d: expected %+v, got %+v", i, s, client.attempts[i])
		}
	}
	if res.Strategy != "default progressive" {
		t.Errorf("Expected last strategy to win, got %s", res.Strategy)
	}
}

func TestFetch_AllFail(t *testing.T) {
	client := &fakeClient{sizes: []int{-1, -1, 10}}
	dir := t.TempDir()
	f := NewFetcher(client, dir)
	f.SetPause(time.Millisecond)

	_, err := f.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "v", nil)
	if !errors.Is(err, ErrAllStrategiesFailed) {
		t.Fatalf("Expected ErrAllStrategiesFailed, got %v", err)
	}
	if !strings.Contains(err.Error(), "too small") {
		t.Errorf("Expected last error to be reported, got %v", err)
	}
	if _, err := os.Stat(f.OutputPath("v")); !os.IsNotExist(err) {
		t.Error("Expected undersized file to be removed")
	}
}

func TestFetch_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	client := &fakeClient{sizes: []int{-1, -1, -1}, cancelAt: 1, cancel: cancel}
	f := NewFetcher(client, t.TempDir())

	_, err := f.Fetch(ctx, "https://youtu.be/dQw4w9WgXcQ", "v", nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
	if len(client.attempts) != 1 {
		t.Errorf("Expected no further attempts after cancel, got %d", len(client.attempts))
	}
}

// formatSelector is the grammar the ytdlp format picker understands
var formatSelector = regexp.MustCompile(`^(best|worst|itag=\d+|height(<=|>=)\d+)$`)

func TestDefaultStrategiesUseFormatSelectors(t *testing.T) {
	seen := make(map[string]bool)
	for i, s := range DefaultStrategies {
		if s.Quality != "" && !formatSelector.MatchString(s.Quality) {
			t.Errorf("Strategy %d (%s): %q is not a format selector", i+1, s.Name, s.Quality)
		}
		key := s.Quality + "/" + s.Ext
		if seen[key] {
			t.Errorf("Strategy %d (%s) repeats selector %q", i+1, s.Name, key)
		}
		seen[key] = true
	}

	if DefaultStrategies[0].Quality != "height<=720" || DefaultStrategies[0].Ext != "mp4" {
		t.Errorf("Expected first strategy to cap mp4 at 720p, got %+v", DefaultStrategies[0])
	}
	last := DefaultStrategies[len(DefaultStrategies)-1]
	if last.Quality != "" || last.Ext != "" {
		t.Errorf("Expected last strategy to leave format selection to the downloader, got %+v", last)
	}
}

func TestFetchWritesIntoJobDirectory(t *testing.T) {
	dir := t.TempDir()
	f := NewFetcher(&fakeClient{sizes: []int{5000}}, dir)

	res, err := f.Fetch(context.Background(), "https://youtu.be/dQw4w9WgXcQ", "demo_es", nil)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	want := filepath.Join(dir, "demo_es", "demo_es.mp4")
	if res.Path != want {
		t.Errorf("Expected %s, got %s", want, res.Path)
	}
}
