package media

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

// fakeRunner records invocations and writes outputSize bytes to the last argument
type fakeRunner struct {
	mu         sync.Mutex
	calls      []Command
	failFirst  int
	outputSize int
	stdout     string
	stderr     []string
}

func (f *fakeRunner) Run(ctx context.Context, c Command) ([]byte, error) {
	f.mu.Lock()
	f.calls = append(f.calls, c)
	n := len(f.calls)
	f.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n <= f.failFirst {
		return nil, errors.New("exit status 1")
	}
	for _, line := range f.stderr {
		if c.OnStderrLine != nil {
			c.OnStderrLine(line)
		}
	}
	if c.Name == FFmpegCommand && len(c.Args) > 0 {
		out := c.Args[len(c.Args)-1]
		if err := os.WriteFile(out, make([]byte, f.outputSize), 0644); err != nil {
			return nil, err
		}
	}
	return []byte(f.stdout), nil
}

func (f *fakeRunner) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func TestExtractAudioArgs(t *testing.T) {
	variants := ExtractAudioArgs("/in.mp4", "/out.wav")
	if len(variants) != 3 {
		t.Fatalf("Expected 3 variants, got %d", len(variants))
	}

	expected := []string{"-y", "-i", "/in.mp4", "-vn", "-acodec", PCMCodec, "-ar", "16000", "-ac", "1", "/out.wav"}
	if strings.Join(variants[0], " ") != strings.Join(expected, " ") {
		t.Errorf("Expected first variant %v, got %v", expected, variants[0])
	}
	if !strings.Contains(strings.Join(variants[1], " "), "-f wav") {
		t.Errorf("Expected second variant to force wav format, got %v", variants[1])
	}
	if len(variants[2]) != 5 {
		t.Errorf("Expected plain -vn variant, got %v", variants[2])
	}
}

func TestPositionArgs(t *testing.T) {
	args := PositionArgs("/clip.mp3", 2.5, "/pos.wav")
	if args[4] != "adelay=2500|2500" {
		t.Errorf("Expected adelay=2500|2500, got %s", args[4])
	}

	args = PositionArgs("/clip.mp3", -1, "/pos.wav")
	if args[4] != "adelay=0|0" {
		t.Errorf("Expected negative start to clamp to 0, got %s", args[4])
	}
}

func TestSilenceArgs(t *testing.T) {
	args := SilenceArgs(12.5, "/silence.wav")
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "anullsrc=sample_rate=16000:channel_layout=mono") {
		t.Errorf("Expected anullsrc source, got %s", joined)
	}
	if !strings.Contains(joined, "-t 12.500") {
		t.Errorf("Expected duration 12.500, got %s", joined)
	}
}

func TestMixArgs(t *testing.T) {
	args := MixArgs([]string{"/a.wav", "/b.wav", "/c.wav"}, "/mix.wav")
	expected := []string{
		"-y",
		"-i", "/a.wav",
		"-i", "/b.wav",
		"-i", "/c.wav",
		"-filter_complex", "[0:a][1:a][2:a]amix=inputs=3:duration=longest",
		"/mix.wav",
	}
	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d: %v", len(expected), len(args), args)
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestMergeArgs(t *testing.T) {
	args := MergeArgs("/v.mp4", "/a.wav", "/out.mp4")
	expected := []string{
		"-y",
		"-i", "/v.mp4",
		"-i", "/a.wav",
		"-c:v", "copy",
		"-c:a", "aac",
		"-b:a", "128k",
		"-map", "0:v:0",
		"-map", "1:a:0",
		"-progress", "pipe:2",
		"-nostats",
		"/out.mp4",
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestExtractAudio_FallsBackToNextVariant(t *testing.T) {
	runner := &fakeRunner{failFirst: 2, outputSize: 4096}
	tool := New(runner)
	out := filepath.Join(t.TempDir(), "audio.wav")

	if err := tool.ExtractAudio(context.Background(), "/in.mp4", out); err != nil {
		t.Fatalf("Expected success on third variant, got %v", err)
	}
	if runner.callCount() != 3 {
		t.Errorf("Expected 3 attempts, got %d", runner.callCount())
	}
}

func TestExtractAudio_TooSmall(t *testing.T) {
	runner := &fakeRunner{outputSize: 10}
	tool := New(runner)
	out := filepath.Join(t.TempDir(), "audio.wav")

	err := tool.ExtractAudio(context.Background(), "/in.mp4", out)
	if !errors.Is(err, ErrOutputTooSmall) {
		t.Errorf("Expected ErrOutputTooSmall, got %v", err)
	}
	if runner.callCount() != 3 {
		t.Errorf("Expected all 3 variants to be tried, got %d", runner.callCount())
	}
}

func TestExtractAudio_Cancelled(t *testing.T) {
	runner := &fakeRunner{outputSize: 4096}
	tool := New(runner)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := tool.ExtractAudio(ctx, "/in.mp4", filepath.Join(t.TempDir(), "a.wav"))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}

func TestProbeDuration(t *testing.T) {
	tool := New(&fakeRunner{stdout: "  183.420000\n"})

	d, err := tool.ProbeDuration(context.Background(), "/in.mp4")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if d != 183.42 {
		t.Errorf("Expected 183.42, got %f", d)
	}

	tool = New(&fakeRunner{stdout: "N/A"})
	if _, err := tool.ProbeDuration(context.Background(), "/in.mp4"); err == nil {
		t.Error("Expected parse error for N/A duration")
	}
}

func TestGenerateSilence_InvalidDuration(t *testing.T) {
	tool := New(&fakeRunner{})
	if err := tool.GenerateSilence(context.Background(), 0, "/s.wav"); err == nil {
		t.Error("Expected error for zero duration")
	}
}

func TestMixTracks(t *testing.T) {
	dir := t.TempDir()
	runner := &fakeRunner{outputSize: 2048}
	tool := New(runner)

	if err := tool.MixTracks(context.Background(), nil, filepath.Join(dir, "m.wav")); !errors.Is(err, ErrNoInputs) {
		t.Errorf("Expected ErrNoInputs, got %v", err)
	}

	// Single input is copied without invoking ffmpeg
	single := filepath.Join(dir, "base.wav")
	if err := os.WriteFile(single, []byte("RIFFdata"), 0644); err != nil {
		t.Fatal(err)
	}
	copied := filepath.Join(dir, "copy.wav")
	if err := tool.MixTracks(context.Background(), []string{single}, copied); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if data, _ := os.ReadFile(copied); string(data) != "RIFFdata" {
		t.Errorf("Expected copied content, got %q", data)
	}
	if runner.callCount() != 0 {
		t.Errorf("Expected no ffmpeg calls for single input, got %d", runner.callCount())
	}

	mixed := filepath.Join(dir, "mix.wav")
	if err := tool.MixTracks(context.Background(), []string{single, copied}, mixed); err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if runner.callCount() != 1 {
		t.Errorf("Expected 1 ffmpeg call, got %d", runner.callCount())
	}
}

func TestMergeVideoAudio_ReportsProgress(t *testing.T) {
	runner := &fakeRunner{
		outputSize: 5000,
		stdout:     "10.0",
		stderr:     []string{"frame=1", "out_time_us=5000000", "out_time_us=10000000"},
	}
	tool := New(runner)
	out := filepath.Join(t.TempDir(), "final.mp4")

	var got []float64
	err := tool.MergeVideoAudio(context.Background(), "/v.mp4", "/a.wav", out, func(p float64) {
		got = append(got, p)
	})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(got) != 2 || got[0] != 0.5 || got[1] != 1.0 {
		t.Errorf("Expected progress [0.5 1], got %v", got)
	}
}

func TestMergeVideoAudio_TooSmallRemovesOutput(t *testing.T) {
	tool := New(&fakeRunner{outputSize: 100})
	out := filepath.Join(t.TempDir(), "final.mp4")

	err := tool.MergeVideoAudio(context.Background(), "/v.mp4", "/a.wav", out, nil)
	if !errors.Is(err, ErrOutputTooSmall) {
		t.Fatalf("Expected ErrOutputTooSmall, got %v", err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Error("Expected undersized output to be removed")
	}
}

func TestParseProgressLine(t *testing.T) {
	tests := []struct {
		line  string
		total float64
		want  float64
		ok    bool
	}{
		{"out_time_us=2500000", 10, 0.25, true},
		{"out_time_us=20000000", 10, 1.0, true},
		{"out_time_us=abc", 10, 0, false},
		{"frame=12", 10, 0, false},
		{"out_time_us=100", 0, 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseProgressLine(tt.line, tt.total)
		if ok != tt.ok || got != tt.want {
			t.Errorf("ParseProgressLine(%q, %v) = %v, %v; expected %v, %v", tt.line, tt.total, got, ok, tt.want, tt.ok)
		}
	}
}
