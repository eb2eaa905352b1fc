package transcribe

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ytget/ytdash/internal/media"
)

const sampleWhisperJSON = `{
  "text": " Hello there. How are you?",
  "language": "en",
  "segments": [
    {"id": 0, "start": 0.0, "end": 2.4, "text": " Hello there."},
    {"id": 1, "start": 2.4, "end": 3.0, "text": "   "},
    {"id": 2, "start": 3.1, "end": 5.8, "text": " How are you?"}
  ]
}`

// whisperRunner writes canned JSON where the whisper CLI would
type whisperRunner struct {
	output string
	err    error
	args   []string
}

func (r *whisperRunner) Run(ctx context.Context, c media.Command) ([]byte, error) {
	r.args = c.Args
	if r.err != nil {
		return nil, r.err
	}
	var outDir string
	for i, a := range c.Args {
		if a == "--output_dir" && i+1 < len(c.Args) {
			outDir = c.Args[i+1]
		}
	}
	base := filepath.Base(c.Args[0])
	base = base[:len(base)-len(filepath.Ext(base))]
	return nil, os.WriteFile(filepath.Join(outDir, base+".json"), []byte(r.output), 0644)
}

func TestParseWhisperJSON(t *testing.T) {
	tr, err := ParseWhisperJSON([]byte(sampleWhisperJSON))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if tr.Language != "en" {
		t.Errorf("Expected language en, got %s", tr.Language)
	}
	if len(tr.Segments) != 3 {
		t.Errorf("Expected 3 raw segments, got %d", len(tr.Segments))
	}
	if tr.Duration != 5.8 {
		t.Errorf("Expected duration 5.8, got %f", tr.Duration)
	}

	if _, err := ParseWhisperJSON([]byte("not json")); err == nil {
		t.Error("Expected error for invalid JSON")
	}
}

func TestWhisperBuildArgs(t *testing.T) {
	w := NewWhisper(nil, "", "/tmp/out")
	args := w.BuildArgs("/tmp/a.wav")
	expected := []string{
		"/tmp/a.wav",
		"--model", "base",
		"--output_format", "json",
		"--output_dir", "/tmp/out",
		"--word_timestamps", "True",
		"--verbose", "False",
	}
	if len(args) != len(expected) {
		t.Fatalf("Expected %d args, got %d", len(expected), len(args))
	}
	for i := range expected {
		if args[i] != expected[i] {
			t.Errorf("Arg %d: expected %s, got %s", i, expected[i], args[i])
		}
	}
}

func TestWhisperTranscribe(t *testing.T) {
	dir := t.TempDir()
	runner := &whisperRunner{output: sampleWhisperJSON}
	w := NewWhisper(runner, "small", dir)

	tr, err := w.Transcribe(context.Background(), "/tmp/clip_es_audio.wav")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(tr.Segments) != 2 {
		t.Fatalf("Expected blank segment to be dropped, got %d segments", len(tr.Segments))
	}
	if tr.Segments[0].Text != "Hello there." {
		t.Errorf("Expected trimmed text, got %q", tr.Segments[0].Text)
	}
	if runner.args[2] != "small" {
		t.Errorf("Expected model small, got %s", runner.args[2])
	}
	if _, err := os.Stat(w.OutputPath("/tmp/clip_es_audio.wav")); !os.IsNotExist(err) {
		t.Error("Expected whisper JSON output to be removed")
	}
}

func TestWhisperTranscribe_NoSpeech(t *testing.T) {
	runner := &whisperRunner{output: `{"language": "en", "segments": []}`}
	w := NewWhisper(runner, "base", t.TempDir())

	_, err := w.Transcribe(context.Background(), "/tmp/a.wav")
	if !errors.Is(err, ErrNoSpeech) {
		t.Errorf("Expected ErrNoSpeech, got %v", err)
	}
}

func TestWhisperTranscribe_CommandFails(t *testing.T) {
	runner := &whisperRunner{err: errors.New("exit status 1")}
	w := NewWhisper(runner, "base", t.TempDir())

	if _, err := w.Transcribe(context.Background(), "/tmp/a.wav"); err == nil {
		t.Error("Expected error when whisper fails")
	}
}
