package transcribe

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/ytget/ytdash/internal/media"
	"github.com/ytget/ytdash/internal/model"
)

// Whisper CLI constants
const (
	WhisperCommand      = "whisper"
	WhisperOutputFormat = "json"
	DefaultWhisperModel = "base"
)

// Whisper runs the openai-whisper command line tool
type Whisper struct {
	runner    media.Runner
	model     string
	outputDir string
}

// NewWhisper creates a Whisper backend writing its JSON output to outputDir
func NewWhisper(runner media.Runner, model, outputDir string) *Whisper {
	if runner == nil {
		runner = media.ExecRunner{}
	}
	if model == "" {
		model = DefaultWhisperModel
	}
	return &Whisper{runner: runner, model: model, outputDir: outputDir}
}

// BuildArgs returns the whisper CLI arguments for audioPath
func (w *Whisper) BuildArgs(audioPath string) []string {
	return []string{
		audioPath,
		"--model", w.model,
		"--output_format", WhisperOutputFormat,
		"--output_dir", w.outputDir,
		"--word_timestamps", "True",
		"--verbose", "False",
	}
}

// Transcribe implements Transcriber
func (w *Whisper) Transcribe(ctx context.Context, audioPath string) (*model.Transcript, error) {
	if err := os.MkdirAll(w.outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create whisper output directory: %w", err)
	}

	log.Printf("Transcribing %s with whisper model %s", filepath.Base(audioPath), w.model)
	if _, err := w.runner.Run(ctx, media.Command{Name: WhisperCommand, Args: w.BuildArgs(audioPath)}); err != nil {
		return nil, fmt.Errorf("whisper transcription failed: %w", err)
	}

	jsonPath := w.OutputPath(audioPath)
	defer os.Remove(jsonPath)

	data, err := os.ReadFile(jsonPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read whisper output: %w", err)
	}

	t, err := ParseWhisperJSON(data)
	if err != nil {
		return nil, err
	}
	t, err = finish(t)
	if err != nil {
		return nil, err
	}

	log.Printf("Transcription complete: language %s, %d segments", t.Language, len(t.Segments))
	return t, nil
}

// OutputPath returns the JSON file whisper writes for audioPath
func (w *Whisper) OutputPath(audioPath string) string {
	base := strings.TrimSuffix(filepath.Base(audioPath), filepath.Ext(audioPath))
	return filepath.Join(w.outputDir, base+".json")
}

type whisperOutput struct {
	Language string `json:"language"`
	Segments []struct {
		Start float64 `json:"start"`
		End   float64 `json:"end"`
		Text  string  `json:"text"`
	} `json:"segments"`
}

// ParseWhisperJSON decodes whisper's JSON output format
func ParseWhisperJSON(data []byte) (*model.Transcript, error) {
	var out whisperOutput
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, fmt.Errorf("failed to parse whisper output: %w", err)
	}

	t := &model.Transcript{Language: out.Language}
	for _, s := range out.Segments {
		t.Segments = append(t.Segments, model.Segment{Start: s.Start, End: s.End, Text: s.Text})
		if s.End > t.Duration {
			t.Duration = s.End
		}
	}
	return t, nil
}
