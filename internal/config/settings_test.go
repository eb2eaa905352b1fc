package config

import (
	"testing"

	"fyne.io/fyne/v2/test"
)

func TestNewSettings(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.app != app {
		t.Error("Settings app reference should match provided app")
	}
}

func TestOutputDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	// Test default value
	dir := settings.GetOutputDirectory()
	if dir == "" {
		t.Error("Output directory should not be empty")
	}

	customDir := "/custom/output"
	settings.SetOutputDirectory(customDir)

	if got := settings.GetOutputDirectory(); got != customDir {
		t.Errorf("Expected output directory %s, got %s", customDir, got)
	}
}

func TestTempDirectory(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetTempDirectory() == "" {
		t.Error("Temp directory should not be empty")
	}

	settings.SetTempDirectory("/tmp/ytdash")
	if got := settings.GetTempDirectory(); got != "/tmp/ytdash" {
		t.Errorf("Expected temp directory /tmp/ytdash, got %s", got)
	}
}

func TestMaxParallelJobs(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetMaxParallelJobs(); got != DefaultMaxParallel {
		t.Errorf("Expected default max parallel %d, got %d", DefaultMaxParallel, got)
	}

	settings.SetMaxParallelJobs(3)
	if got := settings.GetMaxParallelJobs(); got != 3 {
		t.Errorf("Expected max parallel 3, got %d", got)
	}

	// Test boundary values
	settings.SetMaxParallelJobs(0)
	if settings.GetMaxParallelJobs() != 1 {
		t.Error("Max parallel should be clamped to minimum 1")
	}

	settings.SetMaxParallelJobs(15)
	if settings.GetMaxParallelJobs() != MaxParallelLimit {
		t.Errorf("Max parallel should be clamped to maximum %d", MaxParallelLimit)
	}
}

func TestTargetLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetTargetLanguage(); got != DefaultTargetLanguage {
		t.Errorf("Expected default target language %s, got %s", DefaultTargetLanguage, got)
	}

	settings.SetTargetLanguage("ja")
	if got := settings.GetTargetLanguage(); got != "ja" {
		t.Errorf("Expected target language ja, got %s", got)
	}

	// Unsupported codes are ignored
	settings.SetTargetLanguage("xx")
	if got := settings.GetTargetLanguage(); got != "ja" {
		t.Errorf("Expected target language to stay ja, got %s", got)
	}
}

func TestWhisperModel(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetWhisperModel(); got != DefaultWhisperModel {
		t.Errorf("Expected default whisper model %s, got %s", DefaultWhisperModel, got)
	}

	settings.SetWhisperModel("small")
	if got := settings.GetWhisperModel(); got != "small" {
		t.Errorf("Expected whisper model small, got %s", got)
	}

	settings.SetWhisperModel("")
	if got := settings.GetWhisperModel(); got != DefaultWhisperModel {
		t.Errorf("Expected empty model to reset to %s, got %s", DefaultWhisperModel, got)
	}
}

func TestTranscriber(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetTranscriber(); got != DefaultTranscriber {
		t.Errorf("Expected default transcriber %s, got %s", DefaultTranscriber, got)
	}

	settings.SetTranscriber(TranscriberAWS)
	if got := settings.GetTranscriber(); got != TranscriberAWS {
		t.Errorf("Expected transcriber %s, got %s", TranscriberAWS, got)
	}

	settings.SetTranscriber("bogus")
	if got := settings.GetTranscriber(); got != DefaultTranscriber {
		t.Errorf("Expected invalid transcriber to fall back to %s, got %s", DefaultTranscriber, got)
	}

	if len(settings.GetTranscriberOptions()) != 2 {
		t.Error("Expected 2 transcriber options")
	}
}

func TestExportSource(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetExportSource(); got != DefaultExportSource {
		t.Errorf("Expected default export source %s, got %s", DefaultExportSource, got)
	}

	settings.SetExportSource(ExportSourceOEC)
	if got := settings.GetExportSource(); got != ExportSourceOEC {
		t.Errorf("Expected export source %s, got %s", ExportSourceOEC, got)
	}

	if len(settings.GetExportSourceOptions()) != 3 {
		t.Error("Expected 3 export source options")
	}
}

func TestLanguage(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if got := settings.GetLanguage(); got != DefaultLanguage {
		t.Errorf("Expected default language %s, got %s", DefaultLanguage, got)
	}

	settings.SetLanguage("es")
	if got := settings.GetLanguage(); got != "es" {
		t.Errorf("Expected language es, got %s", got)
	}

	options := settings.GetLanguageOptions()
	for _, lang := range []string{"system", "en", "es"} {
		if _, ok := options[lang]; !ok {
			t.Errorf("Expected language option %s", lang)
		}
	}
}

func TestAutoOpenOnReady(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	if settings.GetAutoOpenOnReady() != DefaultAutoOpenOnReady {
		t.Error("Unexpected default auto open value")
	}

	settings.SetAutoOpenOnReady(true)
	if !settings.GetAutoOpenOnReady() {
		t.Error("Expected auto open to be enabled")
	}
}

func TestApplyEnv(t *testing.T) {
	app := test.NewApp()
	settings := NewSettings(app)

	settings.SetWhisperModel("medium")
	settings.ApplyEnv(Env{
		OutputDir:    "/env/out",
		MaxParallel:  2,
		Transcriber:  "aws",
		WhisperModel: "tiny",
	})

	if got := settings.GetOutputDirectory(); got != "/env/out" {
		t.Errorf("Expected output directory from env, got %s", got)
	}
	if got := settings.GetMaxParallelJobs(); got != 2 {
		t.Errorf("Expected max parallel 2 from env, got %d", got)
	}
	if got := settings.GetTranscriber(); got != TranscriberAWS {
		t.Errorf("Expected transcriber aws from env, got %s", got)
	}
	// Preferences already set win over env
	if got := settings.GetWhisperModel(); got != "medium" {
		t.Errorf("Expected whisper model medium to be kept, got %s", got)
	}
}
