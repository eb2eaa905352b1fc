package config

import (
	"fyne.io/fyne/v2"
	"github.com/ytget/ytdash/internal/platform"
)

// TranscriberBackend selects the speech recognition backend
type TranscriberBackend string

const (
	TranscriberWhisper TranscriberBackend = "whisper"
	TranscriberAWS     TranscriberBackend = "aws"
)

// ExportSource selects where the export dashboard reads its data from
type ExportSource string

const (
	ExportSourceSample   ExportSource = "sample"
	ExportSourceOEC      ExportSource = "oec"
	ExportSourcePostgres ExportSource = "postgres"
)

// Settings keys for Fyne preferences
const (
	KeyOutputDir       = "output_directory"
	KeyTempDir         = "temp_directory"
	KeyTargetLanguage  = "default_target_language"
	KeyWhisperModel    = "whisper_model"
	KeyMaxParallel     = "max_parallel_jobs"
	KeyTranscriber     = "transcriber_backend"
	KeyExportSource    = "export_source"
	KeyLanguage        = "app_language"
	KeyAutoOpenOnReady = "auto_open_on_ready"
)

// Default values
const (
	DefaultMaxParallel     = 1
	MaxParallelLimit       = 4
	DefaultTargetLanguage  = "es"
	DefaultWhisperModel    = "base"
	DefaultTranscriber     = TranscriberWhisper
	DefaultExportSource    = ExportSourceSample
	DefaultLanguage        = "system"
	DefaultAutoOpenOnReady = false
	DefaultTempDirName     = "temp"
	DefaultOutputDirName   = "output"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// ApplyEnv seeds unset preferences from the process environment.
// Values already chosen in the settings dialog are kept.
func (s *Settings) ApplyEnv(env Env) {
	prefs := s.app.Preferences()
	if prefs.String(KeyOutputDir) == "" && env.OutputDir != "" {
		s.SetOutputDirectory(env.OutputDir)
	}
	if prefs.String(KeyTempDir) == "" && env.TempDir != "" {
		s.SetTempDirectory(env.TempDir)
	}
	if prefs.Int(KeyMaxParallel) <= 0 && env.MaxParallel > 0 {
		s.SetMaxParallelJobs(env.MaxParallel)
	}
	if prefs.String(KeyTranscriber) == "" && env.Transcriber != "" {
		s.SetTranscriber(TranscriberBackend(env.Transcriber))
	}
	if prefs.String(KeyWhisperModel) == "" && env.WhisperModel != "" {
		s.SetWhisperModel(env.WhisperModel)
	}
	if prefs.String(KeyExportSource) == "" && env.ExportSource != "" {
		s.SetExportSource(ExportSource(env.ExportSource))
	}
}

// GetOutputDirectory returns the directory translated videos are written to
func (s *Settings) GetOutputDirectory() string {
	dir := s.app.Preferences().String(KeyOutputDir)
	if dir == "" {
		defaultDir, err := platform.DefaultDataDir(DefaultOutputDirName)
		if err != nil {
			defaultDir = DefaultOutputDirName
		}
		s.SetOutputDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetOutputDirectory sets the output directory
func (s *Settings) SetOutputDirectory(dir string) {
	s.app.Preferences().SetString(KeyOutputDir, dir)
}

// GetTempDirectory returns the scratch directory for intermediate media files
func (s *Settings) GetTempDirectory() string {
	dir := s.app.Preferences().String(KeyTempDir)
	if dir == "" {
		defaultDir, err := platform.DefaultDataDir(DefaultTempDirName)
		if err != nil {
			defaultDir = DefaultTempDirName
		}
		s.SetTempDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetTempDirectory sets the temp directory
func (s *Settings) SetTempDirectory(dir string) {
	s.app.Preferences().SetString(KeyTempDir, dir)
}

// GetMaxParallelJobs returns the maximum number of concurrently running translations
func (s *Settings) GetMaxParallelJobs() int {
	value := s.app.Preferences().Int(KeyMaxParallel)
	if value <= 0 {
		s.SetMaxParallelJobs(DefaultMaxParallel)
		return DefaultMaxParallel
	}
	return value
}

// SetMaxParallelJobs sets the maximum number of parallel jobs
func (s *Settings) SetMaxParallelJobs(count int) {
	s.app.Preferences().SetInt(KeyMaxParallel, ClampParallel(count))
}

// ClampParallel bounds a parallelism value to 1..MaxParallelLimit.
// Translation is CPU and network heavy, so the ceiling stays low.
func ClampParallel(count int) int {
	if count < 1 {
		return 1
	}
	if count > MaxParallelLimit {
		return MaxParallelLimit
	}
	return count
}

// GetTargetLanguage returns the language code preselected in the translator form
func (s *Settings) GetTargetLanguage() string {
	lang := s.app.Preferences().String(KeyTargetLanguage)
	if lang == "" || !IsSupportedLanguage(lang) {
		s.SetTargetLanguage(DefaultTargetLanguage)
		return DefaultTargetLanguage
	}
	return lang
}

// SetTargetLanguage sets the default target language; unsupported codes are ignored
func (s *Settings) SetTargetLanguage(code string) {
	if !IsSupportedLanguage(code) {
		return
	}
	s.app.Preferences().SetString(KeyTargetLanguage, code)
}

// GetWhisperModel returns the Whisper model name
func (s *Settings) GetWhisperModel() string {
	model := s.app.Preferences().String(KeyWhisperModel)
	if model == "" {
		s.SetWhisperModel(DefaultWhisperModel)
		return DefaultWhisperModel
	}
	return model
}

// SetWhisperModel sets the Whisper model name
func (s *Settings) SetWhisperModel(model string) {
	if model == "" {
		model = DefaultWhisperModel
	}
	s.app.Preferences().SetString(KeyWhisperModel, model)
}

// GetTranscriber returns the configured transcription backend
func (s *Settings) GetTranscriber() TranscriberBackend {
	backend := TranscriberBackend(s.app.Preferences().String(KeyTranscriber))
	switch backend {
	case TranscriberWhisper, TranscriberAWS:
		return backend
	}
	s.SetTranscriber(DefaultTranscriber)
	return DefaultTranscriber
}

// SetTranscriber sets the transcription backend
func (s *Settings) SetTranscriber(backend TranscriberBackend) {
	s.app.Preferences().SetString(KeyTranscriber, string(backend))
}

// GetTranscriberOptions returns available transcription backends
func (s *Settings) GetTranscriberOptions() []TranscriberBackend {
	return []TranscriberBackend{TranscriberWhisper, TranscriberAWS}
}

// GetExportSource returns the configured export data source
func (s *Settings) GetExportSource() ExportSource {
	src := ExportSource(s.app.Preferences().String(KeyExportSource))
	switch src {
	case ExportSourceSample, ExportSourceOEC, ExportSourcePostgres:
		return src
	}
	s.SetExportSource(DefaultExportSource)
	return DefaultExportSource
}

// SetExportSource sets the export data source
func (s *Settings) SetExportSource(src ExportSource) {
	s.app.Preferences().SetString(KeyExportSource, string(src))
}

// GetExportSourceOptions returns available export data sources
func (s *Settings) GetExportSourceOptions() []ExportSource {
	return []ExportSource{ExportSourceSample, ExportSourceOEC, ExportSourcePostgres}
}

// GetLanguage returns the configured interface language
func (s *Settings) GetLanguage() string {
	lang := s.app.Preferences().String(KeyLanguage)
	if lang == "" {
		s.SetLanguage(DefaultLanguage)
		return DefaultLanguage
	}
	return lang
}

// SetLanguage sets the application language
func (s *Settings) SetLanguage(lang string) {
	s.app.Preferences().SetString(KeyLanguage, lang)
}

// GetLanguageOptions returns available interface language options
func (s *Settings) GetLanguageOptions() map[string]string {
	return map[string]string{
		"system": "System Default",
		"en":     "English",
		"es":     "Español",
	}
}

// GetAutoOpenOnReady returns whether to open finished videos automatically
func (s *Settings) GetAutoOpenOnReady() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoOpenOnReady, DefaultAutoOpenOnReady)
}

// SetAutoOpenOnReady sets whether to open finished videos automatically
func (s *Settings) SetAutoOpenOnReady(autoOpen bool) {
	s.app.Preferences().SetBool(KeyAutoOpenOnReady, autoOpen)
}
