// Package services builds the translation pipeline and the export dashboard
// from configuration. The desktop app and the API server share it.
package services

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/download"
	"github.com/ytget/ytdash/internal/exports"
	"github.com/ytget/ytdash/internal/media"
	"github.com/ytget/ytdash/internal/pipeline"
	"github.com/ytget/ytdash/internal/platform"
	"github.com/ytget/ytdash/internal/store"
	"github.com/ytget/ytdash/internal/transcribe"
	"github.com/ytget/ytdash/internal/translate"
	"github.com/ytget/ytdash/internal/tts"
)

// Config selects directories and backends
type Config struct {
	Env          config.Env
	OutputDir    string
	TempDir      string
	MaxParallel  int
	Transcriber  config.TranscriberBackend
	WhisperModel string
	ExportSource config.ExportSource
}

// ConfigFromEnv fills Config from the process environment alone
func ConfigFromEnv(env config.Env) (Config, error) {
	cfg := Config{
		Env:          env,
		OutputDir:    env.OutputDir,
		TempDir:      env.TempDir,
		MaxParallel:  env.MaxParallel,
		Transcriber:  config.TranscriberBackend(env.Transcriber),
		WhisperModel: env.WhisperModel,
		ExportSource: config.ExportSource(env.ExportSource),
	}

	var err error
	if cfg.OutputDir == "" {
		if cfg.OutputDir, err = platform.DefaultDataDir(config.DefaultOutputDirName); err != nil {
			return Config{}, err
		}
	}
	if cfg.TempDir == "" {
		if cfg.TempDir, err = platform.DefaultDataDir(config.DefaultTempDirName); err != nil {
			return Config{}, err
		}
	}
	if cfg.Transcriber == "" {
		cfg.Transcriber = config.DefaultTranscriber
	}
	if cfg.WhisperModel == "" {
		cfg.WhisperModel = config.DefaultWhisperModel
	}
	if cfg.ExportSource == "" {
		cfg.ExportSource = config.DefaultExportSource
	}
	if err := platform.ValidateWorkDirs(cfg.OutputDir, cfg.TempDir); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// ConfigFromSettings fills Config from user preferences. A temp directory
// overlapping the output directory is replaced by the default one.
func ConfigFromSettings(env config.Env, s *config.Settings) Config {
	cfg := Config{
		Env:          env,
		OutputDir:    s.GetOutputDirectory(),
		TempDir:      s.GetTempDirectory(),
		MaxParallel:  s.GetMaxParallelJobs(),
		Transcriber:  s.GetTranscriber(),
		WhisperModel: s.GetWhisperModel(),
		ExportSource: s.GetExportSource(),
	}
	if err := platform.ValidateWorkDirs(cfg.OutputDir, cfg.TempDir); err != nil {
		if dir, derr := platform.DefaultDataDir(config.DefaultTempDirName); derr == nil {
			log.Printf("Ignoring temp directory setting: %v", err)
			cfg.TempDir = dir
		}
	}
	return cfg
}

// Services holds the long-lived application services
type Services struct {
	Jobs    *pipeline.Service
	Exports *exports.Service
	DB      *sql.DB
	closers []func()
}

// Build opens the database, wires every backend and restores job history
func Build(ctx context.Context, cfg Config) (*Services, error) {
	if err := platform.ValidateWorkDirs(cfg.OutputDir, cfg.TempDir); err != nil {
		return nil, err
	}
	for _, dir := range []string{cfg.OutputDir, cfg.TempDir} {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	db, err := store.Open(cfg.Env.DBPath)
	if err != nil {
		return nil, err
	}
	svc := &Services{DB: db}
	svc.closers = append(svc.closers, func() { _ = db.Close() })

	tool := media.New(nil)
	transcriber, err := newTranscriber(cfg)
	if err != nil {
		svc.Close()
		return nil, err
	}

	svc.Jobs = pipeline.NewService(pipeline.Options{
		OutputDir:   cfg.OutputDir,
		TempDir:     cfg.TempDir,
		MaxParallel: cfg.MaxParallel,
	}, pipeline.Deps{
		Fetcher:     download.NewFetcher(download.NewYTDLPClient(), cfg.TempDir),
		Media:       tool,
		Transcriber: transcriber,
		Translator:  translate.NewService(translate.NewGoogle(""), store.NewCacheRepo(db)),
		Synthesizer: tts.NewGoogle(""),
		Store:       store.NewJobRepo(db),
	})
	if err := svc.Jobs.LoadHistory(ctx); err != nil {
		log.Printf("Failed to load job history: %v", err)
	}

	source, closeSource, err := exports.Open(ctx, cfg.ExportSource, cfg.Env)
	if err != nil {
		log.Printf("Export source %s unavailable, using sample data: %v", cfg.ExportSource, err)
		source, closeSource = exports.NewSampleSource(), func() {}
	}
	svc.closers = append(svc.closers, closeSource)
	svc.Exports = exports.NewService(source, exports.DefaultCacheTTL)

	log.Printf("Services ready (transcriber=%s, exports=%s, output=%s)", cfg.Transcriber, source.Name(), cfg.OutputDir)
	return svc, nil
}

// Close releases connections in reverse order
func (s *Services) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
	s.closers = nil
}

func newTranscriber(cfg Config) (transcribe.Transcriber, error) {
	switch cfg.Transcriber {
	case config.TranscriberAWS:
		return transcribe.NewAWS(cfg.Env.AWSRegion, cfg.Env.S3Bucket)
	case config.TranscriberWhisper, "":
		return transcribe.NewWhisper(nil, cfg.WhisperModel, cfg.TempDir), nil
	}
	return nil, fmt.Errorf("unknown transcriber backend: %s", cfg.Transcriber)
}
