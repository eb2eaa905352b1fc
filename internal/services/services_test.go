package services

import (
	"context"
	"path/filepath"
	"testing"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/ytdash/internal/config"
	"github.com/ytget/ytdash/internal/exports"
	"github.com/ytget/ytdash/internal/platform"
	"github.com/ytget/ytdash/internal/transcribe"
)

func TestConfigFromEnvDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())

	cfg, err := ConfigFromEnv(config.Env{})
	require.NoError(t, err)
	assert.Equal(t, config.DefaultTranscriber, cfg.Transcriber)
	assert.Equal(t, config.DefaultWhisperModel, cfg.WhisperModel)
	assert.Equal(t, config.DefaultExportSource, cfg.ExportSource)
	assert.Equal(t, config.DefaultOutputDirName, filepath.Base(cfg.OutputDir))
	assert.Equal(t, config.DefaultTempDirName, filepath.Base(cfg.TempDir))
}

func TestNewTranscriber(t *testing.T) {
	tr, err := newTranscriber(Config{Transcriber: config.TranscriberWhisper, WhisperModel: "tiny"})
	require.NoError(t, err)
	assert.IsType(t, &transcribe.Whisper{}, tr)

	_, err = newTranscriber(Config{Transcriber: "vosk"})
	assert.Error(t, err)
}

func TestBuild(t *testing.T) {
	dir := t.TempDir()
	cfg := Config{
		Env:          config.Env{DBPath: filepath.Join(dir, "ytdash.db")},
		OutputDir:    filepath.Join(dir, "out"),
		TempDir:      filepath.Join(dir, "tmp"),
		MaxParallel:  2,
		Transcriber:  config.TranscriberWhisper,
		ExportSource: config.ExportSourceSample,
	}

	svc, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer svc.Close()

	assert.Empty(t, svc.Jobs.GetAllJobs())
	assert.Equal(t, exports.SampleSourceName, svc.Exports.SourceName())
	assert.DirExists(t, cfg.OutputDir)
	assert.DirExists(t, cfg.TempDir)
}

func TestSharedWorkDirsRejected(t *testing.T) {
	dir := t.TempDir()

	_, err := ConfigFromEnv(config.Env{OutputDir: dir, TempDir: dir})
	assert.ErrorIs(t, err, platform.ErrSharedWorkDir)

	_, err = Build(context.Background(), Config{
		Env:       config.Env{DBPath: filepath.Join(dir, "ytdash.db")},
		OutputDir: dir,
		TempDir:   filepath.Join(dir, "tmp"),
	})
	assert.ErrorIs(t, err, platform.ErrSharedWorkDir)
}

func TestConfigFromSettingsReplacesSharedTempDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	settings := config.NewSettings(test.NewTempApp(t))
	dir := t.TempDir()
	settings.SetOutputDirectory(dir)
	settings.SetTempDirectory(dir)

	cfg := ConfigFromSettings(config.Env{}, settings)
	assert.Equal(t, dir, cfg.OutputDir)
	assert.Equal(t, config.DefaultTempDirName, filepath.Base(cfg.TempDir))
	assert.NoError(t, platform.ValidateWorkDirs(cfg.OutputDir, cfg.TempDir))
}
