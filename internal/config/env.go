package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvDBPath       = "YTDASH_DB_PATH"
	EnvOutputDir    = "YTDASH_OUTPUT_DIR"
	EnvTempDir      = "YTDASH_TEMP_DIR"
	EnvAPIPort      = "YTDASH_API_PORT"
	EnvMaxParallel  = "YTDASH_MAX_PARALLEL"
	EnvTranscriber  = "YTDASH_TRANSCRIBER"
	EnvWhisperModel = "YTDASH_WHISPER_MODEL"
	EnvExportSource = "YTDASH_EXPORT_SOURCE"
	EnvDatabaseURL  = "DATABASE_URL"
	EnvAWSRegion    = "AWS_REGION"
	EnvS3Bucket     = "YTDASH_S3_BUCKET"
	EnvOECBaseURL   = "OEC_BASE_URL"
)

// Environment defaults
const (
	DefaultDBPath     = "data/ytdash.db"
	DefaultAPIPort    = "8080"
	DefaultAWSRegion  = "us-east-1"
	DefaultOECBaseURL = "https://oec.world/olap-proxy/data"
)

// Env holds process-level configuration: credentials, endpoints and paths
// that do not belong in user preferences.
type Env struct {
	DBPath       string
	OutputDir    string
	TempDir      string
	APIPort      string
	MaxParallel  int
	Transcriber  string
	WhisperModel string
	ExportSource string
	DatabaseURL  string
	AWSRegion    string
	S3Bucket     string
	OECBaseURL   string
}

// LoadEnv reads the given dotenv files (default ".env") into the process
// environment and returns the resulting configuration. Missing files are not an error.
func LoadEnv(files ...string) (Env, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Env{}, fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return EnvFromOS()
}

// EnvFromOS builds Env from the current process environment
func EnvFromOS() (Env, error) {
	env := Env{
		DBPath:       getenv(EnvDBPath, DefaultDBPath),
		OutputDir:    os.Getenv(EnvOutputDir),
		TempDir:      os.Getenv(EnvTempDir),
		APIPort:      getenv(EnvAPIPort, DefaultAPIPort),
		Transcriber:  os.Getenv(EnvTranscriber),
		WhisperModel: os.Getenv(EnvWhisperModel),
		ExportSource: os.Getenv(EnvExportSource),
		DatabaseURL:  os.Getenv(EnvDatabaseURL),
		AWSRegion:    getenv(EnvAWSRegion, DefaultAWSRegion),
		S3Bucket:     os.Getenv(EnvS3Bucket),
		OECBaseURL:   getenv(EnvOECBaseURL, DefaultOECBaseURL),
	}

	if raw := os.Getenv(EnvMaxParallel); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Env{}, fmt.Errorf("invalid %s %q: %w", EnvMaxParallel, raw, err)
		}
		env.MaxParallel = ClampParallel(n)
	}

	switch TranscriberBackend(env.Transcriber) {
	case "", TranscriberWhisper, TranscriberAWS:
	default:
		return Env{}, fmt.Errorf("invalid %s %q", EnvTranscriber, env.Transcriber)
	}

	switch ExportSource(env.ExportSource) {
	case "", ExportSourceSample, ExportSourceOEC:
	case ExportSourcePostgres:
		if env.DatabaseURL == "" {
			return Env{}, fmt.Errorf("%s=postgres requires %s", EnvExportSource, EnvDatabaseURL)
		}
	default:
		return Env{}, fmt.Errorf("invalid %s %q", EnvExportSource, env.ExportSource)
	}

	if TranscriberBackend(env.Transcriber) == TranscriberAWS && env.S3Bucket == "" {
		return Env{}, fmt.Errorf("%s=aws requires %s", EnvTranscriber, EnvS3Bucket)
	}

	return env, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
