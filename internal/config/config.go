package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/docoutline/internal/layout"
)

type Config struct {
	Port string

	// Auth
	OutlineAPIKey string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	LogLevel string

	// Layout thresholds
	LineTolerance float64
	WordGapRatio  float64
	MergeGap      float64
	SizeEpsilon   float64
	TitleBand     float64
	HeaderBand    float64
	FooterBand    float64

	// Model server
	ModelURL              string
	ModelAPIKey           string
	ModelTimeout          time.Duration
	MaxConcurrentClassify int
	ReducerPath           string
	UseLevelClassifier    bool

	// Batch mode
	InputDir  string
	OutputDir string
}

func Load() Config {
	d := layout.DefaultConfig()
	cfg := Config{
		Port: envOr("PORT", "8090"),

		OutlineAPIKey: os.Getenv("OUTLINE_API_KEY"),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		LogLevel: envOr("LOG_LEVEL", "info"),

		LineTolerance: envFloat("LINE_TOLERANCE", d.LineTolerance),
		WordGapRatio:  envFloat("WORD_GAP_RATIO", d.WordGapRatio),
		MergeGap:      envFloat("MERGE_GAP", d.MergeGap),
		SizeEpsilon:   envFloat("SIZE_EPSILON", d.SizeEpsilon),
		TitleBand:     envFloat("TITLE_BAND", d.TitleBand),
		HeaderBand:    envFloat("HEADER_BAND", d.HeaderBand),
		FooterBand:    envFloat("FOOTER_BAND", d.FooterBand),

		ModelURL:              strings.TrimRight(os.Getenv("MODEL_URL"), "/"),
		ModelAPIKey:           os.Getenv("MODEL_API_KEY"),
		ModelTimeout:          envDuration("MODEL_TIMEOUT", 30*time.Second),
		MaxConcurrentClassify: envInt("MAX_CONCURRENT_CLASSIFY", 8),
		ReducerPath:           os.Getenv("REDUCER_PATH"),
		UseLevelClassifier:    envBool("USE_LEVEL_CLASSIFIER", false),

		InputDir:  envOr("INPUT_DIR", "/app/input"),
		OutputDir: envOr("OUTPUT_DIR", "/app/output"),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.ModelTimeout <= 0 {
		cfg.ModelTimeout = 30 * time.Second
	}
	if cfg.MaxConcurrentClassify <= 0 {
		cfg.MaxConcurrentClassify = 8
	}

	return cfg
}

func (c Config) Validate() error {
	if c.LineTolerance <= 0 {
		return fmt.Errorf("LINE_TOLERANCE must be positive")
	}
	for _, band := range []struct {
		name string
		v    float64
	}{
		{"TITLE_BAND", c.TitleBand},
		{"HEADER_BAND", c.HeaderBand},
		{"FOOTER_BAND", c.FooterBand},
	} {
		if band.v <= 0 || band.v >= 1 {
			return fmt.Errorf("%s must be between 0 and 1, got %v", band.name, band.v)
		}
	}
	if c.HeaderBand >= c.FooterBand {
		return fmt.Errorf("HEADER_BAND (%v) must be below FOOTER_BAND (%v)", c.HeaderBand, c.FooterBand)
	}
	if c.ModelURL != "" && c.ReducerPath == "" {
		return fmt.Errorf("REDUCER_PATH is required when MODEL_URL is set")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Layout returns the geometry thresholds for the layout package.
func (c Config) Layout() layout.Config {
	return layout.Config{
		LineTolerance: c.LineTolerance,
		WordGapRatio:  c.WordGapRatio,
		MergeGap:      c.MergeGap,
		SizeEpsilon:   c.SizeEpsilon,
		TitleBand:     c.TitleBand,
		HeaderBand:    c.HeaderBand,
		FooterBand:    c.FooterBand,
	}
}

// ParseLevel maps LOG_LEVEL to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
	return lvl, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
