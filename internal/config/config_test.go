package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "WORKER_COUNT", "JOB_TTL", "MERGE_GAP", "MODEL_URL", "USE_LEVEL_CLASSIFIER"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	if cfg.Port != "8090" {
		t.Errorf("expected port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected 4 workers, got %d", cfg.WorkerCount)
	}
	if cfg.JobTTL != time.Hour {
		t.Errorf("expected 1h TTL, got %v", cfg.JobTTL)
	}
	if cfg.MergeGap != 10 {
		t.Errorf("expected merge gap 10, got %v", cfg.MergeGap)
	}
	if cfg.UseLevelClassifier {
		t.Error("expected level classifier disabled by default")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("WORKER_COUNT", "-2")
	t.Setenv("MERGE_GAP", "14.5")
	t.Setenv("JOB_TTL", "15m")
	t.Setenv("MODEL_URL", "http://models:9000/")
	t.Setenv("USE_LEVEL_CLASSIFIER", "true")
	t.Setenv("LINE_TOLERANCE", "not-a-number")

	cfg := Load()
	if cfg.WorkerCount != 4 {
		t.Errorf("expected non-positive worker count to fall back to 4, got %d", cfg.WorkerCount)
	}
	if cfg.MergeGap != 14.5 {
		t.Errorf("expected merge gap 14.5, got %v", cfg.MergeGap)
	}
	if cfg.JobTTL != 15*time.Minute {
		t.Errorf("expected 15m TTL, got %v", cfg.JobTTL)
	}
	if cfg.ModelURL != "http://models:9000" {
		t.Errorf("expected trailing slash trimmed, got %q", cfg.ModelURL)
	}
	if !cfg.UseLevelClassifier {
		t.Error("expected level classifier enabled")
	}
	if cfg.LineTolerance != 3 {
		t.Errorf("expected unparsable tolerance to fall back to 3, got %v", cfg.LineTolerance)
	}

	l := cfg.Layout()
	if l.MergeGap != 14.5 || l.FooterBand != cfg.FooterBand {
		t.Errorf("layout config not copied: %+v", l)
	}
}

func TestValidate(t *testing.T) {
	t.Setenv("MODEL_URL", "")
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(c *Config) {}, ""},
		{"zero tolerance", func(c *Config) { c.LineTolerance = 0 }, "LINE_TOLERANCE"},
		{"title band too large", func(c *Config) { c.TitleBand = 1.2 }, "TITLE_BAND"},
		{"header below footer", func(c *Config) { c.HeaderBand = 0.95 }, "HEADER_BAND"},
		{"model without reducer", func(c *Config) { c.ModelURL = "http://m" }, "REDUCER_PATH"},
		{"model with reducer", func(c *Config) { c.ModelURL = "http://m"; c.ReducerPath = "/r.json" }, ""},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Load()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("expected no error, got %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("expected error mentioning %s, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseLevel(t *testing.T) {
	lvl, err := ParseLevel("debug")
	if err != nil || lvl != slog.LevelDebug {
		t.Errorf("expected debug, got %v (%v)", lvl, err)
	}
	if _, err := ParseLevel("verbose"); err == nil {
		t.Error("expected error for unknown level")
	}
}
