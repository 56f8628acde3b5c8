package logging

import (
	"context"
	"log/slog"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Level != slog.LevelInfo {
		t.Errorf("Level = %v, want INFO", cfg.Level)
	}
	if cfg.Dir != "" || cfg.FileName != "" {
		t.Errorf("Dir/FileName should be resolved at Setup, got %q/%q", cfg.Dir, cfg.FileName)
	}
	if cfg.MaxSizeMB <= 0 {
		t.Errorf("MaxSizeMB = %d, want > 0", cfg.MaxSizeMB)
	}
}

func TestDefaultLogDir(t *testing.T) {
	dir := DefaultLogDir()
	if filepath.Base(dir) != "logs" || filepath.Base(filepath.Dir(dir)) != "digitpad" {
		t.Errorf("DefaultLogDir() = %v, want .../digitpad/logs", dir)
	}
}

func TestSessionFileName(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)
	if got := SessionFileName(at); got != "digit_recognizer_20240102_150405.log" {
		t.Errorf("SessionFileName() = %v", got)
	}
}

func TestConfig_Path(t *testing.T) {
	at := time.Date(2024, 1, 2, 15, 4, 5, 0, time.Local)

	cfg := &Config{Dir: "/var/log/digitpad"}
	if got := cfg.Path(at); got != filepath.Join("/var/log/digitpad", "digit_recognizer_20240102_150405.log") {
		t.Errorf("Path() = %v", got)
	}

	cfg.FileName = "fixed.log"
	if got := cfg.Path(at); got != filepath.Join("/var/log/digitpad", "fixed.log") {
		t.Errorf("Path() with FileName = %v", got)
	}

	cfg.Dir = ""
	if got := filepath.Dir(cfg.Path(at)); got != DefaultLogDir() {
		t.Errorf("Path() dir = %v, want %v", got, DefaultLogDir())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in      string
		want    slog.Level
		wantErr bool
	}{
		{"debug", slog.LevelDebug, false},
		{"INFO", slog.LevelInfo, false},
		{" warn ", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
		{"", slog.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLevel(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContextLogger(t *testing.T) {
	if From(context.Background()) != L() {
		t.Error("From() without logger should return L()")
	}

	logger := slog.Default().With("component", "test")
	ctx := With(context.Background(), logger)
	if From(ctx) != logger {
		t.Error("From() should return the stored logger")
	}

	if From(WithAttrs(ctx, "k", "v")) == logger {
		t.Error("WithAttrs() should store an enriched logger")
	}
}
