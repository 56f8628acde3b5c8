//go:build !prod

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestSetup_Dev(t *testing.T) {
	prev := slog.Default()
	defer func() {
		globalLogger = nil
		slog.SetDefault(prev)
	}()

	logger, closeFn, err := Setup(&Config{Level: slog.LevelDebug})
	if err != nil {
		t.Fatalf("Setup() error = %v", err)
	}
	if L() != logger {
		t.Error("L() should return the configured logger")
	}
	if !logger.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level should be enabled")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close error = %v", err)
	}
}

func TestNewHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newHandler(&buf, &Config{Level: slog.LevelWarn}))

	logger.Info("hidden")
	logger.Warn("shown", "digit", 7)

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line logged at WARN level: %q", out)
	}
	if !strings.Contains(out, "msg=shown") || !strings.Contains(out, "digit=7") {
		t.Errorf("output = %q", out)
	}
}
