//go:build prod

package logging

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/natefinch/lumberjack.v2"
)

// Setup installs a file logger. Every run gets its own timestamped file in
// cfg.Dir, rotated by lumberjack when it outgrows MaxSizeMB. The returned
// function closes the file.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	path := cfg.Path(time.Now())
	if err := os.MkdirAll(cfg.dir(), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}

	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
		LocalTime:  true,
	}

	logger := install(newHandler(file, cfg))
	logger.Info("Logging to file", "path", path)
	return logger, file.Close, nil
}
