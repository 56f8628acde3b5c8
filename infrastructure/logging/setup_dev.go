//go:build !prod

package logging

import (
	"log/slog"
	"os"
)

// Setup installs a console logger writing to stderr, leaving stdout to
// command output. Nothing needs closing; the returned function is a no-op.
func Setup(cfg *Config) (*slog.Logger, func() error, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	logger := install(newHandler(os.Stderr, cfg))
	return logger, func() error { return nil }, nil
}
