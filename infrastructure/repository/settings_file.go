package repository

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"digitpad-go/domain/settings"
)

// settingsDocument is the on-disk structure for settings. Pointer fields
// tell a missing key apart from a zero value. JSON files use the same keys.
type settingsDocument struct {
	BrushSize   *int    `yaml:"brush_size,omitempty"`
	BrushColor  *string `yaml:"brush_color,omitempty"`
	CanvasColor *string `yaml:"canvas_color,omitempty"`
}

// DefaultSettingsPath returns <user config dir>/digitpad/settings.yaml.
func DefaultSettingsPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "settings.yaml"
	}
	return filepath.Join(dir, "digitpad", "settings.yaml")
}

// FileSettingsRepository implements settings.Repository with a YAML file.
type FileSettingsRepository struct {
	path   string
	logger *slog.Logger
}

// NewFileSettingsRepository creates a repository for path.
func NewFileSettingsRepository(path string, logger *slog.Logger) *FileSettingsRepository {
	if path == "" {
		path = DefaultSettingsPath()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FileSettingsRepository{
		path:   path,
		logger: logger,
	}
}

// Path returns the settings file location.
func (r *FileSettingsRepository) Path() string {
	return r.path
}

// Load reads the file and merges it over the defaults key by key.
// A missing file yields defaults. Unparseable content or invalid values fall
// back to defaults for the affected keys and are logged, not returned.
func (r *FileSettingsRepository) Load(ctx context.Context) (*settings.Settings, error) {
	s := settings.Defaults()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			r.logger.Info("No settings file, using defaults", "path", r.path)
			return s, nil
		}
		return s, fmt.Errorf("failed to read settings: %w", err)
	}

	var doc settingsDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		var typeErr *yaml.TypeError
		if !errors.As(err, &typeErr) {
			r.logger.Warn("Malformed settings file, using defaults", "path", r.path, "error", err)
			return s, nil
		}
		// Well-formed keys were still decoded.
		r.logger.Warn("Ignoring settings with wrong types", "path", r.path, "errors", typeErr.Errors)
	}

	if doc.BrushSize != nil {
		s.BrushSize = *doc.BrushSize
	}
	if doc.BrushColor != nil {
		s.BrushColor = *doc.BrushColor
	}
	if doc.CanvasColor != nil {
		s.CanvasColor = *doc.CanvasColor
	}

	if reset := s.Sanitize(); len(reset) > 0 {
		r.logger.Warn("Invalid settings replaced with defaults", "path", r.path, "keys", reset)
	}

	r.logger.Debug("Settings loaded", "path", r.path,
		"brush_size", s.BrushSize, "brush_color", s.BrushColor, "canvas_color", s.CanvasColor)
	return s, nil
}

// Save writes the settings, replacing the file atomically.
func (r *FileSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}

	data, err := yaml.Marshal(&settingsDocument{
		BrushSize:   &s.BrushSize,
		BrushColor:  &s.BrushColor,
		CanvasColor: &s.CanvasColor,
	})
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}

	dir := filepath.Dir(r.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create settings directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".settings-*.yaml")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close settings: %w", err)
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}

	r.logger.Debug("Settings saved", "path", r.path)
	return nil
}

var _ settings.Repository = (*FileSettingsRepository)(nil)
