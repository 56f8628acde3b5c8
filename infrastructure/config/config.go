// Package config loads runtime configuration from DIGITPAD_* environment
// variables, then lets command-line flags override them.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"

	"digitpad-go/infrastructure/logging"
)

// Config holds application configuration.
type Config struct {
	Model          string        `env:"DIGITPAD_MODEL" envDefault:"mnist_model.onnx"`
	ModelName      string        `env:"DIGITPAD_MODEL_NAME" envDefault:"mnist"`
	ORTLibrary     string        `env:"DIGITPAD_ORT_LIB"`
	SettingsPath   string        `env:"DIGITPAD_SETTINGS"`
	LogDir         string        `env:"DIGITPAD_LOG_DIR"`
	LogLevel       string        `env:"DIGITPAD_LOG_LEVEL" envDefault:"info"`
	MongoURI       string        `env:"DIGITPAD_MONGO_URI"`
	MongoDatabase  string        `env:"DIGITPAD_MONGO_DB" envDefault:"digitpad"`
	PredictTimeout time.Duration `env:"DIGITPAD_PREDICT_TIMEOUT" envDefault:"10s"`
}

// ParseEnv loads configuration from environment variables. A nil environ
// reads the process environment.
func ParseEnv(target any, environ map[string]string) error {
	if err := env.ParseWithOptions(target, env.Options{Environment: environ}); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

// RegisterFlags binds the shared flags to cfg, using its current values as
// defaults.
func RegisterFlags(fs *flag.FlagSet, cfg *Config) {
	fs.StringVar(&cfg.Model, "model", cfg.Model, "model file (.onnx, .yaml, .json) or TensorFlow Serving URL")
	fs.StringVar(&cfg.ModelName, "model-name", cfg.ModelName, "served model name for remote models")
	fs.StringVar(&cfg.ORTLibrary, "ort-lib", cfg.ORTLibrary, "path to the onnxruntime shared library")
	fs.StringVar(&cfg.SettingsPath, "settings", cfg.SettingsPath, "settings file (default: user config dir)")
	fs.StringVar(&cfg.LogDir, "log-dir", cfg.LogDir, "log directory (default: user config dir)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")
	fs.StringVar(&cfg.MongoURI, "mongo-uri", cfg.MongoURI, "MongoDB URI for the prediction archive (empty disables it)")
	fs.StringVar(&cfg.MongoDatabase, "mongo-db", cfg.MongoDatabase, "MongoDB database name")
	fs.DurationVar(&cfg.PredictTimeout, "predict-timeout", cfg.PredictTimeout, "maximum time for one prediction")
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	return ParseConfigWithEnv(fs, args, nil)
}

// ParseConfigWithEnv is ParseConfig with an explicit environment.
func ParseConfigWithEnv(fs *flag.FlagSet, args []string, environ map[string]string) (Config, error) {
	var cfg Config
	if err := ParseEnv(&cfg, environ); err != nil {
		return Config{}, err
	}
	RegisterFlags(fs, &cfg)
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values flags and env cannot constrain on their own.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.New("model is required")
	}
	if c.PredictTimeout <= 0 {
		return fmt.Errorf("predict timeout must be positive, got %v", c.PredictTimeout)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the parsed log level, INFO if it does not parse.
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// ArchiveEnabled reports whether predictions are mirrored to MongoDB.
func (c *Config) ArchiveEnabled() bool {
	return c.MongoURI != ""
}
