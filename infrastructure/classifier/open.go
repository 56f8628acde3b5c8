package classifier

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Kind is a classifier backend.
type Kind string

const (
	KindONNX   Kind = "onnx"
	KindDense  Kind = "dense"
	KindRemote Kind = "remote"
)

// KindOf picks the backend for a model path or URL.
func KindOf(model string) (Kind, error) {
	lower := strings.ToLower(model)
	if strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://") {
		return KindRemote, nil
	}

	switch ext := filepath.Ext(lower); ext {
	case ".onnx":
		return KindONNX, nil
	case ".yaml", ".yml", ".json":
		return KindDense, nil
	case ".h5", ".keras":
		return "", fmt.Errorf("%w: %s models cannot be loaded directly, convert to ONNX", ErrUnsupportedModel, ext)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedModel, model)
	}
}

// Open loads the model described by cfg and validates that it accepts a
// 28×28 grayscale input and produces 10 scores.
func Open(cfg *Config) (Classifier, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if cfg.Model == "" {
		return nil, errors.New("no model configured")
	}

	kind, err := KindOf(cfg.Model)
	if err != nil {
		return nil, err
	}

	if kind != KindRemote {
		if _, err := os.Stat(cfg.Model); err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("%w: %s", ErrModelNotFound, cfg.Model)
			}
			return nil, fmt.Errorf("failed to stat model: %w", err)
		}
	}

	switch kind {
	case KindONNX:
		return NewONNXClassifier(cfg)
	case KindDense:
		return LoadDense(cfg.Model)
	default:
		return NewRemoteClassifier(RemoteConfigFrom(cfg))
	}
}
