// Package classifier loads a pretrained digit model and runs inference on
// preprocessed tensors.
package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"digitpad-go/infrastructure/imaging"
)

// OutputClasses is the number of scores every backend must produce.
const OutputClasses = 10

// InputFeatures is the number of values in a preprocessed tensor.
const InputFeatures = imaging.InputSize * imaging.InputSize

var (
	// ErrUnsupportedModel is returned for model artifacts no backend can load.
	ErrUnsupportedModel = errors.New("unsupported model")
	// ErrModelNotFound is returned when the model file does not exist.
	ErrModelNotFound = errors.New("model not found")
	// ErrModelShape is returned when a model's input or output does not fit
	// a 28×28 grayscale input with 10 classes.
	ErrModelShape = errors.New("incompatible model shape")
	// ErrUnavailable is returned when a remote model is not serving.
	ErrUnavailable = errors.New("model service unavailable")
)

// Classifier produces one score per digit class for a preprocessed tensor.
type Classifier interface {
	// Predict returns OutputClasses scores. Scores may be probabilities or
	// raw logits; callers normalise them.
	Predict(ctx context.Context, input *imaging.Tensor) ([]float64, error)

	// Name identifies the backend and model for logs.
	Name() string

	// Close releases resources.
	Close() error
}

// Config contains configuration for loading a classifier.
type Config struct {
	// Model is a file path (.onnx, .yaml, .yml, .json) or an http(s) URL.
	Model string
	// ModelName is the served model name for remote models whose URL does
	// not carry one.
	ModelName string
	// ORTLibraryPath points at the ONNX Runtime shared library.
	// Empty uses the platform default search.
	ORTLibraryPath string

	Timeout        time.Duration
	HealthInterval time.Duration
	HealthTimeout  time.Duration

	Logger *slog.Logger
}

// DefaultConfig returns default classifier configuration.
func DefaultConfig() *Config {
	return &Config{
		Model:          "mnist.onnx",
		ModelName:      "mnist",
		Timeout:        10 * time.Second,
		HealthInterval: 5 * time.Second,
		HealthTimeout:  3 * time.Second,
		Logger:         slog.Default(),
	}
}

func checkInput(input *imaging.Tensor) error {
	if input == nil {
		return errors.New("nil input tensor")
	}
	if input.Len() != InputFeatures {
		return fmt.Errorf("%w: input has %d values, want %d", ErrModelShape, input.Len(), InputFeatures)
	}
	return nil
}
