package classifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"

	ort "github.com/yalue/onnxruntime_go"

	"digitpad-go/infrastructure/imaging"
)

var (
	envMu   sync.Mutex
	envRefs int

	destroyEnvironment = ort.DestroyEnvironment
)

// acquireEnvironment initialises the process-wide ONNX Runtime environment
// on first use.
func acquireEnvironment(libraryPath string) error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 {
		if libraryPath != "" {
			ort.SetSharedLibraryPath(libraryPath)
		}
		if err := ort.InitializeEnvironment(); err != nil {
			return fmt.Errorf("failed to initialize onnxruntime: %w", err)
		}
	}
	envRefs++
	return nil
}

func releaseEnvironment() error {
	envMu.Lock()
	defer envMu.Unlock()

	if envRefs == 0 {
		return nil
	}
	envRefs--
	if envRefs == 0 {
		return destroyEnvironment()
	}
	return nil
}

// abandonEnvironment releases the environment reference taken for a model
// that failed to load, keeping cause as the primary error.
func abandonEnvironment(cause error) error {
	if err := releaseEnvironment(); err != nil {
		return errors.Join(cause, fmt.Errorf("failed to release onnxruntime: %w", err))
	}
	return cause
}

// ONNXClassifier runs an ONNX model through ONNX Runtime. The input and
// output tensors are allocated once and reused for every prediction.
type ONNXClassifier struct {
	path    string
	session *ort.AdvancedSession
	input   *ort.Tensor[float32]
	output  *ort.Tensor[float32]
	mu      sync.Mutex
	logger  *slog.Logger
}

// NewONNXClassifier loads cfg.Model. The model must have one float input
// holding 784 values and one output holding 10 values; dynamic dimensions
// are fixed to 1.
func NewONNXClassifier(cfg *Config) (*ONNXClassifier, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	if err := acquireEnvironment(cfg.ORTLibraryPath); err != nil {
		return nil, err
	}

	c, err := newONNXSession(cfg.Model)
	if err != nil {
		return nil, abandonEnvironment(err)
	}
	c.logger = logger.With("component", "classifier", "backend", KindONNX)
	c.logger.Info("ONNX model loaded", "path", cfg.Model)
	return c, nil
}

func newONNXSession(path string) (*ONNXClassifier, error) {
	inputs, outputs, err := ort.GetInputOutputInfo(path)
	if err != nil {
		return nil, fmt.Errorf("failed to inspect model: %w", err)
	}
	if len(inputs) != 1 || len(outputs) < 1 {
		return nil, fmt.Errorf("%w: model has %d inputs and %d outputs", ErrModelShape, len(inputs), len(outputs))
	}

	inDims, err := resolveShape(inputs[0].Dimensions, InputFeatures)
	if err != nil {
		return nil, fmt.Errorf("input %q: %w", inputs[0].Name, err)
	}
	outDims, err := resolveShape(outputs[0].Dimensions, OutputClasses)
	if err != nil {
		return nil, fmt.Errorf("output %q: %w", outputs[0].Name, err)
	}

	input, err := ort.NewEmptyTensor[float32](ort.NewShape(inDims...))
	if err != nil {
		return nil, fmt.Errorf("failed to allocate input tensor: %w", err)
	}
	output, err := ort.NewEmptyTensor[float32](ort.NewShape(outDims...))
	if err != nil {
		input.Destroy()
		return nil, fmt.Errorf("failed to allocate output tensor: %w", err)
	}

	session, err := ort.NewAdvancedSession(path,
		[]string{inputs[0].Name}, []string{outputs[0].Name},
		[]ort.Value{input}, []ort.Value{output}, nil)
	if err != nil {
		input.Destroy()
		output.Destroy()
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	return &ONNXClassifier{
		path:    path,
		session: session,
		input:   input,
		output:  output,
	}, nil
}

// resolveShape replaces dynamic dimensions with 1 and checks the element
// count.
func resolveShape(dims []int64, want int64) ([]int64, error) {
	if len(dims) == 0 {
		return nil, fmt.Errorf("%w: scalar tensor", ErrModelShape)
	}

	out := make([]int64, len(dims))
	size := int64(1)
	for i, d := range dims {
		if d <= 0 {
			d = 1
		}
		out[i] = d
		size *= d
	}

	if size != want {
		return nil, fmt.Errorf("%w: shape %v holds %d values, want %d", ErrModelShape, dims, size, want)
	}
	return out, nil
}

// Predict copies input into the session tensor and runs the model.
func (c *ONNXClassifier) Predict(ctx context.Context, input *imaging.Tensor) ([]float64, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	copy(c.input.GetData(), input.Data)
	if err := c.session.Run(); err != nil {
		return nil, fmt.Errorf("onnxruntime run failed: %w", err)
	}

	// Run cannot be interrupted; drop results nobody waits for.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	raw := c.output.GetData()
	out := make([]float64, len(raw))
	for i, v := range raw {
		out[i] = float64(v)
	}
	return out, nil
}

// Name returns the backend and model file name.
func (c *ONNXClassifier) Name() string {
	return "onnx:" + filepath.Base(c.path)
}

// Close destroys the session and its tensors.
func (c *ONNXClassifier) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.session == nil {
		return nil
	}

	var firstErr error
	for _, destroy := range []func() error{c.session.Destroy, c.input.Destroy, c.output.Destroy} {
		if err := destroy(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	c.session = nil

	if err := releaseEnvironment(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}

var _ Classifier = (*ONNXClassifier)(nil)
