package classifier

import (
	"context"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/gonum/mat"
	"gopkg.in/yaml.v3"

	"digitpad-go/domain/prediction"
	"digitpad-go/infrastructure/imaging"
)

// Activation names understood by dense layers.
const (
	ActivationLinear  = "linear"
	ActivationReLU    = "relu"
	ActivationSigmoid = "sigmoid"
	ActivationTanh    = "tanh"
	ActivationSoftmax = "softmax"
)

// LayerDocument is one fully connected layer in a weight file.
// Weights has one row per output unit and one column per input.
type LayerDocument struct {
	Weights    [][]float64 `yaml:"weights"`
	Bias       []float64   `yaml:"bias"`
	Activation string      `yaml:"activation"`
}

// ModelDocument is the on-disk format of a dense model. JSON files use the
// same keys.
type ModelDocument struct {
	Name   string          `yaml:"name"`
	Inputs int             `yaml:"inputs"`
	Layers []LayerDocument `yaml:"layers"`
}

type denseLayer struct {
	weights    *mat.Dense
	bias       *mat.VecDense
	activation string
}

// DenseClassifier evaluates a small fully connected network.
type DenseClassifier struct {
	name   string
	layers []denseLayer
}

// LoadDense reads a YAML or JSON weight document.
func LoadDense(path string) (*DenseClassifier, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read model: %w", err)
	}

	var doc ModelDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse model %s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	return NewDense(&doc)
}

// NewDense builds a classifier from a model document, validating that the
// layer dimensions chain from 784 inputs to 10 outputs.
func NewDense(doc *ModelDocument) (*DenseClassifier, error) {
	if doc.Inputs != 0 && doc.Inputs != InputFeatures {
		return nil, fmt.Errorf("%w: model expects %d inputs, want %d", ErrModelShape, doc.Inputs, InputFeatures)
	}
	if len(doc.Layers) == 0 {
		return nil, fmt.Errorf("%w: model has no layers", ErrModelShape)
	}

	c := &DenseClassifier{name: doc.Name}
	in := InputFeatures
	for i, l := range doc.Layers {
		layer, err := buildLayer(l, in)
		if err != nil {
			return nil, fmt.Errorf("layer %d: %w", i, err)
		}
		c.layers = append(c.layers, layer)
		in = len(l.Weights)
	}

	if in != OutputClasses {
		return nil, fmt.Errorf("%w: model has %d outputs, want %d", ErrModelShape, in, OutputClasses)
	}
	return c, nil
}

func buildLayer(l LayerDocument, inputs int) (denseLayer, error) {
	rows := len(l.Weights)
	if rows == 0 {
		return denseLayer{}, fmt.Errorf("%w: empty weights", ErrModelShape)
	}
	if len(l.Bias) != rows {
		return denseLayer{}, fmt.Errorf("%w: %d biases for %d units", ErrModelShape, len(l.Bias), rows)
	}

	flat := make([]float64, 0, rows*inputs)
	for r, row := range l.Weights {
		if len(row) != inputs {
			return denseLayer{}, fmt.Errorf("%w: weight row %d has %d columns, want %d", ErrModelShape, r, len(row), inputs)
		}
		flat = append(flat, row...)
	}

	act := strings.ToLower(l.Activation)
	switch act {
	case "":
		act = ActivationLinear
	case ActivationLinear, ActivationReLU, ActivationSigmoid, ActivationTanh, ActivationSoftmax:
	default:
		return denseLayer{}, fmt.Errorf("%w: unknown activation %q", ErrUnsupportedModel, l.Activation)
	}

	return denseLayer{
		weights:    mat.NewDense(rows, inputs, flat),
		bias:       mat.NewVecDense(rows, append([]float64(nil), l.Bias...)),
		activation: act,
	}, nil
}

// Predict runs the forward pass.
func (c *DenseClassifier) Predict(ctx context.Context, input *imaging.Tensor) ([]float64, error) {
	if err := checkInput(input); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	x := mat.NewVecDense(InputFeatures, input.Float64s())
	for _, l := range c.layers {
		rows, _ := l.weights.Dims()
		y := mat.NewVecDense(rows, nil)
		y.MulVec(l.weights, x)
		y.AddVec(y, l.bias)
		activate(y.RawVector().Data, l.activation)
		x = y
	}

	out := make([]float64, OutputClasses)
	copy(out, x.RawVector().Data)
	return out, nil
}

func activate(v []float64, activation string) {
	switch activation {
	case ActivationReLU:
		for i, x := range v {
			if x < 0 {
				v[i] = 0
			}
		}
	case ActivationSigmoid:
		for i, x := range v {
			v[i] = 1 / (1 + math.Exp(-x))
		}
	case ActivationTanh:
		for i, x := range v {
			v[i] = math.Tanh(x)
		}
	case ActivationSoftmax:
		prediction.Softmax(v)
	}
}

// Name returns the backend and model name.
func (c *DenseClassifier) Name() string {
	return "dense:" + c.name
}

// Close is a no-op; the weights are plain memory.
func (c *DenseClassifier) Close() error {
	return nil
}

var _ Classifier = (*DenseClassifier)(nil)
