package imaging

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// InputSize is the side length of the model input in pixels.
const InputSize = 28

// ErrEmptyImage is returned when there is nothing to preprocess.
var ErrEmptyImage = errors.New("empty image")

// Tensor is a dense float32 tensor in NHWC layout.
type Tensor struct {
	Shape [4]int
	Data  []float32
}

// NewTensor allocates a zeroed [1, size, size, 1] tensor.
func NewTensor(size int) *Tensor {
	return &Tensor{
		Shape: [4]int{1, size, size, 1},
		Data:  make([]float32, size*size),
	}
}

// Len returns the number of elements.
func (t *Tensor) Len() int {
	return len(t.Data)
}

// At returns the value at row y, column x of the single channel.
func (t *Tensor) At(x, y int) float32 {
	return t.Data[y*t.Shape[2]+x]
}

// Float64s returns the data as a flat float64 slice.
func (t *Tensor) Float64s() []float64 {
	out := make([]float64, len(t.Data))
	for i, v := range t.Data {
		out[i] = float64(v)
	}
	return out
}

// Int64Shape returns the shape as int64 values.
func (t *Tensor) Int64Shape() []int64 {
	return []int64{int64(t.Shape[0]), int64(t.Shape[1]), int64(t.Shape[2]), int64(t.Shape[3])}
}

// Preprocessor converts a drawing into classifier input: grayscale, inverted
// so ink is bright, resized to InputSize with Lanczos resampling and scaled to
// [0,1].
type Preprocessor struct {
	size   uint
	interp resize.InterpolationFunction
}

// NewPreprocessor creates a preprocessor producing InputSize×InputSize tensors.
func NewPreprocessor() *Preprocessor {
	return &Preprocessor{
		size:   InputSize,
		interp: resize.Lanczos3,
	}
}

// Preprocess converts img into a [1,28,28,1] tensor with values in [0,1].
// Transparent pixels are treated as white paper.
func (p *Preprocessor) Preprocess(img image.Image) (*Tensor, error) {
	if img == nil {
		return nil, ErrEmptyImage
	}
	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: bounds %v", ErrEmptyImage, b)
	}

	gray := image.NewGray(b)
	draw.Draw(gray, b, image.White, image.Point{}, draw.Src)
	draw.Draw(gray, b, img, b.Min, draw.Over)

	for i, v := range gray.Pix {
		gray.Pix[i] = 255 - v
	}

	small := resize.Resize(p.size, p.size, gray, p.interp)

	t := NewTensor(int(p.size))
	sb := small.Bounds()
	for y := 0; y < int(p.size); y++ {
		for x := 0; x < int(p.size); x++ {
			g := color.GrayModel.Convert(small.At(sb.Min.X+x, sb.Min.Y+y)).(color.Gray)
			t.Data[y*int(p.size)+x] = float32(g.Y) / 255
		}
	}
	return t, nil
}
