// Package imaging turns the drawing surface into pixels and pixels into model
// input: stroke rasterisation, image codecs and MNIST-style preprocessing.
package imaging

import (
	"image"
	"image/color"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"

	"digitpad-go/domain/drawing"
)

// miterLimit only matters for non-round joins; segments are single lines.
const miterLimit = fixed.Int26_6(4 << 6)

// Renderer rasterises segments as anti-aliased, round-capped strokes.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer for a canvas of the given size.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = drawing.DefaultWidth
	}
	if height <= 0 {
		height = drawing.DefaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Bounds returns the canvas rectangle.
func (r *Renderer) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.width, r.height)
}

// Render draws segments in order over a background of the given color.
// Later segments paint over earlier ones.
func (r *Renderer) Render(segments []drawing.Segment, background color.Color) *image.RGBA {
	img := image.NewRGBA(r.Bounds())
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)
	r.Draw(img, segments...)
	return img
}

// Draw strokes segments onto an existing canvas.
func (r *Renderer) Draw(dst *image.RGBA, segments ...drawing.Segment) {
	if len(segments) == 0 {
		return
	}

	scanner := rasterx.NewScannerGV(r.width, r.height, dst, dst.Bounds())
	dasher := rasterx.NewDasher(r.width, r.height, scanner)

	for _, seg := range segments {
		r.stroke(dasher, seg)
	}
}

func (r *Renderer) stroke(d *rasterx.Dasher, seg drawing.Segment) {
	width := seg.Width
	if width <= 0 {
		width = 1
	}

	d.Clear()
	d.SetStroke(fixed.Int26_6(width<<6), miterLimit,
		rasterx.RoundCap, rasterx.RoundCap, rasterx.RoundGap, rasterx.ArcClip, nil, 0)
	d.Start(rasterx.ToFixedP(seg.From.X, seg.From.Y))
	d.Line(rasterx.ToFixedP(seg.To.X, seg.To.Y))
	d.Stop(false)
	d.SetColor(seg.Color)
	d.Draw()
}
