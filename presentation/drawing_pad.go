package presentation

import (
	"image"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"
)

// DrawingPad displays the rendered canvas and turns drags into strokes.
// Positions are reported in image pixels, whatever size the widget is laid
// out at.
type DrawingPad struct {
	widget.BaseWidget
	image     *canvas.Image
	pixelSize fyne.Size
	imageMu   sync.RWMutex

	onDown func(x, y float32)
	onMove func(x, y float32)
	onUp   func()

	strokeMu sync.Mutex
	stroking bool
}

// NewDrawingPad creates a pad showing a blank image of the given pixel size.
func NewDrawingPad(width, height int) *DrawingPad {
	p := &DrawingPad{
		image:     canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height))),
		pixelSize: fyne.NewSize(float32(width), float32(height)),
	}
	p.image.FillMode = canvas.ImageFillStretch
	p.image.ScaleMode = canvas.ImageScaleFastest
	p.ExtendBaseWidget(p)
	return p
}

// SetImage replaces the displayed canvas.
func (p *DrawingPad) SetImage(img image.Image) {
	if img == nil {
		return
	}
	p.imageMu.Lock()
	p.image.Image = img
	p.imageMu.Unlock()
	p.image.Refresh()
}

// GetImage returns the displayed canvas.
func (p *DrawingPad) GetImage() image.Image {
	p.imageMu.RLock()
	defer p.imageMu.RUnlock()
	return p.image.Image
}

// SetHandlers sets the stroke callbacks. Nil handlers are ignored.
func (p *DrawingPad) SetHandlers(onDown, onMove func(x, y float32), onUp func()) {
	p.strokeMu.Lock()
	defer p.strokeMu.Unlock()
	p.onDown, p.onMove, p.onUp = onDown, onMove, onUp
}

// CreateRenderer creates the widget renderer.
func (p *DrawingPad) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.image)
}

// MinSize keeps the pad at its pixel size.
func (p *DrawingPad) MinSize() fyne.Size {
	return p.pixelSize
}

// toPixels maps a widget position to image coordinates.
func (p *DrawingPad) toPixels(pos fyne.Position) (float32, float32) {
	actual := p.Size()
	if actual.Width <= 0 || actual.Height <= 0 {
		return pos.X, pos.Y
	}
	return pos.X * p.pixelSize.Width / actual.Width, pos.Y * p.pixelSize.Height / actual.Height
}

// Dragged starts a stroke on the first event of a drag, at the position the
// drag began, and extends it on every event.
func (p *DrawingPad) Dragged(e *fyne.DragEvent) {
	p.strokeMu.Lock()
	defer p.strokeMu.Unlock()

	if !p.stroking {
		p.stroking = true
		if p.onDown != nil {
			start := fyne.NewPos(e.Position.X-e.Dragged.DX, e.Position.Y-e.Dragged.DY)
			p.onDown(p.toPixels(start))
		}
	}
	if p.onMove != nil {
		p.onMove(p.toPixels(e.Position))
	}
}

// DragEnd finishes the stroke.
func (p *DrawingPad) DragEnd() {
	p.strokeMu.Lock()
	defer p.strokeMu.Unlock()

	if !p.stroking {
		return
	}
	p.stroking = false
	if p.onUp != nil {
		p.onUp()
	}
}
