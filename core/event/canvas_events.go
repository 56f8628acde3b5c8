package event

import "image"

// CanvasChanged is published whenever the rendered canvas changes.
type CanvasChanged struct {
	Image    image.Image
	Segments int
}

func NewCanvasChanged(img image.Image, segments int) *CanvasChanged {
	return &CanvasChanged{
		Image:    img,
		Segments: segments,
	}
}

func (e *CanvasChanged) EventName() string {
	return "CanvasChanged"
}

// CanvasCleared is published when all segments were discarded.
type CanvasCleared struct{}

func NewCanvasCleared() *CanvasCleared {
	return &CanvasCleared{}
}

func (e *CanvasCleared) EventName() string {
	return "CanvasCleared"
}

// DrawingSaved is published after the canvas was written to disk.
type DrawingSaved struct {
	Path string
}

func NewDrawingSaved(path string) *DrawingSaved {
	return &DrawingSaved{Path: path}
}

func (e *DrawingSaved) EventName() string {
	return "DrawingSaved"
}
