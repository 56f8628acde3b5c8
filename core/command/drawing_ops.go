package command

import "digitpad-go/domain/drawing"

// PointerDown starts a stroke at the given canvas coordinate.
type PointerDown struct {
	Point drawing.Point
}

func NewPointerDown(x, y float64) *PointerDown {
	return &PointerDown{Point: drawing.Point{X: x, Y: y}}
}

func (c *PointerDown) CommandName() string {
	return "PointerDown"
}

// PointerMove extends the current stroke to the given coordinate.
type PointerMove struct {
	Point drawing.Point
}

func NewPointerMove(x, y float64) *PointerMove {
	return &PointerMove{Point: drawing.Point{X: x, Y: y}}
}

func (c *PointerMove) CommandName() string {
	return "PointerMove"
}

// PointerUp ends the current stroke.
type PointerUp struct{}

func (c *PointerUp) CommandName() string {
	return "PointerUp"
}

// UndoSegment removes the most recently drawn segment.
type UndoSegment struct{}

func (c *UndoSegment) CommandName() string {
	return "UndoSegment"
}

// ClearCanvas discards every segment. History is kept.
type ClearCanvas struct{}

func (c *ClearCanvas) CommandName() string {
	return "ClearCanvas"
}
