// Package drawing models the hand-drawing surface: points, segments and the
// pointer-driven surface that accumulates them.
package drawing

import (
	"fmt"
	"image/color"
	"math"
)

// Point is a position on the surface in canvas units.
type Point struct {
	X float64
	Y float64
}

// String formats the point like "(12.0, 34.5)".
func (p Point) String() string {
	return fmt.Sprintf("(%.1f, %.1f)", p.X, p.Y)
}

// Brush holds the stroke parameters applied to new segments.
type Brush struct {
	Size  int
	Color color.RGBA
}

// Segment is a single rendered line between two consecutive pointer positions.
type Segment struct {
	From  Point
	To    Point
	Width int
	Color color.RGBA
}

// Length returns the euclidean length of the segment.
func (s Segment) Length() float64 {
	return math.Hypot(s.To.X-s.From.X, s.To.Y-s.From.Y)
}
