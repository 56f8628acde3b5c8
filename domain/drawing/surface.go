package drawing

import (
	"errors"

	"digitpad-go/core/state"
)

// Default canvas dimensions, in canvas units.
const (
	DefaultWidth  = 280
	DefaultHeight = 280
)

// ErrNotDrawing is returned when a move arrives without a preceding pointer-down.
var ErrNotDrawing = errors.New("pointer is not down")

// Surface accumulates segments from pointer events.
// It is not safe for concurrent use; the owning session serialises access.
type Surface struct {
	width    int
	height   int
	state    state.DrawingState
	last     Point
	segments []Segment
}

// NewSurface creates an empty surface of the given size.
// Non-positive dimensions fall back to the defaults.
func NewSurface(width, height int) *Surface {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Surface{
		width:  width,
		height: height,
		state:  state.StateIdle,
	}
}

// Width returns the surface width.
func (s *Surface) Width() int { return s.width }

// Height returns the surface height.
func (s *Surface) Height() int { return s.height }

// State returns the current drawing state.
func (s *Surface) State() state.DrawingState { return s.state }

// PointerDown starts a drag at p.
func (s *Surface) PointerDown(p Point) error {
	next, err := s.state.Next(state.InputPointerDown)
	if err != nil {
		return err
	}
	s.state = next
	s.last = p
	return nil
}

// PointerMove appends a segment from the last recorded position to p using
// brush, and makes p the last recorded position.
func (s *Surface) PointerMove(p Point, brush Brush) (Segment, error) {
	next, err := s.state.Next(state.InputPointerMove)
	if err != nil {
		return Segment{}, errors.Join(ErrNotDrawing, err)
	}
	seg := Segment{
		From:  s.last,
		To:    p,
		Width: brush.Size,
		Color: brush.Color,
	}
	s.segments = append(s.segments, seg)
	s.state = next
	s.last = p
	return seg, nil
}

// PointerUp ends the current drag. It is a no-op when idle.
func (s *Surface) PointerUp() error {
	next, err := s.state.Next(state.InputPointerUp)
	if err != nil {
		return err
	}
	s.state = next
	return nil
}

// Undo removes the most recently added segment. Only one segment is removed
// even if the drag that produced it recorded several.
func (s *Surface) Undo() (Segment, bool) {
	if len(s.segments) == 0 {
		return Segment{}, false
	}
	last := s.segments[len(s.segments)-1]
	s.segments = s.segments[:len(s.segments)-1]
	return last, true
}

// Clear discards all segments and returns to Idle.
func (s *Surface) Clear() {
	next, err := s.state.Next(state.InputClear)
	if err == nil {
		s.state = next
	}
	s.segments = nil
}

// Len returns the number of visible segments.
func (s *Surface) Len() int {
	return len(s.segments)
}

// IsEmpty reports whether nothing is drawn.
func (s *Surface) IsEmpty() bool {
	return len(s.segments) == 0
}

// Segments returns a copy of the visible segments in drawing order.
func (s *Surface) Segments() []Segment {
	out := make([]Segment, len(s.segments))
	copy(out, s.segments)
	return out
}
