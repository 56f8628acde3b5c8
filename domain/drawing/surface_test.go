package drawing

import (
	"errors"
	"image/color"
	"testing"

	"digitpad-go/core/state"
)

var testBrush = Brush{Size: 15, Color: color.RGBA{0, 0, 0, 255}}

func drag(t *testing.T, s *Surface, pts ...Point) {
	t.Helper()
	if err := s.PointerDown(pts[0]); err != nil {
		t.Fatalf("PointerDown() error = %v", err)
	}
	for _, p := range pts[1:] {
		if _, err := s.PointerMove(p, testBrush); err != nil {
			t.Fatalf("PointerMove() error = %v", err)
		}
	}
	if err := s.PointerUp(); err != nil {
		t.Fatalf("PointerUp() error = %v", err)
	}
}

func TestNewSurface_Defaults(t *testing.T) {
	s := NewSurface(0, -1)

	if s.Width() != DefaultWidth || s.Height() != DefaultHeight {
		t.Errorf("size = %dx%d, want %dx%d", s.Width(), s.Height(), DefaultWidth, DefaultHeight)
	}
	if s.State() != state.StateIdle {
		t.Errorf("State() = %v, want Idle", s.State())
	}
	if !s.IsEmpty() {
		t.Error("new surface should be empty")
	}
}

func TestSurface_DragProducesSegments(t *testing.T) {
	s := NewSurface(280, 280)

	if err := s.PointerDown(Point{10, 10}); err != nil {
		t.Fatalf("PointerDown() error = %v", err)
	}
	if s.State() != state.StateDrawing {
		t.Fatalf("State() = %v, want Drawing", s.State())
	}

	seg, err := s.PointerMove(Point{20, 15}, testBrush)
	if err != nil {
		t.Fatalf("PointerMove() error = %v", err)
	}
	if seg.From != (Point{10, 10}) || seg.To != (Point{20, 15}) {
		t.Errorf("segment = %v -> %v, want (10,10) -> (20,15)", seg.From, seg.To)
	}
	if seg.Width != 15 {
		t.Errorf("Width = %d, want 15", seg.Width)
	}

	seg, _ = s.PointerMove(Point{30, 30}, Brush{Size: 5, Color: color.RGBA{255, 0, 0, 255}})
	if seg.From != (Point{20, 15}) {
		t.Errorf("second segment starts at %v, want last coordinate (20,15)", seg.From)
	}
	if seg.Width != 5 || seg.Color.R != 255 {
		t.Errorf("second segment should use the current brush, got %+v", seg)
	}

	if err := s.PointerUp(); err != nil {
		t.Fatalf("PointerUp() error = %v", err)
	}
	if s.State() != state.StateIdle {
		t.Errorf("State() = %v, want Idle", s.State())
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
}

func TestSurface_MoveWhileIdle(t *testing.T) {
	s := NewSurface(280, 280)

	_, err := s.PointerMove(Point{5, 5}, testBrush)
	if !errors.Is(err, ErrNotDrawing) {
		t.Fatalf("PointerMove() error = %v, want ErrNotDrawing", err)
	}

	var te *state.TransitionError
	if !errors.As(err, &te) {
		t.Errorf("error should wrap *state.TransitionError, got %T", err)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestSurface_UpWhileIdleIsNoop(t *testing.T) {
	s := NewSurface(280, 280)
	if err := s.PointerUp(); err != nil {
		t.Errorf("PointerUp() error = %v", err)
	}
}

func TestSurface_UndoRemovesOneSegment(t *testing.T) {
	s := NewSurface(280, 280)
	drag(t, s, Point{0, 0}, Point{1, 1}, Point{2, 2}, Point{3, 3}, Point{4, 4})

	const n = 4
	if s.Len() != n {
		t.Fatalf("Len() = %d, want %d", s.Len(), n)
	}

	removed, ok := s.Undo()
	if !ok {
		t.Fatal("Undo() ok = false")
	}
	if removed.To != (Point{4, 4}) {
		t.Errorf("Undo() removed %v, want the most recent segment", removed.To)
	}
	if s.Len() != n-1 {
		t.Errorf("Len() = %d, want %d", s.Len(), n-1)
	}

	segs := s.Segments()
	if segs[len(segs)-1].To != (Point{3, 3}) {
		t.Errorf("last remaining segment ends at %v, want (3,3)", segs[len(segs)-1].To)
	}
}

func TestSurface_UndoEmpty(t *testing.T) {
	s := NewSurface(280, 280)
	if _, ok := s.Undo(); ok {
		t.Error("Undo() on empty surface should return ok=false")
	}
}

func TestSurface_Clear(t *testing.T) {
	s := NewSurface(280, 280)
	if err := s.PointerDown(Point{0, 0}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.PointerMove(Point{5, 5}, testBrush); err != nil {
		t.Fatal(err)
	}

	s.Clear()

	if !s.IsEmpty() {
		t.Error("Clear() should discard all segments")
	}
	if s.State() != state.StateIdle {
		t.Errorf("State() = %v after Clear, want Idle", s.State())
	}
}

func TestSurface_SegmentsIsCopy(t *testing.T) {
	s := NewSurface(280, 280)
	drag(t, s, Point{0, 0}, Point{10, 0})

	segs := s.Segments()
	segs[0].Width = 99

	if s.Segments()[0].Width == 99 {
		t.Error("Segments() must return a copy")
	}
}

func TestSegment_Length(t *testing.T) {
	seg := Segment{From: Point{0, 0}, To: Point{3, 4}}
	if got := seg.Length(); got != 5 {
		t.Errorf("Length() = %v, want 5", got)
	}
}

func TestPoint_String(t *testing.T) {
	if got := (Point{1, 2.5}).String(); got != "(1.0, 2.5)" {
		t.Errorf("String() = %q", got)
	}
}
