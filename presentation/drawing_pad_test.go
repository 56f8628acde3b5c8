package presentation

import (
	"image"
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
)

type strokeRecorder struct {
	downs, moves [][2]float32
	ups          int
}

func (r *strokeRecorder) attach(p *DrawingPad) {
	p.SetHandlers(
		func(x, y float32) { r.downs = append(r.downs, [2]float32{x, y}) },
		func(x, y float32) { r.moves = append(r.moves, [2]float32{x, y}) },
		func() { r.ups++ },
	)
}

func drag(x, y, dx, dy float32) *fyne.DragEvent {
	return &fyne.DragEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Dragged:    fyne.NewDelta(dx, dy),
	}
}

func TestDrawingPad_Stroke(t *testing.T) {
	test.NewTempApp(t)
	p := NewDrawingPad(280, 280)
	rec := &strokeRecorder{}
	rec.attach(p)

	p.Dragged(drag(15, 25, 5, 5))
	p.Dragged(drag(30, 40, 15, 15))
	p.DragEnd()
	p.DragEnd()

	if len(rec.downs) != 1 || rec.downs[0] != [2]float32{10, 20} {
		t.Errorf("downs = %v, want [[10 20]]", rec.downs)
	}
	if len(rec.moves) != 2 || rec.moves[1] != [2]float32{30, 40} {
		t.Errorf("moves = %v", rec.moves)
	}
	if rec.ups != 1 {
		t.Errorf("ups = %d, want 1", rec.ups)
	}

	p.Dragged(drag(50, 50, 1, 1))
	if len(rec.downs) != 2 {
		t.Errorf("second drag should start a new stroke, downs = %v", rec.downs)
	}
}

func TestDrawingPad_ScalesToPixels(t *testing.T) {
	test.NewTempApp(t)
	p := NewDrawingPad(280, 280)
	p.Resize(fyne.NewSize(560, 560))
	rec := &strokeRecorder{}
	rec.attach(p)

	p.Dragged(drag(100, 200, 0, 0))

	if rec.moves[0] != [2]float32{50, 100} {
		t.Errorf("move = %v, want [50 100]", rec.moves[0])
	}
}

func TestDrawingPad_Image(t *testing.T) {
	test.NewTempApp(t)
	p := NewDrawingPad(10, 10)

	if p.MinSize() != fyne.NewSize(10, 10) {
		t.Errorf("MinSize() = %v", p.MinSize())
	}

	img := image.NewRGBA(image.Rect(0, 0, 10, 10))
	p.SetImage(img)
	p.SetImage(nil)
	if p.GetImage() != img {
		t.Error("GetImage() did not return the last non-nil image")
	}
}

func TestDrawingPad_NoHandlers(t *testing.T) {
	test.NewTempApp(t)
	p := NewDrawingPad(10, 10)

	p.Dragged(drag(1, 1, 1, 1))
	p.DragEnd()
}
