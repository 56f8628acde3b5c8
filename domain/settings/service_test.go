package settings

import (
	"errors"
	"image/color"
	"testing"
)

func TestNewService_NilUsesDefaults(t *testing.T) {
	svc := NewService(nil)

	if got := svc.Current(); *got != *Defaults() {
		t.Errorf("Current() = %+v, want defaults", got)
	}
}

func TestNewService_SanitizesInitial(t *testing.T) {
	svc := NewService(&Settings{BrushSize: 0, BrushColor: "#FF0000", CanvasColor: "#FFFFFF"})

	cur := svc.Current()
	if cur.BrushSize != DefaultBrushSize {
		t.Errorf("BrushSize = %d, want %d", cur.BrushSize, DefaultBrushSize)
	}
	if cur.BrushColor != "#FF0000" {
		t.Errorf("BrushColor = %v, want #FF0000", cur.BrushColor)
	}
}

func TestService_SetBrushSize(t *testing.T) {
	svc := NewService(nil)

	got, err := svc.SetBrushSize(25)
	if err != nil {
		t.Fatalf("SetBrushSize() error = %v", err)
	}
	if got.BrushSize != 25 || svc.Current().BrushSize != 25 {
		t.Errorf("BrushSize not updated")
	}

	if _, err := svc.SetBrushSize(31); !errors.Is(err, ErrInvalidSettings) {
		t.Errorf("SetBrushSize(31) error = %v, want ErrInvalidSettings", err)
	}
	if svc.Current().BrushSize != 25 {
		t.Error("rejected size should not change settings")
	}
}

func TestService_SetColors(t *testing.T) {
	svc := NewService(nil)

	if _, err := svc.SetBrushColor("#ff0000"); err != nil {
		t.Fatalf("SetBrushColor() error = %v", err)
	}
	if _, err := svc.SetCanvasColor("#eee"); err != nil {
		t.Fatalf("SetCanvasColor() error = %v", err)
	}

	cur := svc.Current()
	if cur.BrushColor != "#FF0000" {
		t.Errorf("BrushColor = %v, want normalized #FF0000", cur.BrushColor)
	}
	if cur.CanvasColor != "#EEEEEE" {
		t.Errorf("CanvasColor = %v, want #EEEEEE", cur.CanvasColor)
	}

	size, c := svc.Brush()
	if size != DefaultBrushSize || c != (color.RGBA{255, 0, 0, 255}) {
		t.Errorf("Brush() = %d, %v", size, c)
	}

	if _, err := svc.SetBrushColor("red"); err == nil {
		t.Error("SetBrushColor(red) should fail")
	}
}

func TestService_TranslucentColors(t *testing.T) {
	tests := []struct {
		name string
		set  func(*Service, string) (*Settings, error)
		get  func(*Settings) string
	}{
		{"brush", (*Service).SetBrushColor, func(s *Settings) string { return s.BrushColor }},
		{"canvas", (*Service).SetCanvasColor, func(s *Settings) string { return s.CanvasColor }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewService(nil)

			got, err := tt.set(svc, "#FF000080")
			if err != nil {
				t.Fatalf("set error = %v", err)
			}
			if code := tt.get(got); code != "#FF000080" {
				t.Errorf("stored color = %v, want #FF000080", code)
			}
			if err := svc.Current().Validate(); err != nil {
				t.Errorf("Validate() error = %v", err)
			}
		})
	}
}

func TestService_CurrentIsSnapshot(t *testing.T) {
	svc := NewService(nil)
	snap := svc.Current()
	snap.BrushSize = 29

	if svc.Current().BrushSize == 29 {
		t.Error("Current() must return a copy")
	}
}
