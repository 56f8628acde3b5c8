package settings

import (
	"fmt"
	"image/color"
)

// Service owns the live settings and applies validated changes.
// It is not safe for concurrent use; the owning session serialises access.
type Service struct {
	current *Settings
}

// NewService creates a settings service starting from initial.
// A nil or invalid initial value is replaced field by field with defaults.
func NewService(initial *Settings) *Service {
	if initial == nil {
		initial = Defaults()
	}
	s := initial.Clone()
	s.Sanitize()
	return &Service{current: s}
}

// Current returns a snapshot of the live settings.
func (s *Service) Current() *Settings {
	return s.current.Clone()
}

// SetBrushSize updates the brush size.
func (s *Service) SetBrushSize(size int) (*Settings, error) {
	if err := ValidateBrushSize(size); err != nil {
		return nil, err
	}
	s.current.BrushSize = size
	return s.Current(), nil
}

// SetBrushColor updates the brush color from a color code.
func (s *Service) SetBrushColor(code string) (*Settings, error) {
	c, err := ParseColor(code)
	if err != nil {
		return nil, fmt.Errorf("brush color: %w", err)
	}
	s.current.BrushColor = FormatColor(c)
	return s.Current(), nil
}

// SetCanvasColor updates the canvas background color from a color code.
func (s *Service) SetCanvasColor(code string) (*Settings, error) {
	c, err := ParseColor(code)
	if err != nil {
		return nil, fmt.Errorf("canvas color: %w", err)
	}
	s.current.CanvasColor = FormatColor(c)
	return s.Current(), nil
}

// Brush returns the brush color of the live settings.
func (s *Service) Brush() (int, color.RGBA) {
	return s.current.BrushSize, s.current.BrushRGBA()
}
