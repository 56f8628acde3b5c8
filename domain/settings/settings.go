// Package settings defines the user drawing preferences and their rules.
package settings

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Brush size bounds, matching the brush size slider.
const (
	MinBrushSize = 5
	MaxBrushSize = 30
)

// Default values used when nothing is persisted.
const (
	DefaultBrushSize   = 15
	DefaultBrushColor  = "#000000"
	DefaultCanvasColor = "#FFFFFF"
)

// ErrInvalidSettings is returned for out-of-range sizes or malformed colors.
var ErrInvalidSettings = errors.New("invalid settings")

// Settings holds the persisted drawing preferences.
type Settings struct {
	BrushSize   int
	BrushColor  string
	CanvasColor string
}

// Defaults returns the default settings.
func Defaults() *Settings {
	return &Settings{
		BrushSize:   DefaultBrushSize,
		BrushColor:  DefaultBrushColor,
		CanvasColor: DefaultCanvasColor,
	}
}

// Clone creates a copy of the settings.
func (s *Settings) Clone() *Settings {
	c := *s
	return &c
}

// Validate checks every field.
func (s *Settings) Validate() error {
	if err := ValidateBrushSize(s.BrushSize); err != nil {
		return err
	}
	if _, err := ParseColor(s.BrushColor); err != nil {
		return fmt.Errorf("brush color: %w", err)
	}
	if _, err := ParseColor(s.CanvasColor); err != nil {
		return fmt.Errorf("canvas color: %w", err)
	}
	return nil
}

// Sanitize replaces every invalid field with its default and returns the
// names of the fields that were reset.
func (s *Settings) Sanitize() []string {
	var reset []string
	if ValidateBrushSize(s.BrushSize) != nil {
		s.BrushSize = DefaultBrushSize
		reset = append(reset, "brush_size")
	}
	if _, err := ParseColor(s.BrushColor); err != nil {
		s.BrushColor = DefaultBrushColor
		reset = append(reset, "brush_color")
	}
	if _, err := ParseColor(s.CanvasColor); err != nil {
		s.CanvasColor = DefaultCanvasColor
		reset = append(reset, "canvas_color")
	}
	return reset
}

// BrushRGBA returns the parsed brush color, or black if it does not parse.
func (s *Settings) BrushRGBA() color.RGBA {
	c, err := ParseColor(s.BrushColor)
	if err != nil {
		return color.RGBA{0, 0, 0, 255}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// CanvasRGBA returns the parsed canvas color, or white if it does not parse.
func (s *Settings) CanvasRGBA() color.RGBA {
	c, err := ParseColor(s.CanvasColor)
	if err != nil {
		return color.RGBA{255, 255, 255, 255}
	}
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// ValidateBrushSize checks that size is within [MinBrushSize, MaxBrushSize].
func ValidateBrushSize(size int) error {
	if size < MinBrushSize || size > MaxBrushSize {
		return fmt.Errorf("%w: brush size %d outside [%d, %d]", ErrInvalidSettings, size, MinBrushSize, MaxBrushSize)
	}
	return nil
}

// ParseColor parses "#RGB", "#RRGGBB" or "#RRGGBBAA" color codes.
// Channels are straight, not alpha-premultiplied.
func ParseColor(code string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(code), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) == 6 {
		hex += "ff"
	}
	if len(hex) != 8 || !strings.HasPrefix(strings.TrimSpace(code), "#") {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidSettings, code)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("%w: color %q", ErrInvalidSettings, code)
	}
	return color.NRGBA{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}

// FormatColor renders c as "#RRGGBB", or "#RRGGBBAA" when not opaque.
func FormatColor(c color.Color) string {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	if n.A == 0xff {
		return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
	}
	return fmt.Sprintf("#%02X%02X%02X%02X", n.R, n.G, n.B, n.A)
}
