package session

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"digitpad-go/domain/drawing"
	"digitpad-go/infrastructure/imaging"
)

// CanvasCapture keeps the rendered canvas in step with the drawing surface
// and saves it to disk.
type CanvasCapture struct {
	renderer *imaging.Renderer
	canvas   *image.RGBA
	logger   *slog.Logger
	saveDir  string
}

// NewCanvasCapture creates a capture with a blank canvas of the given color.
func NewCanvasCapture(renderer *imaging.Renderer, background color.Color, logger *slog.Logger) *CanvasCapture {
	if logger == nil {
		logger = slog.Default()
	}
	return &CanvasCapture{
		renderer: renderer,
		canvas:   renderer.Render(nil, background),
		logger:   logger,
		saveDir:  getDefaultSaveDir(),
	}
}

// getDefaultSaveDir returns the default directory for saved drawings.
func getDefaultSaveDir() string {
	// Try to use user's Pictures folder
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, "Pictures", "digitpad")
}

// SetSaveDir sets the directory used when a save has no explicit path.
func (c *CanvasCapture) SetSaveDir(dir string) {
	c.saveDir = dir
}

// Redraw renders all segments from scratch.
func (c *CanvasCapture) Redraw(segments []drawing.Segment, background color.Color) {
	c.canvas = c.renderer.Render(segments, background)
}

// Extend strokes one more segment onto the current canvas.
func (c *CanvasCapture) Extend(seg drawing.Segment) {
	c.renderer.Draw(c.canvas, seg)
}

// Image returns the live canvas. Callers must not keep it across commands.
func (c *CanvasCapture) Image() *image.RGBA {
	return c.canvas
}

// Snapshot returns a copy of the canvas that is safe to hand to other
// goroutines.
func (c *CanvasCapture) Snapshot() *image.RGBA {
	cp := image.NewRGBA(c.canvas.Bounds())
	copy(cp.Pix, c.canvas.Pix)
	return cp
}

// SaveToFile writes the canvas to path, or to a timestamped PNG in the save
// directory when path is empty. It returns the path written.
func (c *CanvasCapture) SaveToFile(path string) (string, error) {
	if path == "" {
		path = filepath.Join(c.saveDir, fmt.Sprintf("digit_%d.png", time.Now().UnixMilli()))
	}

	if err := imaging.SaveFile(path, c.canvas); err != nil {
		return "", err
	}

	c.logger.Debug("Drawing saved", "filename", path)
	return path, nil
}
