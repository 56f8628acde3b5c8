package command

// SetBrushSize changes the width of subsequent segments.
type SetBrushSize struct {
	Size int
}

func NewSetBrushSize(size int) *SetBrushSize {
	return &SetBrushSize{Size: size}
}

func (c *SetBrushSize) CommandName() string {
	return "SetBrushSize"
}

// SetBrushColor changes the color of subsequent segments.
// Color is a hex string such as "#FF0000".
type SetBrushColor struct {
	Color string
}

func NewSetBrushColor(color string) *SetBrushColor {
	return &SetBrushColor{Color: color}
}

func (c *SetBrushColor) CommandName() string {
	return "SetBrushColor"
}

// SetCanvasColor changes the canvas background.
type SetCanvasColor struct {
	Color string
}

func NewSetCanvasColor(color string) *SetCanvasColor {
	return &SetCanvasColor{Color: color}
}

func (c *SetCanvasColor) CommandName() string {
	return "SetCanvasColor"
}
