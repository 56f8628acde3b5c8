package command

// Predict classifies the current canvas and appends the result to history.
type Predict struct{}

func (c *Predict) CommandName() string {
	return "Predict"
}

// SaveDrawing writes the rendered canvas to Path.
// The image format follows the file extension.
type SaveDrawing struct {
	Path string
}

func NewSaveDrawing(path string) *SaveDrawing {
	return &SaveDrawing{Path: path}
}

func (c *SaveDrawing) CommandName() string {
	return "SaveDrawing"
}

// ExportHistory writes the prediction history to Path.
type ExportHistory struct {
	Path string
}

func NewExportHistory(path string) *ExportHistory {
	return &ExportHistory{Path: path}
}

func (c *ExportHistory) CommandName() string {
	return "ExportHistory"
}
