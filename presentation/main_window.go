package presentation

import (
	"fmt"
	"image"
	"image/color"
	"log/slog"
	"sync"

	"digitpad-go/domain/drawing"
	"digitpad-go/domain/prediction"
	"digitpad-go/domain/settings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Window title and default size.
const (
	windowTitle  = "Digit Recognizer"
	windowWidth  = 800
	windowHeight = 600
)

var (
	imageExtensions   = []string{".png", ".jpg", ".jpeg", ".bmp", ".gif", ".tif", ".tiff"}
	historyExtensions = []string{".csv"}
)

// MainWindow is the main application window.
type MainWindow struct {
	window fyne.Window
	bridge *UIEventBridge
	logger *slog.Logger

	// Left panel
	pad            *DrawingPad
	sizeLabel      *widget.Label
	sizeSlider     *widget.Slider
	brushColorBtn  *widget.Button
	canvasColorBtn *widget.Button
	clearBtn       *widget.Button
	predictBtn     *widget.Button
	undoBtn        *widget.Button
	saveBtn        *widget.Button
	resultLabel    *canvas.Text
	confidence     *canvas.Text

	// Right panel
	history   *HistoryTable
	exportBtn *widget.Button

	cleanupOnce sync.Once
}

// MainWindowConfig holds configuration for MainWindow.
type MainWindowConfig struct {
	App    fyne.App
	Bridge *UIEventBridge
	Logger *slog.Logger
}

// NewMainWindow creates a new main window.
func NewMainWindow(cfg *MainWindowConfig) *MainWindow {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	w := &MainWindow{
		window: cfg.App.NewWindow(windowTitle),
		bridge: cfg.Bridge,
		logger: cfg.Logger,
	}

	w.init()
	w.setupEventCallbacks()
	w.loadState()

	w.window.SetOnClosed(func() {
		w.Cleanup()
		cfg.App.Quit()
	})

	return w
}

func (w *MainWindow) init() {
	w.pad = NewDrawingPad(drawing.DefaultWidth, drawing.DefaultHeight)
	if w.bridge != nil {
		w.pad.SetHandlers(
			func(x, y float32) { w.bridge.PointerDown(x, y) },
			func(x, y float32) { w.bridge.PointerMove(x, y) },
			func() { w.bridge.PointerUp() },
		)
	}

	split := container.NewHSplit(w.createDrawingPanel(), w.createHistoryPanel())
	split.SetOffset(0.55)

	w.window.SetContent(split)
	w.window.Resize(fyne.NewSize(windowWidth, windowHeight))
}

func (w *MainWindow) createDrawingPanel() fyne.CanvasObject {
	w.sizeLabel = widget.NewLabel("")
	w.sizeSlider = widget.NewSlider(settings.MinBrushSize, settings.MaxBrushSize)
	w.sizeSlider.Step = 1
	w.sizeSlider.OnChanged = func(v float64) {
		w.sizeLabel.SetText(brushSizeText(int(v)))
	}
	w.sizeSlider.OnChangeEnded = func(v float64) {
		w.bridge.SetBrushSize(int(v))
	}

	w.brushColorBtn = widget.NewButtonWithIcon("Brush Color", theme.ColorPaletteIcon(), w.chooseBrushColor)
	w.canvasColorBtn = widget.NewButtonWithIcon("Canvas Color", theme.ColorChromaticIcon(), w.chooseCanvasColor)

	w.clearBtn = widget.NewButtonWithIcon("Clear", theme.DeleteIcon(), func() { w.bridge.Clear() })
	w.predictBtn = widget.NewButtonWithIcon("Predict", theme.ConfirmIcon(), func() { w.bridge.Predict() })
	w.predictBtn.Importance = widget.HighImportance
	w.undoBtn = widget.NewButtonWithIcon("Undo", theme.ContentUndoIcon(), func() { w.bridge.Undo() })
	w.saveBtn = widget.NewButtonWithIcon("Save Drawing", theme.DocumentSaveIcon(), w.saveDrawing)

	w.resultLabel = canvas.NewText(resultPlaceholder, theme.Color(theme.ColorNameForeground))
	w.resultLabel.TextSize = 20
	w.resultLabel.TextStyle = fyne.TextStyle{Bold: true}
	w.resultLabel.Alignment = fyne.TextAlignCenter
	w.confidence = canvas.NewText("", theme.Color(theme.ColorNameForeground))
	w.confidence.Alignment = fyne.TextAlignCenter

	return container.NewVBox(
		container.NewCenter(w.pad),
		container.NewBorder(nil, nil, w.sizeLabel, nil, w.sizeSlider),
		container.NewGridWithColumns(2, w.brushColorBtn, w.canvasColorBtn),
		container.NewGridWithColumns(4, w.clearBtn, w.predictBtn, w.undoBtn, w.saveBtn),
		w.resultLabel,
		w.confidence,
	)
}

func (w *MainWindow) createHistoryPanel() fyne.CanvasObject {
	w.history = NewHistoryTable()
	w.exportBtn = widget.NewButtonWithIcon("Export History", theme.DownloadIcon(), w.exportHistory)

	title := widget.NewLabelWithStyle("Prediction History", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	return container.NewBorder(title, w.exportBtn, nil, nil, w.history)
}

// recordPrediction appends record to the table, or reloads the whole
// ledger when the table has fallen out of step with historyLen.
func (w *MainWindow) recordPrediction(record prediction.Record, historyLen int) {
	if historyLen == w.history.Len()+1 || w.bridge == nil {
		w.history.Append(record)
		return
	}
	w.logger.Warn("History table out of step, reloading",
		"table", w.history.Len(), "ledger", historyLen)
	w.history.SetRecords(w.bridge.History())
}

func (w *MainWindow) setupEventCallbacks() {
	if w.bridge == nil {
		return
	}

	// Callbacks arrive on the event bus goroutine.
	w.bridge.SetCallbacks(&UICallbacks{
		OnCanvasChanged: func(img image.Image, segments int) {
			fyne.Do(func() {
				w.pad.SetImage(img)
			})
		},
		OnCanvasCleared: func() {
			fyne.Do(w.resetResult)
		},
		OnPredictionMade: func(record prediction.Record, probabilities []float64, historyLen int) {
			fyne.Do(func() {
				w.showResult(record)
				w.recordPrediction(record, historyLen)
			})
		},
		OnDrawingSaved: func(path string) {
			w.logger.Info("Drawing saved", "path", path)
			fyne.Do(func() {
				dialog.ShowInformation("Success", "Drawing saved successfully!\n"+path, w.window)
			})
		},
		OnHistoryExported: func(path string, count int) {
			w.logger.Info("History exported", "path", path, "count", count)
			fyne.Do(func() {
				dialog.ShowInformation("Success",
					fmt.Sprintf("History exported successfully!\n%d predictions written to %s", count, path),
					w.window)
			})
		},
		OnSettingsChanged: func(s *settings.Settings) {
			fyne.Do(func() {
				w.applySettings(s)
			})
		},
		OnOperationFailed: func(operation string, err error) {
			fyne.Do(func() {
				dialog.ShowError(failureError(operation, err), w.window)
			})
		},
	})
}

// loadState shows the settings and history the session started with.
func (w *MainWindow) loadState() {
	if w.bridge == nil {
		w.applySettings(settings.Defaults())
		return
	}
	w.applySettings(w.bridge.Settings())
	w.history.SetRecords(w.bridge.History())
	if name := w.bridge.ModelName(); name != "" {
		w.window.SetTitle(windowTitle + " - " + name)
	}
}

func (w *MainWindow) applySettings(s *settings.Settings) {
	w.sizeSlider.SetValue(float64(s.BrushSize))
	w.sizeLabel.SetText(brushSizeText(s.BrushSize))
}

func (w *MainWindow) showResult(r prediction.Record) {
	c := resultColor(r.Confidence())
	w.resultLabel.Text = resultText(r.Digit())
	w.resultLabel.Color = c
	w.resultLabel.Refresh()
	w.confidence.Text = confidenceText(r.Confidence())
	w.confidence.Color = c
	w.confidence.Refresh()
}

func (w *MainWindow) resetResult() {
	w.resultLabel.Text = resultPlaceholder
	w.resultLabel.Color = theme.Color(theme.ColorNameForeground)
	w.resultLabel.Refresh()
	w.confidence.Text = ""
	w.confidence.Refresh()
}

func (w *MainWindow) chooseBrushColor() {
	w.chooseColor("Brush Color", w.bridge.Settings().BrushRGBA(), func(c color.Color) {
		w.bridge.SetBrushColor(c)
	})
}

func (w *MainWindow) chooseCanvasColor() {
	w.chooseColor("Canvas Color", w.bridge.Settings().CanvasRGBA(), func(c color.Color) {
		w.bridge.SetCanvasColor(c)
	})
}

func (w *MainWindow) chooseColor(title string, current color.Color, apply func(color.Color)) {
	picker := dialog.NewColorPicker(title, "Choose "+title, func(c color.Color) {
		if c != nil {
			apply(c)
		}
	}, w.window)
	picker.Advanced = true
	picker.SetColor(current)
	picker.Show()
}

func (w *MainWindow) saveDrawing() {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		path, ok := w.chosenPath(uc, err)
		if ok {
			w.bridge.SaveDrawing(path)
		}
	}, w.window)
	d.SetFileName("digit.png")
	d.SetFilter(storage.NewExtensionFileFilter(imageExtensions))
	d.Show()
}

func (w *MainWindow) exportHistory() {
	d := dialog.NewFileSave(func(uc fyne.URIWriteCloser, err error) {
		path, ok := w.chosenPath(uc, err)
		if ok {
			w.bridge.ExportHistory(path)
		}
	}, w.window)
	d.SetFileName("prediction_history.csv")
	d.SetFilter(storage.NewExtensionFileFilter(historyExtensions))
	d.Show()
}

// chosenPath closes the writer the save dialog opened and returns its path.
// The session writes the file itself.
func (w *MainWindow) chosenPath(uc fyne.URIWriteCloser, err error) (string, bool) {
	if err != nil {
		dialog.ShowError(err, w.window)
		return "", false
	}
	if uc == nil {
		return "", false
	}
	path := uc.URI().Path()
	if cerr := uc.Close(); cerr != nil {
		w.logger.Warn("Failed to close save target", "path", path, "error", cerr)
	}
	return path, true
}

// Show displays the window.
func (w *MainWindow) Show() {
	w.window.Show()
}

// Window returns the underlying Fyne window.
func (w *MainWindow) Window() fyne.Window {
	return w.window
}

// Cleanup detaches the window from the event stream.
func (w *MainWindow) Cleanup() {
	w.cleanupOnce.Do(func() {
		if w.bridge != nil {
			w.bridge.SetCallbacks(nil)
		}
		w.pad.SetHandlers(nil, nil, nil)
		w.logger.Info("Main window cleaned up")
	})
}

func brushSizeText(size int) string {
	return fmt.Sprintf("Brush Size: %d", size)
}
