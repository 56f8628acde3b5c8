// Package presentation provides the UI layer with event bridging to the application layer.
package presentation

import (
	"image"
	"image/color"
	"log/slog"
	"sync"

	"digitpad-go/application"
	"digitpad-go/core/command"
	"digitpad-go/core/event"
	"digitpad-go/core/eventbus"
	"digitpad-go/core/state"
	"digitpad-go/domain/prediction"
	"digitpad-go/domain/settings"
)

// UIEventBridge bridges UI events to the application layer and routes events back to UI.
// It provides a clean separation between UI and business logic.
type UIEventBridge struct {
	coordinator *application.Coordinator
	eventBus    eventbus.EventBus
	logger      *slog.Logger

	// UI callbacks - set by UI components
	callbacks   *UICallbacks
	callbacksMu sync.RWMutex

	subscriptionID string
}

// UICallbacks contains callbacks for UI updates. They are invoked on the
// event bus goroutine; widget updates must be wrapped in fyne.Do.
type UICallbacks struct {
	// Canvas
	OnCanvasChanged       func(img image.Image, segments int)
	OnCanvasCleared       func()
	OnDrawingStateChanged func(oldState, newState state.DrawingState)

	// Prediction and history
	OnPredictionMade  func(record prediction.Record, probabilities []float64, historyLen int)
	OnHistoryExported func(path string, count int)
	OnDrawingSaved    func(path string)

	// Settings
	OnSettingsChanged func(s *settings.Settings)

	// Errors
	OnOperationFailed func(operation string, err error)
}

// BridgeConfig holds configuration for UIEventBridge.
type BridgeConfig struct {
	Coordinator *application.Coordinator
	EventBus    eventbus.EventBus
	Logger      *slog.Logger
}

// NewUIEventBridge creates a new UI event bridge.
func NewUIEventBridge(cfg *BridgeConfig) *UIEventBridge {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	b := &UIEventBridge{
		coordinator: cfg.Coordinator,
		eventBus:    cfg.EventBus,
		logger:      cfg.Logger,
		callbacks:   &UICallbacks{},
	}

	if b.eventBus != nil {
		b.subscriptionID = b.eventBus.Subscribe(b.handleEvent)
	}

	return b
}

// SetCallbacks sets the UI callbacks.
func (b *UIEventBridge) SetCallbacks(callbacks *UICallbacks) {
	b.callbacksMu.Lock()
	defer b.callbacksMu.Unlock()
	b.callbacks = callbacks
}

// Close unsubscribes from the event bus.
func (b *UIEventBridge) Close() {
	if b.eventBus != nil && b.subscriptionID != "" {
		b.eventBus.Unsubscribe(b.subscriptionID)
	}
}

// Command dispatching methods

func (b *UIEventBridge) dispatch(cmd command.Command) error {
	err := b.coordinator.Dispatch(cmd)
	if err != nil {
		b.logger.Warn("Command dispatch failed", "command", cmd.CommandName(), "error", err)
	}
	return err
}

// PointerDown starts a stroke at canvas coordinates (x, y).
func (b *UIEventBridge) PointerDown(x, y float32) error {
	return b.dispatch(command.NewPointerDown(float64(x), float64(y)))
}

// PointerMove extends the current stroke to (x, y).
func (b *UIEventBridge) PointerMove(x, y float32) error {
	return b.dispatch(command.NewPointerMove(float64(x), float64(y)))
}

// PointerUp ends the current stroke.
func (b *UIEventBridge) PointerUp() error {
	return b.dispatch(&command.PointerUp{})
}

// Undo removes the most recent segment.
func (b *UIEventBridge) Undo() error {
	return b.dispatch(&command.UndoSegment{})
}

// Clear wipes the canvas. History is kept.
func (b *UIEventBridge) Clear() error {
	return b.dispatch(&command.ClearCanvas{})
}

// Predict classifies the current drawing.
func (b *UIEventBridge) Predict() error {
	return b.dispatch(&command.Predict{})
}

// SaveDrawing writes the canvas to path. An empty path uses the default
// save directory.
func (b *UIEventBridge) SaveDrawing(path string) error {
	return b.dispatch(command.NewSaveDrawing(path))
}

// ExportHistory writes the prediction history as CSV to path.
func (b *UIEventBridge) ExportHistory(path string) error {
	return b.dispatch(command.NewExportHistory(path))
}

// SetBrushSize changes the brush size.
func (b *UIEventBridge) SetBrushSize(size int) error {
	return b.dispatch(command.NewSetBrushSize(size))
}

// SetBrushColor changes the brush color.
func (b *UIEventBridge) SetBrushColor(c color.Color) error {
	return b.dispatch(command.NewSetBrushColor(settings.FormatColor(c)))
}

// SetCanvasColor changes the canvas background color.
func (b *UIEventBridge) SetCanvasColor(c color.Color) error {
	return b.dispatch(command.NewSetCanvasColor(settings.FormatColor(c)))
}

// Query methods

// Settings returns the current settings.
func (b *UIEventBridge) Settings() *settings.Settings {
	return b.coordinator.Session().Settings()
}

// History returns the predictions made so far, oldest first.
func (b *UIEventBridge) History() []prediction.Record {
	return b.coordinator.Session().History()
}

// ModelName returns the name of the loaded classifier.
func (b *UIEventBridge) ModelName() string {
	return b.coordinator.Session().ClassifierName()
}

// Event handling

func (b *UIEventBridge) handleEvent(e event.Event) {
	b.callbacksMu.RLock()
	callbacks := b.callbacks
	b.callbacksMu.RUnlock()

	if callbacks == nil {
		return
	}

	switch evt := e.(type) {
	case *event.CanvasChanged:
		if callbacks.OnCanvasChanged != nil {
			callbacks.OnCanvasChanged(evt.Image, evt.Segments)
		}

	case *event.CanvasCleared:
		if callbacks.OnCanvasCleared != nil {
			callbacks.OnCanvasCleared()
		}

	case *event.DrawingStateChanged:
		if callbacks.OnDrawingStateChanged != nil {
			callbacks.OnDrawingStateChanged(evt.OldState, evt.NewState)
		}

	case *event.PredictionMade:
		if callbacks.OnPredictionMade != nil {
			callbacks.OnPredictionMade(evt.Record, evt.Probabilities, evt.HistoryLen)
		}

	case *event.HistoryExported:
		if callbacks.OnHistoryExported != nil {
			callbacks.OnHistoryExported(evt.Path, evt.Count)
		}

	case *event.DrawingSaved:
		if callbacks.OnDrawingSaved != nil {
			callbacks.OnDrawingSaved(evt.Path)
		}

	case *event.SettingsChanged:
		if callbacks.OnSettingsChanged != nil {
			callbacks.OnSettingsChanged(evt.Settings)
		}

	case *event.OperationFailed:
		if callbacks.OnOperationFailed != nil {
			callbacks.OnOperationFailed(evt.Operation, evt.Error)
		}
	}
}
