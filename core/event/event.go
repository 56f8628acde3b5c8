// Package event defines all events that can be published by the application.
// Events represent state changes and are consumed by the presentation layer.
package event

import (
	"digitpad-go/core/state"
	"digitpad-go/domain/settings"
)

// Event is the base interface for all events.
// Events are published by the application layer and consumed by subscribers.
type Event interface {
	// EventName returns the name of the event for logging/debugging
	EventName() string
}

// Operation names carried by OperationFailed.
const (
	OpDraw       = "draw"
	OpPreprocess = "preprocess"
	OpPredict    = "predict"
	OpSave       = "save"
	OpExport     = "export"
	OpSettings   = "settings"
	OpInternal   = "internal"
)

// DrawingStateChanged is published when the drawing surface changes state.
type DrawingStateChanged struct {
	OldState state.DrawingState
	NewState state.DrawingState
}

func NewDrawingStateChanged(oldState, newState state.DrawingState) *DrawingStateChanged {
	return &DrawingStateChanged{
		OldState: oldState,
		NewState: newState,
	}
}

func (e *DrawingStateChanged) EventName() string {
	return "DrawingStateChanged"
}

// SettingsChanged is published after a setting was validated and applied.
// Settings is a snapshot; subscribers may keep it.
type SettingsChanged struct {
	Settings *settings.Settings
}

func NewSettingsChanged(s *settings.Settings) *SettingsChanged {
	return &SettingsChanged{Settings: s}
}

func (e *SettingsChanged) EventName() string {
	return "SettingsChanged"
}

// OperationFailed is published when a user operation fails.
// The application stays usable after this event.
type OperationFailed struct {
	Operation string
	Error     error
}

func NewOperationFailed(operation string, err error) *OperationFailed {
	return &OperationFailed{
		Operation: operation,
		Error:     err,
	}
}

func (e *OperationFailed) EventName() string {
	return "OperationFailed"
}
