// Package state defines the drawing surface state machine.
package state

import "fmt"

// DrawingState represents the state of the drawing surface.
type DrawingState int

const (
	// StateIdle means no pointer button is held over the surface.
	StateIdle DrawingState = iota
	// StateDrawing means a drag is in progress and moves produce segments.
	StateDrawing
)

// String returns the string representation of the state.
func (s DrawingState) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateDrawing:
		return "Drawing"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Input is a pointer or surface action that may change the drawing state.
type Input int

const (
	// InputPointerDown starts a drag at the pointer position.
	InputPointerDown Input = iota
	// InputPointerMove extends the current drag.
	InputPointerMove
	// InputPointerUp ends the current drag.
	InputPointerUp
	// InputClear discards every segment.
	InputClear
)

// String returns the string representation of the input.
func (i Input) String() string {
	switch i {
	case InputPointerDown:
		return "PointerDown"
	case InputPointerMove:
		return "PointerMove"
	case InputPointerUp:
		return "PointerUp"
	case InputClear:
		return "Clear"
	default:
		return fmt.Sprintf("Unknown(%d)", i)
	}
}

// transitions maps (state, input) to the resulting state.
// A missing entry means the input is not accepted in that state.
var transitions = map[DrawingState]map[Input]DrawingState{
	StateIdle: {
		InputPointerDown: StateDrawing,
		InputPointerUp:   StateIdle,
		InputClear:       StateIdle,
	},
	StateDrawing: {
		InputPointerDown: StateDrawing, // restart from the new coordinate
		InputPointerMove: StateDrawing,
		InputPointerUp:   StateIdle,
		InputClear:       StateIdle,
	},
}

// Next returns the state reached by applying input to s.
func (s DrawingState) Next(input Input) (DrawingState, error) {
	allowed, ok := transitions[s]
	if !ok {
		return s, NewTransitionError(s, input, "unknown state")
	}
	next, ok := allowed[input]
	if !ok {
		return s, NewTransitionError(s, input, "")
	}
	return next, nil
}

// TransitionError represents an input that is not valid in the current state.
type TransitionError struct {
	From   DrawingState
	Input  Input
	Reason string
}

func (e *TransitionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid input %s in state %s: %s", e.Input, e.From, e.Reason)
	}
	return fmt.Sprintf("invalid input %s in state %s", e.Input, e.From)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(from DrawingState, input Input, reason string) *TransitionError {
	return &TransitionError{From: from, Input: input, Reason: reason}
}
