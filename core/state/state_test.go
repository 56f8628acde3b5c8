package state

import (
	"errors"
	"testing"
)

func TestDrawingState_String(t *testing.T) {
	tests := []struct {
		state    DrawingState
		expected string
	}{
		{StateIdle, "Idle"},
		{StateDrawing, "Drawing"},
		{DrawingState(99), "Unknown(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.state.String(); got != tt.expected {
				t.Errorf("DrawingState.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestInput_String(t *testing.T) {
	tests := []struct {
		input    Input
		expected string
	}{
		{InputPointerDown, "PointerDown"},
		{InputPointerMove, "PointerMove"},
		{InputPointerUp, "PointerUp"},
		{InputClear, "Clear"},
		{Input(42), "Unknown(42)"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.input.String(); got != tt.expected {
				t.Errorf("Input.String() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestDrawingState_Next(t *testing.T) {
	tests := []struct {
		name    string
		from    DrawingState
		input   Input
		want    DrawingState
		wantErr bool
	}{
		{"Idle -> down", StateIdle, InputPointerDown, StateDrawing, false},
		{"Idle -> up", StateIdle, InputPointerUp, StateIdle, false},
		{"Idle -> clear", StateIdle, InputClear, StateIdle, false},
		{"Idle -> move (invalid)", StateIdle, InputPointerMove, StateIdle, true},

		{"Drawing -> move", StateDrawing, InputPointerMove, StateDrawing, false},
		{"Drawing -> up", StateDrawing, InputPointerUp, StateIdle, false},
		{"Drawing -> down", StateDrawing, InputPointerDown, StateDrawing, false},
		{"Drawing -> clear", StateDrawing, InputClear, StateIdle, false},

		{"Unknown -> down (invalid)", DrawingState(7), InputPointerDown, DrawingState(7), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.from.Next(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Next() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("Next() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDrawingState_NextReturnsTransitionError(t *testing.T) {
	_, err := StateIdle.Next(InputPointerMove)

	var te *TransitionError
	if !errors.As(err, &te) {
		t.Fatalf("error type = %T, want *TransitionError", err)
	}
	if te.From != StateIdle || te.Input != InputPointerMove {
		t.Errorf("TransitionError = %+v", te)
	}
}

func TestTransitionError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *TransitionError
		expected string
	}{
		{
			"with reason",
			NewTransitionError(StateIdle, InputPointerMove, "not drawing"),
			"invalid input PointerMove in state Idle: not drawing",
		},
		{
			"without reason",
			NewTransitionError(StateIdle, InputPointerMove, ""),
			"invalid input PointerMove in state Idle",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.expected {
				t.Errorf("Error() = %v, want %v", got, tt.expected)
			}
		})
	}
}
