package presentation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"digitpad-go/core/event"
)

func TestResultText(t *testing.T) {
	if got := resultText(7); got != "Predicted Digit: 7" {
		t.Errorf("resultText(7) = %q", got)
	}
	if got := confidenceText(97.126); got != "Confidence: 97.13%" {
		t.Errorf("confidenceText(97.126) = %q", got)
	}
}

func TestResultColor(t *testing.T) {
	tests := []struct {
		confidence float64
		want       interface{}
	}{
		{99.5, colorConfident},
		{80.01, colorConfident},
		{80, colorUncertain},
		{12, colorUncertain},
	}

	for _, tt := range tests {
		if got := resultColor(tt.confidence); got != tt.want {
			t.Errorf("resultColor(%v) = %v, want %v", tt.confidence, got, tt.want)
		}
	}
}

func TestHistoryCell(t *testing.T) {
	r := mustRecord(t, time.Date(2024, 3, 1, 14, 5, 9, 0, time.Local), 4, 88.5)

	want := []string{"14:05:09", "4", "88.50%", ""}
	for col, w := range want {
		if got := historyCell(r, col); got != w {
			t.Errorf("historyCell(col %d) = %q, want %q", col, got, w)
		}
	}
}

func TestFailureError(t *testing.T) {
	cause := errors.New("disk full")

	err := failureError(event.OpSave, cause)
	if !errors.Is(err, cause) {
		t.Errorf("failureError() does not wrap cause")
	}
	if !strings.HasPrefix(err.Error(), "Failed to save drawing") {
		t.Errorf("failureError() = %q", err)
	}

	if got := failureError("unknown", nil).Error(); got != "unknown failed" {
		t.Errorf("failureError(unknown) = %q", got)
	}
}
