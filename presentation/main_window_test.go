package presentation

import (
	"errors"
	"testing"
	"time"

	"digitpad-go/domain/prediction"

	"fyne.io/fyne/v2/test"
)

func TestHistoryTable(t *testing.T) {
	test.NewTempApp(t)
	table := NewHistoryTable()

	rows, cols := table.Length()
	if rows != 0 || cols != 3 {
		t.Errorf("Length() = %d, %d, want 0, 3", rows, cols)
	}

	table.SetRecords([]prediction.Record{
		mustRecord(t, time.Now(), 1, 50),
		mustRecord(t, time.Now(), 2, 60),
	})
	table.Append(mustRecord(t, time.Now(), 3, 70))

	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}
}

func TestNewMainWindow(t *testing.T) {
	a := test.NewTempApp(t)
	bridge, _ := newTestBridge(t)

	w := NewMainWindow(&MainWindowConfig{App: a, Bridge: bridge})
	defer w.Cleanup()

	if got := w.Window().Title(); got != "Digit Recognizer - stub" {
		t.Errorf("Title() = %q", got)
	}
	if w.sizeSlider.Value != 15 {
		t.Errorf("slider value = %v, want 15", w.sizeSlider.Value)
	}
	if w.sizeLabel.Text != "Brush Size: 15" {
		t.Errorf("size label = %q", w.sizeLabel.Text)
	}
	if w.resultLabel.Text != resultPlaceholder {
		t.Errorf("result label = %q", w.resultLabel.Text)
	}
}

func TestMainWindow_ShowAndResetResult(t *testing.T) {
	a := test.NewTempApp(t)
	w := NewMainWindow(&MainWindowConfig{App: a})
	defer w.Cleanup()

	w.showResult(mustRecord(t, time.Now(), 8, 93.456))
	if w.resultLabel.Text != "Predicted Digit: 8" {
		t.Errorf("result label = %q", w.resultLabel.Text)
	}
	if w.confidence.Text != "Confidence: 93.46%" {
		t.Errorf("confidence label = %q", w.confidence.Text)
	}
	if w.resultLabel.Color != colorConfident {
		t.Errorf("result color = %v, want confident", w.resultLabel.Color)
	}

	w.resetResult()
	if w.resultLabel.Text != resultPlaceholder || w.confidence.Text != "" {
		t.Errorf("after reset: %q / %q", w.resultLabel.Text, w.confidence.Text)
	}
}

func TestMainWindow_RecordPrediction(t *testing.T) {
	a := test.NewTempApp(t)
	bridge, _ := newTestBridge(t)
	w := NewMainWindow(&MainWindowConfig{App: a, Bridge: bridge})
	defer w.Cleanup()

	// Take the events away from the window so the table misses them.
	type made struct {
		record prediction.Record
		n      int
	}
	events := make(chan made, 4)
	bridge.SetCallbacks(&UICallbacks{
		OnPredictionMade: func(r prediction.Record, p []float64, n int) {
			events <- made{r, n}
		},
	})

	var last made
	for i := 0; i < 2; i++ {
		if err := bridge.Predict(); err != nil {
			t.Fatalf("Predict() error = %v", err)
		}
		select {
		case last = <-events:
		case <-time.After(2 * time.Second):
			t.Fatal("timeout waiting for prediction")
		}
	}
	if w.history.Len() != 0 {
		t.Fatalf("table Len() = %d, want 0 before catching up", w.history.Len())
	}

	w.recordPrediction(last.record, last.n)
	if got := w.history.Len(); got != 2 {
		t.Errorf("table Len() after reload = %d, want 2", got)
	}

	next := mustRecord(t, time.Now(), 5, 88)
	w.recordPrediction(next, 3)
	if got := w.history.Len(); got != 3 {
		t.Errorf("table Len() after append = %d, want 3", got)
	}
}

func TestMainWindow_ChosenPath(t *testing.T) {
	a := test.NewTempApp(t)
	w := NewMainWindow(&MainWindowConfig{App: a})
	defer w.Cleanup()

	if _, ok := w.chosenPath(nil, nil); ok {
		t.Error("cancelled dialog should not yield a path")
	}
	if _, ok := w.chosenPath(nil, errors.New("denied")); ok {
		t.Error("dialog error should not yield a path")
	}
}

func TestNewStartupErrorWindow(t *testing.T) {
	a := test.NewTempApp(t)

	w := NewStartupErrorWindow(a, "Failed to load the model", errors.New("model file not found"))
	if w.Title() != "Digit Recognizer - Error" {
		t.Errorf("Title() = %q", w.Title())
	}
}
