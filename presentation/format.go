package presentation

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"

	"digitpad-go/core/event"
	"digitpad-go/domain/prediction"
)

// highConfidence is the percentage above which a result is shown in green.
const highConfidence = 80.0

var (
	colorConfident = color.NRGBA{R: 0x2e, G: 0x7d, B: 0x32, A: 0xff}
	colorUncertain = color.NRGBA{R: 0xef, G: 0x6c, B: 0x00, A: 0xff}
)

const resultPlaceholder = "Draw a digit and click Predict"

// failureMessages are the user-facing summaries per failed operation.
var failureMessages = map[string]string{
	event.OpDraw:       "Drawing failed",
	event.OpPreprocess: "Failed to process the image",
	event.OpPredict:    "Failed to make prediction",
	event.OpSave:       "Failed to save drawing",
	event.OpExport:     "Failed to export history",
	event.OpSettings:   "Failed to apply settings",
	event.OpInternal:   "Unexpected error, check the logs for details",
}

// failureError wraps err with the summary for op.
func failureError(op string, err error) error {
	msg, ok := failureMessages[op]
	if !ok {
		msg = op + " failed"
	}
	if err == nil {
		return errors.New(msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}

func resultText(digit int) string {
	return fmt.Sprintf("Predicted Digit: %d", digit)
}

func confidenceText(confidence float64) string {
	return fmt.Sprintf("Confidence: %.2f%%", confidence)
}

func resultColor(confidence float64) color.Color {
	if confidence > highConfidence {
		return colorConfident
	}
	return colorUncertain
}

// historyColumns are the history table headers.
var historyColumns = []string{"Time", "Digit", "Confidence"}

// historyCell returns the text for column col of r.
func historyCell(r prediction.Record, col int) string {
	switch col {
	case 0:
		return r.Time().Format(prediction.TimeLayout)
	case 1:
		return strconv.Itoa(r.Digit())
	case 2:
		return fmt.Sprintf("%.2f%%", r.Confidence())
	}
	return ""
}
