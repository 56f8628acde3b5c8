package event

import "digitpad-go/domain/prediction"

// PredictionMade is published after a prediction was appended to history.
type PredictionMade struct {
	Record        prediction.Record
	Probabilities []float64
	// HistoryLen is the ledger length including this record.
	HistoryLen int
}

func NewPredictionMade(r prediction.Record, probs []float64, historyLen int) *PredictionMade {
	return &PredictionMade{
		Record:        r,
		Probabilities: probs,
		HistoryLen:    historyLen,
	}
}

func (e *PredictionMade) EventName() string {
	return "PredictionMade"
}

// HistoryExported is published after the history was written to disk.
type HistoryExported struct {
	Path  string
	Count int
}

func NewHistoryExported(path string, count int) *HistoryExported {
	return &HistoryExported{
		Path:  path,
		Count: count,
	}
}

func (e *HistoryExported) EventName() string {
	return "HistoryExported"
}
