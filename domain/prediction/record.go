// Package prediction defines prediction records and how a classifier's
// probability vector is turned into one.
package prediction

import (
	"errors"
	"fmt"
	"time"
)

// NumClasses is the number of digit classes.
const NumClasses = 10

var (
	// ErrInvalidRecord is returned when a digit or confidence is out of range.
	ErrInvalidRecord = errors.New("invalid prediction record")

	// ErrInvalidProbabilities is returned for vectors that cannot be decided.
	ErrInvalidProbabilities = errors.New("invalid probability vector")
)

// Record is one logged outcome of a single inference call.
// Fields are unexported so a Record cannot be changed after creation.
type Record struct {
	time       time.Time
	digit      int
	confidence float64
}

// NewRecord validates and creates a record.
// digit must be in [0,9] and confidence (a percentage) in [0,100].
func NewRecord(at time.Time, digit int, confidence float64) (Record, error) {
	if digit < 0 || digit >= NumClasses {
		return Record{}, fmt.Errorf("%w: digit %d", ErrInvalidRecord, digit)
	}
	if confidence < 0 || confidence > 100 || confidence != confidence {
		return Record{}, fmt.Errorf("%w: confidence %v", ErrInvalidRecord, confidence)
	}
	return Record{time: at, digit: digit, confidence: confidence}, nil
}

// Time returns when the prediction was made.
func (r Record) Time() time.Time { return r.time }

// Digit returns the predicted digit.
func (r Record) Digit() int { return r.digit }

// Confidence returns the confidence as a percentage.
func (r Record) Confidence() float64 { return r.confidence }

// String formats the record for logs.
func (r Record) String() string {
	return fmt.Sprintf("%s digit=%d confidence=%.2f%%", r.time.Format(TimeLayout), r.digit, r.confidence)
}

// TimeLayout is the clock format used for display and export.
const TimeLayout = "15:04:05"
