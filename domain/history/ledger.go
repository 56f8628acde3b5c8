// Package history keeps the ordered, append-only list of predictions made in
// a session and exports it as delimited text.
package history

import (
	"context"

	"digitpad-go/domain/prediction"
)

// Ledger is the in-memory prediction history.
// It is not safe for concurrent use; the owning session serialises access.
type Ledger struct {
	records []prediction.Record
}

// NewLedger creates an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{}
}

// Append adds a record at the end. Insertion order is chronological order.
func (l *Ledger) Append(r prediction.Record) {
	l.records = append(l.records, r)
}

// Len returns the number of records.
func (l *Ledger) Len() int {
	return len(l.records)
}

// Records returns a copy of all records in insertion order.
func (l *Ledger) Records() []prediction.Record {
	out := make([]prediction.Record, len(l.records))
	copy(out, l.records)
	return out
}

// Archive mirrors records to durable storage beyond the session.
type Archive interface {
	// Save stores a single record.
	Save(ctx context.Context, r prediction.Record) error
}
