package history

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"digitpad-go/domain/prediction"
)

func mustRecord(t *testing.T, at time.Time, digit int, conf float64) prediction.Record {
	t.Helper()
	r, err := prediction.NewRecord(at, digit, conf)
	if err != nil {
		t.Fatalf("NewRecord() error = %v", err)
	}
	return r
}

func TestLedger_AppendPreservesOrder(t *testing.T) {
	l := NewLedger()
	base := time.Date(2024, 1, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		before := l.Len()
		l.Append(mustRecord(t, base.Add(time.Duration(i)*time.Second), i, float64(i*10)))
		if l.Len() != before+1 {
			t.Fatalf("Len() = %d after append, want %d", l.Len(), before+1)
		}
	}

	records := l.Records()
	for i := 1; i < len(records); i++ {
		if records[i].Time().Before(records[i-1].Time()) {
			t.Errorf("record %d is older than record %d", i, i-1)
		}
		if records[i].Digit() != i {
			t.Errorf("record %d digit = %d", i, records[i].Digit())
		}
	}
}

func TestLedger_RecordsIsCopy(t *testing.T) {
	l := NewLedger()
	l.Append(mustRecord(t, time.Now(), 1, 50))

	records := l.Records()
	records[0] = mustRecord(t, time.Now(), 9, 99)

	if got := l.Records()[0].Digit(); got != 1 {
		t.Errorf("ledger modified through Records(): digit = %d", got)
	}
}

func TestLedger_ExportEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := NewLedger().Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if got := buf.String(); got != "Time,Digit,Confidence\n" {
		t.Errorf("Export() = %q, want header only", got)
	}
}

func TestLedger_Export(t *testing.T) {
	l := NewLedger()
	l.Append(mustRecord(t, time.Date(2024, 1, 2, 9, 15, 30, 0, time.UTC), 3, 97.126))
	l.Append(mustRecord(t, time.Date(2024, 1, 2, 9, 16, 1, 0, time.UTC), 8, 41))

	var buf bytes.Buffer
	if err := l.Export(&buf); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := "Time,Digit,Confidence\n09:15:30,3,97.13\n09:16:01,8,41.00\n"
	if got := buf.String(); got != want {
		t.Errorf("Export() = %q, want %q", got, want)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestLedger_ExportWriterError(t *testing.T) {
	l := NewLedger()
	l.Append(mustRecord(t, time.Now(), 1, 1))

	if err := l.Export(failingWriter{}); err == nil {
		t.Error("Export() should report writer errors")
	}
}

func TestLedger_ExportFile(t *testing.T) {
	l := NewLedger()
	l.Append(mustRecord(t, time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC), 0, 12.5))

	path := filepath.Join(t.TempDir(), "nested", "history.csv")
	if err := l.ExportFile(path); err != nil {
		t.Fatalf("ExportFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	if string(data) != "Time,Digit,Confidence\n10:00:00,0,12.50\n" {
		t.Errorf("file content = %q", data)
	}
}

func TestLedger_ExportFileBadPath(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0644); err != nil {
		t.Fatal(err)
	}

	if err := NewLedger().ExportFile(filepath.Join(blocker, "history.csv")); err == nil {
		t.Error("ExportFile() under a regular file should fail")
	}
}
