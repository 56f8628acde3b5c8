package history

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"digitpad-go/domain/prediction"
)

// Header is the first line of every export.
var Header = []string{"Time", "Digit", "Confidence"}

// Export writes a header line followed by one comma-separated line per
// record, in insertion order.
func (l *Ledger) Export(w io.Writer) error {
	return WriteRecords(w, l.records)
}

// ExportFile writes the export to path, creating parent directories.
func (l *Ledger) ExportFile(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}

	if err := l.Export(f); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close export file: %w", err)
	}
	return nil
}

// WriteRecords writes records in export format.
func WriteRecords(w io.Writer, records []prediction.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, r := range records {
		if err := cw.Write(Row(r)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush export: %w", err)
	}
	return nil
}

// Row formats a record as export columns.
func Row(r prediction.Record) []string {
	return []string{
		r.Time().Format(prediction.TimeLayout),
		strconv.Itoa(r.Digit()),
		strconv.FormatFloat(r.Confidence(), 'f', 2, 64),
	}
}
