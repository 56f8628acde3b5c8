package presentation

import (
	"sync"

	"digitpad-go/domain/prediction"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// HistoryTable lists past predictions, oldest first.
type HistoryTable struct {
	widget.Table

	mu      sync.RWMutex
	records []prediction.Record
}

// NewHistoryTable creates an empty history table with a header row.
func NewHistoryTable() *HistoryTable {
	t := &HistoryTable{}
	t.Length = t.dimensions
	t.CreateCell = func() fyne.CanvasObject {
		return widget.NewLabel("00:00:00.00")
	}
	t.UpdateCell = t.updateCell
	t.ShowHeaderRow = true
	t.CreateHeader = func() fyne.CanvasObject {
		return widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	}
	t.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		if id.Col >= 0 && id.Col < len(historyColumns) {
			o.(*widget.Label).SetText(historyColumns[id.Col])
		}
	}
	t.ExtendBaseWidget(t)
	for col, width := range []float32{100, 60, 100} {
		t.SetColumnWidth(col, width)
	}
	return t
}

func (t *HistoryTable) dimensions() (int, int) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records), len(historyColumns)
}

func (t *HistoryTable) updateCell(id widget.TableCellID, o fyne.CanvasObject) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if id.Row < 0 || id.Row >= len(t.records) {
		return
	}
	o.(*widget.Label).SetText(historyCell(t.records[id.Row], id.Col))
}

// SetRecords replaces the listed records.
func (t *HistoryTable) SetRecords(records []prediction.Record) {
	t.mu.Lock()
	t.records = append([]prediction.Record(nil), records...)
	t.mu.Unlock()
	t.Refresh()
}

// Append adds one record and scrolls to it.
func (t *HistoryTable) Append(r prediction.Record) {
	t.mu.Lock()
	t.records = append(t.records, r)
	row := len(t.records) - 1
	t.mu.Unlock()
	t.Refresh()
	t.ScrollTo(widget.TableCellID{Row: row, Col: 0})
}

// Len returns the number of listed records.
func (t *HistoryTable) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.records)
}
