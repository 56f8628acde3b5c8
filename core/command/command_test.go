package command

import "testing"

func TestCommand_Names(t *testing.T) {
	tests := []struct {
		cmd      Command
		expected string
	}{
		{NewPointerDown(1, 2), "PointerDown"},
		{NewPointerMove(3, 4), "PointerMove"},
		{&PointerUp{}, "PointerUp"},
		{&UndoSegment{}, "UndoSegment"},
		{&ClearCanvas{}, "ClearCanvas"},
		{&Predict{}, "Predict"},
		{NewSaveDrawing("out.png"), "SaveDrawing"},
		{NewExportHistory("history.csv"), "ExportHistory"},
		{NewSetBrushSize(20), "SetBrushSize"},
		{NewSetBrushColor("#FF0000"), "SetBrushColor"},
		{NewSetCanvasColor("#FFFFFF"), "SetCanvasColor"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			if got := tt.cmd.CommandName(); got != tt.expected {
				t.Errorf("CommandName() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestPointerCommands_Point(t *testing.T) {
	down := NewPointerDown(10, 20)
	if down.Point.X != 10 || down.Point.Y != 20 {
		t.Errorf("PointerDown point = %v, want (10, 20)", down.Point)
	}

	move := NewPointerMove(30, 40)
	if move.Point.X != 30 || move.Point.Y != 40 {
		t.Errorf("PointerMove point = %v, want (30, 40)", move.Point)
	}
}

func TestPathCommands_Path(t *testing.T) {
	if got := NewSaveDrawing("/tmp/d.png").Path; got != "/tmp/d.png" {
		t.Errorf("SaveDrawing.Path = %v", got)
	}
	if got := NewExportHistory("/tmp/h.csv").Path; got != "/tmp/h.csv" {
		t.Errorf("ExportHistory.Path = %v", got)
	}
}
