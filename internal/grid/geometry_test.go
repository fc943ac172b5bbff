package grid

import (
	"errors"
	"testing"
)

func TestCellRect_SingleCell(t *testing.T) {
	cfg := Config{
		Rows: 2, Cols: 2,
		GapH: 10, GapV: 10,
		MarginTop: 20, MarginBottom: 20, MarginLeft: 20, MarginRight: 20,
	}
	st := NewState(0, cfg)
	st, err := AssignText("w1", "B2", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	work := Rect{X: 100, Y: 50, Width: 1000, Height: 600}
	rect, err := CellRect("w1", st, work)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// cellWidth = (1000-20-20-10)/2 = 475, cellHeight = (600-20-20-10)/2 = 275
	// x = 100+20+1*(475+10) = 605, y = 50+20+1*(275+10) = 355
	want := Rect{X: 605, Y: 355, Width: 475, Height: 275}
	if rect != want {
		t.Fatalf("expected %+v, got %+v", want, rect)
	}
}

func TestCellRect_MultiCellSpanIncludesInternalGaps(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, GapH: 10, GapV: 10}
	st := NewState(0, cfg)
	st, err := Assign("w1", CellSpan{Row: 0, Col: 0, RowSpan: 1, ColSpan: 2}, st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	work := Rect{X: 0, Y: 0, Width: 410, Height: 210}
	rect, err := CellRect("w1", st, work)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// cellWidth = (410-10)/2 = 200; span width = 2*200 + 10 = 410
	if rect.Width != 410 {
		t.Fatalf("expected width 410 (two cells plus one gap), got %d", rect.Width)
	}
	// cellHeight = (210-10)/2 = 100
	if rect.Height != 100 {
		t.Fatalf("expected height 100, got %d", rect.Height)
	}
}

func TestCellRect_UnassignedWindow(t *testing.T) {
	st := NewState(0, DefaultConfig())
	_, err := CellRect("ghost", st, Rect{Width: 800, Height: 600})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
}

func TestSpanRect_InsufficientSpace(t *testing.T) {
	cfg := Config{Rows: 2, Cols: 2, MarginLeft: 50, MarginRight: 50}
	_, err := SpanRect(CellSpan{RowSpan: 1, ColSpan: 1}, cfg, Rect{Width: 90, Height: 90})
	if err == nil {
		t.Fatalf("expected error when margins consume the work area")
	}
}

func TestSpanRect_UniformCellSizeAcrossPositions(t *testing.T) {
	cfg := Config{Rows: 3, Cols: 3, GapH: 5, GapV: 5}
	work := Rect{Width: 905, Height: 605}

	var width, height int
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			rect, err := SpanRect(CellSpan{Row: row, Col: col, RowSpan: 1, ColSpan: 1}, cfg, work)
			if err != nil {
				t.Fatalf("unexpected error at %d,%d: %v", row, col, err)
			}
			if row == 0 && col == 0 {
				width, height = rect.Width, rect.Height
				continue
			}
			if rect.Width != width || rect.Height != height {
				t.Fatalf("cell %d,%d has size %dx%d, expected uniform %dx%d",
					row, col, rect.Width, rect.Height, width, height)
			}
		}
	}
}
