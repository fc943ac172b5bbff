package grid

import (
	"errors"
	"testing"
)

func TestParsePosition_SpreadsheetSingleCellIsZeroBased(t *testing.T) {
	span, err := ParsePosition("A1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CellSpan{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1}
	if span != want {
		t.Fatalf("expected %+v, got %+v", want, span)
	}
}

func TestParsePosition_SpreadsheetRange(t *testing.T) {
	span, err := ParsePosition("a1:B2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CellSpan{Row: 0, Col: 0, RowSpan: 2, ColSpan: 2}
	if span != want {
		t.Fatalf("expected %+v, got %+v", want, span)
	}
}

func TestParsePosition_RangeCornersInAnyOrder(t *testing.T) {
	forward, err := ParsePosition("B1:A3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	reverse, err := ParsePosition("A3:B1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if forward != reverse {
		t.Fatalf("corner order should not matter: %+v vs %+v", forward, reverse)
	}
	want := CellSpan{Row: 0, Col: 0, RowSpan: 3, ColSpan: 2}
	if forward != want {
		t.Fatalf("expected %+v, got %+v", want, forward)
	}
}

func TestParsePosition_CoordinateStyle(t *testing.T) {
	span, err := ParsePosition("1, 2")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CellSpan{Row: 1, Col: 2, RowSpan: 1, ColSpan: 1}
	if span != want {
		t.Fatalf("expected %+v, got %+v", want, span)
	}
}

func TestParsePosition_CoordinateStyleWithSpan(t *testing.T) {
	span, err := ParsePosition("0,1:2x3")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := CellSpan{Row: 0, Col: 1, RowSpan: 2, ColSpan: 3}
	if span != want {
		t.Fatalf("expected %+v, got %+v", want, span)
	}
}

func TestParsePosition_DoubleLetterColumn(t *testing.T) {
	span, err := ParsePosition("AA5")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if span.Col != 26 {
		t.Fatalf("expected column 26 for AA, got %d", span.Col)
	}
	if span.Row != 4 {
		t.Fatalf("expected row 4 for AA5, got %d", span.Row)
	}
}

func TestParsePosition_Errors(t *testing.T) {
	inputs := []string{"", "  ", "1A", "A", "A0", "B-2", "1,", "x,y", "0,0:2", "0,0:ax2"}
	for _, input := range inputs {
		_, err := ParsePosition(input)
		if err == nil {
			t.Fatalf("expected error for %q", input)
		}
		var parseErr *ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("expected ParseError for %q, got %T", input, err)
		}
	}
}

func TestFormatPosition_SingleCell(t *testing.T) {
	got := FormatPosition(CellSpan{Row: 1, Col: 1, RowSpan: 1, ColSpan: 1})
	if got != "B2" {
		t.Fatalf("expected B2, got %s", got)
	}
}

func TestFormatPosition_Range(t *testing.T) {
	got := FormatPosition(CellSpan{Row: 0, Col: 0, RowSpan: 2, ColSpan: 2})
	if got != "A1:B2" {
		t.Fatalf("expected A1:B2, got %s", got)
	}
}

func TestFormatPosition_DoubleLetterColumn(t *testing.T) {
	got := FormatPosition(CellSpan{Row: 0, Col: 26, RowSpan: 1, ColSpan: 1})
	if got != "AA1" {
		t.Fatalf("expected AA1, got %s", got)
	}
}

func TestPositionRoundTrip(t *testing.T) {
	inputs := map[string]string{
		"A1":      "A1",
		"a1":      "A1",
		"b2:c4":   "B2:C4",
		"C4:B2":   "B2:C4",
		"AA1":     "AA1",
		"A1:AA10": "A1:AA10",
	}
	for input, want := range inputs {
		span, err := ParsePosition(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		if got := FormatPosition(span); got != want {
			t.Fatalf("round-trip of %q: expected %q, got %q", input, want, got)
		}
	}
}
