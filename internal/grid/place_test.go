package grid

import (
	"errors"
	"testing"
)

func testState(rows, cols int) State {
	cfg := DefaultConfig()
	cfg.Rows = rows
	cfg.Cols = cols
	return NewState(0, cfg)
}

func TestAssign_RejectsOverlap(t *testing.T) {
	st := testState(3, 3)

	st, err := AssignText("w1", "A1", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, err = AssignText("w2", "A1", st)
	if err == nil {
		t.Fatalf("expected overlap error")
	}
	var overlapErr *OverlapError
	if !errors.As(err, &overlapErr) {
		t.Fatalf("expected OverlapError, got %T: %v", err, err)
	}
	if overlapErr.WindowID != "w1" {
		t.Fatalf("expected conflict with w1, got %s", overlapErr.WindowID)
	}
	if _, ok := st.SpanOf("w2"); ok {
		t.Fatalf("w2 should not be assigned after a failed assign")
	}
}

func TestAssign_RejectsOutOfBounds(t *testing.T) {
	st := testState(2, 2)

	_, err := Assign("w1", CellSpan{Row: 0, Col: 1, RowSpan: 1, ColSpan: 2}, st)
	var boundsErr *BoundsError
	if !errors.As(err, &boundsErr) {
		t.Fatalf("expected BoundsError, got %T: %v", err, err)
	}

	_, err = AssignText("w1", "C1", st)
	if !errors.As(err, &boundsErr) {
		t.Fatalf("expected BoundsError for C1 on 2x2 grid, got %T: %v", err, err)
	}
}

func TestAssign_SelfExclusionOnReassignment(t *testing.T) {
	st := testState(3, 3)

	st, err := AssignText("w1", "A1", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	st, err = AssignText("w1", "B1", st)
	if err != nil {
		t.Fatalf("reassignment should exclude the window's own span: %v", err)
	}
	span, ok := st.SpanOf("w1")
	if !ok {
		t.Fatalf("w1 should still be assigned")
	}
	if FormatPosition(span) != "B1" {
		t.Fatalf("expected w1 at B1, got %s", FormatPosition(span))
	}
	if len(st.Assignments) != 1 {
		t.Fatalf("reassignment must replace, not duplicate: %d entries", len(st.Assignments))
	}
}

func TestAssign_DoesNotMutateInput(t *testing.T) {
	st := testState(3, 3)
	st, err := AssignText("w1", "A1", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	before := len(st.Assignments)
	next, err := AssignText("w2", "B2", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(st.Assignments) != before {
		t.Fatalf("input state mutated: had %d assignments, now %d", before, len(st.Assignments))
	}
	if len(next.Assignments) != before+1 {
		t.Fatalf("expected new state with %d assignments, got %d", before+1, len(next.Assignments))
	}
}

func TestRemove_AbsentWindowIsNoOp(t *testing.T) {
	st := testState(2, 2)
	st, err := AssignText("w1", "A1", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	next := Remove("missing", st)
	if len(next.Assignments) != 1 {
		t.Fatalf("removing an absent window must not change assignments")
	}

	next = Remove("w1", next)
	if len(next.Assignments) != 0 {
		t.Fatalf("expected empty assignments after remove, got %d", len(next.Assignments))
	}
}

func TestSwap_ExchangesSpans(t *testing.T) {
	st := testState(2, 2)
	st, _ = AssignText("w1", "A1", st)
	st, _ = AssignText("w2", "B2", st)

	next, err := Swap("w1", "w2", st)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	s1, _ := next.SpanOf("w1")
	s2, _ := next.SpanOf("w2")
	if FormatPosition(s1) != "B2" || FormatPosition(s2) != "A1" {
		t.Fatalf("expected w1=B2 w2=A1, got w1=%s w2=%s", FormatPosition(s1), FormatPosition(s2))
	}

	// Input state untouched.
	o1, _ := st.SpanOf("w1")
	if FormatPosition(o1) != "A1" {
		t.Fatalf("swap mutated input state: w1 moved to %s", FormatPosition(o1))
	}
}

func TestSwap_MissingSideFailsAtomically(t *testing.T) {
	st := testState(2, 2)
	st, _ = AssignText("w1", "A1", st)

	next, err := Swap("w1", "ghost", st)
	var notFound *NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected NotFoundError, got %T: %v", err, err)
	}
	if notFound.WindowID != "ghost" {
		t.Fatalf("expected ghost in error, got %s", notFound.WindowID)
	}
	span, _ := next.SpanOf("w1")
	if FormatPosition(span) != "A1" {
		t.Fatalf("failed swap must leave state unchanged, w1 at %s", FormatPosition(span))
	}
}

func TestFindAvailable_RowMajorOrder(t *testing.T) {
	st := testState(3, 3)

	span, ok := FindAvailable(1, 1, st)
	if !ok {
		t.Fatalf("expected a free cell on an empty grid")
	}
	if span != (CellSpan{Row: 0, Col: 0, RowSpan: 1, ColSpan: 1}) {
		t.Fatalf("expected first-fit at A1, got %+v", span)
	}

	st, _ = Assign("w1", span, st)
	span, ok = FindAvailable(1, 1, st)
	if !ok {
		t.Fatalf("expected a free cell")
	}
	if span != (CellSpan{Row: 0, Col: 1, RowSpan: 1, ColSpan: 1}) {
		t.Fatalf("expected next row-major cell B1, got %+v", span)
	}
}

func TestFindAvailable_MultiCellSkipsOccupied(t *testing.T) {
	st := testState(2, 3)
	st, _ = AssignText("w1", "A1", st)

	span, ok := FindAvailable(2, 2, st)
	if !ok {
		t.Fatalf("expected room for a 2x2 span")
	}
	want := CellSpan{Row: 0, Col: 1, RowSpan: 2, ColSpan: 2}
	if span != want {
		t.Fatalf("expected %+v, got %+v", want, span)
	}
}

func TestFindAvailable_ExhaustedGrid(t *testing.T) {
	st := testState(2, 2)
	for i, pos := range []string{"A1", "B1", "A2", "B2"} {
		var err error
		st, err = AssignText(windowName(i), pos, st)
		if err != nil {
			t.Fatalf("assign %s: %v", pos, err)
		}
	}

	if _, ok := FindAvailable(1, 1, st); ok {
		t.Fatalf("expected no free cell on a full grid")
	}
	if cells := AvailableCells(st); len(cells) != 0 {
		t.Fatalf("expected no available cells, got %v", cells)
	}
}

func TestFindAvailable_SpanLargerThanGrid(t *testing.T) {
	st := testState(2, 2)
	if _, ok := FindAvailable(3, 1, st); ok {
		t.Fatalf("span taller than the grid must not fit")
	}
	if _, ok := FindAvailable(0, 1, st); ok {
		t.Fatalf("zero span must not fit")
	}
}

func TestWithConfig_DropsAssignmentsThatNoLongerFit(t *testing.T) {
	st := testState(3, 3)
	st, _ = AssignText("w1", "A1", st)
	st, _ = AssignText("w2", "C3", st)

	cfg := st.Config
	cfg.Rows = 2
	cfg.Cols = 2
	next := st.WithConfig(cfg)

	if _, ok := next.SpanOf("w1"); !ok {
		t.Fatalf("w1 still fits a 2x2 grid and must be kept")
	}
	if _, ok := next.SpanOf("w2"); ok {
		t.Fatalf("w2 at C3 cannot fit a 2x2 grid and must be dropped")
	}
}

func windowName(i int) string {
	return string(rune('a'+i)) + "-win"
}
