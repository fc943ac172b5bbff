package grid

import "time"

// Validate checks a span against the grid bounds and the existing
// assignments. excludeWindowID, when non-empty, keeps that window's own
// current span out of the overlap check so a window can be validated against
// a new position for itself.
func Validate(span CellSpan, st State, excludeWindowID string) error {
	cfg := st.Config
	if span.Row < 0 || span.Col < 0 || span.RowSpan < 1 || span.ColSpan < 1 ||
		span.Row+span.RowSpan > cfg.Rows || span.Col+span.ColSpan > cfg.Cols {
		return &BoundsError{Span: span, Rows: cfg.Rows, Cols: cfg.Cols}
	}
	for _, a := range st.Assignments {
		if a.WindowID == excludeWindowID {
			continue
		}
		if span.Overlaps(a.Span) {
			return &OverlapError{Span: span, WindowID: a.WindowID}
		}
	}
	return nil
}

// Assign places a window at the given span, replacing any prior assignment
// for the same window. The window's own current span is excluded from the
// overlap check so reassignment to an overlapping-with-itself position
// works. On failure the input state is returned unchanged.
func Assign(windowID string, span CellSpan, st State) (State, error) {
	if err := Validate(span, st, windowID); err != nil {
		return st, err
	}

	next := st
	next.Assignments = nil
	for _, a := range st.Assignments {
		if a.WindowID == windowID {
			continue
		}
		next.Assignments = append(next.Assignments, a)
	}
	next.Assignments = append(next.Assignments, Assignment{WindowID: windowID, Span: span})
	next.UpdatedAt = time.Now()
	return next, nil
}

// AssignText resolves position text through ParsePosition and assigns the
// resulting span.
func AssignText(windowID, text string, st State) (State, error) {
	span, err := ParsePosition(text)
	if err != nil {
		return st, err
	}
	return Assign(windowID, span, st)
}

// Remove drops a window's assignment. Removing an absent window is a no-op,
// not an error.
func Remove(windowID string, st State) State {
	found := false
	for _, a := range st.Assignments {
		if a.WindowID == windowID {
			found = true
			break
		}
	}
	if !found {
		return st
	}

	next := st
	next.Assignments = nil
	for _, a := range st.Assignments {
		if a.WindowID != windowID {
			next.Assignments = append(next.Assignments, a)
		}
	}
	next.UpdatedAt = time.Now()
	return next
}

// Swap exchanges the spans of two windows. The swap is atomic: if either
// window has no assignment it fails with a NotFoundError and the input
// state is returned unchanged.
func Swap(windowID1, windowID2 string, st State) (State, error) {
	if _, ok := st.SpanOf(windowID1); !ok {
		return st, &NotFoundError{WindowID: windowID1}
	}
	if _, ok := st.SpanOf(windowID2); !ok {
		return st, &NotFoundError{WindowID: windowID2}
	}

	next := st
	next.Assignments = st.copyAssignments()
	var first, second *Assignment
	for i := range next.Assignments {
		switch next.Assignments[i].WindowID {
		case windowID1:
			first = &next.Assignments[i]
		case windowID2:
			second = &next.Assignments[i]
		}
	}
	first.Span, second.Span = second.Span, first.Span
	next.UpdatedAt = time.Now()
	return next, nil
}

// FindAvailable scans candidate top-left positions in row-major order and
// returns the first span of the requested size that fits the grid without
// overlapping any assignment. The second return value is false when no such
// position exists, including when the requested size exceeds the grid
// outright.
func FindAvailable(rowSpan, colSpan int, st State) (CellSpan, bool) {
	if rowSpan < 1 || colSpan < 1 {
		return CellSpan{}, false
	}
	cfg := st.Config
	for row := 0; row+rowSpan <= cfg.Rows; row++ {
		for col := 0; col+colSpan <= cfg.Cols; col++ {
			candidate := CellSpan{Row: row, Col: col, RowSpan: rowSpan, ColSpan: colSpan}
			if Validate(candidate, st, "") == nil {
				return candidate, true
			}
		}
	}
	return CellSpan{}, false
}
