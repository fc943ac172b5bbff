package grid

import "fmt"

// ParseError reports malformed position text.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("invalid position %q: %s", e.Input, e.Reason)
}

// BoundsError reports a span that falls outside the grid dimensions.
type BoundsError struct {
	Span CellSpan
	Rows int
	Cols int
}

func (e *BoundsError) Error() string {
	return fmt.Sprintf("span %s does not fit a %dx%d grid",
		FormatPosition(e.Span), e.Rows, e.Cols)
}

// OverlapError reports a span that collides with an existing assignment.
type OverlapError struct {
	Span     CellSpan
	WindowID string
}

func (e *OverlapError) Error() string {
	return fmt.Sprintf("span %s overlaps window %s", FormatPosition(e.Span), e.WindowID)
}

// NotFoundError reports an operation on a window with no assignment.
type NotFoundError struct {
	WindowID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("window %s has no grid assignment", e.WindowID)
}
