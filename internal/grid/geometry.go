package grid

import "fmt"

// CellRect resolves a window's assignment to an absolute pixel rectangle
// within the monitor work area. Cell size always divides the full work area
// by the grid dimensions, so every unit cell is the same size regardless of
// which window occupies it; a multi-cell span is span x cell size plus the
// gaps it swallows internally.
func CellRect(windowID string, st State, workArea Rect) (Rect, error) {
	span, ok := st.SpanOf(windowID)
	if !ok {
		return Rect{}, &NotFoundError{WindowID: windowID}
	}
	return SpanRect(span, st.Config, workArea)
}

// SpanRect computes the pixel rectangle for an arbitrary span. Exposed
// separately so previews can resolve geometry for spans that are not yet
// assigned.
func SpanRect(span CellSpan, cfg Config, workArea Rect) (Rect, error) {
	cellWidth := (workArea.Width - cfg.MarginLeft - cfg.MarginRight - (cfg.Cols-1)*cfg.GapH) / cfg.Cols
	cellHeight := (workArea.Height - cfg.MarginTop - cfg.MarginBottom - (cfg.Rows-1)*cfg.GapV) / cfg.Rows

	if cellWidth <= 0 || cellHeight <= 0 {
		return Rect{}, fmt.Errorf(
			"insufficient space for %dx%d grid in %dx%d work area (cell=%dx%d)",
			cfg.Rows, cfg.Cols, workArea.Width, workArea.Height, cellWidth, cellHeight,
		)
	}

	return Rect{
		X:      workArea.X + cfg.MarginLeft + span.Col*(cellWidth+cfg.GapH),
		Y:      workArea.Y + cfg.MarginTop + span.Row*(cellHeight+cfg.GapV),
		Width:  span.ColSpan*cellWidth + (span.ColSpan-1)*cfg.GapH,
		Height: span.RowSpan*cellHeight + (span.RowSpan-1)*cfg.GapV,
	}, nil
}
