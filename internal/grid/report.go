package grid

import (
	"strings"
)

// Cell identifies a single unit cell.
type Cell struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// Lookup resolves a window id to an optional label. Callers inject these so
// the engine has no notion of what a window displays.
type Lookup func(windowID string) (string, bool)

// AvailableCells enumerates every unit cell not covered by any assignment,
// in row-major order. A multi-cell assignment excludes all cells it covers.
func AvailableCells(st State) []Cell {
	var out []Cell
	for row := 0; row < st.Config.Rows; row++ {
		for col := 0; col < st.Config.Cols; col++ {
			covered := false
			for _, a := range st.Assignments {
				if a.Span.Contains(row, col) {
					covered = true
					break
				}
			}
			if !covered {
				out = append(out, Cell{Row: row, Col: col})
			}
		}
	}
	return out
}

// SummaryAssignment is one entry in a layout summary.
type SummaryAssignment struct {
	WindowID string   `json:"window_id"`
	Position string   `json:"position"`
	Kind     string   `json:"kind,omitempty"`
	Span     CellSpan `json:"span"`
}

// SummaryData is a read-only composite view of a grid state for external
// reporting.
type SummaryData struct {
	Config      Config              `json:"config"`
	Rows        int                 `json:"rows"`
	Cols        int                 `json:"cols"`
	Monitor     int                 `json:"monitor"`
	Desktop     int                 `json:"desktop"`
	Assignments []SummaryAssignment `json:"assignments"`
	Available   []Cell              `json:"available_cells"`
}

// Summary derives a layout summary from a grid state. kindLookup resolves
// window ids to canvas kinds and may be nil.
func Summary(st State, kindLookup Lookup) SummaryData {
	data := SummaryData{
		Config:    st.Config,
		Rows:      st.Config.Rows,
		Cols:      st.Config.Cols,
		Monitor:   st.Config.Monitor,
		Desktop:   st.Desktop,
		Available: AvailableCells(st),
	}
	for _, a := range st.Assignments {
		entry := SummaryAssignment{
			WindowID: a.WindowID,
			Position: FormatPosition(a.Span),
			Span:     a.Span,
		}
		if kindLookup != nil {
			if kind, ok := kindLookup(a.WindowID); ok {
				entry.Kind = kind
			}
		}
		data.Assignments = append(data.Assignments, entry)
	}
	return data
}

// cellLabelWidth is the interior width of each rendered cell.
const cellLabelWidth = 10

// Visualize renders the grid as fixed-width ASCII art. Occupied cells show a
// short label from nameLookup (falling back to a truncated window id); empty
// cells show their spreadsheet address in brackets.
func Visualize(st State, nameLookup Lookup) string {
	var b strings.Builder

	writeRule := func() {
		for col := 0; col < st.Config.Cols; col++ {
			b.WriteByte('+')
			b.WriteString(strings.Repeat("-", cellLabelWidth))
		}
		b.WriteString("+\n")
	}

	writeRule()
	for row := 0; row < st.Config.Rows; row++ {
		for col := 0; col < st.Config.Cols; col++ {
			b.WriteByte('|')
			b.WriteString(padCell(cellText(st, row, col, nameLookup)))
		}
		b.WriteString("|\n")
		writeRule()
	}
	return b.String()
}

// cellText picks what a single unit cell displays: the owning window's label
// in the span's top-left corner, blank for the rest of a covered span, and
// the bracketed address for a free cell.
func cellText(st State, row, col int, nameLookup Lookup) string {
	for _, a := range st.Assignments {
		if !a.Span.Contains(row, col) {
			continue
		}
		if row != a.Span.Row || col != a.Span.Col {
			return ""
		}
		label := a.WindowID
		if nameLookup != nil {
			if name, ok := nameLookup(a.WindowID); ok && name != "" {
				label = name
			}
		}
		return truncateLabel(label)
	}
	return "[" + FormatPosition(CellSpan{Row: row, Col: col, RowSpan: 1, ColSpan: 1}) + "]"
}

// Labels are cut and padded by runes so a multibyte title is never split
// mid-character.
func truncateLabel(label string) string {
	runes := []rune(label)
	if len(runes) > cellLabelWidth-2 {
		return string(runes[:cellLabelWidth-2])
	}
	return label
}

func padCell(text string) string {
	runes := []rune(text)
	if len(runes) > cellLabelWidth {
		runes = runes[:cellLabelWidth]
	}
	pad := cellLabelWidth - len(runes)
	left := pad / 2
	return strings.Repeat(" ", left) + string(runes) + strings.Repeat(" ", pad-left)
}
