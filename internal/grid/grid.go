package grid

import (
	"fmt"
	"time"
)

// Rect represents a window position and size in pixels.
type Rect struct {
	X      int `json:"x"`
	Y      int `json:"y"`
	Width  int `json:"width"`
	Height int `json:"height"`
}

// CellSpan is a rectangular region of the grid: a zero-based top-left cell
// plus row/column extents. Spans are not validated at construction; bounds
// and overlap checks happen when a span is placed into a State.
type CellSpan struct {
	Row     int `json:"row"`
	Col     int `json:"col"`
	RowSpan int `json:"row_span"`
	ColSpan int `json:"col_span"`
}

// Overlaps reports whether two spans share at least one cell.
func (s CellSpan) Overlaps(o CellSpan) bool {
	return s.Row < o.Row+o.RowSpan && o.Row < s.Row+s.RowSpan &&
		s.Col < o.Col+o.ColSpan && o.Col < s.Col+s.ColSpan
}

// Contains reports whether the span covers the given unit cell.
func (s CellSpan) Contains(row, col int) bool {
	return row >= s.Row && row < s.Row+s.RowSpan &&
		col >= s.Col && col < s.Col+s.ColSpan
}

// Config is the fixed shape of a grid: dimensions, target monitor, and the
// pixel gaps/margins used when resolving cell geometry.
type Config struct {
	Rows         int `json:"rows" yaml:"rows"`
	Cols         int `json:"cols" yaml:"cols"`
	Monitor      int `json:"monitor" yaml:"monitor"`
	GapH         int `json:"gap_h" yaml:"gap_h"`
	GapV         int `json:"gap_v" yaml:"gap_v"`
	MarginTop    int `json:"margin_top" yaml:"margin_top"`
	MarginBottom int `json:"margin_bottom" yaml:"margin_bottom"`
	MarginLeft   int `json:"margin_left" yaml:"margin_left"`
	MarginRight  int `json:"margin_right" yaml:"margin_right"`
}

// DefaultConfig returns the grid shape used when the caller configures
// nothing: a 2x2 grid on the primary monitor with a small uniform gap.
func DefaultConfig() Config {
	return Config{
		Rows:         2,
		Cols:         2,
		Monitor:      0,
		GapH:         10,
		GapV:         10,
		MarginTop:    10,
		MarginBottom: 10,
		MarginLeft:   10,
		MarginRight:  10,
	}
}

// Validate checks that the configuration describes a usable grid.
func (c Config) Validate() error {
	if c.Rows < 1 || c.Cols < 1 {
		return fmt.Errorf("grid dimensions must be at least 1x1, got %dx%d", c.Rows, c.Cols)
	}
	if c.Monitor < 0 {
		return fmt.Errorf("monitor index must not be negative, got %d", c.Monitor)
	}
	if c.GapH < 0 || c.GapV < 0 {
		return fmt.Errorf("cell gaps must not be negative, got h=%d v=%d", c.GapH, c.GapV)
	}
	if c.MarginTop < 0 || c.MarginBottom < 0 || c.MarginLeft < 0 || c.MarginRight < 0 {
		return fmt.Errorf("margins must not be negative, got top=%d bottom=%d left=%d right=%d",
			c.MarginTop, c.MarginBottom, c.MarginLeft, c.MarginRight)
	}
	return nil
}

// Assignment binds one window identifier to one cell span.
type Assignment struct {
	WindowID string   `json:"window_id"`
	Span     CellSpan `json:"span"`
}

// State is an immutable snapshot of a grid: its configuration, the desktop
// it targets, and the current window assignments in insertion order. All
// mutating operations return a new State; callers never observe in-place
// mutation.
type State struct {
	Desktop     int          `json:"desktop"`
	Config      Config       `json:"config"`
	Assignments []Assignment `json:"assignments,omitempty"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// NewState creates an empty grid state for the given desktop and config.
// The config must already be validated.
func NewState(desktop int, cfg Config) State {
	return State{
		Desktop:   desktop,
		Config:    cfg,
		UpdatedAt: time.Now(),
	}
}

// SpanOf returns the span assigned to a window, if any.
func (st State) SpanOf(windowID string) (CellSpan, bool) {
	for _, a := range st.Assignments {
		if a.WindowID == windowID {
			return a.Span, true
		}
	}
	return CellSpan{}, false
}

// WithConfig returns a copy of the state rebuilt around a new configuration.
// Each existing assignment is re-validated independently against the new
// shape and dropped if it no longer fits or now overlaps a kept assignment.
func (st State) WithConfig(cfg Config) State {
	next := State{
		Desktop:   st.Desktop,
		Config:    cfg,
		UpdatedAt: time.Now(),
	}
	for _, a := range st.Assignments {
		if err := Validate(a.Span, next, ""); err != nil {
			continue
		}
		next.Assignments = append(next.Assignments, a)
	}
	return next
}

// copyAssignments returns a fresh slice so a derived State never aliases the
// input's backing array.
func (st State) copyAssignments() []Assignment {
	if len(st.Assignments) == 0 {
		return nil
	}
	out := make([]Assignment, len(st.Assignments))
	copy(out, st.Assignments)
	return out
}
