package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/canvastile/canvastile/internal/grid"
)

// Controller is the manager surface the TUI drives.
type Controller interface {
	Status() (grid.SummaryData, string, error)
	Move(windowID, position string) (grid.Rect, error)
	Swap(windowID1, windowID2 string) error
}

var (
	cellStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			Width(12).
			Align(lipgloss.Center)
	cursorStyle = cellStyle.
			BorderForeground(lipgloss.Color("212")).
			Bold(true)
	grabbedStyle = cellStyle.
			BorderForeground(lipgloss.Color("120"))
	statusStyle = lipgloss.NewStyle().Faint(true)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
)

// model is the root bubbletea model: a cursor over the grid, with grab/drop
// relocation of canvases.
type model struct {
	ctrl    Controller
	summary grid.SummaryData

	cursor  grid.Cell
	grabbed string // window id picked up with enter, empty when none
	lastErr string
	done    bool
}

func newModel(ctrl Controller) (model, error) {
	m := model{ctrl: ctrl}
	if err := m.refresh(); err != nil {
		return model{}, err
	}
	return m, nil
}

func (m *model) refresh() error {
	summary, _, err := m.ctrl.Status()
	if err != nil {
		return err
	}
	m.summary = summary
	if m.cursor.Row >= summary.Rows {
		m.cursor.Row = summary.Rows - 1
	}
	if m.cursor.Col >= summary.Cols {
		m.cursor.Col = summary.Cols - 1
	}
	return nil
}

// windowAt returns the window id whose span covers a cell, if any.
func (m *model) windowAt(cell grid.Cell) (string, bool) {
	for _, a := range m.summary.Assignments {
		if a.Span.Contains(cell.Row, cell.Col) {
			return a.WindowID, true
		}
	}
	return "", false
}

func (m *model) spanOf(windowID string) (grid.CellSpan, bool) {
	for _, a := range m.summary.Assignments {
		if a.WindowID == windowID {
			return a.Span, true
		}
	}
	return grid.CellSpan{}, false
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch keyMsg.String() {
	case "q", "ctrl+c", "esc":
		m.done = true
		return m, tea.Quit

	case "up", "k":
		if m.cursor.Row > 0 {
			m.cursor.Row--
		}
	case "down", "j":
		if m.cursor.Row < m.summary.Rows-1 {
			m.cursor.Row++
		}
	case "left", "h":
		if m.cursor.Col > 0 {
			m.cursor.Col--
		}
	case "right", "l":
		if m.cursor.Col < m.summary.Cols-1 {
			m.cursor.Col++
		}

	case "enter", " ":
		m.lastErr = ""
		if m.grabbed == "" {
			if id, ok := m.windowAt(m.cursor); ok {
				m.grabbed = id
			}
			break
		}
		m.dropGrabbed()
	}

	return m, nil
}

// dropGrabbed places the grabbed window at the cursor: a swap when the
// target cell belongs to another window, a move otherwise. A move keeps the
// window's span size, with the cursor as the new top-left corner.
func (m *model) dropGrabbed() {
	span, ok := m.spanOf(m.grabbed)
	if !ok {
		span = grid.CellSpan{RowSpan: 1, ColSpan: 1}
	}
	target := grid.FormatPosition(grid.CellSpan{
		Row:     m.cursor.Row,
		Col:     m.cursor.Col,
		RowSpan: span.RowSpan,
		ColSpan: span.ColSpan,
	})

	var err error
	if other, ok := m.windowAt(m.cursor); ok && other != m.grabbed {
		err = m.ctrl.Swap(m.grabbed, other)
	} else {
		_, err = m.ctrl.Move(m.grabbed, target)
	}

	m.grabbed = ""
	if err != nil {
		m.lastErr = err.Error()
		return
	}
	if err := m.refresh(); err != nil {
		m.lastErr = err.Error()
	}
}

func (m model) View() string {
	if m.done {
		return ""
	}

	rows := make([]string, 0, m.summary.Rows)
	for row := 0; row < m.summary.Rows; row++ {
		cells := make([]string, 0, m.summary.Cols)
		for col := 0; col < m.summary.Cols; col++ {
			cells = append(cells, m.renderCell(grid.Cell{Row: row, Col: col}))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}

	out := lipgloss.JoinVertical(lipgloss.Left, rows...)
	out += "\n" + statusStyle.Render(m.statusLine())
	if m.lastErr != "" {
		out += "\n" + errorStyle.Render(m.lastErr)
	}
	return out
}

func (m *model) renderCell(cell grid.Cell) string {
	label := "[" + grid.FormatPosition(grid.CellSpan{
		Row: cell.Row, Col: cell.Col, RowSpan: 1, ColSpan: 1,
	}) + "]"
	occupied := false
	for _, a := range m.summary.Assignments {
		if a.Span.Contains(cell.Row, cell.Col) {
			occupied = true
			label = a.WindowID
			if a.Kind != "" {
				label = a.Kind
			}
			break
		}
	}

	style := cellStyle
	if occupied {
		if id, _ := m.windowAt(cell); id == m.grabbed && m.grabbed != "" {
			style = grabbedStyle
		}
	}
	if cell == m.cursor {
		style = cursorStyle
	}
	return style.Render(label)
}

func (m *model) statusLine() string {
	if m.grabbed != "" {
		return fmt.Sprintf("moving %s - enter drops it here, q quits", m.grabbed)
	}
	return "arrows move, enter grabs a canvas, q quits"
}

// Run starts the interactive grid editor.
func Run(ctrl Controller) error {
	m, err := newModel(ctrl)
	if err != nil {
		return err
	}
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
