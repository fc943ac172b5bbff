package canvas

import (
	"encoding/json"
	"fmt"
	"log"
	"os/exec"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/canvastile/canvastile/internal/config"
	"github.com/canvastile/canvastile/internal/grid"
	"github.com/canvastile/canvastile/internal/ipc"
	"github.com/canvastile/canvastile/internal/runtimepath"
	"github.com/canvastile/canvastile/internal/session"
)

// SpawnFunc launches a detached process from an argv and returns its pid.
type SpawnFunc func(argv []string) (int, error)

func execSpawn(argv []string) (int, error) {
	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to spawn %s: %w", argv[0], err)
	}
	pid := cmd.Process.Pid
	// Reap the terminal process when it exits so it never zombies.
	go func() { _ = cmd.Wait() }()
	return pid, nil
}

// Manager is the controller side of the canvas lifecycle: it spawns canvas
// terminal windows, places them on the grid, applies the resulting pixel
// rectangles through the window host, and relays IPC commands.
type Manager struct {
	cfg   *config.Config
	store *session.Store
	host  WindowHost
	spawn SpawnFunc

	mu    sync.Mutex
	hosts map[string]*ipc.Host // window id -> canvas socket host

	canvasSeq atomic.Uint64
}

// NewManager wires a manager from its collaborators. spawn may be nil to use
// the default exec-based spawner.
func NewManager(cfg *config.Config, store *session.Store, host WindowHost, spawn SpawnFunc) *Manager {
	if spawn == nil {
		spawn = execSpawn
	}
	return &Manager{
		cfg:   cfg,
		store: store,
		host:  host,
		spawn: spawn,
		hosts: make(map[string]*ipc.Host),
	}
}

// OpenResult reports where a canvas ended up.
type OpenResult struct {
	WindowID string
	Kind     string
	Title    string
	Position string
	Rect     grid.Rect
}

// Open spawns a canvas of the given kind and places it on the grid.
// positionText overrides the kind's configured position; when both are empty
// the first free span of the kind's size is used. title defaults to a
// generated unique title (it doubles as the window locator).
func (m *Manager) Open(kind, positionText, title string) (*OpenResult, error) {
	kindCfg, ok := m.cfg.Kinds[kind]
	if !ok {
		return nil, fmt.Errorf("unknown canvas kind %q; configured kinds: %v", kind, m.cfg.KindNames())
	}

	canvasID := fmt.Sprintf("cv-%d-%d", time.Now().Unix(), m.canvasSeq.Add(1))
	if title == "" {
		title = fmt.Sprintf("canvastile %s %s", kind, canvasID)
	}

	rec, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	span, err := m.resolveSpan(kindCfg, positionText, rec.Grid)
	if err != nil {
		return nil, err
	}

	socketPath, err := runtimepath.CanvasSocketPath(canvasID)
	if err != nil {
		return nil, err
	}
	ipcHost, err := ipc.NewHost(socketPath)
	if err != nil {
		return nil, err
	}

	command := fmt.Sprintf("%s --socket %s", kindCfg.Command, socketPath)
	argv, err := m.cfg.Terminal.SpawnCommand(title, command)
	if err != nil {
		ipcHost.Close()
		return nil, err
	}

	pid, err := m.spawn(argv)
	if err != nil {
		ipcHost.Close()
		return nil, err
	}

	readyTimeout := time.Duration(m.cfg.ReadyTimeoutSeconds) * time.Second
	if err := ipcHost.WaitReady(readyTimeout); err != nil {
		ipcHost.Close()
		return nil, fmt.Errorf("canvas %s: %w", kind, err)
	}

	windowID, err := m.host.FindWindowByTitle(title, readyTimeout)
	if err != nil {
		ipcHost.Close()
		return nil, err
	}

	var rect grid.Rect
	err = m.store.Update(func(rec *session.Record) error {
		st, err := grid.Assign(windowID, span, rec.Grid)
		if err != nil {
			return err
		}
		rec.Grid = st
		rec.Canvases[windowID] = session.CanvasInfo{
			WindowID:   windowID,
			Kind:       kind,
			Title:      title,
			SocketPath: socketPath,
			PID:        pid,
			OpenedAt:   time.Now(),
		}

		rect, err = m.applyRect(windowID, rec)
		return err
	})
	if err != nil {
		ipcHost.Close()
		return nil, err
	}

	if desktop := m.cfg.Desktop; desktop >= 0 {
		if err := m.host.SendToDesktop(windowID, desktop); err != nil {
			log.Printf("failed to move canvas %s to desktop %d: %v", windowID, desktop, err)
		}
	}

	m.mu.Lock()
	m.hosts[windowID] = ipcHost
	m.mu.Unlock()

	return &OpenResult{
		WindowID: windowID,
		Kind:     kind,
		Title:    title,
		Position: grid.FormatPosition(span),
		Rect:     rect,
	}, nil
}

// resolveSpan picks the span a new canvas should occupy: explicit position
// text, then the kind's configured position, then first-fit.
func (m *Manager) resolveSpan(kindCfg config.Kind, positionText string, st grid.State) (grid.CellSpan, error) {
	if positionText == "" {
		positionText = kindCfg.Position
	}
	if positionText != "" {
		span, err := grid.ParsePosition(positionText)
		if err != nil {
			return grid.CellSpan{}, err
		}
		if err := grid.Validate(span, st, ""); err != nil {
			return grid.CellSpan{}, err
		}
		return span, nil
	}

	rows, cols := kindCfg.SpanSize()
	span, ok := grid.FindAvailable(rows, cols, st)
	if !ok {
		return grid.CellSpan{}, fmt.Errorf("no free %dx%d span on the %dx%d grid",
			rows, cols, st.Config.Rows, st.Config.Cols)
	}
	return span, nil
}

// applyRect resolves a window's pixel rectangle and pushes it to the window
// host. Callers hold the record via store.Update.
func (m *Manager) applyRect(windowID string, rec *session.Record) (grid.Rect, error) {
	workArea, err := m.host.WorkArea(rec.Grid.Config.Monitor)
	if err != nil {
		return grid.Rect{}, err
	}
	rect, err := grid.CellRect(windowID, rec.Grid, workArea)
	if err != nil {
		return grid.Rect{}, err
	}
	return rect, m.host.MoveResize(windowID, rect)
}

// Update sends new content to a canvas.
func (m *Manager) Update(windowID string, payload json.RawMessage) error {
	ipcHost, err := m.ipcHost(windowID)
	if err != nil {
		return err
	}
	return ipcHost.Send(&ipc.Command{Type: ipc.CommandUpdate, Payload: payload})
}

// Ping checks that a canvas connection is still alive.
func (m *Manager) Ping(windowID string) error {
	ipcHost, err := m.ipcHost(windowID)
	if err != nil {
		return err
	}
	return ipcHost.Send(&ipc.Command{Type: ipc.CommandPing})
}

// Close tells a canvas to exit and releases its grid cell and session entry.
// The close command is best-effort; the bookkeeping happens regardless.
func (m *Manager) Close(windowID string) error {
	m.mu.Lock()
	ipcHost := m.hosts[windowID]
	delete(m.hosts, windowID)
	m.mu.Unlock()

	if ipcHost != nil {
		if err := ipcHost.Send(&ipc.Command{Type: ipc.CommandClose}); err != nil {
			log.Printf("failed to send close to canvas %s: %v", windowID, err)
		}
		ipcHost.Close()
	}

	return m.store.Update(func(rec *session.Record) error {
		rec.Grid = grid.Remove(windowID, rec.Grid)
		delete(rec.Canvases, windowID)
		return nil
	})
}

// List returns the canvases recorded in the session, oldest first.
func (m *Manager) List() ([]session.CanvasInfo, error) {
	rec, err := m.store.Load()
	if err != nil {
		return nil, err
	}
	out := make([]session.CanvasInfo, 0, len(rec.Canvases))
	for _, info := range rec.Canvases {
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OpenedAt.Equal(out[j].OpenedAt) {
			return out[i].WindowID < out[j].WindowID
		}
		return out[i].OpenedAt.Before(out[j].OpenedAt)
	})
	return out, nil
}

// Release frees a canvas's grid cells without closing its window. Releasing
// a window with no assignment is a no-op.
func (m *Manager) Release(windowID string) error {
	return m.store.Update(func(rec *session.Record) error {
		rec.Grid = grid.Remove(windowID, rec.Grid)
		return nil
	})
}

// Move reassigns a canvas to a new position and reapplies its rectangle.
func (m *Manager) Move(windowID, positionText string) (grid.Rect, error) {
	var rect grid.Rect
	err := m.store.Update(func(rec *session.Record) error {
		st, err := grid.AssignText(windowID, positionText, rec.Grid)
		if err != nil {
			return err
		}
		rec.Grid = st
		rect, err = m.applyRect(windowID, rec)
		return err
	})
	return rect, err
}

// Swap exchanges two canvases' positions and reapplies both rectangles.
func (m *Manager) Swap(windowID1, windowID2 string) error {
	return m.store.Update(func(rec *session.Record) error {
		st, err := grid.Swap(windowID1, windowID2, rec.Grid)
		if err != nil {
			return err
		}
		rec.Grid = st
		if _, err := m.applyRect(windowID1, rec); err != nil {
			return err
		}
		_, err = m.applyRect(windowID2, rec)
		return err
	})
}

// Events returns the event stream of a canvas, for callers that want to
// block on a selection.
func (m *Manager) Events(windowID string) (<-chan *ipc.Event, error) {
	ipcHost, err := m.ipcHost(windowID)
	if err != nil {
		return nil, err
	}
	return ipcHost.Events(), nil
}

// WaitSelection blocks until the canvas reports a selection, cancellation,
// or error. It returns the selection payload, or nil when the user
// cancelled.
func (m *Manager) WaitSelection(windowID string, timeout time.Duration) (json.RawMessage, error) {
	events, err := m.Events(windowID)
	if err != nil {
		return nil, err
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return nil, fmt.Errorf("canvas %s disconnected", windowID)
			}
			switch ev.Type {
			case ipc.EventSelected:
				return ev.Payload, nil
			case ipc.EventCancelled:
				return nil, nil
			case ipc.EventError:
				return nil, fmt.Errorf("canvas %s reported an error: %s", windowID, ev.Message)
			}
		case <-timer.C:
			return nil, fmt.Errorf("no selection from canvas %s within %s", windowID, timeout)
		}
	}
}

// Reconfigure rebuilds the grid around a new shape. Assignments that no
// longer fit or now overlap are dropped (their canvases stay open but lose
// their cell); surviving canvases are repositioned for the new geometry.
func (m *Manager) Reconfigure(cfg grid.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	return m.store.Update(func(rec *session.Record) error {
		rec.Grid = rec.Grid.WithConfig(cfg)
		for _, a := range rec.Grid.Assignments {
			if _, err := m.applyRect(a.WindowID, rec); err != nil {
				return err
			}
		}
		return nil
	})
}

// Status returns the layout summary and ASCII visualization for the current
// session.
func (m *Manager) Status() (grid.SummaryData, string, error) {
	rec, err := m.store.Load()
	if err != nil {
		return grid.SummaryData{}, "", err
	}
	summary := grid.Summary(rec.Grid, rec.KindLookup())
	viz := grid.Visualize(rec.Grid, rec.TitleLookup())
	return summary, viz, nil
}

func (m *Manager) ipcHost(windowID string) (*ipc.Host, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if h, ok := m.hosts[windowID]; ok {
		return h, nil
	}
	return nil, fmt.Errorf("canvas %s is not connected to this controller", windowID)
}
