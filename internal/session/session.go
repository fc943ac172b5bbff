package session

import (
	"time"

	"github.com/canvastile/canvastile/internal/grid"
)

// CanvasInfo tracks one spawned canvas: the terminal window hosting it, what
// it displays, and how to reach it.
type CanvasInfo struct {
	WindowID   string    `json:"window_id"`
	Kind       string    `json:"kind"`
	Title      string    `json:"title,omitempty"`
	SocketPath string    `json:"socket_path,omitempty"`
	PID        int       `json:"pid,omitempty"`
	OpenedAt   time.Time `json:"opened_at"`
}

// Record is the full session state: the grid and the canvases placed on it.
// It is plain serializable data; all grid mutation goes through the pure
// functions in the grid package.
type Record struct {
	Desktop  int                   `json:"desktop"`
	Grid     grid.State            `json:"grid"`
	Canvases map[string]CanvasInfo `json:"canvases,omitempty"`
}

// NewRecord creates a session record with an empty grid of the given shape.
func NewRecord(desktop int, cfg grid.Config) *Record {
	return &Record{
		Desktop:  desktop,
		Grid:     grid.NewState(desktop, cfg),
		Canvases: make(map[string]CanvasInfo),
	}
}

// KindLookup adapts the canvas registry to the lookup shape the grid
// reporter expects.
func (r *Record) KindLookup() grid.Lookup {
	return func(windowID string) (string, bool) {
		info, ok := r.Canvases[windowID]
		if !ok {
			return "", false
		}
		return info.Kind, true
	}
}

// TitleLookup resolves window ids to display titles for visualization.
func (r *Record) TitleLookup() grid.Lookup {
	return func(windowID string) (string, bool) {
		info, ok := r.Canvases[windowID]
		if !ok || info.Title == "" {
			return "", false
		}
		return info.Title, true
	}
}
