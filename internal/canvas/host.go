package canvas

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/canvastile/canvastile/internal/grid"
	"github.com/canvastile/canvastile/internal/x11"
)

// WindowHost is the narrow window-system surface the manager needs. The X11
// implementation lives below; tests substitute a fake so they run without a
// display.
type WindowHost interface {
	// WorkArea returns the usable pixel region of a monitor.
	WorkArea(monitorIndex int) (grid.Rect, error)
	// MoveResize applies a computed rectangle to a window.
	MoveResize(windowID string, rect grid.Rect) error
	// SendToDesktop moves a window to a virtual desktop.
	SendToDesktop(windowID string, desktop int) error
	// CurrentDesktop returns the active virtual desktop.
	CurrentDesktop() (int, error)
	// FindWindowByTitle locates a window by its exact title, polling until
	// the window appears or the timeout elapses.
	FindWindowByTitle(title string, timeout time.Duration) (string, error)
}

// X11Host adapts an x11.Connection to the WindowHost interface, translating
// between opaque string window ids and X window handles.
type X11Host struct {
	Conn *x11.Connection
}

func (h *X11Host) WorkArea(monitorIndex int) (grid.Rect, error) {
	return h.Conn.WorkArea(monitorIndex)
}

func (h *X11Host) MoveResize(windowID string, rect grid.Rect) error {
	win, err := x11.ParseWindowID(windowID)
	if err != nil {
		return err
	}
	return h.Conn.MoveResizeWindow(win, rect)
}

func (h *X11Host) SendToDesktop(windowID string, desktop int) error {
	win, err := x11.ParseWindowID(windowID)
	if err != nil {
		return err
	}
	return h.Conn.SetWindowDesktop(win, desktop)
}

func (h *X11Host) CurrentDesktop() (int, error) {
	return h.Conn.CurrentDesktop()
}

func (h *X11Host) FindWindowByTitle(title string, timeout time.Duration) (string, error) {
	deadline := time.Now().Add(timeout)
	for {
		clients, err := ewmh.ClientListGet(h.Conn.XUtil)
		if err == nil {
			for _, win := range clients {
				name, err := ewmh.WmNameGet(h.Conn.XUtil, win)
				if err != nil {
					continue
				}
				if strings.TrimSpace(name) == title {
					return x11.WindowIDString(win), nil
				}
			}
		}
		if time.Now().After(deadline) {
			return "", fmt.Errorf("window titled %q did not appear within %s", title, timeout)
		}
		time.Sleep(100 * time.Millisecond)
	}
}
