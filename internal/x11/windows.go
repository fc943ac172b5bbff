package x11

import (
	"fmt"
	"strconv"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xwindow"

	"github.com/canvastile/canvastile/internal/grid"
)

// WindowIDString renders an X window id in the opaque string form used by
// the grid engine and session record.
func WindowIDString(windowID xproto.Window) string {
	return strconv.FormatUint(uint64(windowID), 10)
}

// ParseWindowID converts an opaque window id string back to an X window.
func ParseWindowID(id string) (xproto.Window, error) {
	n, err := strconv.ParseUint(id, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window id %q: %w", id, err)
	}
	return xproto.Window(n), nil
}

// MoveResizeWindow applies a computed grid rectangle to a real window.
// Maximized state is removed first so the window manager honors the
// requested geometry.
func (c *Connection) MoveResizeWindow(windowID xproto.Window, rect grid.Rect) error {
	c.unmaximize(windowID)

	if err := ewmh.MoveresizeWindow(c.XUtil, windowID, rect.X, rect.Y, rect.Width, rect.Height); err != nil {
		// Fallback to direct window manipulation for non-EWMH window managers.
		xwindow.New(c.XUtil, windowID).MoveResize(rect.X, rect.Y, rect.Width, rect.Height)
	}
	return nil
}

func (c *Connection) unmaximize(windowID xproto.Window) {
	states, err := ewmh.WmStateGet(c.XUtil, windowID)
	if err != nil {
		return
	}
	for _, state := range states {
		if state == "_NET_WM_STATE_MAXIMIZED_HORZ" || state == "_NET_WM_STATE_MAXIMIZED_VERT" {
			ewmh.WmStateReq(c.XUtil, windowID, 0, state)
		}
	}
}

// CurrentDesktop returns the current virtual desktop number (0-indexed).
func (c *Connection) CurrentDesktop() (int, error) {
	desktop, err := ewmh.CurrentDesktopGet(c.XUtil)
	if err != nil {
		return 0, fmt.Errorf("failed to get current desktop: %w", err)
	}
	return int(desktop), nil
}

// ActiveWindow returns the currently focused window.
func (c *Connection) ActiveWindow() (xproto.Window, error) {
	return ewmh.ActiveWindowGet(c.XUtil)
}

// SetWindowDesktop moves a window to the specified virtual desktop by
// sending a _NET_WM_DESKTOP client message to the root window. The message
// is built manually because the xgbutil ewmh.WmDesktopReq helper panics on
// this library version (uint vs int type assertion).
func (c *Connection) SetWindowDesktop(windowID xproto.Window, desktop int) error {
	atomReply, err := xproto.InternAtom(c.XUtil.Conn(), false,
		uint16(len("_NET_WM_DESKTOP")), "_NET_WM_DESKTOP").Reply()
	if err != nil {
		return fmt.Errorf("failed to intern _NET_WM_DESKTOP: %w", err)
	}

	const sourceIndication = 2 // pager/direct action
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: windowID,
		Type:   atomReply.Atom,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(desktop),
			sourceIndication,
			0, 0, 0,
		}),
	}

	return xproto.SendEventChecked(
		c.XUtil.Conn(),
		false,
		c.Root,
		xproto.EventMaskSubstructureNotify|xproto.EventMaskSubstructureRedirect,
		string(ev.Bytes()),
	).Check()
}
