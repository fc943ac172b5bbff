package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgbutil/ewmh"

	"github.com/canvastile/canvastile/internal/grid"
)

// Monitor describes one physical display.
type Monitor struct {
	Index  int
	Name   string
	Bounds grid.Rect
}

// Monitors enumerates active monitors via XRandR, in CRTC order.
func (c *Connection) Monitors() ([]Monitor, error) {
	if err := randr.Init(c.XUtil.Conn()); err != nil {
		return nil, fmt.Errorf("randr init failed: %w", err)
	}

	resources, err := randr.GetScreenResources(c.XUtil.Conn(), c.Root).Reply()
	if err != nil {
		return nil, fmt.Errorf("failed to get screen resources: %w", err)
	}

	var monitors []Monitor
	for i, crtc := range resources.Crtcs {
		info, err := randr.GetCrtcInfo(c.XUtil.Conn(), crtc, resources.ConfigTimestamp).Reply()
		if err != nil {
			continue
		}
		if info.Width == 0 || info.Height == 0 || len(info.Outputs) == 0 {
			continue
		}

		name := fmt.Sprintf("Monitor%d", i)
		if out, err := randr.GetOutputInfo(c.XUtil.Conn(), info.Outputs[0], resources.ConfigTimestamp).Reply(); err == nil {
			name = string(out.Name)
		}

		monitors = append(monitors, Monitor{
			Index: len(monitors),
			Name:  name,
			Bounds: grid.Rect{
				X:      int(info.X),
				Y:      int(info.Y),
				Width:  int(info.Width),
				Height: int(info.Height),
			},
		})
	}

	if len(monitors) == 0 {
		return nil, fmt.Errorf("no active monitors found")
	}
	return monitors, nil
}

// WorkArea returns the usable region of a monitor: its bounds intersected
// with the EWMH work area for the current desktop, which excludes panels and
// docks. An out-of-range monitor index falls back to the first monitor.
func (c *Connection) WorkArea(monitorIndex int) (grid.Rect, error) {
	monitors, err := c.Monitors()
	if err != nil {
		return grid.Rect{}, err
	}

	if monitorIndex < 0 || monitorIndex >= len(monitors) {
		monitorIndex = 0
	}
	area := monitors[monitorIndex].Bounds

	workAreas, err := ewmh.WorkareaGet(c.XUtil)
	if err != nil || len(workAreas) == 0 {
		return area, nil
	}

	desktop := 0
	if current, err := ewmh.CurrentDesktopGet(c.XUtil); err == nil && int(current) < len(workAreas) {
		desktop = int(current)
	}
	wa := workAreas[desktop]

	x1 := max(area.X, int(wa.X))
	y1 := max(area.Y, int(wa.Y))
	x2 := min(area.X+area.Width, int(wa.X)+int(wa.Width))
	y2 := min(area.Y+area.Height, int(wa.Y)+int(wa.Height))

	// Keep the raw monitor bounds when the reported work area misses the
	// monitor entirely (common with per-primary-monitor panels).
	if x2 <= x1 || y2 <= y1 {
		return area, nil
	}
	return grid.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}, nil
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
