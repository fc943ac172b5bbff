package canvas

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/canvastile/canvastile/internal/config"
	"github.com/canvastile/canvastile/internal/grid"
	"github.com/canvastile/canvastile/internal/ipc"
	"github.com/canvastile/canvastile/internal/session"
)

// fakeHost records window-host calls without touching a display.
type fakeHost struct {
	workArea grid.Rect
	moved    map[string]grid.Rect
	desktops map[string]int
	nextWin  int
}

func newFakeHost() *fakeHost {
	return &fakeHost{
		workArea: grid.Rect{X: 0, Y: 0, Width: 1920, Height: 1080},
		moved:    make(map[string]grid.Rect),
		desktops: make(map[string]int),
	}
}

func (f *fakeHost) WorkArea(int) (grid.Rect, error) { return f.workArea, nil }

func (f *fakeHost) MoveResize(windowID string, rect grid.Rect) error {
	f.moved[windowID] = rect
	return nil
}

func (f *fakeHost) SendToDesktop(windowID string, desktop int) error {
	f.desktops[windowID] = desktop
	return nil
}

func (f *fakeHost) CurrentDesktop() (int, error) { return 0, nil }

func (f *fakeHost) FindWindowByTitle(title string, _ time.Duration) (string, error) {
	f.nextWin++
	return fmt.Sprintf("%d", 1000+f.nextWin), nil
}

// fakeCanvas connects to the manager's socket like a real canvas process
// would, signals ready, and replays scripted behavior.
type fakeCanvas struct {
	client *ipc.Canvas
}

// fakeSpawner pretends to start a terminal: it extracts the socket path from
// the rendered command and connects a fake canvas to it.
func fakeSpawner(t *testing.T, canvases chan<- *fakeCanvas) SpawnFunc {
	t.Helper()
	return func(argv []string) (int, error) {
		var socketPath string
		for _, arg := range argv {
			if idx := strings.Index(arg, "--socket "); idx >= 0 {
				socketPath = strings.Fields(arg[idx:])[1]
			}
		}
		if socketPath == "" {
			return 0, fmt.Errorf("no socket path in argv %v", argv)
		}

		go func() {
			client, err := ipc.DialCanvas(socketPath)
			if err != nil {
				t.Errorf("fake canvas failed to dial: %v", err)
				return
			}
			if err := client.SendReady(); err != nil {
				t.Errorf("fake canvas failed to send ready: %v", err)
				return
			}
			canvases <- &fakeCanvas{client: client}
		}()
		return 4242, nil
	}
}

func testManager(t *testing.T) (*Manager, *fakeHost, chan *fakeCanvas) {
	t.Helper()
	t.Setenv("XDG_RUNTIME_DIR", t.TempDir())

	cfg := config.Default()
	cfg.Terminal = config.Terminal{Program: "fake-term", Args: []string{"{title}", "{command}"}}
	cfg.ReadyTimeoutSeconds = 5

	store := session.NewStore(filepath.Join(t.TempDir(), "session.json"), cfg.Grid)
	host := newFakeHost()
	canvases := make(chan *fakeCanvas, 4)
	mgr := NewManager(cfg, store, host, fakeSpawner(t, canvases))
	return mgr, host, canvases
}

func TestOpen_PlacesAndPositionsCanvas(t *testing.T) {
	mgr, host, _ := testManager(t)

	res, err := mgr.Open("calendar", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Position != "A1" {
		t.Fatalf("expected first-fit at A1, got %s", res.Position)
	}

	rect, ok := host.moved[res.WindowID]
	if !ok {
		t.Fatalf("window was never positioned")
	}
	if rect != res.Rect {
		t.Fatalf("reported rect %+v differs from applied rect %+v", res.Rect, rect)
	}
	if rect.Width <= 0 || rect.Height <= 0 {
		t.Fatalf("degenerate rect: %+v", rect)
	}
}

func TestOpen_ExplicitPositionAndKindSpan(t *testing.T) {
	mgr, _, _ := testManager(t)

	res, err := mgr.Open("calendar", "B2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Position != "B2" {
		t.Fatalf("expected B2, got %s", res.Position)
	}

	// "document" is configured with rows=2: on the remaining 2x2 grid it
	// first-fits the A1:A2 column.
	res, err = mgr.Open("document", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Position != "A1:A2" {
		t.Fatalf("expected document spanning A1:A2, got %s", res.Position)
	}
}

func TestOpen_UnknownKind(t *testing.T) {
	mgr, _, _ := testManager(t)
	if _, err := mgr.Open("spreadsheet", "", ""); err == nil {
		t.Fatalf("expected error for unconfigured kind")
	}
}

func TestOpen_FullGridFailsBeforeSpawning(t *testing.T) {
	mgr, _, _ := testManager(t)

	for i := 0; i < 4; i++ {
		if _, err := mgr.Open("calendar", "", ""); err != nil {
			t.Fatalf("open %d: %v", i, err)
		}
	}
	if _, err := mgr.Open("calendar", "", ""); err == nil {
		t.Fatalf("expected error when the grid is full")
	}
}

func TestUpdateAndWaitSelection(t *testing.T) {
	mgr, _, canvases := testManager(t)

	res, err := mgr.Open("flight", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	fake := <-canvases

	if err := mgr.Update(res.WindowID, json.RawMessage(`{"flights":["BA123"]}`)); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	select {
	case cmd := <-fake.client.Commands():
		if cmd.Type != ipc.CommandUpdate {
			t.Fatalf("expected update, got %s", cmd.Type)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("fake canvas never saw the update")
	}

	go func() {
		_ = fake.client.SendSelected(map[string]string{"flight": "BA123"})
	}()
	payload, err := mgr.WaitSelection(res.WindowID, 2*time.Second)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var choice map[string]string
	if err := json.Unmarshal(payload, &choice); err != nil {
		t.Fatalf("bad selection payload: %v", err)
	}
	if choice["flight"] != "BA123" {
		t.Fatalf("unexpected selection: %v", choice)
	}
}

func TestClose_ReleasesGridCell(t *testing.T) {
	mgr, _, canvases := testManager(t)

	res, err := mgr.Open("calendar", "A1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	<-canvases

	if err := mgr.Close(res.WindowID); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	rec, err := mgr.store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := rec.Grid.SpanOf(res.WindowID); ok {
		t.Fatalf("grid cell not released on close")
	}
	if _, ok := rec.Canvases[res.WindowID]; ok {
		t.Fatalf("canvas record not removed on close")
	}

	// The cell is reusable immediately.
	res2, err := mgr.Open("calendar", "A1", "")
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	if res2.Position != "A1" {
		t.Fatalf("expected A1 reuse, got %s", res2.Position)
	}
}

func TestListAndRelease(t *testing.T) {
	mgr, _, _ := testManager(t)

	a, err := mgr.Open("calendar", "A1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := mgr.Open("flight", "", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	infos, err := mgr.List()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(infos) != 2 {
		t.Fatalf("expected 2 canvases, got %d", len(infos))
	}

	if err := mgr.Release(a.WindowID); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	rec, _ := mgr.store.Load()
	if _, ok := rec.Grid.SpanOf(a.WindowID); ok {
		t.Fatalf("release did not free the cell")
	}
	// The canvas record survives; only the grid assignment goes.
	if _, ok := rec.Canvases[a.WindowID]; !ok {
		t.Fatalf("release must not drop the canvas record")
	}
	if _, ok := rec.Grid.SpanOf(b.WindowID); !ok {
		t.Fatalf("release touched the wrong window")
	}

	// Releasing a window with no assignment is a no-op.
	if err := mgr.Release("ghost"); err != nil {
		t.Fatalf("releasing an absent window must not fail: %v", err)
	}
}

func TestMoveAndSwap_ReapplyRects(t *testing.T) {
	mgr, host, _ := testManager(t)

	a, err := mgr.Open("calendar", "A1", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	b, err := mgr.Open("calendar", "B2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rect, err := mgr.Move(a.WindowID, "A2")
	if err != nil {
		t.Fatalf("move failed: %v", err)
	}
	if host.moved[a.WindowID] != rect {
		t.Fatalf("move did not apply the new rect")
	}

	if err := mgr.Swap(a.WindowID, b.WindowID); err != nil {
		t.Fatalf("swap failed: %v", err)
	}
	rec, _ := mgr.store.Load()
	spanA, _ := rec.Grid.SpanOf(a.WindowID)
	if grid.FormatPosition(spanA) != "B2" {
		t.Fatalf("expected a at B2 after swap, got %s", grid.FormatPosition(spanA))
	}

	if err := mgr.Swap(a.WindowID, "ghost"); err == nil {
		t.Fatalf("swap with a missing side must fail")
	}
}
