package session

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/canvastile/canvastile/internal/grid"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "session.json"), grid.DefaultConfig())
}

func TestLoad_FreshRecordWhenMissing(t *testing.T) {
	store := testStore(t)

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Grid.Config.Rows != 2 || rec.Grid.Config.Cols != 2 {
		t.Fatalf("expected default 2x2 grid, got %dx%d", rec.Grid.Config.Rows, rec.Grid.Config.Cols)
	}
	if rec.Canvases == nil {
		t.Fatalf("canvas registry must be initialized")
	}
}

func TestUpdate_PersistsGridAndCanvases(t *testing.T) {
	store := testStore(t)

	err := store.Update(func(rec *Record) error {
		st, err := grid.AssignText("win-1", "A1", rec.Grid)
		if err != nil {
			return err
		}
		rec.Grid = st
		rec.Canvases["win-1"] = CanvasInfo{
			WindowID: "win-1",
			Kind:     "calendar",
			Title:    "pick a date",
			OpenedAt: time.Now(),
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	rec, err := store.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	span, ok := rec.Grid.SpanOf("win-1")
	if !ok {
		t.Fatalf("assignment did not survive the persistence round trip")
	}
	if grid.FormatPosition(span) != "A1" {
		t.Fatalf("expected win-1 at A1, got %s", grid.FormatPosition(span))
	}
	if rec.Canvases["win-1"].Kind != "calendar" {
		t.Fatalf("canvas info did not survive: %+v", rec.Canvases["win-1"])
	}
}

func TestUpdate_ErrorDiscardsChanges(t *testing.T) {
	store := testStore(t)

	if err := store.Update(func(rec *Record) error {
		st, err := grid.AssignText("win-1", "A1", rec.Grid)
		rec.Grid = st
		return err
	}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := store.Update(func(rec *Record) error {
		_, err := grid.AssignText("win-2", "A1", rec.Grid)
		if err != nil {
			return err
		}
		rec.Canvases["win-2"] = CanvasInfo{WindowID: "win-2"}
		return nil
	})
	if err == nil {
		t.Fatalf("expected overlap error to surface from Update")
	}

	rec, _ := store.Load()
	if _, ok := rec.Canvases["win-2"]; ok {
		t.Fatalf("failed update must not persist partial changes")
	}
}

func TestKindLookup(t *testing.T) {
	rec := NewRecord(0, grid.DefaultConfig())
	rec.Canvases["w1"] = CanvasInfo{WindowID: "w1", Kind: "flight-picker", Title: "flights"}

	lookup := rec.KindLookup()
	kind, ok := lookup("w1")
	if !ok || kind != "flight-picker" {
		t.Fatalf("expected flight-picker, got %q (%v)", kind, ok)
	}
	if _, ok := lookup("ghost"); ok {
		t.Fatalf("unknown window must not resolve")
	}

	titles := rec.TitleLookup()
	title, ok := titles("w1")
	if !ok || title != "flights" {
		t.Fatalf("expected flights, got %q (%v)", title, ok)
	}
}
