package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/canvastile/canvastile/internal/canvas"
	"github.com/canvastile/canvastile/internal/grid"
	"github.com/canvastile/canvastile/internal/session"
)

func printCanvasUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  canvastile canvas open --kind KIND [--position P] [--title T] [--wait]")
	fmt.Fprintln(w, "  canvastile canvas close <window-id>")
	fmt.Fprintln(w, "  canvastile canvas list [--json]")
	fmt.Fprintln(w, "  canvastile canvas run --kind KIND --socket PATH")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'canvastile canvas <command> --help' for command-specific options.")
}

func runCanvas(args []string) int {
	if len(args) == 0 {
		printCanvasUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printCanvasUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "open":
		return runCanvasOpen(args[1:])
	case "close":
		return runCanvasClose(args[1:])
	case "list":
		return runCanvasList(args[1:])
	case "run":
		return runCanvasRun(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown canvas command: %s\n\n", args[0])
		printCanvasUsage(os.Stderr)
		return 2
	}
}

func runCanvasOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	kind := fs.String("kind", "", "Canvas kind to open (required)")
	position := fs.String("position", "", "Grid position (default: kind default, then first-fit)")
	title := fs.String("title", "", "Window title (default: generated)")
	wait := fs.Bool("wait", false, "Stay attached and print the canvas selection")
	waitSeconds := fs.Int("timeout", 300, "Selection wait timeout in seconds (with --wait)")
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile canvas open --kind KIND [--position P] [--title T] [--wait]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Spawn a canvas window and place it on the grid.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Flags:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *kind == "" {
		fmt.Fprintln(os.Stderr, "canvas open requires --kind")
		fs.Usage()
		return 2
	}

	mgr, cleanup, err := newManager(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	res, err := mgr.Open(*kind, *position, *title)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("window_id: %s\n", res.WindowID)
	fmt.Printf("position:  %s\n", res.Position)
	fmt.Printf("rect:      %dx%d at %d,%d\n", res.Rect.Width, res.Rect.Height, res.Rect.X, res.Rect.Y)

	if !*wait {
		return 0
	}

	payload, err := mgr.WaitSelection(res.WindowID, time.Duration(*waitSeconds)*time.Second)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if payload == nil {
		fmt.Println("cancelled")
		return 0
	}
	fmt.Printf("selected: %s\n", payload)
	return 0
}

// runCanvasClose frees the session bookkeeping for a canvas. The canvas
// socket belongs to the controller process that opened it, so the close
// command itself can only be delivered by that process (the MCP server);
// here the window simply loses its cells and registry entry.
func runCanvasClose(args []string) int {
	fs := flag.NewFlagSet("close", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile canvas close <window-id>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "canvas close requires <window-id>")
		fs.Usage()
		return 2
	}

	store, _, err := openStore(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	windowID := fs.Arg(0)
	err = store.Update(func(rec *session.Record) error {
		rec.Grid = grid.Remove(windowID, rec.Grid)
		delete(rec.Canvases, windowID)
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runCanvasList(args []string) int {
	fs := flag.NewFlagSet("list", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output the canvas list as JSON")
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile canvas list [--json]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	store, _, err := openStore(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rec, err := store.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(rec.Canvases); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	for windowID, info := range rec.Canvases {
		position := "-"
		if span, ok := rec.Grid.SpanOf(windowID); ok {
			position = grid.FormatPosition(span)
		}
		fmt.Printf("%-12s %-10s %-8s %s\n", windowID, info.Kind, position, info.Title)
	}
	return 0
}

func runCanvasRun(args []string) int {
	fs := flag.NewFlagSet("run", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	kind := fs.String("kind", "", "Canvas kind (required)")
	socket := fs.String("socket", "", "Controller socket path (required)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile canvas run --kind KIND --socket PATH")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Canvas subprocess entry. Connects back to the controller socket,")
		fmt.Fprintln(os.Stderr, "reports readiness, and prints update payloads until closed.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if *kind == "" || *socket == "" {
		fmt.Fprintln(os.Stderr, "canvas run requires --kind and --socket")
		fs.Usage()
		return 2
	}

	runner := &canvas.Runner{Kind: *kind, Out: os.Stdout}
	if err := runner.Run(*socket); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
