package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/canvastile/canvastile/internal/grid"
	"github.com/canvastile/canvastile/internal/session"
)

func printGridUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  canvastile grid show [--json]")
	fmt.Fprintln(w, "  canvastile grid set [--rows N] [--cols N] [--monitor N] [--gap-h N] [--gap-v N]")
	fmt.Fprintln(w, "  canvastile grid move <window-id> <position>")
	fmt.Fprintln(w, "  canvastile grid swap <window-id> <window-id>")
	fmt.Fprintln(w, "  canvastile grid remove <window-id>")
	fmt.Fprintln(w, "  canvastile grid find [--rows N] [--cols N]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Positions accept spreadsheet notation (B2, A1:C2) or zero-based")
	fmt.Fprintln(w, "coordinates (row,col or row,col:RxC).")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'canvastile grid <command> --help' for command-specific options.")
}

func runGrid(args []string) int {
	if len(args) == 0 {
		printGridUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printGridUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "show":
		return runGridShow(args[1:])
	case "set":
		return runGridSet(args[1:])
	case "move":
		return runGridMove(args[1:])
	case "swap":
		return runGridSwap(args[1:])
	case "remove":
		return runGridRemove(args[1:])
	case "find":
		return runGridFind(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown grid command: %s\n\n", args[0])
		printGridUsage(os.Stderr)
		return 2
	}
}

func runGridShow(args []string) int {
	fs := flag.NewFlagSet("show", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	jsonOut := fs.Bool("json", false, "Output the layout summary as JSON")
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile grid show [--json]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Show the current layout: assignments, free cells, grid drawing.")
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

	summary := grid.Summary(rec.Grid, rec.KindLookup())
	if *jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		return 0
	}

	fmt.Printf("grid: %dx%d on monitor %d\n", summary.Rows, summary.Cols, summary.Monitor)
	for _, a := range summary.Assignments {
		if a.Kind != "" {
			fmt.Printf("  %-8s %-10s %s\n", a.Position, a.Kind, a.WindowID)
		} else {
			fmt.Printf("  %-8s %s\n", a.Position, a.WindowID)
		}
	}
	fmt.Println()
	fmt.Print(grid.Visualize(rec.Grid, rec.TitleLookup()))
	return 0
}

func runGridSet(args []string) int {
	fs := flag.NewFlagSet("set", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	rows := fs.Int("rows", -1, "Grid rows")
	cols := fs.Int("cols", -1, "Grid columns")
	monitor := fs.Int("monitor", -1, "Monitor index")
	gapH := fs.Int("gap-h", -1, "Horizontal gap in pixels")
	gapV := fs.Int("gap-v", -1, "Vertical gap in pixels")
	marginTop := fs.Int("margin-top", -1, "Top work-area margin in pixels")
	marginBottom := fs.Int("margin-bottom", -1, "Bottom work-area margin in pixels")
	marginLeft := fs.Int("margin-left", -1, "Left work-area margin in pixels")
	marginRight := fs.Int("margin-right", -1, "Right work-area margin in pixels")
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile grid set [--rows N] [--cols N] [--monitor N] [--gap-h N] [--gap-v N] [--margin-* N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Change the grid shape. Unset flags keep their current value.")
		fmt.Fprintln(os.Stderr, "Canvases that no longer fit the new shape lose their cells;")
		fmt.Fprintln(os.Stderr, "the rest are repositioned.")
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

	mgr, cleanup, err := newManager(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	summary, _, err := mgr.Status()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := summary.Config
	if *rows >= 0 {
		cfg.Rows = *rows
	}
	if *cols >= 0 {
		cfg.Cols = *cols
	}
	if *monitor >= 0 {
		cfg.Monitor = *monitor
	}
	if *gapH >= 0 {
		cfg.GapH = *gapH
	}
	if *gapV >= 0 {
		cfg.GapV = *gapV
	}
	if *marginTop >= 0 {
		cfg.MarginTop = *marginTop
	}
	if *marginBottom >= 0 {
		cfg.MarginBottom = *marginBottom
	}
	if *marginLeft >= 0 {
		cfg.MarginLeft = *marginLeft
	}
	if *marginRight >= 0 {
		cfg.MarginRight = *marginRight
	}

	if err := mgr.Reconfigure(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("grid: %dx%d on monitor %d\n", cfg.Rows, cfg.Cols, cfg.Monitor)
	return 0
}

func runGridMove(args []string) int {
	fs := flag.NewFlagSet("move", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile grid move <window-id> <position>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "grid move requires <window-id> and <position>")
		fs.Usage()
		return 2
	}

	mgr, cleanup, err := newManager(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	rect, err := mgr.Move(fs.Arg(0), fs.Arg(1))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("moved %s to %s (%dx%d at %d,%d)\n",
		fs.Arg(0), fs.Arg(1), rect.Width, rect.Height, rect.X, rect.Y)
	return 0
}

func runGridSwap(args []string) int {
	fs := flag.NewFlagSet("swap", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile grid swap <window-id> <window-id>")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "grid swap requires two window ids")
		fs.Usage()
		return 2
	}

	mgr, cleanup, err := newManager(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	if err := mgr.Swap(fs.Arg(0), fs.Arg(1)); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("swapped %s and %s\n", fs.Arg(0), fs.Arg(1))
	return 0
}

func runGridRemove(args []string) int {
	fs := flag.NewFlagSet("remove", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile grid remove <window-id>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Free a window's grid cells without closing it.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "grid remove requires <window-id>")
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
		return nil
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func runGridFind(args []string) int {
	fs := flag.NewFlagSet("find", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	rows := fs.Int("rows", 1, "Span rows")
	cols := fs.Int("cols", 1, "Span columns")
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile grid find [--rows N] [--cols N]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Report the first free span of the given size (row-major scan).")
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

	span, ok := grid.FindAvailable(*rows, *cols, rec.Grid)
	if !ok {
		fmt.Fprintf(os.Stderr, "no free %dx%d span on the %dx%d grid\n",
			*rows, *cols, rec.Grid.Config.Rows, rec.Grid.Config.Cols)
		return 1
	}
	fmt.Println(grid.FormatPosition(span))
	return 0
}
