package main

import (
	"fmt"
	"io"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "grid":
		os.Exit(runGrid(os.Args[2:]))
	case "canvas":
		os.Exit(runCanvas(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: canvastile <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  grid show           Show the current layout")
	fmt.Fprintln(w, "  grid set            Change the grid shape (rows, cols, gaps, monitor)")
	fmt.Fprintln(w, "  grid move           Move a canvas window to a position")
	fmt.Fprintln(w, "  grid swap           Exchange two canvas windows' positions")
	fmt.Fprintln(w, "  grid remove         Free a window's grid cells")
	fmt.Fprintln(w, "  grid find           Find the first free span of a given size")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  canvas open         Spawn a canvas window and place it on the grid")
	fmt.Fprintln(w, "  canvas close        Close a canvas and free its cells")
	fmt.Fprintln(w, "  canvas list         List canvases in the current session")
	fmt.Fprintln(w, "  canvas run          Canvas subprocess entry (used by spawned terminals)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config print        Print the effective configuration")
	fmt.Fprintln(w, "  config validate     Validate the configuration")
	fmt.Fprintln(w, "  config init         Interactively write a config file")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Open the interactive grid editor")
	fmt.Fprintln(w, "  mcp serve           Start the MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'canvastile <command> --help' for command-specific options.")
}
