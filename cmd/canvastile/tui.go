package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/canvastile/canvastile/internal/tui"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	cfgPath := fs.String("config", "", "Config file path")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile tui")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactive grid editor.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  arrows, hjkl   Move the cursor")
		fmt.Fprintln(os.Stderr, "  Enter, Space   Grab the canvas under the cursor / drop it")
		fmt.Fprintln(os.Stderr, "  q, Esc         Quit")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if !term.IsTerminal(int(os.Stdin.Fd())) {
		fmt.Fprintln(os.Stderr, "tui requires an interactive terminal")
		return 1
	}

	mgr, cleanup, err := newManager(*cfgPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer cleanup()

	if err := tui.Run(mgr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
