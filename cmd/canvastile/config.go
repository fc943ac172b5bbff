package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/canvastile/canvastile/internal/config"
)

func printConfigUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage:")
	fmt.Fprintln(w, "  canvastile config print [--path PATH] [--defaults]")
	fmt.Fprintln(w, "  canvastile config validate [--path PATH]")
	fmt.Fprintln(w, "  canvastile config init [--path PATH]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'canvastile config <command> --help' for command-specific options.")
}

func runConfig(args []string) int {
	if len(args) == 0 {
		printConfigUsage(os.Stderr)
		return 2
	}
	if args[0] == "help" || args[0] == "-h" || args[0] == "--help" {
		printConfigUsage(os.Stdout)
		return 0
	}

	switch args[0] {
	case "print":
		return runConfigPrint(args[1:])
	case "validate":
		return runConfigValidate(args[1:])
	case "init":
		return runConfigInit(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "Unknown config command: %s\n\n", args[0])
		printConfigUsage(os.Stderr)
		return 2
	}
}

func runConfigPrint(args []string) int {
	fs := flag.NewFlagSet("print", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/canvastile/config.yaml)")
	printDefaults := fs.Bool("defaults", false, "Print built-in defaults (no files)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile config print [--path PATH] [--defaults]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	var cfg *config.Config
	var err error
	if *printDefaults {
		cfg = config.Default()
	} else {
		cfg, err = loadConfig(*path)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Print(string(data))
	return 0
}

func runConfigValidate(args []string) int {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/canvastile/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile config validate [--path PATH]")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if _, err := loadConfig(*path); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Println("config: ok")
	return 0
}

func runConfigInit(args []string) int {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("path", "", "Config file path (default: ~/.config/canvastile/config.yaml)")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: canvastile config init [--path PATH]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Interactively write a config file starting from the defaults.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	cfg := config.Default()

	fRows := strconv.Itoa(cfg.Grid.Rows)
	fCols := strconv.Itoa(cfg.Grid.Cols)
	fGapH := strconv.Itoa(cfg.Grid.GapH)
	fGapV := strconv.Itoa(cfg.Grid.GapV)
	fTerminal := cfg.Terminal.Program
	fDesktop := strconv.Itoa(cfg.Desktop)

	validInt := func(s string) error {
		_, err := strconv.Atoi(s)
		return err
	}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("rows").
				Title("Grid Rows").
				Description("Number of grid rows").
				Validate(validInt).
				Value(&fRows),
			huh.NewInput().
				Key("cols").
				Title("Grid Columns").
				Description("Number of grid columns").
				Validate(validInt).
				Value(&fCols),
			huh.NewInput().
				Key("gap_h").
				Title("Horizontal Gap").
				Description("Pixels between columns").
				Validate(validInt).
				Value(&fGapH),
			huh.NewInput().
				Key("gap_v").
				Title("Vertical Gap").
				Description("Pixels between rows").
				Validate(validInt).
				Value(&fGapV),
		),
		huh.NewGroup(
			huh.NewInput().
				Key("terminal").
				Title("Terminal Program").
				Description("Terminal emulator to spawn canvases in ('auto' detects)").
				Value(&fTerminal),
			huh.NewInput().
				Key("desktop").
				Title("Canvas Desktop").
				Description("Virtual desktop for canvases (-1 keeps the current one)").
				Validate(validInt).
				Value(&fDesktop),
		),
	)
	if err := form.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	cfg.Grid.Rows, _ = strconv.Atoi(fRows)
	cfg.Grid.Cols, _ = strconv.Atoi(fCols)
	cfg.Grid.GapH, _ = strconv.Atoi(fGapH)
	cfg.Grid.GapV, _ = strconv.Atoi(fGapV)
	cfg.Desktop, _ = strconv.Atoi(fDesktop)
	cfg.Terminal.Program = fTerminal

	target := *path
	if target == "" {
		var err error
		target, err = config.DefaultConfigPath()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
	}
	if err := cfg.SaveTo(target); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Printf("wrote %s\n", target)
	return 0
}
