package config

import (
	"fmt"
	"sort"

	"github.com/canvastile/canvastile/internal/grid"
)

// Terminal describes how to spawn the terminal window that hosts a canvas.
// Args may contain the placeholders {title} and {command}; {command} is the
// canvas subprocess invocation, {title} the window title used to locate the
// spawned window.
type Terminal struct {
	Program string   `yaml:"program"` // "auto" or empty picks the first detected terminal
	Args    []string `yaml:"args,omitempty"`
}

// Kind describes one canvas kind the controller can present.
type Kind struct {
	// Command runs inside the spawned terminal and renders the canvas UI.
	Command string `yaml:"command"`
	// Position is an optional default position (any notation ParsePosition
	// accepts). Empty means first-fit placement.
	Position string `yaml:"position,omitempty"`
	// Rows/Cols set the span size used for first-fit placement (default 1x1).
	Rows int `yaml:"rows,omitempty"`
	Cols int `yaml:"cols,omitempty"`
}

// Config is the full canvastile configuration.
type Config struct {
	Grid grid.Config `yaml:"grid"`
	// Desktop is the virtual desktop canvases are sent to; -1 means the
	// desktop that is current when a canvas opens.
	Desktop  int             `yaml:"desktop"`
	Terminal Terminal        `yaml:"terminal"`
	Kinds    map[string]Kind `yaml:"kinds,omitempty"`
	// ReadyTimeoutSeconds bounds the wait for a canvas ready event.
	ReadyTimeoutSeconds int `yaml:"ready_timeout_seconds"`
}

// Default returns the builtin configuration used when no file exists.
func Default() *Config {
	return &Config{
		Grid:                grid.DefaultConfig(),
		Desktop:             -1,
		Terminal:            Terminal{Program: "auto"},
		ReadyTimeoutSeconds: 10,
		Kinds: map[string]Kind{
			"calendar": {Command: "canvastile canvas run --kind calendar"},
			"document": {Command: "canvastile canvas run --kind document", Rows: 2},
			"flight":   {Command: "canvastile canvas run --kind flight", Cols: 2},
		},
	}
}

// Validate checks the configuration for values the engine cannot work with.
func (c *Config) Validate() error {
	if err := c.Grid.Validate(); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	if c.Desktop < -1 {
		return fmt.Errorf("desktop must be -1 (current) or a desktop index, got %d", c.Desktop)
	}
	if c.ReadyTimeoutSeconds < 1 {
		return fmt.Errorf("ready_timeout_seconds must be at least 1, got %d", c.ReadyTimeoutSeconds)
	}
	for name, kind := range c.Kinds {
		if kind.Command == "" {
			return fmt.Errorf("kind %q has no command", name)
		}
		if kind.Position != "" {
			if _, err := grid.ParsePosition(kind.Position); err != nil {
				return fmt.Errorf("kind %q: %w", name, err)
			}
		}
		if kind.Rows < 0 || kind.Cols < 0 {
			return fmt.Errorf("kind %q has negative span size", name)
		}
	}
	return nil
}

// KindNames returns the configured canvas kinds, sorted.
func (c *Config) KindNames() []string {
	names := make([]string, 0, len(c.Kinds))
	for name := range c.Kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SpanSize returns the placement span size for a kind, defaulting to 1x1.
func (k Kind) SpanSize() (rows, cols int) {
	rows, cols = k.Rows, k.Cols
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	return rows, cols
}
