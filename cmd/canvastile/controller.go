package main

import (
	"fmt"

	"github.com/canvastile/canvastile/internal/canvas"
	"github.com/canvastile/canvastile/internal/config"
	"github.com/canvastile/canvastile/internal/session"
	"github.com/canvastile/canvastile/internal/x11"
)

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Load()
	}
	return config.LoadFrom(path)
}

// openStore wires the config and session store without touching the display,
// for commands that only read or edit session bookkeeping.
func openStore(cfgPath string) (*session.Store, *config.Config, error) {
	cfg, err := loadConfig(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	store, err := session.DefaultStore(cfg.Grid)
	if err != nil {
		return nil, nil, err
	}
	return store, cfg, nil
}

// newManager wires a full controller: config, session store, and an X11
// window host. The returned cleanup closes the display connection.
func newManager(cfgPath string) (*canvas.Manager, func(), error) {
	store, cfg, err := openStore(cfgPath)
	if err != nil {
		return nil, nil, err
	}
	conn, err := x11.NewConnection()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to display: %w", err)
	}
	mgr := canvas.NewManager(cfg, store, &canvas.X11Host{Conn: conn}, nil)
	return mgr, func() { conn.Close() }, nil
}
