package canvas

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/canvastile/canvastile/internal/ipc"
)

// Runner is the canvas-side subprocess. It connects back to the controller
// socket, announces readiness, and reacts to commands until told to close.
// Rendering the actual widget is left to the command configured per kind;
// this runner writes update payloads to Out so any renderer can consume them.
type Runner struct {
	Kind string
	Out  io.Writer
}

// Run connects to the controller and processes commands until the controller
// sends close, disconnects, or the process is interrupted. An interrupt is
// reported to the controller as a cancellation.
func (r *Runner) Run(socketPath string) error {
	conn, err := ipc.DialCanvas(socketPath)
	if err != nil {
		return err
	}
	defer conn.Close()

	if err := conn.SendReady(); err != nil {
		return err
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigCh)

	for {
		select {
		case cmd, ok := <-conn.Commands():
			if !ok {
				return nil
			}
			switch cmd.Type {
			case ipc.CommandUpdate:
				if r.Out != nil && len(cmd.Payload) > 0 {
					fmt.Fprintf(r.Out, "%s\n", cmd.Payload)
				}
			case ipc.CommandPing:
				// Liveness probe; the connection answering is the reply.
			case ipc.CommandClose:
				return nil
			}
		case <-sigCh:
			if err := conn.SendCancelled(); err != nil {
				return err
			}
			return nil
		}
	}
}
