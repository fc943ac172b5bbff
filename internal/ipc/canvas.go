package ipc

import (
	"bufio"
	"fmt"
	"net"
	"time"
)

// Canvas is the canvas-side endpoint: it dials the controller's socket,
// sends events, and reads commands.
type Canvas struct {
	conn     net.Conn
	commands chan *Command
}

// DialCanvas connects to the controller socket for this canvas. The first
// event a canvas sends must be ready.
func DialCanvas(socketPath string) (*Canvas, error) {
	conn, err := net.DialTimeout("unix", socketPath, 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to controller: %w", err)
	}

	c := &Canvas{
		conn:     conn,
		commands: make(chan *Command, 16),
	}
	go c.readCommands()
	return c, nil
}

// Commands returns the channel of decoded controller commands. The channel
// is closed when the controller disconnects.
func (c *Canvas) Commands() <-chan *Command {
	return c.commands
}

// SendReady signals that the canvas is rendered and interactive.
func (c *Canvas) SendReady() error {
	return c.send(&Event{Type: EventReady})
}

// SendSelected reports the user's choice and is normally followed by the
// canvas exiting.
func (c *Canvas) SendSelected(payload interface{}) error {
	ev, err := NewSelectedEvent(payload)
	if err != nil {
		return err
	}
	return c.send(ev)
}

// SendCancelled reports that the user dismissed the canvas without choosing.
func (c *Canvas) SendCancelled() error {
	return c.send(&Event{Type: EventCancelled})
}

// SendError reports a canvas-side failure.
func (c *Canvas) SendError(message string) error {
	return c.send(NewErrorEvent(message))
}

// Close disconnects from the controller.
func (c *Canvas) Close() error {
	return c.conn.Close()
}

func (c *Canvas) send(ev *Event) error {
	data, err := ev.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	data = append(data, '\n')
	if _, err := c.conn.Write(data); err != nil {
		return fmt.Errorf("failed to send event: %w", err)
	}
	return nil
}

func (c *Canvas) readCommands() {
	defer close(c.commands)
	scanner := bufio.NewScanner(c.conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		cmd, err := ParseCommand(line)
		if err != nil {
			continue
		}
		c.commands <- cmd
	}
}
