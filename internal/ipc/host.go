package ipc

import (
	"bufio"
	"fmt"
	"log"
	"net"
	"os"
	"sync"
	"time"
)

// Host is the controller-side endpoint for one canvas: it listens on the
// canvas socket, accepts the single canvas connection, decodes incoming
// events, and writes commands.
type Host struct {
	socketPath string
	listener   net.Listener
	events     chan *Event
	done       chan struct{}

	connMu sync.Mutex
	conn   net.Conn

	closeMu sync.Mutex
	closed  bool
}

// NewHost creates a host listening on the given socket path. Any stale
// socket file is removed first.
func NewHost(socketPath string) (*Host, error) {
	os.Remove(socketPath)

	listener, err := net.Listen("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("failed to create canvas socket: %w", err)
	}
	if err := os.Chmod(socketPath, 0600); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to set socket permissions: %w", err)
	}

	h := &Host{
		socketPath: socketPath,
		listener:   listener,
		events:     make(chan *Event, 16),
		done:       make(chan struct{}),
	}
	go h.acceptLoop()
	return h, nil
}

// Events returns the channel of decoded canvas events. The channel is closed
// when the canvas disconnects or the host shuts down.
func (h *Host) Events() <-chan *Event {
	return h.events
}

// WaitReady blocks until the canvas sends its ready event. The protocol
// requires ready to be the first event on the socket.
func (h *Host) WaitReady(timeout time.Duration) error {
	select {
	case ev, ok := <-h.events:
		if !ok {
			return fmt.Errorf("canvas disconnected before signalling ready")
		}
		if ev.Type != EventReady {
			return fmt.Errorf("expected ready event, got %q", ev.Type)
		}
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("canvas did not signal ready within %s", timeout)
	}
}

// Send writes a command to the connected canvas.
func (h *Host) Send(cmd *Command) error {
	h.connMu.Lock()
	conn := h.conn
	h.connMu.Unlock()
	if conn == nil {
		return fmt.Errorf("canvas is not connected")
	}

	data, err := cmd.Marshal()
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}
	data = append(data, '\n')
	if _, err := conn.Write(data); err != nil {
		return fmt.Errorf("failed to send command: %w", err)
	}
	return nil
}

// Close shuts down the host and removes the socket file.
func (h *Host) Close() {
	h.closeMu.Lock()
	if h.closed {
		h.closeMu.Unlock()
		return
	}
	h.closed = true
	close(h.done)
	h.closeMu.Unlock()

	h.listener.Close()
	h.connMu.Lock()
	if h.conn != nil {
		h.conn.Close()
	}
	h.connMu.Unlock()
	os.Remove(h.socketPath)
}

func (h *Host) isClosed() bool {
	h.closeMu.Lock()
	defer h.closeMu.Unlock()
	return h.closed
}

// acceptLoop accepts the canvas connection and reads its event stream. A
// canvas owns exactly one connection; a reconnect replaces the previous one.
func (h *Host) acceptLoop() {
	defer close(h.events)
	for {
		conn, err := h.listener.Accept()
		if err != nil {
			if !h.isClosed() {
				log.Printf("canvas socket accept error: %v", err)
			}
			return
		}

		h.connMu.Lock()
		if h.conn != nil {
			h.conn.Close()
		}
		h.conn = conn
		h.connMu.Unlock()

		h.readEvents(conn)
		if h.isClosed() {
			return
		}
	}
}

func (h *Host) readEvents(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		ev, err := ParseEvent(line)
		if err != nil {
			log.Printf("dropping malformed canvas event: %v", err)
			continue
		}
		// A blocked send must not pin this goroutine past Close: nobody may
		// ever drain the events of a fire-and-forget canvas.
		select {
		case h.events <- ev:
		case <-h.done:
			return
		}
	}
}
