package ipc

import (
	"encoding/json"
	"fmt"
)

// EventType identifies a canvas-to-controller event.
type EventType string

const (
	EventReady     EventType = "ready"
	EventSelected  EventType = "selected"
	EventCancelled EventType = "cancelled"
	EventError     EventType = "error"
)

// Event is a message from a canvas back to its controller. One JSON object
// per line on the canvas socket.
type Event struct {
	Type    EventType       `json:"event"`
	Payload json.RawMessage `json:"payload,omitempty"`
	Message string          `json:"message,omitempty"`
}

// CommandType identifies a controller-to-canvas command.
type CommandType string

const (
	CommandUpdate CommandType = "update"
	CommandClose  CommandType = "close"
	CommandPing   CommandType = "ping"
)

// Command is a message from the controller to a canvas.
type Command struct {
	Type    CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewSelectedEvent builds a selected event carrying the user's choice.
func NewSelectedEvent(payload interface{}) (*Event, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal selection payload: %w", err)
	}
	return &Event{Type: EventSelected, Payload: data}, nil
}

// NewErrorEvent builds an error event with a message.
func NewErrorEvent(message string) *Event {
	return &Event{Type: EventError, Message: message}
}

// NewUpdateCommand builds an update command carrying new canvas content.
func NewUpdateCommand(payload interface{}) (*Command, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal update payload: %w", err)
	}
	return &Command{Type: CommandUpdate, Payload: data}, nil
}

// ParseEvent parses one event line.
func ParseEvent(data []byte) (*Event, error) {
	var ev Event
	if err := json.Unmarshal(data, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event: %w", err)
	}
	if ev.Type == "" {
		return nil, fmt.Errorf("event is missing a type")
	}
	return &ev, nil
}

// ParseCommand parses one command line.
func ParseCommand(data []byte) (*Command, error) {
	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		return nil, fmt.Errorf("failed to parse command: %w", err)
	}
	if cmd.Type == "" {
		return nil, fmt.Errorf("command is missing a type")
	}
	return &cmd, nil
}

// Marshal converts an event to JSON bytes.
func (e *Event) Marshal() ([]byte, error) {
	return json.Marshal(e)
}

// Marshal converts a command to JSON bytes.
func (c *Command) Marshal() ([]byte, error) {
	return json.Marshal(c)
}
