// Package ipc adapts a window-server IPC transport (get the container
// tree, subscribe to events, send command strings) into the small surface
// the rest of this module depends on, and layers in the command-buffering
// behavior spec.md requires but the transport library itself doesn't
// provide.
package ipc

import (
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// EventKind identifies the IPC event subscriptions the engine cares about.
type EventKind string

const (
	EventWindowNew   EventKind = "window::new"
	EventWindowClose EventKind = "window::close"
	EventWindowMove  EventKind = "window::move"
	EventBinding     EventKind = "binding"
)

// Event is the payload delivered to a subscribed handler. Window carries
// the window event's container id for window::* kinds; BindingCommand
// carries the raw key-binding command string for EventBinding.
type Event struct {
	Kind           EventKind
	Window         tree.Event
	BindingCommand string
}

// Handler is invoked once per event, serially, on the single event-loop
// "thread" (see Run).
type Handler func(Event)

// Client is the surface the rest of the engine depends on. The concrete
// implementation (Transport) wraps go.i3wm.org/i3; tests use a fake from
// internal/ipctest instead.
type Client interface {
	// Send issues (or, if buffering is enabled, enqueues) a single command
	// string. Commands may themselves contain ";"-separated sub-commands.
	Send(cmd string) error

	// EnableBuffering starts accumulating Send calls instead of issuing
	// them immediately.
	EnableBuffering()

	// DisableBuffering flushes any buffered commands as one ";"-joined
	// Send call and stops buffering. Sends nothing if the buffer is empty.
	DisableBuffering() error

	// GetTree flushes any buffered commands, fetches the current
	// container tree, and re-enables buffering if it was enabled before
	// the call. This guarantees read-after-write within one handler turn.
	GetTree() (*tree.Container, error)

	// GetWorkspaces behaves like GetTree but returns each workspace
	// container directly.
	GetWorkspaces() ([]*tree.Container, error)

	// Subscribe registers a handler for one event kind. Handlers fire in
	// registration order, serially with all other handlers, from Run's
	// single-consumer loop.
	Subscribe(kind EventKind, handler Handler)

	// Run blocks, dispatching events to subscribed handlers one at a
	// time until the underlying connection closes, then returns. A
	// transport-kind error return means the connection broke; any other
	// error should not occur.
	Run() error
}
