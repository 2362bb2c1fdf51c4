// Package engine holds the small, explicit context value threaded through
// every handler instead of process-global state (design notes §9): the IPC
// client and the move-echo suppression counter. Everything else
// (per-workspace layout table, default layout name) lives in
// internal/layout.Registry, constructed once at startup alongside a Context.
package engine

import (
	"github.com/nicolasavru/swaymonad-go/internal/ipc"
	"github.com/nicolasavru/swaymonad-go/internal/movecounter"
)

// Context bundles the collaborators that would otherwise be process-global
// singletons. Every function in internal/common, internal/transform,
// internal/cycle, internal/master, internal/reflow, and internal/layout
// that needs the client or the move counter takes a *Context explicitly
// rather than reaching for package-level state.
type Context struct {
	Client ipc.Client
	Moves  *movecounter.Counter

	// Fatal carries a transport-broken error out of a handler to the
	// top-level run loop, which selects on it alongside the event loop
	// itself (internal/dispatch reports into it; cmd.run consumes it).
	Fatal chan error
}

// New builds a Context around a connected Client with a fresh move
// counter.
func New(client ipc.Client) *Context {
	return &Context{Client: client, Moves: &movecounter.Counter{}, Fatal: make(chan error, 1)}
}

// ReportFatal records a fatal error for the top-level run loop to observe.
// Non-blocking: if a fatal error is already pending, later ones are
// dropped, since the daemon is shutting down on the first one regardless.
func (c *Context) ReportFatal(err error) {
	select {
	case c.Fatal <- err:
	default:
	}
}
