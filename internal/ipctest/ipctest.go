// Package ipctest provides a fake ipc.Client for tests: an in-memory
// container tree plus a recording of every command string that would have
// been sent to the window server, with no real socket involved. It mirrors
// the rest of this module's "accept an interface" style (internal/ipc.Client
// is the seam) rather than any kind of network or process fake.
package ipctest

import (
	"github.com/nicolasavru/swaymonad-go/internal/ipc"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Client is a fake ipc.Client backed by an in-memory tree.Container. Tests
// set Tree directly (and mutate it between assertions) rather than having
// the fake interpret command strings; Sent records every command exactly as
// a production Client would have issued it, in order, post-buffering.
type Client struct {
	Tree *tree.Container
	Sent []string

	buf ipc.CommandBuffer

	handlers map[ipc.EventKind][]ipc.Handler

	// GetTreeErr and SendErr, when set, are returned by the corresponding
	// method instead of the normal behavior, for exercising error paths.
	GetTreeErr error
	SendErr    error
}

// New constructs a fake client with an empty tree. Tests should set
// c.Tree before exercising anything that calls GetTree/GetWorkspaces.
func New() *Client {
	return &Client{handlers: make(map[ipc.EventKind][]ipc.Handler)}
}

func (c *Client) Send(cmd string) error {
	if cmd == "" {
		return nil
	}
	if c.buf.Enabled() {
		c.buf.Append(cmd)
		return nil
	}
	return c.send(cmd)
}

func (c *Client) send(cmd string) error {
	if c.SendErr != nil {
		return c.SendErr
	}
	c.Sent = append(c.Sent, cmd)
	return nil
}

func (c *Client) EnableBuffering() {
	c.buf.Enable()
}

func (c *Client) DisableBuffering() error {
	joined := c.buf.Flush()
	if joined == "" {
		return nil
	}
	return c.send(joined)
}

func (c *Client) GetTree() (*tree.Container, error) {
	if c.GetTreeErr != nil {
		return nil, c.GetTreeErr
	}
	wasBuffering := c.buf.Enabled()
	if err := c.DisableBuffering(); err != nil {
		return nil, err
	}
	if wasBuffering {
		c.EnableBuffering()
	}
	return c.Tree, nil
}

func (c *Client) GetWorkspaces() ([]*tree.Container, error) {
	root, err := c.GetTree()
	if err != nil {
		return nil, err
	}
	if root == nil {
		return nil, nil
	}
	var out []*tree.Container
	var walk func(*tree.Container)
	walk = func(n *tree.Container) {
		if n == nil {
			return
		}
		if n.Type == tree.TypeWorkspace {
			out = append(out, n)
			return
		}
		for _, child := range n.Nodes {
			walk(child)
		}
	}
	walk(root)
	return out, nil
}

func (c *Client) Subscribe(kind ipc.EventKind, handler ipc.Handler) {
	c.handlers[kind] = append(c.handlers[kind], handler)
}

// Emit delivers evt to every handler subscribed to evt.Kind, in
// registration order, the way Transport.Run would. Tests drive the engine
// with this instead of a real event subscription.
func (c *Client) Emit(evt ipc.Event) {
	for _, h := range c.handlers[evt.Kind] {
		h(evt)
	}
}

// Run is a no-op: fake-client tests drive handlers directly via Emit rather
// than blocking on an event loop.
func (c *Client) Run() error {
	return nil
}
