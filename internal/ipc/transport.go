package ipc

import (
	"fmt"
	"time"

	sway "go.i3wm.org/i3"

	"github.com/nicolasavru/swaymonad-go/internal/logging"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Transport is the production Client, wrapping go.i3wm.org/i3's socket
// connection. It owns the command buffer and the configurable per-command
// delay, and marshals the library's event-receiver goroutine onto Run's
// single-consumer loop so handlers never run concurrently with each other.
type Transport struct {
	buf      CommandBuffer
	delay    time.Duration
	handlers map[EventKind][]Handler
	recv     *sway.EventReceiver
}

// NewTransport connects to the window server's IPC socket (as resolved by
// go.i3wm.org/i3's usual $SWAYSOCK / $I3SOCK discovery) and subscribes to
// the event types this engine ever needs.
func NewTransport(delay time.Duration) (*Transport, error) {
	t := &Transport{
		delay:    delay,
		handlers: make(map[EventKind][]Handler),
	}
	t.recv = sway.Subscribe(sway.WindowEventType, sway.BindingEventType)
	return t, nil
}

func (t *Transport) Send(cmd string) error {
	if cmd == "" {
		return nil
	}
	if t.buf.Enabled() {
		logging.Debug("buffering command", "command", cmd)
		t.buf.Append(cmd)
		return nil
	}
	return t.send(cmd)
}

func (t *Transport) send(cmd string) error {
	logging.Debug("executing command", "command", cmd)
	if t.delay > 0 {
		time.Sleep(t.delay)
	}
	results, err := sway.RunCommand(cmd)
	if err != nil {
		return NewError(KindTransport, "send", err)
	}
	for _, r := range results {
		if !r.Success {
			return NewError(KindProtocol, "send", fmt.Errorf("command %q failed: %s", cmd, r.Error))
		}
	}
	return nil
}

func (t *Transport) EnableBuffering() {
	t.buf.Enable()
}

func (t *Transport) DisableBuffering() error {
	joined := t.buf.Flush()
	if joined == "" {
		return nil
	}
	return t.send(joined)
}

func (t *Transport) GetTree() (*tree.Container, error) {
	wasBuffering := t.buf.Enabled()
	if err := t.DisableBuffering(); err != nil {
		return nil, err
	}
	root, err := sway.GetTree()
	if err != nil {
		return nil, NewError(KindTransport, "get_tree", err)
	}
	if wasBuffering {
		t.EnableBuffering()
	}
	return buildTree(&root, nil), nil
}

func (t *Transport) GetWorkspaces() ([]*tree.Container, error) {
	root, err := t.GetTree()
	if err != nil {
		return nil, err
	}
	wasBuffering := t.buf.Enabled()
	if err := t.DisableBuffering(); err != nil {
		return nil, err
	}
	replies, err := sway.GetWorkspaces()
	if err != nil {
		return nil, NewError(KindTransport, "get_workspaces", err)
	}
	if wasBuffering {
		t.EnableBuffering()
	}
	var out []*tree.Container
	for _, w := range replies {
		if ws := root.FindByID(int64(w.ID)); ws != nil {
			out = append(out, ws.Workspace())
		}
	}
	return out, nil
}

func (t *Transport) Subscribe(kind EventKind, handler Handler) {
	t.handlers[kind] = append(t.handlers[kind], handler)
}

// Run is the single-consumer event loop: it reads one i3/sway event at a
// time from the subscription and dispatches it to every registered
// handler for that kind before reading the next one, so handlers never
// interleave (spec.md §5).
func (t *Transport) Run() error {
	for t.recv.Next() {
		evt := t.recv.Event()
		switch e := evt.(type) {
		case *sway.WindowEvent:
			kind, ok := windowEventKind(e.Change)
			if !ok {
				continue
			}
			t.dispatch(Event{
				Kind:   kind,
				Window: tree.Event{Change: tree.EventChange(e.Change), ContainerID: int64(e.Container.ID)},
			})
		case *sway.BindingEvent:
			t.dispatch(Event{
				Kind:           EventBinding,
				BindingCommand: e.Binding.Command,
			})
		}
	}
	return NewError(KindTransport, "run", fmt.Errorf("event subscription closed"))
}

func (t *Transport) dispatch(evt Event) {
	for _, h := range t.handlers[evt.Kind] {
		h(evt)
	}
}

func windowEventKind(change string) (EventKind, bool) {
	switch change {
	case "new":
		return EventWindowNew, true
	case "close":
		return EventWindowClose, true
	case "move":
		return EventWindowMove, true
	default:
		return "", false
	}
}

// buildTree converts a go.i3wm.org/i3 Node snapshot into our own Container
// tree, wiring Parent pointers so Workspace() can walk upward. Floating
// nodes are attached under FloatingNodes, not Nodes, so Leaves() skips them
// per spec.md's floating-container invariant.
func buildTree(n *sway.Node, parent *tree.Container) *tree.Container {
	if n == nil {
		return nil
	}
	c := &tree.Container{
		ID:             int64(n.ID),
		Name:           n.Name,
		Layout:         tree.SplitLayout(n.Layout),
		Type:           tree.NodeType(n.Type),
		FullscreenMode: int(n.FullscreenMode),
		Floating:       tree.FloatingState(n.Floating),
		Focused:        n.Focused,
		Rect:           tree.Rect{X: n.Rect.X, Y: n.Rect.Y, Width: n.Rect.Width, Height: n.Rect.Height},
		Parent:         parent,
	}
	for _, child := range n.Nodes {
		c.Nodes = append(c.Nodes, buildTree(child, c))
	}
	for _, child := range n.FloatingNodes {
		c.FloatingNodes = append(c.FloatingNodes, buildTree(child, c))
	}
	return c
}
