// Package layout implements the per-workspace tiling algorithms
// (n-column master/stack, and the no-op passthrough layout) together with
// the registry that remembers which layout instance, master count, and
// active transformations belong to which workspace, and the handlers that
// window-server events and key bindings are routed to.
package layout

import (
	"fmt"

	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Layout is the behavior every tiling strategy implements: reacting to a
// window-server event (or to nil, when invoked outside of an event, e.g.
// after changing n_masters), moving the focused window in a direction, and
// carrying the per-workspace state (master count, active transformations)
// a set_layout call needs to hand off to a newly chosen strategy.
type Layout interface {
	Run(ctx *engine.Context, registry *Registry, event *tree.Event) error
	Move(ctx *engine.Context, direction string) error
	IncrementMasters() int
	DecrementMasters() int
	NMasters() int
	Transforms() transform.Set
	SetTransforms(s transform.Set)
	WorkspaceID() int64
	RefetchContainer(ctx *engine.Context) error
	String() string
}

// Base carries the state and default behavior common to every Layout:
// which workspace it belongs to, how many masters it reserves, which
// transformations are active, and the last tree shape it saw (used by new
// window / close window heuristics to detect what changed).
type Base struct {
	workspaceID  int64
	nMasters     int
	transforms   transform.Set
	oldWorkspace *tree.Container
}

// NewBase constructs the shared state for a layout instance. nMasters is
// clamped to at least 1.
func NewBase(workspaceID int64, nMasters int, transforms transform.Set) Base {
	if nMasters < 1 {
		nMasters = 1
	}
	if transforms == nil {
		transforms = transform.Set{}
	}
	return Base{workspaceID: workspaceID, nMasters: nMasters, transforms: transforms}
}

func (b *Base) WorkspaceID() int64 { return b.workspaceID }

func (b *Base) NMasters() int { return b.nMasters }

func (b *Base) IncrementMasters() int {
	b.nMasters++
	return b.nMasters
}

func (b *Base) DecrementMasters() int {
	if b.nMasters > 1 {
		b.nMasters--
	}
	return b.nMasters
}

func (b *Base) Transforms() transform.Set { return b.transforms }

func (b *Base) SetTransforms(s transform.Set) { b.transforms = s }

// transformCommand rewrites cmd according to this layout's active
// transformations before it is sent to the window server.
func (b *Base) transformCommand(cmd string) (string, error) {
	return transform.RewriteCommand(cmd, b.transforms)
}

// workspace resolves this layout's workspace container from a fresh tree,
// or nil if the workspace no longer exists.
func (b *Base) workspace(ctx *engine.Context) (*tree.Container, error) {
	root, err := ctx.Client.GetTree()
	if err != nil {
		return nil, err
	}
	return root.FindByID(b.workspaceID), nil
}

// RefetchContainer refreshes the cached old-workspace snapshot in place,
// used after an out-of-band mutation like "fullscreen" that the layout
// driver itself didn't issue.
func (b *Base) RefetchContainer(ctx *engine.Context) error {
	ws, err := common.RefetchContainer(ctx, b.oldWorkspace)
	if err != nil {
		return err
	}
	b.oldWorkspace = ws
	return nil
}

// Move is the default directional-move behavior shared by every layout
// except Nop: focus in direction, swap the newly-focused window with the
// previously-focused one, then restore focus to the original window (so
// the window visually "moves" while focus stays put).
func (b *Base) Move(ctx *engine.Context, direction string) error {
	focused, err := common.GetFocusedWindow(ctx)
	if err != nil {
		return err
	}
	if focused == nil {
		return nil
	}
	if err := ctx.Client.Send(fmt.Sprintf("focus %s", direction)); err != nil {
		return err
	}
	newWindow, err := common.GetFocusedWindow(ctx)
	if err != nil {
		return err
	}
	if newWindow == nil {
		return nil
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] swap container with con_id %d", focused.ID, newWindow.ID)); err != nil {
		return err
	}
	return ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", focused.ID))
}
