package layout

import (
	"fmt"

	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Nop leaves the tree exactly as the window server already arranged it; it
// exists for workspaces the user wants to manage manually without this
// engine fighting them over placement.
type Nop struct {
	Base
}

// NewNop constructs a Nop layout.
func NewNop(workspaceID int64, nMasters int, transforms transform.Set) *Nop {
	return &Nop{Base: NewBase(workspaceID, nMasters, transforms)}
}

func (n *Nop) String() string {
	return fmt.Sprintf("Nop(%d)", n.workspaceID)
}

// Move sends direction straight to the window server, unrewritten: Nop
// doesn't track an n-column shape, so there's nothing to reflow around.
func (n *Nop) Move(ctx *engine.Context, direction string) error {
	return ctx.Client.Send(fmt.Sprintf("move %s", direction))
}

// Run relays a move event to the workspace it originated from (so that
// workspace's own layout, if any, can react) and otherwise does nothing
// but keep focus where the window server already put it.
func (n *Nop) Run(ctx *engine.Context, registry *Registry, event *tree.Event) error {
	workspace, err := n.workspace(ctx)
	if err != nil {
		return err
	}
	if workspace == nil {
		return nil
	}

	if event != nil && event.Change == tree.EventMove {
		if err := RelayoutOldWorkspace(ctx, registry, workspace); err != nil {
			return err
		}
	}

	if focused := workspace.FindFocused(); focused != nil {
		return ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", focused.ID))
	}
	return nil
}
