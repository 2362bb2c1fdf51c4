// Package common provides the small set of tree/IPC queries and
// tree-rewriting primitives that every other package in this module
// builds on: fetching the focused workspace/window, refetching a stale
// container, and the two building blocks reflow and the transformations
// use to actually move containers around (move-by-mark, node reversal,
// front-insertion).
package common

import (
	"fmt"
	"math"

	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipc"
	"github.com/nicolasavru/swaymonad-go/internal/logging"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// swaymonadMark is the single internal mark name reserved for move-by-mark
// (spec.md §6, "Mark namespace"). The engine always unmarks after use.
const swaymonadMark = "__swaymonad__mark"

// GetWorkspaces returns every workspace container in the current tree.
func GetWorkspaces(ctx *engine.Context) ([]*tree.Container, error) {
	return ctx.Client.GetWorkspaces()
}

// GetFocusedWorkspace returns the workspace container holding the
// currently focused window.
func GetFocusedWorkspace(ctx *engine.Context) (*tree.Container, error) {
	root, err := ctx.Client.GetTree()
	if err != nil {
		return nil, err
	}
	focused := root.FindFocused()
	if focused == nil {
		return nil, ipc.NewError(ipc.KindLogic, "get_focused_workspace", fmt.Errorf("no window is focused"))
	}
	return focused.Workspace(), nil
}

// GetFocusedWindow returns the currently focused leaf container.
func GetFocusedWindow(ctx *engine.Context) (*tree.Container, error) {
	root, err := ctx.Client.GetTree()
	if err != nil {
		return nil, err
	}
	return root.FindFocused(), nil
}

// GetWindowOfEvent resolves the container an event was reported against,
// against a freshly fetched tree. Returns nil (not an error) if the
// container id no longer exists: a window event's referent commonly
// disappears by the time the handler fetches the tree (spec.md §7,
// tree-stale is expected).
func GetWindowOfEvent(ctx *engine.Context, evt tree.Event) (*tree.Container, error) {
	root, err := ctx.Client.GetTree()
	if err != nil {
		return nil, err
	}
	return root.FindByID(evt.ContainerID), nil
}

// GetWorkspaceOfEvent is GetWindowOfEvent followed by Workspace().
func GetWorkspaceOfEvent(ctx *engine.Context, evt tree.Event) (*tree.Container, error) {
	window, err := GetWindowOfEvent(ctx, evt)
	if err != nil {
		return nil, err
	}
	if window == nil {
		return nil, nil
	}
	return window.Workspace(), nil
}

// RefetchContainer returns the current tree's copy of container, looked up
// by id, or nil if it no longer exists.
func RefetchContainer(ctx *engine.Context, container *tree.Container) (*tree.Container, error) {
	if container == nil {
		return nil, nil
	}
	root, err := ctx.Client.GetTree()
	if err != nil {
		return nil, err
	}
	return root.FindByID(container.ID), nil
}

// MoveContainer moves con1 to be adjacent to con2 via mark-and-move,
// incrementing the move counter once since this issues a real move
// command that will echo back as a window::move event.
func MoveContainer(ctx *engine.Context, con1, con2 *tree.Container) error {
	ctx.Moves.Inc()
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] mark %s", con2.ID, swaymonadMark)); err != nil {
		return err
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] move window to mark %s", con1.ID, swaymonadMark)); err != nil {
		return err
	}
	return ctx.Client.Send(fmt.Sprintf("[con_id=%d] unmark %s", con2.ID, swaymonadMark))
}

// ReverseNodes reverses container's children from startingIdx onward by
// pairwise con_id swap, stopping at the midpoint. Swaps don't generate
// move events, so no move-counter bookkeeping is needed.
func ReverseNodes(ctx *engine.Context, container *tree.Container, startingIdx int) error {
	nodes := container.Nodes
	logging.Debug("reversing nodes", "container", container.ID, "starting_idx", startingIdx)
	mid := int(math.Ceil(float64(len(nodes)) / 2))
	for i := startingIdx; i < mid; i++ {
		target := nodes[len(nodes)-(i-startingIdx)-1]
		node := nodes[i]
		if node.ID == target.ID {
			continue
		}
		if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] swap container with con_id %d", node.ID, target.ID)); err != nil {
			return err
		}
	}
	return nil
}

// InsertNodeAtIndex moves node into container and then swaps it into
// position index, counting from the container's pre-move child order
// (the move already happened, so container.Nodes is still the old list).
func InsertNodeAtIndex(ctx *engine.Context, container, node *tree.Container, index int) error {
	logging.Debug("inserting node", "node", node.ID, "container", container.ID, "index", index)
	if err := MoveContainer(ctx, node, container); err != nil {
		return err
	}
	for i := len(container.Nodes) - 1; i >= index; i-- {
		old := container.Nodes[i]
		if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] swap container with con_id %d", node.ID, old.ID)); err != nil {
			return err
		}
	}
	return nil
}

// AddNodeToFront moves node into container, placing it first.
func AddNodeToFront(ctx *engine.Context, container, node *tree.Container) error {
	return InsertNodeAtIndex(ctx, container, node, 0)
}

// EnsureSplit issues split if container's layout doesn't already match it.
func EnsureSplit(ctx *engine.Context, container *tree.Container, split string) error {
	if string(container.Layout) == split {
		return nil
	}
	return ctx.Client.Send(fmt.Sprintf("[con_id=%d] %s", container.ID, split))
}

// IsFloating reports whether container is excluded from tiling.
func IsFloating(container *tree.Container) bool {
	return container.IsFloating()
}
