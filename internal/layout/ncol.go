package layout

import (
	"fmt"

	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/cycle"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/logging"
	"github.com/nicolasavru/swaymonad-go/internal/reflow"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// NCol is the xmonad-style master/stack layout: the first NMasters leaves
// occupy a master column, the rest are spread evenly across the remaining
// NColumns-1 stack columns.
type NCol struct {
	Base
	NColumns int
}

// NewNCol constructs an NCol layout with nColumns columns.
func NewNCol(workspaceID int64, nColumns, nMasters int, transforms transform.Set) *NCol {
	return &NCol{Base: NewBase(workspaceID, nMasters, transforms), NColumns: nColumns}
}

func (n *NCol) String() string {
	return fmt.Sprintf("NCol(%d, %d, %d)", n.workspaceID, n.NColumns, n.nMasters)
}

// Run reacts to a window lifecycle event (or nil, for an out-of-band
// trigger like a master-count change) and then drives the workspace back
// to canonical n-column form.
func (n *NCol) Run(ctx *engine.Context, registry *Registry, event *tree.Event) error {
	workspace, err := n.workspace(ctx)
	if err != nil {
		return err
	}
	if n.oldWorkspace == nil {
		n.oldWorkspace = workspace
	}
	if workspace == nil {
		logging.Debug("workspace no longer exists, not running layout", "workspace", n.workspaceID)
		return nil
	}

	var postHooks []func() error

	switch {
	case event != nil && event.Change == tree.EventNew:
		workspace, err = common.RefetchContainer(ctx, workspace)
		if err != nil {
			return err
		}
		if workspace == nil {
			return nil
		}
		oldLeafIDs := tree.LeafIDSet(n.oldWorkspace.Leaves())
		leafIDs := tree.LeafIDSet(workspace.Leaves())
		if sameIDSet(oldLeafIDs, leafIDs) {
			// The new container is not a tiled leaf (e.g. it is already
			// floating): nothing to displace and nothing to reflow.
			return nil
		}
		if err := cycle.SwapWithWindow(ctx, -1, nil, true); err != nil {
			return err
		}
		if con := workspace.FindByID(event.ContainerID); con != nil && con.FullscreenMode == 1 {
			id := con.ID
			postHooks = append(postHooks, func() error {
				return ctx.Client.Send(fmt.Sprintf("[con_id=%d] fullscreen", id))
			})
		}

	case event != nil && event.Change == tree.EventClose:
		focusedWS, err := common.GetFocusedWorkspace(ctx)
		if err != nil {
			return err
		}
		closed := n.oldWorkspace.FindByID(event.ContainerID)
		if focusedWS != nil && focusedWS.ID == workspace.ID && closed != nil && !common.IsFloating(closed) {
			oldLeafIDs := tree.LeafIDSet(n.oldWorkspace.Leaves())
			leafIDs := tree.LeafIDSet(workspace.Leaves())
			windowWasFullscreen := closed.FullscreenMode == 1
			nextWindow := closed
			for i := 0; i < len(oldLeafIDs); i++ {
				nextWindow = cycle.FindOffsetWindow(nextWindow, 1)
				if nextWindow == nil {
					break
				}
				if leafIDs[nextWindow.ID] {
					if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", nextWindow.ID)); err != nil {
						return err
					}
					if windowWasFullscreen {
						if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] fullscreen", nextWindow.ID)); err != nil {
							return err
						}
					}
					break
				}
			}
		}

	case event != nil && event.Change == tree.EventMove:
		if ctx.Moves.Value() > 0 {
			ctx.Moves.Dec()
			return nil
		}
		windowOfEvent, err := common.GetWindowOfEvent(ctx, *event)
		if err != nil {
			return err
		}
		if windowOfEvent != nil {
			if err := cycle.SwapWithWindow(ctx, -1, windowOfEvent, false); err != nil {
				return err
			}
		}
		if err := RelayoutOldWorkspace(ctx, registry, workspace); err != nil {
			return err
		}
	}

	causedMutation := true
	for causedMutation {
		workspace, err = common.RefetchContainer(ctx, workspace)
		if err != nil {
			return err
		}
		if workspace == nil {
			causedMutation = false
			break
		}
		causedMutation, err = reflow.Reflow(ctx, workspace, n.NColumns, n.nMasters, n.transforms)
		if err != nil {
			return err
		}
	}

	if workspace != nil {
		focusedWS, err := common.GetFocusedWorkspace(ctx)
		if err != nil {
			return err
		}
		if focusedWS != nil && focusedWS.ID == workspace.ID {
			if focused := workspace.FindFocused(); focused != nil {
				if err := cycle.RefocusWindow(ctx, focused); err != nil {
					return err
				}
			}
		}
	}

	for _, hook := range postHooks {
		if err := hook(); err != nil {
			return err
		}
	}

	n.oldWorkspace = workspace
	return nil
}

func sameIDSet(a, b map[int64]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}
