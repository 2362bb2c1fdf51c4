// Package master implements the operations that act on the "biggest" leaf
// of the focused workspace: focusing it, resizing it, and promoting the
// focused window to take its place.
package master

import (
	"fmt"
	"strings"

	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Biggest returns the leaf of container maximizing rect width*height,
// ties broken by tree order (the first leaf found at the maximum area
// wins, matching a left-to-right scan that never replaces an existing
// maximum with an equal one).
func Biggest(container *tree.Container) *tree.Container {
	var best *tree.Container
	bestArea := -1
	for _, leaf := range container.Leaves() {
		if area := leaf.Rect.Area(); area > bestArea {
			best = leaf
			bestArea = area
		}
	}
	return best
}

// FocusMaster focuses the biggest leaf of the focused workspace.
func FocusMaster(ctx *engine.Context) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil {
		return err
	}
	m := Biggest(ws)
	if m == nil {
		return nil
	}
	return ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", m.ID))
}

// ResizeMaster issues a resize command on the biggest leaf of the focused
// workspace.
func ResizeMaster(ctx *engine.Context, args []string) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil {
		return err
	}
	m := Biggest(ws)
	if m == nil {
		return nil
	}
	return ctx.Client.Send(fmt.Sprintf("[con_id=%d] resize %s", m.ID, strings.Join(args, " ")))
}

// PromoteWindow swaps the focused window with the biggest leaf of the
// focused workspace and focuses it, restoring fullscreen if the focused
// window (not the master) was fullscreen before the swap.
func PromoteWindow(ctx *engine.Context) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil {
		return err
	}
	focused, err := common.GetFocusedWindow(ctx)
	if err != nil {
		return err
	}
	if focused == nil {
		return nil
	}
	m := Biggest(ws)
	if m == nil {
		return nil
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] swap container with con_id %d", focused.ID, m.ID)); err != nil {
		return err
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", focused.ID)); err != nil {
		return err
	}
	if focused.FullscreenMode == 1 {
		return ctx.Client.Send(fmt.Sprintf("[con_id=%d] fullscreen", focused.ID))
	}
	return nil
}
