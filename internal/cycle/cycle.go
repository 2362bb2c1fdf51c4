// Package cycle implements offset-based navigation along a workspace's
// leaf order: finding the window k steps away, focusing it, swapping with
// it, and recentering the pointer after a focus change.
package cycle

import (
	"fmt"

	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// FindOffsetWindow returns the leaf offset positions away from container
// along its workspace's leaf order, wrapping around. Returns nil if
// container is floating (not present in the leaf order).
func FindOffsetWindow(container *tree.Container, offset int) *tree.Container {
	ws := container.Workspace()
	if ws == nil {
		return nil
	}
	leaves := ws.Leaves()
	idx := -1
	for i, l := range leaves {
		if l.ID == container.ID {
			idx = i
			break
		}
	}
	if idx == -1 || len(leaves) == 0 {
		return nil
	}
	n := len(leaves)
	target := ((idx+offset)%n + n) % n
	return leaves[target]
}

// FocusWindow focuses the window offset steps away from window (or the
// currently focused window if window is nil), preserving fullscreen.
func FocusWindow(ctx *engine.Context, offset int, window *tree.Container) error {
	focused := window
	if focused == nil {
		var err error
		focused, err = common.GetFocusedWindow(ctx)
		if err != nil {
			return err
		}
	}
	if focused == nil {
		return nil
	}

	newWindow := FindOffsetWindow(focused, offset)
	if newWindow == nil {
		return nil
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", newWindow.ID)); err != nil {
		return err
	}
	if focused.FullscreenMode == 1 {
		return ctx.Client.Send(fmt.Sprintf("[con_id=%d] fullscreen", newWindow.ID))
	}
	return nil
}

// SwapWithWindow swaps the focused window (or window, if given) with the
// window offset steps away, optionally re-focusing it afterward.
func SwapWithWindow(ctx *engine.Context, offset int, window *tree.Container, focusAfterSwap bool) error {
	focused := window
	if focused == nil {
		var err error
		focused, err = common.GetFocusedWindow(ctx)
		if err != nil {
			return err
		}
	}
	if focused == nil {
		return nil
	}

	newWindow := FindOffsetWindow(focused, offset)
	if newWindow == nil {
		return nil
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] swap container with con_id %d", focused.ID, newWindow.ID)); err != nil {
		return err
	}
	if !focusAfterSwap {
		return nil
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", focused.ID)); err != nil {
		return err
	}
	if focused.FullscreenMode == 1 {
		return ctx.Client.Send(fmt.Sprintf("[con_id=%d] fullscreen", newWindow.ID))
	}
	return nil
}

// RefocusWindow re-centers the pointer on window: it first focuses the
// next leaf in cycle order, then focuses window again. A plain "focus"
// command can leave the cursor sitting on a window's border; bouncing
// through a neighbor first moves it to window's center instead.
func RefocusWindow(ctx *engine.Context, window *tree.Container) error {
	if err := FocusWindow(ctx, 1, window); err != nil {
		return err
	}
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", window.ID)); err != nil {
		return err
	}
	if window.FullscreenMode == 1 {
		return ctx.Client.Send(fmt.Sprintf("[con_id=%d] fullscreen", window.ID))
	}
	return nil
}
