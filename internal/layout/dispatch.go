package layout

import (
	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// LayoutDispatcher is the handler bound to new/close/move window events: it
// resolves the workspace the event belongs to (falling back to the
// focused workspace), finds or creates that workspace's layout, and runs
// it with command buffering enabled so the whole reaction goes out as one
// batch.
func LayoutDispatcher(ctx *engine.Context, registry *Registry, event *tree.Event) error {
	workspace, err := resolveEventWorkspace(ctx, event)
	if err != nil {
		return err
	}
	if workspace == nil {
		return nil
	}

	l := registry.Get(workspace)
	ctx.Client.EnableBuffering()
	if err := l.Run(ctx, registry, event); err != nil {
		_ = ctx.Client.DisableBuffering()
		return err
	}
	return ctx.Client.DisableBuffering()
}

func resolveEventWorkspace(ctx *engine.Context, event *tree.Event) (*tree.Container, error) {
	if event != nil {
		ws, err := common.GetWorkspaceOfEvent(ctx, *event)
		if err != nil {
			return nil, err
		}
		if ws != nil {
			return ws, nil
		}
	}
	return common.GetFocusedWorkspace(ctx)
}

// RelayoutOldWorkspace re-runs the layout of whichever workspace is
// currently focused, unless that's newWorkspace itself, in which case it
// bounces through the previous workspace via "workspace back_and_forth"
// to find the real old one. Used after a window moves between outputs,
// where sway reports both the origin and destination workspace events
// against the same (destination) workspace id.
func RelayoutOldWorkspace(ctx *engine.Context, registry *Registry, newWorkspace *tree.Container) error {
	oldWorkspace, err := common.GetFocusedWorkspace(ctx)
	if err != nil {
		return err
	}
	if oldWorkspace != nil && newWorkspace != nil && oldWorkspace.ID == newWorkspace.ID {
		if err := ctx.Client.Send("workspace back_and_forth"); err != nil {
			return err
		}
		if oldWorkspace, err = common.GetFocusedWorkspace(ctx); err != nil {
			return err
		}
		if err := ctx.Client.Send("workspace back_and_forth"); err != nil {
			return err
		}
	}
	if oldWorkspace == nil {
		return nil
	}
	return registry.Get(oldWorkspace).Run(ctx, registry, nil)
}

// IncrementMastersDispatcher grows the focused workspace's master column
// by one and re-runs its layout.
func IncrementMastersDispatcher(ctx *engine.Context, registry *Registry) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	l := registry.Get(ws)
	l.IncrementMasters()
	return l.Run(ctx, registry, nil)
}

// DecrementMastersDispatcher shrinks the focused workspace's master column
// by one (never below one) and re-runs its layout.
func DecrementMastersDispatcher(ctx *engine.Context, registry *Registry) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	l := registry.Get(ws)
	l.DecrementMasters()
	return l.Run(ctx, registry, nil)
}

// MoveDispatcher forwards a directional move to the focused workspace's
// layout.
func MoveDispatcher(ctx *engine.Context, registry *Registry, direction string) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	return registry.Get(ws).Move(ctx, direction)
}

// SetLayoutDispatcher replaces the focused workspace's layout with name,
// carrying over its master count and transformations, then re-runs it.
func SetLayoutDispatcher(ctx *engine.Context, registry *Registry, name string) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	if err := ctx.Client.Send("mode default"); err != nil {
		return err
	}
	l := registry.Set(ws, name)
	return l.Run(ctx, registry, nil)
}

// FullscreenDispatcher toggles fullscreen on the focused window and asks
// its layout to refresh its cached tree, since fullscreening doesn't
// change the tile shape but does change fullscreen_mode on a leaf the
// layout may be holding a stale copy of.
func FullscreenDispatcher(ctx *engine.Context, registry *Registry) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	if err := ctx.Client.Send("fullscreen"); err != nil {
		return err
	}
	return registry.Get(ws).RefetchContainer(ctx)
}

// reflectX and reflectY re-reverse the focused workspace's splith (resp.
// splitv) containers in place; they are involutions, so the same call both
// turns a reflection on and off.
func reflectX(ctx *engine.Context) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	return transform.ReflectContainer(ctx, ws, map[tree.SplitLayout]bool{tree.SplitH: true})
}

func reflectY(ctx *engine.Context) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	return transform.ReflectContainer(ctx, ws, map[tree.SplitLayout]bool{tree.SplitV: true})
}

// transposeOrchestrated undoes any active reflections, transposes the raw
// tree, then re-applies the reflections: reflect and transpose don't
// commute as tree mutations, even though their command-rewriting
// counterparts do.
func transposeOrchestrated(ctx *engine.Context, active transform.Set) error {
	if active.Has(transform.ReflectX) {
		if err := reflectX(ctx); err != nil {
			return err
		}
	}
	if active.Has(transform.ReflectY) {
		if err := reflectY(ctx); err != nil {
			return err
		}
	}

	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	if err := transform.TransposeContainer(ctx, ws); err != nil {
		return err
	}

	if active.Has(transform.ReflectX) {
		if err := reflectX(ctx); err != nil {
			return err
		}
	}
	if active.Has(transform.ReflectY) {
		if err := reflectY(ctx); err != nil {
			return err
		}
	}
	return nil
}

// TransformationDispatcher toggles kind's membership in the focused
// workspace's active transformation set, applies the corresponding tree
// mutation, and re-runs the layout so the new orientation takes effect
// immediately.
func TransformationDispatcher(ctx *engine.Context, registry *Registry, kind transform.Kind) error {
	ws, err := common.GetFocusedWorkspace(ctx)
	if err != nil || ws == nil {
		return err
	}
	l := registry.Get(ws)
	active := l.Transforms()
	active.Toggle(kind)

	var mutErr error
	switch kind {
	case transform.Transpose:
		mutErr = transposeOrchestrated(ctx, active)
	case transform.ReflectX:
		mutErr = reflectX(ctx)
	case transform.ReflectY:
		mutErr = reflectY(ctx)
	}
	if mutErr != nil {
		return mutErr
	}
	return l.Run(ctx, registry, nil)
}

// TransposeDispatcher toggles the transpose transformation on the focused
// workspace.
func TransposeDispatcher(ctx *engine.Context, registry *Registry) error {
	return TransformationDispatcher(ctx, registry, transform.Transpose)
}

// ReflectXDispatcher toggles the horizontal-reflect transformation on the
// focused workspace.
func ReflectXDispatcher(ctx *engine.Context, registry *Registry) error {
	return TransformationDispatcher(ctx, registry, transform.ReflectX)
}

// ReflectYDispatcher toggles the vertical-reflect transformation on the
// focused workspace.
func ReflectYDispatcher(ctx *engine.Context, registry *Registry) error {
	return TransformationDispatcher(ctx, registry, transform.ReflectY)
}
