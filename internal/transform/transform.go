// Package transform implements the three orthogonal per-workspace
// transformations (reflect horizontally, reflect vertically, transpose):
// pure rewriting of directional command strings, and the live-tree
// mutations that realize a transformation when the user toggles it.
package transform

import (
	"fmt"
	"strings"

	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipc"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Kind identifies one of the three transformations.
type Kind int

const (
	ReflectX Kind = iota
	ReflectY
	Transpose
)

func (k Kind) String() string {
	switch k {
	case ReflectX:
		return "reflectx"
	case ReflectY:
		return "reflecty"
	case Transpose:
		return "transpose"
	default:
		return "unknown"
	}
}

// Set is the collection of transformations currently active on a
// workspace.
type Set map[Kind]bool

// Has reports whether k is active.
func (s Set) Has(k Kind) bool {
	return s[k]
}

// Toggle flips k's membership in the set.
func (s Set) Toggle(k Kind) {
	if s[k] {
		delete(s, k)
	} else {
		s[k] = true
	}
}

// Clone returns an independent copy, used when carrying transformations
// over to a new Layout instance (set_layout).
func (s Set) Clone() Set {
	out := make(Set, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// RewriteCommand applies the active command-rewriting rules to a
// direction-bearing command string, in order TRANSPOSE, REFLECTX,
// REFLECTY, before it is sent to the window server.
func RewriteCommand(cmd string, active Set) (string, error) {
	var err error
	if active.Has(Transpose) {
		if cmd, err = transposeCommand(cmd); err != nil {
			return "", err
		}
	}
	if active.Has(ReflectX) {
		if cmd, err = reflectXCommand(cmd); err != nil {
			return "", err
		}
	}
	if active.Has(ReflectY) {
		if cmd, err = reflectYCommand(cmd); err != nil {
			return "", err
		}
	}
	return cmd, nil
}

func reflectXDirection(dir string) (string, error) {
	switch dir {
	case "right":
		return "left", nil
	case "left":
		return "right", nil
	case "up", "down":
		return dir, nil
	default:
		return "", ipc.NewError(ipc.KindInvalidArgument, "reflectx_direction", fmt.Errorf("invalid direction: %q", dir))
	}
}

func reflectXCommand(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 || fields[0] != "move" {
		return cmd, nil
	}
	dir, err := reflectXDirection(fields[1])
	if err != nil {
		return "", err
	}
	return "move " + dir, nil
}

func reflectYDirection(dir string) (string, error) {
	switch dir {
	case "up":
		return "down", nil
	case "down":
		return "up", nil
	case "left", "right":
		return dir, nil
	default:
		return "", ipc.NewError(ipc.KindInvalidArgument, "reflecty_direction", fmt.Errorf("invalid direction: %q", dir))
	}
}

func reflectYCommand(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 || fields[0] != "move" {
		return cmd, nil
	}
	dir, err := reflectYDirection(fields[1])
	if err != nil {
		return "", err
	}
	return "move " + dir, nil
}

func transposeDirection(dir string) (string, error) {
	switch dir {
	case "right":
		return "down", nil
	case "down":
		return "left", nil
	case "left":
		return "up", nil
	case "up":
		return "right", nil
	default:
		return "", ipc.NewError(ipc.KindInvalidArgument, "transpose_direction", fmt.Errorf("invalid direction: %q", dir))
	}
}

func transposeSplit(split string) string {
	switch split {
	case "splitv":
		return "splith"
	case "split v":
		return "split h"
	case "split vertical":
		return "split horizontal"
	case "splith":
		return "splitv"
	case "split h":
		return "split v"
	case "split horizontal":
		return "split vertical"
	default:
		return split
	}
}

func transposeCommand(cmd string) (string, error) {
	fields := strings.Fields(cmd)
	if len(fields) == 0 {
		return cmd, nil
	}
	switch {
	case fields[0] == "move":
		dir, err := transposeDirection(fields[1])
		if err != nil {
			return "", err
		}
		return "move " + dir, nil
	case strings.HasPrefix(fields[0], "split"):
		return transposeSplit(cmd), nil
	default:
		return cmd, nil
	}
}

// ReflectContainer walks the subtree rooted at container depth-first,
// reversing the children of every node whose layout is in splitFilter via
// pairwise con_id swap. REFLECTX uses {splith}, REFLECTY uses {splitv}.
func ReflectContainer(ctx *engine.Context, container *tree.Container, splitFilter map[tree.SplitLayout]bool) error {
	if splitFilter[container.Layout] {
		if err := common.ReverseNodes(ctx, container, 0); err != nil {
			return err
		}
	}
	for _, node := range container.Nodes {
		if err := ReflectContainer(ctx, node, splitFilter); err != nil {
			return err
		}
	}
	return nil
}

// TransposeContainer swaps row/column roles under container (normally a
// workspace root). At the root, it toggles the first child's split, moves
// it to the opposite edge (a split-only move; this never generates a real
// move event, so no move-counter bookkeeping is needed), then reverses the
// remaining children starting at index 1. It recurses into every child,
// toggling each one's own first child's split, and finally restores focus
// to whatever was focused before the walk (the intervening "move"/"swap"
// commands can otherwise leave focus on the wrong container).
func TransposeContainer(ctx *engine.Context, container *tree.Container) error {
	focused, err := common.GetFocusedWindow(ctx)
	if err != nil {
		return err
	}

	if err := transposeContainerRec(ctx, container); err != nil {
		return err
	}

	if focused != nil {
		if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", focused.ID)); err != nil {
			return err
		}
	}
	return nil
}

func transposeContainerRec(ctx *engine.Context, container *tree.Container) error {
	if len(container.Nodes) == 0 {
		return nil
	}

	first := container.Nodes[0]
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] layout toggle split", first.ID)); err != nil {
		return err
	}

	if container.Type == tree.TypeWorkspace {
		switch container.Layout {
		case tree.SplitH:
			if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] move up", first.ID)); err != nil {
				return err
			}
		case tree.SplitV:
			if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] move left", first.ID)); err != nil {
				return err
			}
		}
		if err := common.ReverseNodes(ctx, container, 1); err != nil {
			return err
		}
	}

	for _, node := range container.Nodes {
		if err := transposeContainerRec(ctx, node); err != nil {
			return err
		}
	}
	return nil
}
