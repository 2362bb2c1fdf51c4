// Package reflow implements the N-column master/stack canonical-form
// algorithm: one Reflow call runs one round over the columns, issuing at
// most one balancing move per adjacent column pair plus any column-count
// nudge, to bring a workspace closer to canonical form for a given
// (n_columns, n_masters); the caller loops, refetching between calls, until
// Reflow reports no mutation.
package reflow

import (
	"fmt"
	"math"

	"github.com/nicolasavru/swaymonad-go/internal/common"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Reflow performs one reflow step against workspace for an n-column layout
// with n_columns columns and n_masters leaves in the master column, and
// reports whether it issued any mutating command. It deliberately does
// not refetch workspace internally between the steps described in
// spec.md §4.6 step 5 beyond what those steps themselves require; the
// driver (internal/layout) is responsible for refetching and looping
// until Reflow returns false.
func Reflow(ctx *engine.Context, workspace *tree.Container, nColumns, nMasters int, active transform.Set) (bool, error) {
	if len(workspace.Leaves()) <= 1 {
		return false, nil
	}

	splitCmd, err := transform.RewriteCommand("splitv", active)
	if err != nil {
		return false, err
	}
	for _, node := range workspace.Nodes {
		if err := common.EnsureSplit(ctx, node, splitCmd); err != nil {
			return false, err
		}
	}

	workspace, err = common.RefetchContainer(ctx, workspace)
	if err != nil {
		return false, err
	}
	if workspace == nil {
		// The workspace disappeared mid-reflow (e.g. its last window
		// closed out from under us). Nothing left to do.
		return false, nil
	}

	leaves := workspace.Leaves()
	nSlaves := 0
	if len(leaves) > nMasters {
		nSlaves = len(leaves) - nMasters
	}
	slavesPerCol := 0
	if nColumns > 1 {
		slavesPerCol = int(math.Ceil(float64(nSlaves) / float64(nColumns-1)))
	}

	cols := orderedColumns(workspace, active)
	causedMutation := false

	for i, curCol := range cols {
		switch {
		case i == len(cols)-1 && i > 0: // last column
			if i > 1 {
				mutated, err := balanceCols(ctx, cols[i-1], slavesPerCol, curCol)
				if err != nil {
					return false, err
				}
				causedMutation = causedMutation || mutated
			}

			if len(curCol.Nodes) > 1 {
				switch {
				case len(cols) < nColumns:
					if err := nudge(ctx, workspace, curCol.Nodes[len(curCol.Nodes)-1], "move right", active); err != nil {
						return false, err
					}
					causedMutation = true
					if workspace, err = common.RefetchContainer(ctx, workspace); err != nil {
						return false, err
					}
				case len(cols) > nColumns:
					if err := nudge(ctx, workspace, curCol.Nodes[0], "move left", active); err != nil {
						return false, err
					}
					causedMutation = true
					if workspace, err = common.RefetchContainer(ctx, workspace); err != nil {
						return false, err
					}
				}
			}

		case i == 0: // master column
			if len(curCol.Nodes) > nMasters && len(cols) == 1 {
				if err := nudge(ctx, workspace, curCol.Nodes[0], "move left", active); err != nil {
					return false, err
				}
				causedMutation = true
				if workspace, err = common.RefetchContainer(ctx, workspace); err != nil {
					return false, err
				}
			}
			if len(cols) > 1 {
				mutated, err := balanceCols(ctx, curCol, nMasters, cols[i+1])
				if err != nil {
					return false, err
				}
				causedMutation = causedMutation || mutated
			}

		default: // interior column
			mutated, err := balanceCols(ctx, curCol, slavesPerCol, cols[i+1])
			if err != nil {
				return false, err
			}
			causedMutation = causedMutation || mutated
		}
	}

	return causedMutation, nil
}

// orderedColumns returns workspace's top-level children, reversed when the
// active transformation and the outer split orientation call for it, so
// the visible column order matches user expectation without rewriting the
// tree (spec.md §4.6).
func orderedColumns(workspace *tree.Container, active transform.Set) []*tree.Container {
	cols := append([]*tree.Container(nil), workspace.Nodes...)
	reverse := (active.Has(transform.ReflectX) && workspace.Layout == tree.SplitH) ||
		(active.Has(transform.ReflectY) && workspace.Layout == tree.SplitV)
	if reverse {
		for i, j := 0, len(cols)-1; i < j; i, j = i+1, j-1 {
			cols[i], cols[j] = cols[j], cols[i]
		}
	}
	return cols
}

// nudge issues a single transformed move on target, incrementing the move
// counter and preserving whatever was focused in workspace before the
// move (a move changes focus to the container being moved).
func nudge(ctx *engine.Context, workspace *tree.Container, target *tree.Container, cmd string, active transform.Set) error {
	rewritten, err := transform.RewriteCommand(cmd, active)
	if err != nil {
		return err
	}
	ctx.Moves.Inc()
	focused := workspace.FindFocused()
	if err := ctx.Client.Send(fmt.Sprintf("[con_id=%d] %s", target.ID, rewritten)); err != nil {
		return err
	}
	if focused != nil {
		return ctx.Client.Send(fmt.Sprintf("[con_id=%d] focus", focused.ID))
	}
	return nil
}

// balanceCols moves at most one leaf between col1 and col2 so col1 gets
// closer to col1Expected children, mutating the local child slices so
// later steps of the same reflow round see the tentative shape.
func balanceCols(ctx *engine.Context, col1 *tree.Container, col1Expected int, col2 *tree.Container) (bool, error) {
	if len(col1.Nodes) < col1Expected && len(col2.Nodes) > 0 {
		moved := col2.Nodes[0]
		if err := common.MoveContainer(ctx, moved, col1); err != nil {
			return false, err
		}
		col2.Nodes = col2.Nodes[1:]
		col1.Nodes = append(col1.Nodes, moved)
		return true, nil
	}

	if len(col1.Nodes) > col1Expected && len(col1.Nodes) > 1 {
		moved := col1.Nodes[len(col1.Nodes)-1]
		if err := common.AddNodeToFront(ctx, col2, moved); err != nil {
			return false, err
		}
		col1.Nodes = col1.Nodes[:len(col1.Nodes)-1]
		col2.Nodes = append([]*tree.Container{moved}, col2.Nodes...)
		return true, nil
	}

	return false, nil
}
