package common

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipctest"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

func buildSimpleTree() (root, ws, a, b *tree.Container) {
	a = &tree.Container{ID: 1, Type: tree.TypeCon, Focused: true}
	b = &tree.Container{ID: 2, Type: tree.TypeCon}
	ws = &tree.Container{ID: 10, Type: tree.TypeWorkspace, Nodes: []*tree.Container{a, b}}
	root = &tree.Container{ID: 0, Type: tree.TypeRoot, Nodes: []*tree.Container{ws}}
	a.Parent, b.Parent, ws.Parent = ws, ws, root
	return
}

func TestGetFocusedWorkspace(t *testing.T) {
	root, ws, _, _ := buildSimpleTree()
	fake := ipctest.New()
	fake.Tree = root
	ctx := engine.New(fake)

	got, err := GetFocusedWorkspace(ctx)
	require.NoError(t, err)
	require.Equal(t, ws.ID, got.ID)
}

func TestGetFocusedWorkspaceErrorsWithNoFocus(t *testing.T) {
	root, _, a, _ := buildSimpleTree()
	a.Focused = false
	fake := ipctest.New()
	fake.Tree = root
	ctx := engine.New(fake)

	_, err := GetFocusedWorkspace(ctx)
	require.Error(t, err)
}

func TestGetWindowOfEventMissingContainerReturnsNilNotError(t *testing.T) {
	root, _, _, _ := buildSimpleTree()
	fake := ipctest.New()
	fake.Tree = root
	ctx := engine.New(fake)

	con, err := GetWindowOfEvent(ctx, tree.Event{Change: tree.EventClose, ContainerID: 999})
	require.NoError(t, err)
	require.Nil(t, con)
}

func TestRefetchContainerNilIsNilNotError(t *testing.T) {
	fake := ipctest.New()
	ctx := engine.New(fake)

	con, err := RefetchContainer(ctx, nil)
	require.NoError(t, err)
	require.Nil(t, con)
}

func TestMoveContainerIncrementsMoveCounter(t *testing.T) {
	_, _, a, b := buildSimpleTree()
	fake := ipctest.New()
	ctx := engine.New(fake)

	require.Equal(t, 0, ctx.Moves.Value())
	err := MoveContainer(ctx, a, b)
	require.NoError(t, err)
	require.Equal(t, 1, ctx.Moves.Value())
	require.Equal(t, []string{
		"[con_id=2] mark __swaymonad__mark",
		"[con_id=1] move window to mark __swaymonad__mark",
		"[con_id=2] unmark __swaymonad__mark",
	}, fake.Sent)
}

func TestReverseNodesSwapsPairwiseToMidpoint(t *testing.T) {
	a := &tree.Container{ID: 1}
	b := &tree.Container{ID: 2}
	c := &tree.Container{ID: 3}
	ws := &tree.Container{ID: 10, Nodes: []*tree.Container{a, b, c}}

	fake := ipctest.New()
	ctx := engine.New(fake)

	err := ReverseNodes(ctx, ws, 0)
	require.NoError(t, err)
	// Three nodes: only the first/last pair crosses the midpoint; the
	// middle element never needs to move.
	require.Equal(t, []string{"[con_id=1] swap container with con_id 3"}, fake.Sent)
}

func TestReverseNodesFromNonZeroStartingIdxThreeNodes(t *testing.T) {
	a := &tree.Container{ID: 1}
	b := &tree.Container{ID: 2}
	c := &tree.Container{ID: 3}
	ws := &tree.Container{ID: 10, Nodes: []*tree.Container{a, b, c}}

	fake := ipctest.New()
	ctx := engine.New(fake)

	err := ReverseNodes(ctx, ws, 1)
	require.NoError(t, err)
	// starting_idx=1 must reverse only nodes[1:], i.e. swap b<->c; the
	// target index is relative to the enumerate position within that
	// slice, not the absolute node index.
	require.Equal(t, []string{"[con_id=2] swap container with con_id 3"}, fake.Sent)
}

func TestReverseNodesFromNonZeroStartingIdxFourNodes(t *testing.T) {
	a := &tree.Container{ID: 1}
	b := &tree.Container{ID: 2}
	c := &tree.Container{ID: 3}
	d := &tree.Container{ID: 4}
	ws := &tree.Container{ID: 10, Nodes: []*tree.Container{a, b, c, d}}

	fake := ipctest.New()
	ctx := engine.New(fake)

	err := ReverseNodes(ctx, ws, 1)
	require.NoError(t, err)
	require.Equal(t, []string{"[con_id=2] swap container with con_id 4"}, fake.Sent)
}

func TestReverseNodesSkipsSelfSwap(t *testing.T) {
	a := &tree.Container{ID: 1}
	ws := &tree.Container{ID: 10, Nodes: []*tree.Container{a}}

	fake := ipctest.New()
	ctx := engine.New(fake)

	err := ReverseNodes(ctx, ws, 0)
	require.NoError(t, err)
	require.Empty(t, fake.Sent)
}

func TestEnsureSplitNoopWhenAlreadyMatching(t *testing.T) {
	ws := &tree.Container{ID: 10, Layout: tree.SplitV}
	fake := ipctest.New()
	ctx := engine.New(fake)

	err := EnsureSplit(ctx, ws, "splitv")
	require.NoError(t, err)
	require.Empty(t, fake.Sent)
}

func TestEnsureSplitIssuesWhenMismatched(t *testing.T) {
	ws := &tree.Container{ID: 10, Layout: tree.SplitH}
	fake := ipctest.New()
	ctx := engine.New(fake)

	err := EnsureSplit(ctx, ws, "splitv")
	require.NoError(t, err)
	require.Equal(t, []string{"[con_id=10] splitv"}, fake.Sent)
}

func TestAddNodeToFrontInsertsAtIndexZero(t *testing.T) {
	existing1 := &tree.Container{ID: 2}
	existing2 := &tree.Container{ID: 3}
	container := &tree.Container{ID: 10, Nodes: []*tree.Container{existing1, existing2}}
	node := &tree.Container{ID: 1}

	fake := ipctest.New()
	ctx := engine.New(fake)

	err := AddNodeToFront(ctx, container, node)
	require.NoError(t, err)
	require.Equal(t, []string{
		"[con_id=10] mark __swaymonad__mark",
		"[con_id=1] move window to mark __swaymonad__mark",
		"[con_id=10] unmark __swaymonad__mark",
		"[con_id=1] swap container with con_id 3",
		"[con_id=1] swap container with con_id 2",
	}, fake.Sent)
}
