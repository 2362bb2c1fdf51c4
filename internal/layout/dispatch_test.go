package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipctest"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

func focusedNopWorkspace() (fake *ipctest.Client, ctx *engine.Context, reg *Registry, ws *tree.Container) {
	focused := &tree.Container{ID: 5, Type: tree.TypeCon, Focused: true}
	ws = &tree.Container{ID: 10, Type: tree.TypeWorkspace, Nodes: []*tree.Container{focused}}
	focused.Parent = ws

	fake = ipctest.New()
	fake.Tree = ws
	ctx = engine.New(fake)
	reg = NewRegistry("nop")
	return
}

func TestIncrementMastersDispatcher(t *testing.T) {
	fake, ctx, reg, ws := focusedNopWorkspace()
	_ = fake

	err := IncrementMastersDispatcher(ctx, reg)
	require.NoError(t, err)
	require.Equal(t, 2, reg.Get(ws).NMasters())
}

func TestDecrementMastersDispatcherFloorsAtOne(t *testing.T) {
	_, ctx, reg, ws := focusedNopWorkspace()

	err := DecrementMastersDispatcher(ctx, reg)
	require.NoError(t, err)
	require.Equal(t, 1, reg.Get(ws).NMasters())
}

func TestMoveDispatcherForwardsToFocusedWorkspaceLayout(t *testing.T) {
	fake, ctx, reg, _ := focusedNopWorkspace()

	err := MoveDispatcher(ctx, reg, "left")
	require.NoError(t, err)
	require.Equal(t, []string{"move left"}, fake.Sent, "Nop.Move sends the direction unrewritten")
}

func TestFullscreenDispatcherSendsAndRefetches(t *testing.T) {
	fake, ctx, reg, ws := focusedNopWorkspace()
	_ = reg.Get(ws) // assign a layout before toggling fullscreen

	err := FullscreenDispatcher(ctx, reg)
	require.NoError(t, err)
	require.Equal(t, []string{"fullscreen"}, fake.Sent)
}

func TestReflectXDispatcherTogglesAndMutatesTree(t *testing.T) {
	_, ctx, reg, ws := focusedNopWorkspace()
	l := reg.Get(ws)
	require.False(t, l.Transforms().Has(0))

	err := ReflectXDispatcher(ctx, reg)
	require.NoError(t, err)
	require.True(t, reg.Get(ws).Transforms().Has(0), "reflectx toggling must flip the workspace's active set")

	err = ReflectXDispatcher(ctx, reg)
	require.NoError(t, err)
	require.False(t, reg.Get(ws).Transforms().Has(0), "a second toggle must turn reflectx back off")
}
