package cycle

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipctest"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

func threeLeafWorkspace() (ws, a, b, c *tree.Container) {
	a = &tree.Container{ID: 1, Type: tree.TypeCon}
	b = &tree.Container{ID: 2, Type: tree.TypeCon}
	c = &tree.Container{ID: 3, Type: tree.TypeCon}
	ws = &tree.Container{ID: 10, Type: tree.TypeWorkspace, Nodes: []*tree.Container{a, b, c}}
	a.Parent, b.Parent, c.Parent = ws, ws, ws
	return
}

func TestFindOffsetWindowWrapsAround(t *testing.T) {
	_, a, b, c := threeLeafWorkspace()

	require.Equal(t, b, FindOffsetWindow(a, 1))
	require.Equal(t, c, FindOffsetWindow(a, -1), "offset -1 from the first leaf must wrap to the last")
	require.Equal(t, a, FindOffsetWindow(c, 1), "offset 1 from the last leaf must wrap to the first")
}

func TestFindOffsetWindowFloatingReturnsNil(t *testing.T) {
	ws, _, _, _ := threeLeafWorkspace()
	floating := &tree.Container{ID: 99, Type: tree.TypeFloatingCon, Parent: ws}
	require.Nil(t, FindOffsetWindow(floating, 1))
}

func TestFocusWindowPreservesFullscreen(t *testing.T) {
	ws, a, b, _ := threeLeafWorkspace()
	a.Focused = true
	a.FullscreenMode = 1

	fake := ipctest.New()
	fake.Tree = ws
	ctx := engine.New(fake)

	err := FocusWindow(ctx, 1, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"[con_id=2] focus",
		"[con_id=2] fullscreen",
	}, fake.Sent)
	_ = b
}

func TestSwapWithWindowFocusAfterSwap(t *testing.T) {
	ws, a, b, _ := threeLeafWorkspace()
	a.Focused = true

	fake := ipctest.New()
	fake.Tree = ws
	ctx := engine.New(fake)

	err := SwapWithWindow(ctx, 1, nil, true)
	require.NoError(t, err)
	require.Equal(t, []string{
		"[con_id=1] swap container with con_id 2",
		"[con_id=1] focus",
	}, fake.Sent)
	_ = b
}

func TestSwapWithWindowNoFocusAfterSwap(t *testing.T) {
	ws, a, _, _ := threeLeafWorkspace()
	a.Focused = true

	fake := ipctest.New()
	fake.Tree = ws
	ctx := engine.New(fake)

	err := SwapWithWindow(ctx, 1, nil, false)
	require.NoError(t, err)
	require.Equal(t, []string{"[con_id=1] swap container with con_id 2"}, fake.Sent)
}

func TestRefocusWindowBouncesThroughNeighbor(t *testing.T) {
	ws, a, _, _ := threeLeafWorkspace()

	fake := ipctest.New()
	fake.Tree = ws
	ctx := engine.New(fake)

	err := RefocusWindow(ctx, a)
	require.NoError(t, err)
	require.Equal(t, []string{
		"[con_id=2] focus",
		"[con_id=1] focus",
	}, fake.Sent, "must focus the neighbor first, then bounce back to window")
}
