package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func buildWorkspace() (root, ws, a, b *Container) {
	a = &Container{ID: 1, Type: TypeCon}
	b = &Container{ID: 2, Type: TypeCon}
	ws = &Container{ID: 10, Type: TypeWorkspace, Nodes: []*Container{a, b}}
	root = &Container{ID: 0, Type: TypeRoot, Nodes: []*Container{ws}}
	a.Parent, b.Parent, ws.Parent = ws, ws, root
	return
}

func TestLeavesExcludesFloating(t *testing.T) {
	_, ws, a, b := buildWorkspace()
	b.Floating = FloatingUserOn

	leaves := ws.Leaves()
	require.Len(t, leaves, 1)
	require.Equal(t, a.ID, leaves[0].ID)
}

func TestLeavesExcludesFloatingConType(t *testing.T) {
	_, ws, a, b := buildWorkspace()
	b.Type = TypeFloatingCon

	leaves := ws.Leaves()
	require.Len(t, leaves, 1)
	require.Equal(t, a.ID, leaves[0].ID)
}

func TestWorkspaceWalksUpToNearestWorkspace(t *testing.T) {
	_, ws, a, _ := buildWorkspace()
	require.Equal(t, ws.ID, a.Workspace().ID)
}

func TestWorkspaceNilForDetachedRoot(t *testing.T) {
	root := &Container{ID: 0, Type: TypeRoot}
	require.Nil(t, root.Workspace())
}

func TestFindByIDSearchesFloatingNodesToo(t *testing.T) {
	root, ws, _, _ := buildWorkspace()
	floating := &Container{ID: 99, Type: TypeFloatingCon, Parent: ws}
	ws.FloatingNodes = append(ws.FloatingNodes, floating)

	found := root.FindByID(99)
	require.NotNil(t, found)
	require.Equal(t, int64(99), found.ID)
}

func TestFindFocusedSkipsNonConTypes(t *testing.T) {
	root, ws, _, b := buildWorkspace()
	ws.Focused = true // a workspace node itself is never a valid "focused" leaf
	b.Focused = true

	found := root.FindFocused()
	require.NotNil(t, found)
	require.Equal(t, b.ID, found.ID)
}

func TestLeafIDSet(t *testing.T) {
	_, ws, a, b := buildWorkspace()
	set := LeafIDSet(ws.Leaves())
	require.True(t, set[a.ID])
	require.True(t, set[b.ID])
	require.Len(t, set, 2)
}

func TestIsFloating(t *testing.T) {
	userOn := &Container{Floating: FloatingUserOn}
	autoOn := &Container{Floating: FloatingAutoOn}
	tiled := &Container{Floating: FloatingUserOff}
	floatingCon := &Container{Type: TypeFloatingCon}

	require.True(t, userOn.IsFloating())
	require.True(t, autoOn.IsFloating())
	require.False(t, tiled.IsFloating())
	require.True(t, floatingCon.IsFloating())
	require.False(t, (*Container)(nil).IsFloating())
}

func TestRectArea(t *testing.T) {
	r := Rect{Width: 10, Height: 20}
	require.Equal(t, 200, r.Area())
}
