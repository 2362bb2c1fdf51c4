package layout

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipctest"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

func TestNewNColString(t *testing.T) {
	n := NewNCol(7, 2, 1, nil)
	require.Equal(t, 2, n.NColumns)
	require.Equal(t, "NCol(7, 2, 1)", n.String())
}

// A workspace with a single leaf has nothing to reflow; Run (triggered
// out-of-band, event == nil) should settle after refocusing the sole
// window without issuing any reflow commands.
func TestNColRunSingleLeafRefocusesOnly(t *testing.T) {
	only := &tree.Container{ID: 1, Type: tree.TypeCon, Focused: true}
	ws := &tree.Container{ID: 10, Type: tree.TypeWorkspace, Nodes: []*tree.Container{only}}
	only.Parent = ws

	fake := ipctest.New()
	fake.Tree = ws
	ctx := engine.New(fake)
	reg := NewRegistry("tall")

	n := NewNCol(10, 2, 1, transform.Set{})
	err := n.Run(ctx, reg, nil)
	require.NoError(t, err)
	require.Equal(t, []string{
		"[con_id=1] focus",
		"[con_id=1] focus",
	}, fake.Sent, "RefocusWindow bounces through the only leaf's wraparound neighbor, itself")
}
