package layout

import (
	"github.com/nicolasavru/swaymonad-go/internal/logging"
	"github.com/nicolasavru/swaymonad-go/internal/transform"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Constructor builds a fresh Layout for a workspace, carrying over whatever
// master count and transformations a prior layout on that workspace had
// (used by Registry.Set when the user switches strategies).
type Constructor func(workspaceID int64, nMasters int, transforms transform.Set) Layout

// Registry remembers which Layout instance is assigned to each workspace,
// constructing one from the default constructor on first use. A Registry
// is owned by a single engine loop and is never accessed concurrently, so
// it needs no locking.
type Registry struct {
	constructors  map[string]Constructor
	workspaces    map[int64]Layout
	defaultLayout string
}

// NewRegistry returns a Registry whose name table has the two canonical
// n-column presets ("tall" is 2 columns, "3_col" is 3) and the no-op
// passthrough ("nop"), defaulting newly-seen workspaces to defaultLayout.
func NewRegistry(defaultLayout string) *Registry {
	return &Registry{
		constructors: map[string]Constructor{
			"tall": func(id int64, n int, t transform.Set) Layout {
				return NewNCol(id, 2, n, t)
			},
			"3_col": func(id int64, n int, t transform.Set) Layout {
				return NewNCol(id, 3, n, t)
			},
			"nop": func(id int64, n int, t transform.Set) Layout {
				return NewNop(id, n, t)
			},
		},
		workspaces:    map[int64]Layout{},
		defaultLayout: defaultLayout,
	}
}

// Get returns the layout assigned to workspace, assigning the default one
// on first encounter.
func (r *Registry) Get(workspace *tree.Container) Layout {
	l, ok := r.workspaces[workspace.ID]
	if !ok {
		l = r.constructors[r.defaultLayout](workspace.ID, 1, transform.Set{})
		r.workspaces[workspace.ID] = l
		logging.Debug("workspace has no layout, assigning default", "workspace", workspace.ID, "layout", l.String())
	}
	return l
}

// Set replaces workspace's layout with one constructed from name, carrying
// over the current layout's master count and active transformations, and
// returns the new layout.
func (r *Registry) Set(workspace *tree.Container, name string) Layout {
	current := r.Get(workspace)
	ctor, ok := r.constructors[name]
	if !ok {
		logging.Warn("unknown layout name, ignoring set_layout", "name", name)
		return current
	}
	next := ctor(workspace.ID, current.NMasters(), current.Transforms().Clone())
	r.workspaces[workspace.ID] = next
	logging.Debug("changed workspace layout", "workspace", workspace.ID, "from", current.String(), "to", next.String())
	return next
}
