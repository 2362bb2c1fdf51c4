// Package dispatch wires window-server events and key-binding payloads to
// the handlers that act on them: it owns the command-name table, the
// bindsym string parser, and the catch-all recovery that keeps one bad
// binding or a stale container reference from taking the whole engine
// down.
package dispatch

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/shlex"

	"github.com/nicolasavru/swaymonad-go/internal/cycle"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipc"
	"github.com/nicolasavru/swaymonad-go/internal/layout"
	"github.com/nicolasavru/swaymonad-go/internal/logging"
	"github.com/nicolasavru/swaymonad-go/internal/master"
	"github.com/nicolasavru/swaymonad-go/internal/tree"
)

// Handler is one Commands entry: a bindsym action invoked with whatever
// words followed its name in the "nop <name> <args...>" payload.
type Handler func(ctx *engine.Context, registry *layout.Registry, args []string) error

// Commands maps a bindsym "nop" payload's first word to the action it
// triggers. Binding a key to "nop promote_window", for example, runs
// master.PromoteWindow.
var Commands = map[string]Handler{
	"promote_window": func(ctx *engine.Context, _ *layout.Registry, _ []string) error {
		return master.PromoteWindow(ctx)
	},
	"focus_master": func(ctx *engine.Context, _ *layout.Registry, _ []string) error {
		return master.FocusMaster(ctx)
	},
	"resize_master": func(ctx *engine.Context, _ *layout.Registry, args []string) error {
		return master.ResizeMaster(ctx, args)
	},
	"reflectx": func(ctx *engine.Context, reg *layout.Registry, _ []string) error {
		return layout.ReflectXDispatcher(ctx, reg)
	},
	"reflecty": func(ctx *engine.Context, reg *layout.Registry, _ []string) error {
		return layout.ReflectYDispatcher(ctx, reg)
	},
	"transpose": func(ctx *engine.Context, reg *layout.Registry, _ []string) error {
		return layout.TransposeDispatcher(ctx, reg)
	},
	"focus_next_window": func(ctx *engine.Context, _ *layout.Registry, _ []string) error {
		return cycle.FocusWindow(ctx, 1, nil)
	},
	"focus_prev_window": func(ctx *engine.Context, _ *layout.Registry, _ []string) error {
		return cycle.FocusWindow(ctx, -1, nil)
	},
	"swap_with_next_window": func(ctx *engine.Context, _ *layout.Registry, _ []string) error {
		return cycle.SwapWithWindow(ctx, 1, nil, true)
	},
	"swap_with_prev_window": func(ctx *engine.Context, _ *layout.Registry, _ []string) error {
		return cycle.SwapWithWindow(ctx, -1, nil, true)
	},
	"set_layout": func(ctx *engine.Context, reg *layout.Registry, args []string) error {
		if len(args) == 0 {
			return ipc.NewError(ipc.KindInvalidArgument, "set_layout", fmt.Errorf("missing layout name"))
		}
		return layout.SetLayoutDispatcher(ctx, reg, args[0])
	},
	"increment_masters": func(ctx *engine.Context, reg *layout.Registry, _ []string) error {
		return layout.IncrementMastersDispatcher(ctx, reg)
	},
	"decrement_masters": func(ctx *engine.Context, reg *layout.Registry, _ []string) error {
		return layout.DecrementMastersDispatcher(ctx, reg)
	},
	"move": func(ctx *engine.Context, reg *layout.Registry, args []string) error {
		if len(args) == 0 {
			return ipc.NewError(ipc.KindInvalidArgument, "move", fmt.Errorf("missing direction"))
		}
		return layout.MoveDispatcher(ctx, reg, args[0])
	},
	"fullscreen": func(ctx *engine.Context, reg *layout.Registry, _ []string) error {
		return layout.FullscreenDispatcher(ctx, reg)
	},
}

// ParseBinding splits a bindsym command string, shell-quoting rules and
// all, into zero or more engine payloads. A single binding can chain
// native sway commands with engine commands separated by ';' or ',';
// only the groups that start with the literal word "nop" are ours, so
// e.g. "exec foo; nop focus_next_window" yields one payload,
// ["focus_next_window"].
func ParseBinding(raw string) ([][]string, error) {
	words, err := shlex.Split(raw)
	if err != nil {
		return nil, ipc.NewError(ipc.KindProtocol, "parse_binding", err)
	}

	var groups [][]string
	var cur []string
	flush := func() {
		if len(cur) > 0 && cur[0] == "nop" {
			groups = append(groups, cur[1:])
		}
		cur = nil
	}
	for _, w := range words {
		// shlex keeps a separator glued to its word ("foo;"), so split it
		// off here.
		for {
			i := strings.IndexAny(w, ";,")
			if i < 0 {
				break
			}
			if i > 0 {
				cur = append(cur, w[:i])
			}
			flush()
			w = w[i+1:]
		}
		if w != "" {
			cur = append(cur, w)
		}
	}
	flush()
	return groups, nil
}

// reportIfFatal logs err, and, if it unwraps to an *ipc.Error whose Kind
// means the transport itself is broken, reports it on ctx.Fatal for the
// top-level run loop to act on (spec.md §7: recoverable errors are
// logged and swallowed here; fatal ones must reach the daemon exit path).
// Returns whether err was fatal.
func reportIfFatal(ctx *engine.Context, err error) bool {
	var ipcErr *ipc.Error
	if errors.As(err, &ipcErr) && ipcErr.Fatal() {
		ctx.ReportFatal(err)
		return true
	}
	return false
}

// CommandDispatcher is the handler bound to bindsym-triggered binding
// events. It parses raw into its nop payloads, runs each through Commands
// with buffering enabled around the whole batch so a multi-command
// binding goes out as one wire round trip, and recovers from anything a
// handler panics with instead of letting it reach the event loop.
func CommandDispatcher(ctx *engine.Context, registry *layout.Registry, raw string) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("command dispatcher recovered from panic", "recovered", fmt.Sprintf("%v", r))
		}
	}()

	groups, err := ParseBinding(raw)
	if err != nil {
		logging.Error("failed to parse binding", "error", err.Error())
		return
	}
	if len(groups) == 0 {
		return
	}

	ctx.Client.EnableBuffering()
	defer func() {
		if err := ctx.Client.DisableBuffering(); err != nil {
			logging.Error("failed to flush buffered commands", "error", err.Error())
			reportIfFatal(ctx, err)
		}
	}()

	for _, group := range groups {
		if len(group) == 0 {
			continue
		}
		handler, ok := Commands[group[0]]
		if !ok {
			logging.Debug("no handler for command", "command", group[0])
			continue
		}
		if err := handler(ctx, registry, group[1:]); err != nil {
			logging.Error("command handler failed", "command", group[0], "error", err.Error())
			reportIfFatal(ctx, err)
			return
		}
	}
}

// WindowEventDispatcher is the handler bound to window::new, window::close
// and window::move events: run the affected workspace's layout, recovering
// and logging instead of propagating, since a stale container reference
// racing a closed window is an expected condition (spec.md §7), not a
// reason to stop the event loop. A transport-broken error is the one
// exception: it is reported to ctx.Fatal so the daemon exits instead of
// spinning on a dead connection.
func WindowEventDispatcher(ctx *engine.Context, registry *layout.Registry, event *tree.Event) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("layout dispatcher recovered from panic", "recovered", fmt.Sprintf("%v", r))
		}
	}()
	if err := layout.LayoutDispatcher(ctx, registry, event); err != nil {
		logging.Error("layout dispatcher failed", "error", err.Error())
		reportIfFatal(ctx, err)
	}
}
