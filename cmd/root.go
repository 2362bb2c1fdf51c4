// Package cmd wires the daemon's command-line flags (default layout, log
// verbosity and destination, the debug inter-command delay) to the
// engine's startup sequence.
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nicolasavru/swaymonad-go/internal/dispatch"
	"github.com/nicolasavru/swaymonad-go/internal/engine"
	"github.com/nicolasavru/swaymonad-go/internal/ipc"
	"github.com/nicolasavru/swaymonad-go/internal/layout"
	"github.com/nicolasavru/swaymonad-go/internal/logging"
)

var (
	defaultLayout string
	verbose       bool
	logFile       string
	delaySeconds  float64
)

var rootCmd = &cobra.Command{
	Use:   "swaymonad",
	Short: "An xmonad-like auto-tiler for sway",
	Long:  "swaymonad watches a sway session over IPC and keeps every workspace's windows arranged in a master/stack (or other) tiling layout.",
	RunE:  run,
}

func init() {
	rootCmd.Flags().StringVar(&defaultLayout, "default-layout", "tall",
		"Layout to use for workspaces where the layout has not been manually set. Valid options are 'tall', '3_col', and 'nop'.")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging.")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "Log file path, defaults to stderr.")
	rootCmd.Flags().Float64Var(&delaySeconds, "delay", 0,
		"Sleep for n seconds before sending every command to sway, allowing a human to observe intermediate state.")
}

// Execute runs the root command, parsing os.Args.
func Execute() error {
	return rootCmd.Execute()
}

func run(cmd *cobra.Command, args []string) error {
	if err := logging.Configure(verbose, logFile); err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}

	delay := time.Duration(delaySeconds * float64(time.Second))
	transport, err := ipc.NewTransport(delay)
	if err != nil {
		return fmt.Errorf("connecting to window server: %w", err)
	}

	ctx := engine.New(transport)
	registry := layout.NewRegistry(defaultLayout)

	windowHandler := func(evt ipc.Event) {
		dispatch.WindowEventDispatcher(ctx, registry, &evt.Window)
	}
	transport.Subscribe(ipc.EventWindowNew, windowHandler)
	transport.Subscribe(ipc.EventWindowClose, windowHandler)
	transport.Subscribe(ipc.EventWindowMove, windowHandler)

	transport.Subscribe(ipc.EventBinding, func(evt ipc.Event) {
		dispatch.CommandDispatcher(ctx, registry, evt.BindingCommand)
	})

	logging.Info("swaymonad starting", "default_layout", defaultLayout, "delay", delay.String())

	runErr := make(chan error, 1)
	go func() {
		runErr <- transport.Run()
	}()

	select {
	case err := <-runErr:
		if err != nil {
			return fmt.Errorf("running event loop: %w", err)
		}
		return nil
	case err := <-ctx.Fatal:
		return fmt.Errorf("fatal handler error: %w", err)
	}
}
