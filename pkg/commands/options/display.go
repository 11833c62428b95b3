// Package options defines shared flag helpers for CLI commands.
package options

import (
	"github.com/spf13/cobra"
)

// DisplayOptions
type DisplayOptions struct {
	Locked   bool
	Debug    bool
	Settings bool
}

// AddDisplayArgs wires the display flags on the provided command.
func AddDisplayArgs(cmd *cobra.Command, o *DisplayOptions) {
	cmd.Flags().BoolVar(&o.Locked, "locked", false,
		"Lock the layout so widgets can not be moved or resized.")
	cmd.Flags().BoolVar(&o.Debug, "debug", false,
		"Show the debug event pane.")
	cmd.Flags().BoolVar(&o.Settings, "settings", false,
		"Open the settings panel on start.")
}
