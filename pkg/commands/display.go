package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/smartboard/pkg/commands/options"
	"tableflip.dev/smartboard/pkg/runner/display"
)

func addDisplay(topLevel *cobra.Command) {
	do := &options.DisplayOptions{}

	cmd := &cobra.Command{
		Use:     "display",
		Aliases: []string{"ui"},
		Short:   "open the board in the terminal",
		Example: `
smartboard display
smartboard display --locked
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(do.Debug)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			d := display.Display{
				Settings:     e.settings,
				Persistence:  e.persistence,
				Logger:       e.log,
				Locked:       do.Locked,
				Debug:        do.Debug,
				OpenSettings: do.Settings,
			}
			return d.Do(context.Background())
		},
	}

	options.AddDisplayArgs(cmd, do)

	topLevel.AddCommand(cmd)
}
