package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/smartboard/pkg/commands/options"
	"tableflip.dev/smartboard/pkg/runner/reset"
)

func addReset(topLevel *cobra.Command) {
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "restore the default layout",
		Example: `
smartboard reset
smartboard reset --yes
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			r := reset.Reset{Persistence: e.persistence, Yes: co.Yes}
			return r.Do(context.Background())
		},
	}

	options.AddYesArg(cmd, co)

	topLevel.AddCommand(cmd)
}
