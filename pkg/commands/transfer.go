package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/smartboard/pkg/commands/options"
	"tableflip.dev/smartboard/pkg/runner/transfer"
)

func addExport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "export",
		Short: "write the saved board as json or toml",
		Example: `
smartboard export > layout.json
smartboard export --format toml --out layout.toml
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			x := transfer.Export{Persistence: e.persistence, Format: to.Format, Path: to.Out}
			return x.Do(context.Background())
		},
	}

	options.AddFormatArg(cmd, to)
	options.AddOutArg(cmd, to)

	topLevel.AddCommand(cmd)
}

func addImport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "replace the saved board with a json or toml layout",
		Example: `
smartboard import layout.toml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return err
			}
			defer func() { _ = e.close() }()

			i := transfer.Import{Persistence: e.persistence, Path: args[0], Format: to.Format}
			return i.Do(context.Background())
		},
	}

	options.AddFormatArg(cmd, to)

	topLevel.AddCommand(cmd)
}
