package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/runner/get"
)

func componentArgs() []string {
	names := make([]string, 0, len(board.ComponentNames))
	for _, n := range board.ComponentNames {
		names = append(names, string(n))
	}
	return names
}

func addGet(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "get [component]",
		Short: "show the saved board or one widget",
		Long:  "Show the saved board, or one widget of it.\n\nComponents: " + strings.Join(componentArgs(), ", "),
		Example: `
smartboard get
smartboard get clock
smartboard get message --json
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: componentArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer func() { _ = e.close() }()

			g := get.Get{Persistence: e.persistence}
			if len(args) == 1 {
				if g.Component, err = board.ParseComponentName(args[0]); err != nil {
					return oo.HandleError(err)
				}
			}
			if oo.JSON {
				g.Output = "json"
			}
			err = g.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
