package commands

import (
	"context"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/commands/options"
	"tableflip.dev/smartboard/pkg/runner/set"
)

func addSet(topLevel *cobra.Command) {
	so := &options.SetOptions{}

	cmd := &cobra.Command{
		Use:   "set <component>",
		Short: "change one widget of the saved board",
		Long: base.Wrap80("Change one widget of the saved board. Only the flags given are " +
			"changed. A running display picks the change up."),
		Example: `
smartboard set clock --x 25 --y 30 --size 400
smartboard set message --active --text "Quiz on Friday"
smartboard set countdown --duration 4m30s
smartboard set day --format short
`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: componentArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := board.ParseComponentName(args[0])
			if err != nil {
				return oo.HandleError(err)
			}
			c, err := so.Resolve(cmd.Flags())
			if err != nil {
				return oo.HandleError(err)
			}
			e, err := loadEnv(false)
			if err != nil {
				return oo.HandleError(err)
			}
			defer func() { _ = e.close() }()

			s := set.Set{
				Persistence: e.persistence,
				Component:   name,
				Active:      c.Active,
				X:           c.X,
				Y:           c.Y,
				Width:       c.Size,
				Text:        c.Text,
				ClockType:   c.ClockType,
				ShowDate:    c.ShowDate,
				DateLayout:  c.DateLayout,
				Duration:    c.Duration,
				DayFormat:   c.DayFormat,
			}
			err = s.Do(context.Background())
			return oo.HandleError(err)
		},
	}

	options.AddSetArgs(cmd, so)
	base.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
