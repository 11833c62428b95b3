package commands

import (
	"log/slog"

	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/smartboard/pkg/logging"
	"tableflip.dev/smartboard/pkg/store"
)

var (
	oo = &base.OutputOptions{}
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "smartboard",
		Short: base.Wrap80("A classroom board of draggable, resizable widgets in the terminal."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addDisplay(topLevel)
	addGet(topLevel)
	addSet(topLevel)
	addReset(topLevel)
	addExport(topLevel)
	addImport(topLevel)
	addVersion(topLevel)
}

// env is what every command needs from the machine settings.
type env struct {
	settings    *store.Settings
	persistence store.Persistence
	log         *slog.Logger
	close       func() error
}

func loadEnv(debug bool) (*env, error) {
	s, err := store.LoadSettings()
	if err != nil {
		return nil, err
	}
	log, closeLog, err := logging.New(logging.Options{File: s.LogFile, Debug: debug})
	if err != nil {
		return nil, err
	}
	p, err := store.Load(s)
	if err != nil {
		_ = closeLog()
		return nil, err
	}
	log.Debug("settings loaded", slog.String("path", s.Path))
	return &env{settings: s, persistence: p, log: log, close: closeLog}, nil
}
