package display

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/logging"
	"tableflip.dev/smartboard/pkg/store"
	tuidisplay "tableflip.dev/smartboard/pkg/tui/display"
)

// ErrNoTerminal is returned when stdout is not an interactive terminal.
var ErrNoTerminal = errors.New("display needs an interactive terminal")

// Display opens the board on the current terminal.
type Display struct {
	Settings    *store.Settings
	Persistence store.Persistence
	Logger      *slog.Logger

	Locked       bool
	Debug        bool
	OpenSettings bool
}

func (d *Display) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNoTerminal
	}
	log := d.Logger
	if log == nil {
		log = logging.Discard()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	s, watch := d.open(ctx, log)
	defer s.Dispose()
	ctx = configstore.NewContext(ctx, s)

	return tuidisplay.Run(d.options(ctx, watch, log))
}

// open loads the saved board. When storage refuses writes the board still
// runs, but nothing outlives the session.
func (d *Display) open(ctx context.Context, log *slog.Logger) (*configstore.Store, <-chan store.Event) {
	p := d.Persistence
	if p == nil || !p.Available() {
		log.Warn("storage unavailable, changes will not be saved")
		return configstore.New(board.Defaults(time.Now()), configstore.WithLogger(log)), nil
	}
	s := configstore.Open(p, configstore.WithLogger(log))
	watch, err := p.Watch(ctx)
	if err != nil {
		log.Warn("not watching saved config", slog.Any("err", err))
		return s, nil
	}
	return s, watch
}

func (d *Display) options(ctx context.Context, watch <-chan store.Event, log *slog.Logger) tuidisplay.Options {
	opts := tuidisplay.Options{
		Store:    configstore.MustFromContext(ctx),
		Watch:    watch,
		Locked:   d.Locked,
		Debug:    d.Debug,
		Settings: d.OpenSettings,
		Plain:    termenv.EnvColorProfile() == termenv.Ascii,
		Logger:   log,
	}
	if d.Settings != nil {
		opts.CellWidth = d.Settings.CellWidth
		opts.CellHeight = d.Settings.CellHeight
		opts.DoubleClick = d.Settings.DoubleClick
		opts.Locked = opts.Locked || d.Settings.Locked
	}
	return opts
}
