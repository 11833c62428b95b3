package get

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/printers"
	"tableflip.dev/smartboard/pkg/store"
)

// Get prints the saved board, or one component of it.
type Get struct {
	Persistence store.Persistence
	// Component limits the output to one widget. Empty prints everything.
	Component board.ComponentName
	Output    string
	Out       io.Writer
}

func (g *Get) Do(ctx context.Context) error {
	if g.Persistence == nil {
		return errors.New("can not get, no persistence")
	}
	out := g.Out
	if out == nil {
		out = color.Output
	}

	s := configstore.Open(g.Persistence)
	defer s.Dispose()
	cfg := s.Snapshot()

	switch g.Output {
	case "json":
		var v any = cfg
		if g.Component != "" {
			v = component(cfg, g.Component)
		}
		b, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintln(out, string(b))

	default:
		pp := printers.PrettyPrint{Out: out}
		if g.Component != "" {
			pp.Component(cfg, g.Component)
			return nil
		}
		pp.Board(cfg)
	}
	return nil
}

func component(cfg board.AppConfig, name board.ComponentName) any {
	c := cfg.Components
	switch name {
	case board.Clock:
		return c.Clock
	case board.Message:
		return c.Message
	case board.CountdownTimer:
		return c.CountdownTimer
	case board.DayOfWeek:
		return c.DayOfWeek
	}
	return nil
}
