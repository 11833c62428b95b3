package set

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/printers"
	"tableflip.dev/smartboard/pkg/store"
	"tableflip.dev/smartboard/pkg/timeutil"
	"tableflip.dev/smartboard/pkg/widget"
)

// ErrNothingToSet is returned when no field was given.
var ErrNothingToSet = errors.New("nothing to set")

// Set updates one component of the saved board. Nil fields are unchanged.
type Set struct {
	Persistence store.Persistence
	Component   board.ComponentName

	Active *bool
	X      *float64
	Y      *float64
	// Width is the requested size. Height follows from the widget's aspect
	// ratio, or equals the width when the widget has none.
	Width *float64

	Text       *string
	ClockType  *board.ClockType
	ShowDate   *bool
	DateLayout *string
	Duration   *time.Duration
	DayFormat  *board.DayFormat

	Out io.Writer
}

func (s *Set) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("can not set, no persistence")
	}
	cs := configstore.Open(s.Persistence)
	defer cs.Dispose()

	cur, _ := cs.Snapshot().Components.Widget(s.Component)
	patch, err := s.Patch(cur)
	if err != nil {
		return err
	}
	if err := cs.UpdateComponent(s.Component, patch); err != nil {
		return err
	}

	pp := printers.PrettyPrint{Out: s.Out}
	if s.Out == nil {
		pp.Out = color.Output
	}
	pp.Component(cs.Snapshot(), s.Component)
	return nil
}

// Patch builds the component patch against the current geometry, rejecting
// fields that do not belong to the component.
func (s *Set) Patch(cur board.Widget) (board.ComponentPatch, error) {
	if _, err := board.ParseComponentName(string(s.Component)); err != nil {
		return nil, err
	}

	base := board.WidgetPatch{IsActive: s.Active}
	if s.X != nil || s.Y != nil {
		pos := cur.Position
		if s.X != nil {
			pos.X = clampPercent(*s.X)
		}
		if s.Y != nil {
			pos.Y = clampPercent(*s.Y)
		}
		base.Position = &pos
	}
	if s.Width != nil {
		size := widget.ConstraintsFor(s.Component).SizeFor(*s.Width)
		base.Size = &size
	}

	if err := s.onlyFor(board.Message, "text", s.Text != nil); err != nil {
		return nil, err
	}
	if err := s.onlyFor(board.Clock, "type", s.ClockType != nil); err != nil {
		return nil, err
	}
	if err := s.onlyFor(board.Clock, "show-date", s.ShowDate != nil); err != nil {
		return nil, err
	}
	if err := s.onlyFor(board.Clock, "date-layout", s.DateLayout != nil); err != nil {
		return nil, err
	}
	if err := s.onlyFor(board.CountdownTimer, "duration", s.Duration != nil); err != nil {
		return nil, err
	}
	if err := s.onlyFor(board.DayOfWeek, "format", s.DayFormat != nil); err != nil {
		return nil, err
	}

	var patch board.ComponentPatch
	switch s.Component {
	case board.Clock:
		if s.ClockType == nil && s.ShowDate == nil && s.DateLayout == nil {
			break
		}
		patch = board.ClockPatch{WidgetPatch: base, Type: s.ClockType, ShowDate: s.ShowDate, DateLayout: s.DateLayout}
	case board.Message:
		if s.Text == nil {
			break
		}
		patch = board.MessagePatch{WidgetPatch: base, Text: s.Text}
	case board.CountdownTimer:
		if s.Duration == nil {
			break
		}
		if *s.Duration < 0 {
			return nil, fmt.Errorf("duration must not be negative")
		}
		m, sec := timeutil.Split(*s.Duration)
		patch = board.CountdownTimerPatch{WidgetPatch: base, Minutes: &m, Seconds: &sec}
	case board.DayOfWeek:
		if s.DayFormat == nil {
			break
		}
		patch = board.DayOfWeekPatch{WidgetPatch: base, Format: s.DayFormat}
	}
	if patch != nil {
		return patch, nil
	}
	if base == (board.WidgetPatch{}) {
		return nil, ErrNothingToSet
	}
	return base, nil
}

func (s *Set) onlyFor(name board.ComponentName, flag string, given bool) error {
	if given && s.Component != name {
		return fmt.Errorf("--%s only applies to %s", flag, name)
	}
	return nil
}

func clampPercent(v float64) float64 {
	return max(0, min(100, v))
}
