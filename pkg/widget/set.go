package widget

import (
	"fmt"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/interaction"
)

// Set is every widget on the board in stacking order, bottom first.
type Set struct {
	Widgets   []*Widget
	Countdown *Countdown
}

// NewSet builds one widget per component, all sharing doc and surface.
func NewSet(store Store, doc *interaction.Document, surface *Surface, opts ...Option) *Set {
	cd := &Countdown{}
	s := &Set{Countdown: cd}
	for _, name := range board.ComponentNames {
		s.Widgets = append(s.Widgets, New(kindFor(name, cd), store, doc, surface, opts...))
	}
	return s
}

func kindFor(name board.ComponentName, cd *Countdown) Kind {
	switch name {
	case board.Clock:
		return ClockKind{}
	case board.Message:
		return MessageKind{}
	case board.CountdownTimer:
		return CountdownKind{Countdown: cd}
	default:
		return DayOfWeekKind{}
	}
}

// Get returns the widget drawing name.
func (s *Set) Get(name board.ComponentName) *Widget {
	for _, w := range s.Widgets {
		if w.Name() == name {
			return w
		}
	}
	return nil
}

// Resize resizes the named widget and keeps it on screen.
func (s *Set) Resize(name board.ComponentName, width float64) error {
	w := s.Get(name)
	if w == nil {
		return fmt.Errorf("%w: %q", board.ErrUnknownComponent, name)
	}
	return w.Resize(width)
}

// Hit finds the topmost widget under the cell.
func (s *Set) Hit(col, row int) (*Widget, interaction.Hit) {
	for i := len(s.Widgets) - 1; i >= 0; i-- {
		w := s.Widgets[i]
		if h := w.HitTest(col, row); h.Part != interaction.PartOutside {
			return w, h
		}
	}
	return nil, interaction.Hit{Part: interaction.PartOutside}
}

// SetDisabled locks or unlocks every widget.
func (s *Set) SetDisabled(disabled bool) {
	for _, w := range s.Widgets {
		w.Controller().SetDisabled(disabled)
	}
}

// Close retires every controller.
func (s *Set) Close() {
	for _, w := range s.Widgets {
		w.Close()
	}
}
