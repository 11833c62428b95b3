package widget

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/geometry"
	"tableflip.dev/smartboard/pkg/tui/theme"
)

// MessagePlaceholder is shown by an empty message widget.
const MessagePlaceholder = "Click to edit message"

// TimesUp is shown by a countdown that ran out.
const TimesUp = "Time's Up!"

var constraints = map[board.ComponentName]geometry.Constraints{
	board.Clock:          {Min: 100, Max: 800, AspectRatio: 1},
	board.Message:        {Min: 150, Max: 800},
	board.CountdownTimer: {Min: 200, Max: 800, AspectRatio: 1.2},
	board.DayOfWeek:      {Min: 100, Max: 600},
}

// ConstraintsFor returns the size bounds of a widget kind.
func ConstraintsFor(name board.ComponentName) geometry.Constraints {
	return constraints[name]
}

// Content is what a kind draws inside its frame.
type Content struct {
	Config board.AppConfig
	Now    time.Time
	Width  int
	Height int
	Theme  theme.WidgetTheme
}

// Kind renders one component of the board.
type Kind interface {
	Name() board.ComponentName
	Body(c Content) string
}

// ClockKind renders the analog or digital clock.
type ClockKind struct{}

// Name implements Kind.
func (ClockKind) Name() board.ComponentName { return board.Clock }

// Body implements Kind.
func (ClockKind) Body(c Content) string {
	cc := c.Config.Components.Clock
	now := c.Now.In(c.Config.Location())
	digits := c.Theme.Big.Render(now.Format(c.Config.ClockFormat.Layout()))

	var date string
	if cc.ShowDate {
		layout := cc.DateLayout
		if layout == "" {
			layout = board.DefaultDateLayout
		}
		date = c.Theme.Muted.Render(truncate.StringWithTail(now.Format(layout), uint(max(c.Width, 1)), "…"))
	}

	if cc.Type == board.ClockAnalog {
		faceHeight := c.Height - 1
		if cc.ShowDate {
			faceHeight--
		}
		if faceHeight >= 5 && c.Width >= 9 {
			face := c.Theme.Text.Render(Face(now, c.Width, faceHeight))
			return joinLines(face, digits, date)
		}
	}
	return joinLines(digits, date)
}

// MessageKind renders the free text message.
type MessageKind struct{}

// Name implements Kind.
func (MessageKind) Name() board.ComponentName { return board.Message }

// Body implements Kind.
func (MessageKind) Body(c Content) string {
	text := strings.TrimSpace(c.Config.Components.Message.Text)
	if text == "" {
		return c.Theme.Muted.Render(wrapText(MessagePlaceholder, c.Width))
	}
	return c.Theme.Text.Render(wrapText(text, c.Width))
}

// CountdownKind renders the countdown. The runtime state is shared with
// whatever drives the controls.
type CountdownKind struct {
	Countdown *Countdown
}

// Name implements Kind.
func (CountdownKind) Name() board.ComponentName { return board.CountdownTimer }

// Body implements Kind.
func (k CountdownKind) Body(c Content) string {
	cd := k.Countdown
	cfg := c.Config.Components.CountdownTimer
	remaining := cd.Remaining()
	if cd.Idle() {
		remaining = cfg.Preset()
	}
	format := FormatRemaining
	if c.Config.DisplaySettings.CountdownFormat == board.CountdownCompact {
		format = FormatCompact
	}

	var status string
	switch {
	case cd.Finished():
		return joinLines(c.Theme.Alert.Render("00:00"), c.Theme.Alert.Render(TimesUp))
	case cd.Running():
		status = "space pause · r reset"
	case cd.Idle():
		status = "space start"
	default:
		status = "space resume · r reset"
	}
	return joinLines(
		c.Theme.Big.Render(format(remaining)),
		c.Theme.Muted.Render(truncate.StringWithTail(status, uint(max(c.Width, 1)), "…")),
	)
}

// DayOfWeekKind renders the current weekday.
type DayOfWeekKind struct{}

// Name implements Kind.
func (DayOfWeekKind) Name() board.ComponentName { return board.DayOfWeek }

// Body implements Kind.
func (DayOfWeekKind) Body(c Content) string {
	day := c.Now.In(c.Config.Location()).Weekday()
	return c.Theme.Big.Render(c.Config.Components.DayOfWeek.Format.Render(day))
}

func wrapText(s string, width int) string {
	if width <= 0 {
		return s
	}
	// wordwrap breaks on spaces, wrap hard-breaks anything still too long.
	return wrap.String(wordwrap.String(s, width), width)
}

func joinLines(parts ...string) string {
	var lines []string
	for _, p := range parts {
		if p != "" {
			lines = append(lines, p)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Center, lines...)
}
