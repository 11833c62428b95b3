package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/timeutil"
)

type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
}

var (
	bold  = color.New(color.Bold)
	faint = color.New(color.Faint)
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Board prints every widget followed by the display settings.
func (pp *PrettyPrint) Board(cfg board.AppConfig) {
	pp.Title("Widgets")
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprint("Widget"), bold.Sprint("Visible"), bold.Sprint("Position"), bold.Sprint("Size"), bold.Sprint("Details"))
	for _, name := range board.ComponentNames {
		w, _ := cfg.Components.Widget(name)
		tbl.AddRow(name.Title(), visible(w.IsActive), position(w), size(w), details(cfg, name))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()

	pp.Title("Display")
	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Theme", string(cfg.Theme))
	tbl.AddRow("Clock format", string(cfg.ClockFormat))
	tbl.AddRow("Timezone", cfg.Timezone)
	tbl.AddRow("Background dim", fmt.Sprintf("%d%%", int(cfg.DisplaySettings.SkrimOpacity*100+0.5)))
	tbl.AddRow("Countdown format", string(cfg.DisplaySettings.CountdownFormat))
	tbl.AddRow("Updated", faint.Sprint(cfg.UpdatedAt.Local().Format(time.DateTime)))
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Component prints the fields of one widget as a key/value table.
func (pp *PrettyPrint) Component(cfg board.AppConfig, name board.ComponentName) {
	w, ok := cfg.Components.Widget(name)
	if !ok {
		return
	}
	pp.Title(name.Title())
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow("Visible", visible(w.IsActive))
	tbl.AddRow("Position", position(w))
	tbl.AddRow("Size", size(w))

	c := cfg.Components
	switch name {
	case board.Clock:
		tbl.AddRow("Type", string(c.Clock.Type))
		tbl.AddRow("Show date", visible(c.Clock.ShowDate))
		tbl.AddRow("Date layout", c.Clock.DateLayout)
	case board.Message:
		text := c.Message.Text
		if text == "" {
			text = faint.Sprint("(empty)")
		}
		tbl.AddRow("Text", text)
	case board.CountdownTimer:
		tbl.AddRow("Preset", timeutil.FormatDuration(c.CountdownTimer.Preset()))
	case board.DayOfWeek:
		tbl.AddRow("Format", string(c.DayOfWeek.Format))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

func visible(on bool) string {
	if on {
		return color.GreenString("yes")
	}
	return faint.Sprint("no")
}

func position(w board.Widget) string {
	return fmt.Sprintf("%.1f%%, %.1f%%", w.Position.X, w.Position.Y)
}

func size(w board.Widget) string {
	return fmt.Sprintf("%.0f×%.0f", w.Size.Width, w.Size.Height)
}

func details(cfg board.AppConfig, name board.ComponentName) string {
	c := cfg.Components
	switch name {
	case board.Clock:
		parts := []string{string(c.Clock.Type)}
		if c.Clock.ShowDate {
			parts = append(parts, "date")
		}
		return strings.Join(parts, ", ")
	case board.Message:
		if c.Message.Text == "" {
			return faint.Sprint("(empty)")
		}
		return fmt.Sprintf("%q", truncate(c.Message.Text, 32))
	case board.CountdownTimer:
		return timeutil.FormatDuration(c.CountdownTimer.Preset())
	case board.DayOfWeek:
		return string(c.DayOfWeek.Format)
	}
	return ""
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
