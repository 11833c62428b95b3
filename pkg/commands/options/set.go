package options

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/timeutil"
)

// SetOptions holds the raw flag values of the set command. Only flags the
// user actually passed end up in the patch.
type SetOptions struct {
	Active     bool
	X          float64
	Y          float64
	Size       float64
	Text       string
	Type       string
	ShowDate   bool
	DateLayout string
	Duration   string
	Format     string
}

// AddSetArgs wires the widget flags on the provided command.
func AddSetArgs(cmd *cobra.Command, o *SetOptions) {
	cmd.Flags().BoolVar(&o.Active, "active", true,
		"Show or hide the widget, example: --active=false.")
	cmd.Flags().Float64Var(&o.X, "x", 0,
		"Horizontal center as a percentage of the screen width.")
	cmd.Flags().Float64Var(&o.Y, "y", 0,
		"Vertical center as a percentage of the screen height.")
	cmd.Flags().Float64Var(&o.Size, "size", 0,
		"Widget width in pixels. The height follows the widget's aspect ratio.")
	cmd.Flags().StringVar(&o.Text, "text", "",
		"Message text (message only).")
	cmd.Flags().StringVar(&o.Type, "type", "",
		"Clock face, analog or digital (clock only).")
	cmd.Flags().BoolVar(&o.ShowDate, "show-date", true,
		"Show the date under the time (clock only).")
	cmd.Flags().StringVar(&o.DateLayout, "date-layout", "",
		`Go time layout of the date line (clock only), example: --date-layout="Mon Jan 2".`)
	cmd.Flags().StringVar(&o.Duration, "duration", "",
		`Countdown preset (countdown only), example: --duration=4m30s or --duration=5.`)
	cmd.Flags().StringVar(&o.Format, "format", "",
		"Weekday format, full, short or abbreviated (day of week only).")
}

// Changed points at the values of the flags the user passed. Nil means the
// flag was not given.
type Changed struct {
	Active     *bool
	X          *float64
	Y          *float64
	Size       *float64
	Text       *string
	ClockType  *board.ClockType
	ShowDate   *bool
	DateLayout *string
	Duration   *time.Duration
	DayFormat  *board.DayFormat
}

// Resolve parses the flags the user passed in f.
func (o *SetOptions) Resolve(f *pflag.FlagSet) (Changed, error) {
	var c Changed
	if f.Changed("active") {
		c.Active = &o.Active
	}
	if f.Changed("x") {
		c.X = &o.X
	}
	if f.Changed("y") {
		c.Y = &o.Y
	}
	if f.Changed("size") {
		c.Size = &o.Size
	}
	if f.Changed("text") {
		c.Text = &o.Text
	}
	if f.Changed("type") {
		t, err := board.ParseClockType(o.Type)
		if err != nil {
			return c, err
		}
		c.ClockType = &t
	}
	if f.Changed("show-date") {
		c.ShowDate = &o.ShowDate
	}
	if f.Changed("date-layout") {
		c.DateLayout = &o.DateLayout
	}
	if f.Changed("duration") {
		d, err := timeutil.ParseCountdown(o.Duration)
		if err != nil {
			return c, err
		}
		c.Duration = &d
	}
	if f.Changed("format") {
		df, err := board.ParseDayFormat(o.Format)
		if err != nil {
			return c, err
		}
		c.DayFormat = &df
	}
	return c, nil
}
