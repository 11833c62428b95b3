// Package board defines the smartboard configuration document: the widgets
// shown on the display, their geometry, and the display-wide settings.
package board

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/smartboard/pkg/geometry"
)

var (
	// ErrUnknownComponent is returned for a component name outside the known set.
	ErrUnknownComponent = errors.New("unknown component")
	// ErrPatchMismatch is returned when a patch for one component kind is
	// applied to another.
	ErrPatchMismatch = errors.New("patch does not match component")
)

// ComponentName identifies a widget slice within Components.
type ComponentName string

const (
	Clock          ComponentName = "clock"
	Message        ComponentName = "message"
	CountdownTimer ComponentName = "countdownTimer"
	DayOfWeek      ComponentName = "dayOfWeek"
)

// ComponentNames lists every component in stacking order, bottom first.
var ComponentNames = []ComponentName{DayOfWeek, Message, CountdownTimer, Clock}

var componentAliases = map[string]ComponentName{
	"clock":          Clock,
	"message":        Message,
	"msg":            Message,
	"countdowntimer": CountdownTimer,
	"countdown":      CountdownTimer,
	"timer":          CountdownTimer,
	"dayofweek":      DayOfWeek,
	"day":            DayOfWeek,
	"weekday":        DayOfWeek,
}

// ParseComponentName resolves a component name or one of its aliases.
func ParseComponentName(s string) (ComponentName, error) {
	key := strings.ToLower(strings.NewReplacer("-", "", "_", "").Replace(strings.TrimSpace(s)))
	if name, ok := componentAliases[key]; ok {
		return name, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownComponent, s)
}

// Title is the human label of the component.
func (n ComponentName) Title() string {
	switch n {
	case Clock:
		return "Clock"
	case Message:
		return "Message"
	case CountdownTimer:
		return "Countdown Timer"
	case DayOfWeek:
		return "Day of Week"
	}
	return string(n)
}

// ClockType selects the clock face.
type ClockType string

const (
	ClockAnalog  ClockType = "analog"
	ClockDigital ClockType = "digital"
)

// ClockFormat selects 12 or 24 hour time.
type ClockFormat string

const (
	Format12h ClockFormat = "12h"
	Format24h ClockFormat = "24h"
)

// Layout returns the Go time layout for the format.
func (f ClockFormat) Layout() string {
	if f == Format24h {
		return "15:04"
	}
	return "3:04 PM"
}

// Theme is the display color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// DayFormat controls how the weekday is spelled.
type DayFormat string

const (
	DayFull        DayFormat = "full"
	DayShort       DayFormat = "short"
	DayAbbreviated DayFormat = "abbreviated"
)

// Render spells d in this format.
func (f DayFormat) Render(d time.Weekday) string {
	full := d.String()
	switch f {
	case DayShort:
		return full[:3]
	case DayAbbreviated:
		return full[:1]
	default:
		return full
	}
}

// CountdownFormat controls countdown text density.
type CountdownFormat string

const (
	CountdownFull    CountdownFormat = "full"
	CountdownCompact CountdownFormat = "compact"
)

// Widget is the geometry and visibility shared by every component.
type Widget struct {
	IsActive bool              `json:"isActive" toml:"isActive"`
	Position geometry.Position `json:"position" toml:"position"`
	Size     geometry.Size     `json:"size" toml:"size"`
}

// ClockConfig configures the clock widget.
type ClockConfig struct {
	Widget
	Type       ClockType `json:"type" toml:"type"`
	ShowDate   bool      `json:"showDate" toml:"showDate"`
	DateLayout string    `json:"dateLayout,omitempty" toml:"dateLayout,omitempty"`
}

// MessageConfig configures the free-text message widget.
type MessageConfig struct {
	Widget
	Text string `json:"text" toml:"text"`
}

// CountdownTimerConfig configures the countdown widget. Minutes and Seconds
// are the preset loaded when the timer starts from zero.
type CountdownTimerConfig struct {
	Widget
	Minutes int `json:"minutes" toml:"minutes"`
	Seconds int `json:"seconds" toml:"seconds"`
}

// Preset returns the configured countdown length.
func (c CountdownTimerConfig) Preset() time.Duration {
	return time.Duration(c.Minutes)*time.Minute + time.Duration(c.Seconds)*time.Second
}

// DayOfWeekConfig configures the weekday widget.
type DayOfWeekConfig struct {
	Widget
	Format DayFormat `json:"format" toml:"format"`
}

// Components holds one slice per widget kind.
type Components struct {
	Clock          ClockConfig          `json:"clock" toml:"clock"`
	Message        MessageConfig        `json:"message" toml:"message"`
	CountdownTimer CountdownTimerConfig `json:"countdownTimer" toml:"countdownTimer"`
	DayOfWeek      DayOfWeekConfig      `json:"dayOfWeek" toml:"dayOfWeek"`
}

// Widget returns the shared geometry of the named slice.
func (c Components) Widget(name ComponentName) (Widget, bool) {
	switch name {
	case Clock:
		return c.Clock.Widget, true
	case Message:
		return c.Message.Widget, true
	case CountdownTimer:
		return c.CountdownTimer.Widget, true
	case DayOfWeek:
		return c.DayOfWeek.Widget, true
	}
	return Widget{}, false
}

// BackgroundRotation configures background image cycling.
type BackgroundRotation struct {
	Enabled  bool   `json:"enabled" toml:"enabled"`
	Interval int    `json:"interval" toml:"interval"` // minutes
	GroupID  string `json:"groupId,omitempty" toml:"groupId,omitempty"`
}

// DisplaySettings are the presentation knobs of the kiosk view.
type DisplaySettings struct {
	ShowLocation       bool            `json:"showLocation" toml:"showLocation"`
	ShowInstructor     bool            `json:"showInstructor" toml:"showInstructor"`
	CountdownFormat    CountdownFormat `json:"countdownFormat" toml:"countdownFormat"`
	ShowNextClass      bool            `json:"showNextClass" toml:"showNextClass"`
	MaxUpcomingClasses int             `json:"maxUpcomingClasses" toml:"maxUpcomingClasses"`
	SkrimOpacity       float64         `json:"skrimOpacity" toml:"skrimOpacity"`
	SkrimColor         string          `json:"skrimColor" toml:"skrimColor"`
}

// AppConfig is the whole configuration document. It holds no references, so
// a plain copy is a deep copy.
type AppConfig struct {
	ID                 string             `json:"id" toml:"id"`
	UserID             string             `json:"userId" toml:"userId"`
	BackgroundImageURL string             `json:"backgroundImageUrl,omitempty" toml:"backgroundImageUrl,omitempty"`
	BackgroundRotation BackgroundRotation `json:"backgroundRotation" toml:"backgroundRotation"`
	Components         Components         `json:"components" toml:"components"`
	ClockFormat        ClockFormat        `json:"clockFormat" toml:"clockFormat"`
	ClockStyle         ClockType          `json:"clockStyle" toml:"clockStyle"`
	Timezone           string             `json:"timezone" toml:"timezone"`
	Theme              Theme              `json:"theme" toml:"theme"`
	RefreshInterval    int                `json:"refreshInterval" toml:"refreshInterval"` // seconds
	DisplaySettings    DisplaySettings    `json:"displaySettings" toml:"displaySettings"`
	CreatedAt          time.Time          `json:"createdAt" toml:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt" toml:"updatedAt"`
}

// Location resolves Timezone, falling back to the local zone.
func (c AppConfig) Location() *time.Location {
	if c.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

// DefaultUserID owns configurations created on this machine.
const DefaultUserID = "local"

// DefaultDateLayout is used by the clock when no layout is configured.
const DefaultDateLayout = "Monday, January 2"

// Defaults returns a fresh configuration stamped at now.
func Defaults(now time.Time) AppConfig {
	return AppConfig{
		ID:     uuid.New().String(),
		UserID: DefaultUserID,
		BackgroundRotation: BackgroundRotation{
			Enabled:  false,
			Interval: 30,
		},
		Components:      DefaultComponents(),
		ClockFormat:     Format12h,
		ClockStyle:      ClockAnalog,
		Timezone:        "America/New_York",
		Theme:           ThemeDark,
		RefreshInterval: 30,
		DisplaySettings: DisplaySettings{
			ShowLocation:       true,
			ShowInstructor:     true,
			CountdownFormat:    CountdownFull,
			ShowNextClass:      true,
			MaxUpcomingClasses: 3,
			SkrimOpacity:       0.7,
			SkrimColor:         "#000000",
		},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DefaultComponents returns the stock widget layout.
func DefaultComponents() Components {
	return Components{
		Clock: ClockConfig{
			Widget: Widget{
				IsActive: true,
				Position: geometry.Position{X: 50, Y: 50},
				Size:     geometry.Size{Width: 300, Height: 300},
			},
			Type:       ClockDigital,
			ShowDate:   true,
			DateLayout: DefaultDateLayout,
		},
		Message: MessageConfig{
			Widget: Widget{
				Position: geometry.Position{X: 50, Y: 20},
				Size:     geometry.Size{Width: 400, Height: 400},
			},
		},
		CountdownTimer: CountdownTimerConfig{
			Widget: Widget{
				Position: geometry.Position{X: 50, Y: 75},
				Size:     geometry.Size{Width: 250, Height: 250 / 1.2},
			},
			Minutes: 5,
		},
		DayOfWeek: DayOfWeekConfig{
			Widget: Widget{
				Position: geometry.Position{X: 50, Y: 35},
				Size:     geometry.Size{Width: 200, Height: 200},
			},
			Format: DayFull,
		},
	}
}
