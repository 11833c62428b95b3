package board

import (
	"fmt"

	"tableflip.dev/smartboard/pkg/geometry"
)

// Ptr returns a pointer to v, for building patches inline.
func Ptr[T any](v T) *T {
	return &v
}

// ComponentPatch is a partial update for one component slice. Nil fields are
// left unchanged. The set of implementations is closed: WidgetPatch applies
// to any slice, the kind-specific patches only to their own.
type ComponentPatch interface {
	target() ComponentName
}

// WidgetPatch updates the geometry and visibility shared by all widgets.
type WidgetPatch struct {
	IsActive *bool
	Position *geometry.Position
	Size     *geometry.Size
}

func (WidgetPatch) target() ComponentName { return "" }

func (w *Widget) apply(p WidgetPatch) {
	if p.IsActive != nil {
		w.IsActive = *p.IsActive
	}
	if p.Position != nil {
		w.Position = *p.Position
	}
	if p.Size != nil {
		w.Size = *p.Size
	}
}

// ClockPatch updates the clock slice.
type ClockPatch struct {
	WidgetPatch
	Type       *ClockType
	ShowDate   *bool
	DateLayout *string
}

func (ClockPatch) target() ComponentName { return Clock }

// MessagePatch updates the message slice.
type MessagePatch struct {
	WidgetPatch
	Text *string
}

func (MessagePatch) target() ComponentName { return Message }

// CountdownTimerPatch updates the countdown slice.
type CountdownTimerPatch struct {
	WidgetPatch
	Minutes *int
	Seconds *int
}

func (CountdownTimerPatch) target() ComponentName { return CountdownTimer }

// DayOfWeekPatch updates the weekday slice.
type DayOfWeekPatch struct {
	WidgetPatch
	Format *DayFormat
}

func (DayOfWeekPatch) target() ComponentName { return DayOfWeek }

// Apply merges patch into the named slice and leaves every other slice alone.
func (c *Components) Apply(name ComponentName, patch ComponentPatch) error {
	patch = deref(patch)
	if patch == nil {
		return nil
	}
	if want := patch.target(); want != "" && want != name {
		return fmt.Errorf("%w: %s patch for %s", ErrPatchMismatch, want, name)
	}
	switch name {
	case Clock:
		switch p := patch.(type) {
		case WidgetPatch:
			c.Clock.apply(p)
		case ClockPatch:
			c.Clock.apply(p.WidgetPatch)
			if p.Type != nil {
				c.Clock.Type = *p.Type
			}
			if p.ShowDate != nil {
				c.Clock.ShowDate = *p.ShowDate
			}
			if p.DateLayout != nil {
				c.Clock.DateLayout = *p.DateLayout
			}
		default:
			return mismatch(patch, name)
		}
	case Message:
		switch p := patch.(type) {
		case WidgetPatch:
			c.Message.apply(p)
		case MessagePatch:
			c.Message.apply(p.WidgetPatch)
			if p.Text != nil {
				c.Message.Text = *p.Text
			}
		default:
			return mismatch(patch, name)
		}
	case CountdownTimer:
		switch p := patch.(type) {
		case WidgetPatch:
			c.CountdownTimer.apply(p)
		case CountdownTimerPatch:
			c.CountdownTimer.apply(p.WidgetPatch)
			if p.Minutes != nil {
				c.CountdownTimer.Minutes = max(0, *p.Minutes)
			}
			if p.Seconds != nil {
				c.CountdownTimer.Seconds = min(59, max(0, *p.Seconds))
			}
		default:
			return mismatch(patch, name)
		}
	case DayOfWeek:
		switch p := patch.(type) {
		case WidgetPatch:
			c.DayOfWeek.apply(p)
		case DayOfWeekPatch:
			c.DayOfWeek.apply(p.WidgetPatch)
			if p.Format != nil {
				c.DayOfWeek.Format = *p.Format
			}
		default:
			return mismatch(patch, name)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
	}
	return nil
}

// ConfigPatch is a shallow partial update of the top-level document. Nested
// structs are replaced whole. Identity and timestamps are not patchable.
type ConfigPatch struct {
	BackgroundImageURL *string
	BackgroundRotation *BackgroundRotation
	Components         *Components
	ClockFormat        *ClockFormat
	ClockStyle         *ClockType
	Timezone           *string
	Theme              *Theme
	RefreshInterval    *int
	DisplaySettings    *DisplaySettings
}

// Merge applies p onto c.
func (c *AppConfig) Merge(p ConfigPatch) {
	if p.BackgroundImageURL != nil {
		c.BackgroundImageURL = *p.BackgroundImageURL
	}
	if p.BackgroundRotation != nil {
		c.BackgroundRotation = *p.BackgroundRotation
	}
	if p.Components != nil {
		c.Components = *p.Components
	}
	if p.ClockFormat != nil {
		c.ClockFormat = *p.ClockFormat
	}
	if p.ClockStyle != nil {
		c.ClockStyle = *p.ClockStyle
	}
	if p.Timezone != nil {
		c.Timezone = *p.Timezone
	}
	if p.Theme != nil {
		c.Theme = *p.Theme
	}
	if p.RefreshInterval != nil {
		c.RefreshInterval = *p.RefreshInterval
	}
	if p.DisplaySettings != nil {
		c.DisplaySettings = *p.DisplaySettings
	}
}

// deref turns a pointer patch into its value. A nil pointer means no patch.
func deref(patch ComponentPatch) ComponentPatch {
	switch p := patch.(type) {
	case *WidgetPatch:
		if p == nil {
			return nil
		}
		return *p
	case *ClockPatch:
		if p == nil {
			return nil
		}
		return *p
	case *MessagePatch:
		if p == nil {
			return nil
		}
		return *p
	case *CountdownTimerPatch:
		if p == nil {
			return nil
		}
		return *p
	case *DayOfWeekPatch:
		if p == nil {
			return nil
		}
		return *p
	}
	return patch
}

func mismatch(patch ComponentPatch, name ComponentName) error {
	return fmt.Errorf("%w: %T for %s", ErrPatchMismatch, patch, name)
}
