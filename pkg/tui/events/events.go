package events

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/store"
)

// ComponentID uniquely identifies a component instance emitting events.
type ComponentID string

// TickMsg drives the clock and the countdown once a second.
type TickMsg struct {
	Time time.Time
}

// Describe renders the tick for logs.
func (m TickMsg) Describe() string {
	return fmt.Sprintf(`at:%q`, m.Time.Format("15:04:05"))
}

// TickCmd schedules the next TickMsg after d.
func TickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// HandlesExpiredMsg is delivered when a widget's resize handle deadline
// passes. Token identifies which arming of the deadline it belongs to.
type HandlesExpiredMsg struct {
	Widget board.ComponentName
	Token  uint64
}

// Describe renders the expiry for logs.
func (m HandlesExpiredMsg) Describe() string {
	return fmt.Sprintf(`widget:%q token:%d`, m.Widget, m.Token)
}

// HandlesExpiredCmd schedules a HandlesExpiredMsg after d.
func HandlesExpiredCmd(widget board.ComponentName, token uint64, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return HandlesExpiredMsg{Widget: widget, Token: token}
	})
}

// ConfigChangedMsg relays a config store change to the UI.
type ConfigChangedMsg struct {
	Change configstore.Change
}

// Describe renders the change for logs.
func (m ConfigChangedMsg) Describe() string {
	component := string(m.Change.Component)
	if component == "" {
		component = "*"
	}
	return fmt.Sprintf(`component:%q origin:%q updated:%q`, component, m.Change.Origin, m.Change.Config.UpdatedAt.Format(time.RFC3339Nano))
}

// WaitForChangeCmd blocks on the subscription and relays the next change.
// It returns nil once the channel is closed.
func WaitForChangeCmd(ch <-chan configstore.Change) tea.Cmd {
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return ConfigChangedMsg{Change: c}
	}
}

// StorageEventMsg relays a change to the persisted record made outside this
// process.
type StorageEventMsg struct {
	Event store.Event
}

// Describe renders the storage event for logs.
func (m StorageEventMsg) Describe() string {
	return fmt.Sprintf(`type:%q`, m.Event.Type)
}

// WaitForStorageCmd blocks on the watch channel and relays the next event.
func WaitForStorageCmd(ch <-chan store.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return StorageEventMsg{Event: ev}
	}
}

// CountdownFinishedMsg is emitted when the countdown reaches zero.
type CountdownFinishedMsg struct {
	At time.Time
}

// Describe renders the finish for logs.
func (m CountdownFinishedMsg) Describe() string {
	return fmt.Sprintf(`at:%q`, m.At.Format("15:04:05"))
}

// WidgetGestureMsg reports the start or end of a drag or resize.
type WidgetGestureMsg struct {
	Component ComponentID
	Widget    board.ComponentName
	Gesture   string
	Done      bool
}

// Describe renders the gesture for logs.
func (m WidgetGestureMsg) Describe() string {
	state := "start"
	if m.Done {
		state = "end"
	}
	return fmt.Sprintf(`widget:%q gesture:%q state:%q`, m.Widget, m.Gesture, state)
}

// WidgetGestureCmd wraps WidgetGestureMsg into a tea.Cmd.
func WidgetGestureCmd(component ComponentID, widget board.ComponentName, gesture string, done bool) tea.Cmd {
	return func() tea.Msg {
		return WidgetGestureMsg{Component: component, Widget: widget, Gesture: gesture, Done: done}
	}
}

// SettingsClosedMsg is emitted when the settings overlay is dismissed.
type SettingsClosedMsg struct {
	Component ComponentID
}

// Describe implements the logging helper.
func (m SettingsClosedMsg) Describe() string {
	return fmt.Sprintf(`component:%q`, m.Component)
}

// SettingsClosedCmd wraps SettingsClosedMsg into a tea.Cmd.
func SettingsClosedCmd(component ComponentID) tea.Cmd {
	return func() tea.Msg {
		return SettingsClosedMsg{Component: component}
	}
}

// DebugMsg carries diagnostic information to the event viewer.
type DebugMsg struct {
	Component ComponentID
	Context   string
	Detail    string
}

// Describe renders the debug message in a human-readable format.
func (m DebugMsg) Describe() string {
	return fmt.Sprintf(`context:%q detail:%q`, m.Context, m.Detail)
}

// DebugCmd wraps DebugMsg into a tea.Cmd.
func DebugCmd(component ComponentID, context, detail string) tea.Cmd {
	return func() tea.Msg {
		return DebugMsg{Component: component, Context: context, Detail: detail}
	}
}
