// Package settings implements the settings overlay: a list of rows that
// toggle widgets and tweak their options. Every change is written to the
// config store as soon as it is made.
package settings

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/tui/events"
	"tableflip.dev/smartboard/pkg/tui/theme"
	"tableflip.dev/smartboard/pkg/tui/ui"
	"tableflip.dev/smartboard/pkg/widget"
)

// Ensure Model satisfies the Overlay interface.
var _ ui.Overlay = (*Model)(nil)

const (
	sizeStep    = 10
	secondsStep = 5
	opacityStep = 0.1
)

// Store is the part of the config store the overlay edits.
type Store interface {
	Snapshot() board.AppConfig
	UpdateConfig(patch board.ConfigPatch) error
	UpdateComponent(name board.ComponentName, patch board.ComponentPatch) error
	Reset() error
}

// Resizer changes a widget's size and keeps the widget on screen.
type Resizer interface {
	Resize(name board.ComponentName, width float64) error
}

// resizingStore lets size rows go through the Resizer when one is set.
type resizingStore struct {
	Store
	Resizer
}

type row struct {
	section string
	label   string
	value   func(board.AppConfig) string
	adjust  func(Store, board.AppConfig, int) error
	// text rows open an input instead of cycling values
	text bool
	// confirm rows ask before applying
	confirm bool
}

// Model tracks the overlay state.
type Model struct {
	id      events.ComponentID
	store   Store
	resizer Resizer
	theme   theme.ModalTheme

	rows   []row
	cursor int

	editing      bool
	input        textinput.Model
	confirmReset bool
	status       string

	width  int
	height int
}

// New constructs the overlay bound to store.
func New(store Store, th theme.ModalTheme) *Model {
	in := textinput.New()
	in.Placeholder = widget.MessagePlaceholder
	in.Prompt = "› "
	return &Model{
		id:    events.ComponentID("settings"),
		store: store,
		theme: th,
		rows:  buildRows(),
		input: in,
	}
}

// ID identifies the overlay in events.
func (m *Model) ID() events.ComponentID { return m.id }

// SetResizer routes size changes through r so a grown widget is pulled back
// on screen.
func (m *Model) SetResizer(r Resizer) { m.resizer = r }

// Init implements ui.Overlay.
func (m *Model) Init() tea.Cmd { return nil }

// SetSize implements ui.Overlay.
func (m *Model) SetSize(width, height int) {
	m.width, m.height = width, height
	m.input.SetWidth(max(m.contentWidth()-4, 8))
}

// Cursor is the selected row index.
func (m *Model) Cursor() int { return m.cursor }

// Editing reports whether the message input is open.
func (m *Model) Editing() bool { return m.editing }

// Update implements ui.Overlay.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	key, ok := msg.(tea.KeyPressMsg)
	if !ok {
		if m.editing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}
	return m, m.handleKey(key)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.editing {
		switch msg.String() {
		case "enter":
			m.commitText()
			return nil
		case "esc":
			m.editing = false
			m.input.Blur()
			m.status = "Edit cancelled"
			return nil
		}
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}

	if m.confirmReset {
		switch msg.String() {
		case "y", "enter":
			m.confirmReset = false
			if err := m.store.Reset(); err != nil {
				m.status = "Reset failed: " + err.Error()
			} else {
				m.status = "Layout reset to defaults"
			}
		case "n", "esc":
			m.confirmReset = false
			m.status = ""
		}
		return nil
	}

	switch msg.String() {
	case "up", "k":
		m.cursor = (m.cursor - 1 + len(m.rows)) % len(m.rows)
		m.status = ""
	case "down", "j", "tab":
		m.cursor = (m.cursor + 1) % len(m.rows)
		m.status = ""
	case "left", "h", "-":
		m.apply(-1)
	case "right", "l", "+", "space", " ":
		m.apply(1)
	case "enter":
		r := m.rows[m.cursor]
		switch {
		case r.text:
			return m.beginEdit()
		case r.confirm:
			m.confirmReset = true
			m.status = "Reset every widget? (y/n)"
		default:
			m.apply(1)
		}
	case "esc", "q", "s":
		return events.SettingsClosedCmd(m.id)
	}
	return nil
}

func (m *Model) apply(dir int) {
	r := m.rows[m.cursor]
	if r.text || r.confirm || r.adjust == nil {
		return
	}
	var target Store = m.store
	if m.resizer != nil {
		target = resizingStore{Store: m.store, Resizer: m.resizer}
	}
	if err := r.adjust(target, m.store.Snapshot(), dir); err != nil {
		m.status = "Update failed: " + err.Error()
		return
	}
	m.status = ""
}

func (m *Model) beginEdit() tea.Cmd {
	m.editing = true
	m.input.SetValue(m.store.Snapshot().Components.Message.Text)
	m.input.CursorEnd()
	m.status = "enter to save · esc to cancel"
	return m.input.Focus()
}

func (m *Model) commitText() {
	text := strings.TrimSpace(m.input.Value())
	m.editing = false
	m.input.Blur()
	if err := m.store.UpdateComponent(board.Message, board.MessagePatch{Text: &text}); err != nil {
		m.status = "Update failed: " + err.Error()
		return
	}
	m.status = "Message saved"
}

// View implements ui.Overlay.
func (m *Model) View() (string, *tea.Cursor) {
	cfg := m.store.Snapshot()
	width := m.contentWidth()

	lines := []string{m.theme.Title.Render("Settings"), ""}
	inputRow := -1
	section := ""
	for i, r := range m.rows {
		if r.section != section {
			if section != "" {
				lines = append(lines, "")
			}
			section = r.section
			lines = append(lines, m.theme.Muted.Render(strings.ToUpper(section)))
		}
		if r.text && m.editing {
			inputRow = len(lines)
			lines = append(lines, m.input.View())
			continue
		}
		lines = append(lines, m.renderRow(i, r, cfg, width))
	}
	lines = append(lines, "")
	status := m.status
	if status == "" {
		status = "↑/↓ select · ←/→ change · enter edit · esc close"
	}
	lines = append(lines, m.theme.Muted.Render(status))

	body := lipgloss.NewStyle().Width(width).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
	box := m.theme.Frame.Render(body)

	var cursor *tea.Cursor
	if inputRow >= 0 {
		if c := m.input.Cursor(); c != nil {
			clone := *c
			clone.Position.X += m.theme.Frame.GetBorderLeftSize() + m.theme.Frame.GetPaddingLeft()
			clone.Position.Y += inputRow + m.theme.Frame.GetBorderTopSize() + m.theme.Frame.GetPaddingTop()
			cursor = &clone
		}
	}
	return box, cursor
}

func (m *Model) renderRow(i int, r row, cfg board.AppConfig, width int) string {
	value := ""
	if r.value != nil {
		value = r.value(cfg)
	}
	marker := "  "
	label := r.label
	if i == m.cursor {
		marker = "› "
		label = m.theme.Selected.Render(label)
		if value != "" {
			value = m.theme.Selected.Render(value)
		}
	}
	gap := width - lipgloss.Width(marker) - lipgloss.Width(label) - lipgloss.Width(value)
	if gap < 1 {
		gap = 1
	}
	return marker + label + strings.Repeat(" ", gap) + value
}

func (m *Model) contentWidth() int {
	w := m.width - m.theme.Frame.GetHorizontalFrameSize() - 4
	return clampInt(w, 30, 48)
}

func buildRows() []row {
	rows := []row{
		visibleRow("Clock", board.Clock),
		{
			section: "Clock",
			label:   "Style",
			value:   func(c board.AppConfig) string { return string(c.Components.Clock.Type) },
			adjust: func(s Store, c board.AppConfig, _ int) error {
				next := board.ClockAnalog
				if c.Components.Clock.Type == board.ClockAnalog {
					next = board.ClockDigital
				}
				return s.UpdateComponent(board.Clock, board.ClockPatch{Type: &next})
			},
		},
		{
			section: "Clock",
			label:   "Show date",
			value:   func(c board.AppConfig) string { return onOff(c.Components.Clock.ShowDate) },
			adjust: func(s Store, c board.AppConfig, _ int) error {
				return s.UpdateComponent(board.Clock, board.ClockPatch{ShowDate: board.Ptr(!c.Components.Clock.ShowDate)})
			},
		},
		{
			section: "Clock",
			label:   "Time format",
			value:   func(c board.AppConfig) string { return string(c.ClockFormat) },
			adjust: func(s Store, c board.AppConfig, _ int) error {
				next := board.Format24h
				if c.ClockFormat == board.Format24h {
					next = board.Format12h
				}
				return s.UpdateConfig(board.ConfigPatch{ClockFormat: &next})
			},
		},
		sizeRow("Clock", board.Clock),
		visibleRow("Message", board.Message),
		{
			section: "Message",
			label:   "Text",
			value: func(c board.AppConfig) string {
				text := c.Components.Message.Text
				if text == "" {
					return "(empty)"
				}
				return truncate.StringWithTail(text, 20, "…")
			},
			text: true,
		},
		sizeRow("Message", board.Message),
		visibleRow("Countdown", board.CountdownTimer),
		{
			section: "Countdown",
			label:   "Minutes",
			value:   func(c board.AppConfig) string { return fmt.Sprint(c.Components.CountdownTimer.Minutes) },
			adjust: func(s Store, c board.AppConfig, dir int) error {
				return s.UpdateComponent(board.CountdownTimer, board.CountdownTimerPatch{
					Minutes: board.Ptr(max(c.Components.CountdownTimer.Minutes+dir, 0)),
				})
			},
		},
		{
			section: "Countdown",
			label:   "Seconds",
			value:   func(c board.AppConfig) string { return fmt.Sprint(c.Components.CountdownTimer.Seconds) },
			adjust: func(s Store, c board.AppConfig, dir int) error {
				secs := (c.Components.CountdownTimer.Seconds + dir*secondsStep + 60) % 60
				return s.UpdateComponent(board.CountdownTimer, board.CountdownTimerPatch{Seconds: &secs})
			},
		},
		sizeRow("Countdown", board.CountdownTimer),
		visibleRow("Day of week", board.DayOfWeek),
		{
			section: "Day of week",
			label:   "Format",
			value:   func(c board.AppConfig) string { return string(c.Components.DayOfWeek.Format) },
			adjust: func(s Store, c board.AppConfig, dir int) error {
				next := cycle([]board.DayFormat{board.DayFull, board.DayShort, board.DayAbbreviated}, c.Components.DayOfWeek.Format, dir)
				return s.UpdateComponent(board.DayOfWeek, board.DayOfWeekPatch{Format: &next})
			},
		},
		sizeRow("Day of week", board.DayOfWeek),
		{
			section: "Display",
			label:   "Theme",
			value:   func(c board.AppConfig) string { return string(c.Theme) },
			adjust: func(s Store, c board.AppConfig, _ int) error {
				next := board.ThemeLight
				if c.Theme == board.ThemeLight {
					next = board.ThemeDark
				}
				return s.UpdateConfig(board.ConfigPatch{Theme: &next})
			},
		},
		{
			section: "Display",
			label:   "Background dim",
			value: func(c board.AppConfig) string {
				return fmt.Sprintf("%d%%", int(c.DisplaySettings.SkrimOpacity*100+0.5))
			},
			adjust: func(s Store, c board.AppConfig, dir int) error {
				ds := c.DisplaySettings
				ds.SkrimOpacity = clampFloat(ds.SkrimOpacity+float64(dir)*opacityStep, 0, 1)
				return s.UpdateConfig(board.ConfigPatch{DisplaySettings: &ds})
			},
		},
		{
			section: "Display",
			label:   "Reset layout",
			confirm: true,
		},
	}
	return rows
}

func visibleRow(section string, name board.ComponentName) row {
	return row{
		section: section,
		label:   "Visible",
		value: func(c board.AppConfig) string {
			w, _ := c.Components.Widget(name)
			return onOff(w.IsActive)
		},
		adjust: func(s Store, c board.AppConfig, _ int) error {
			w, _ := c.Components.Widget(name)
			return s.UpdateComponent(name, board.WidgetPatch{IsActive: board.Ptr(!w.IsActive)})
		},
	}
}

func sizeRow(section string, name board.ComponentName) row {
	return row{
		section: section,
		label:   "Size",
		value: func(c board.AppConfig) string {
			w, _ := c.Components.Widget(name)
			return fmt.Sprintf("%.0fpx", widget.ConstraintsFor(name).Clamp(w.Size.Width))
		},
		adjust: func(s Store, c board.AppConfig, dir int) error {
			w, _ := c.Components.Widget(name)
			cons := widget.ConstraintsFor(name)
			width := cons.Clamp(cons.Clamp(w.Size.Width) + float64(dir*sizeStep))
			if r, ok := s.(Resizer); ok {
				return r.Resize(name, width)
			}
			size := cons.SizeFor(width)
			return s.UpdateComponent(name, board.WidgetPatch{Size: &size})
		},
	}
}

func cycle[T comparable](opts []T, cur T, dir int) T {
	idx := 0
	for i, o := range opts {
		if o == cur {
			idx = i
			break
		}
	}
	return opts[(idx+dir+len(opts))%len(opts)]
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func clampInt(v, lo, hi int) int {
	return max(lo, min(hi, v))
}

func clampFloat(v, lo, hi float64) float64 {
	return max(lo, min(hi, v))
}
