// Package eventviewer is the debug strip that lists the messages flowing
// through the display, newest first.
package eventviewer

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/smartboard/pkg/tui/theme"
	"tableflip.dev/smartboard/pkg/tui/ui"
)

const defaultLimit = 200

// Entry is one line of the log. Origin names what produced it: a widget,
// the store, the disk watcher or the display itself.
type Entry struct {
	At     time.Time
	Origin string
	Kind   string
	Text   string
	Warn   bool

	repeat int
}

func (e Entry) same(o Entry) bool {
	return e.Origin == o.Origin && e.Kind == o.Kind && e.Text == o.Text && e.Warn == o.Warn
}

// Model keeps a bounded log. Identical consecutive entries collapse into one
// line with a repeat count.
type Model struct {
	th     theme.DebugTheme
	vp     viewport.Model
	log    []Entry
	limit  int
	warned int
	pinned bool
	width  int
	height int
}

// New returns an empty log holding at most limit lines.
func New(th theme.DebugTheme, limit int) *Model {
	if limit <= 0 {
		limit = defaultLimit
	}
	return &Model{
		th:     th,
		vp:     viewport.New(viewport.WithWidth(1), viewport.WithHeight(1)),
		limit:  limit,
		pinned: true,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls on the mouse wheel. Scrolling away from the newest line
// stops the log from jumping back on every new entry.
func (m *Model) Update(msg tea.Msg) (ui.Component, tea.Cmd) {
	if _, ok := msg.(tea.MouseWheelMsg); !ok {
		return m, nil
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	m.pinned = m.vp.AtTop()
	return m, cmd
}

// Record adds an entry at the top of the log.
func (m *Model) Record(e Entry) {
	if e.At.IsZero() {
		e.At = time.Now()
	}
	if e.Origin == "" {
		e.Origin = "display"
	}
	if e.Warn {
		m.warned++
	}
	if len(m.log) > 0 && m.log[0].same(e) {
		m.log[0].repeat++
		m.log[0].At = e.At
	} else {
		e.repeat = 1
		m.log = append([]Entry{e}, m.log...)
		if len(m.log) > m.limit {
			m.log = m.log[:m.limit]
		}
	}
	m.refresh()
	if m.pinned {
		m.vp.SetYOffset(0)
	}
}

// Len is the number of lines, after collapsing repeats.
func (m *Model) Len() int { return len(m.log) }

// Warnings counts every warning recorded since the last Clear.
func (m *Model) Warnings() int { return m.warned }

func (m *Model) Clear() {
	m.log = nil
	m.warned = 0
	m.refresh()
}

// SetTheme restyles the log after a theme switch.
func (m *Model) SetTheme(th theme.DebugTheme) {
	m.th = th
	m.refresh()
}

func (m *Model) SetSize(width, height int) {
	width, height = max(width, 4), max(height, 3)
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	fx, fy := m.th.Frame.GetFrameSize()
	m.vp.SetWidth(max(width-fx, 1))
	// One row goes to the header.
	m.vp.SetHeight(max(height-fy-1, 1))
	m.refresh()
}

func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	title := fmt.Sprintf("Events %d", len(m.log))
	if m.warned > 0 {
		title += fmt.Sprintf(" · %d warn", m.warned)
	}
	body := lipgloss.JoinVertical(lipgloss.Left, m.th.Header.Render(title), m.vp.View())
	return m.th.Frame.Width(m.width).Height(m.height).Render(body)
}

func (m *Model) refresh() {
	if len(m.log) == 0 {
		m.vp.SetContent(m.th.Stamp.Render("No events yet"))
		return
	}
	var b strings.Builder
	for i, e := range m.log {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(m.line(e))
	}
	m.vp.SetContent(b.String())
}

func (m *Model) line(e Entry) string {
	text := e.Kind
	if e.Text != "" {
		text += " " + e.Text
	}
	if e.repeat > 1 {
		text += fmt.Sprintf(" ×%d", e.repeat)
	}
	style := m.th.Text
	if e.Warn {
		style = m.th.Warn
	}
	return m.th.Stamp.Render(e.At.Format("15:04:05.000")) + " " +
		m.th.Origin.Render(e.Origin) + " " +
		style.Render(text)
}
