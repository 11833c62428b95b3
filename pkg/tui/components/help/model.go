// Package help shows the key and gesture reference over the board.
package help

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/tui/theme"
	"tableflip.dev/smartboard/pkg/tui/ui"
)

//go:embed help.md
var reference string

const lockedNote = "> The layout is **locked**. Widgets ignore the mouse until you press `l`.\n\n"

// Model is the help overlay: a header line over a scrollable rendering of
// the reference.
type Model struct {
	th     theme.ModalTheme
	vp     viewport.Model
	scheme board.Theme
	locked bool
	width  int
	height int
	inner  int
}

// New renders the reference for the given color scheme. A locked board gets
// a note on how to unlock it.
func New(th theme.ModalTheme, scheme board.Theme, locked bool) *Model {
	vp := viewport.New(viewport.WithWidth(1), viewport.WithHeight(1))
	vp.MouseWheelEnabled = true
	return &Model{
		th:     th,
		vp:     vp,
		scheme: scheme,
		locked: locked,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

// Update scrolls the reference. Closing is left to the display.
func (m *Model) Update(msg tea.Msg) (ui.Overlay, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "g", "home":
			m.vp.GotoTop()
			return m, nil
		case "G", "end":
			m.vp.GotoBottom()
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.vp, cmd = m.vp.Update(msg)
	return m, cmd
}

func (m *Model) View() (string, *tea.Cursor) {
	if m.width == 0 {
		return "", nil
	}
	header := m.th.Title.Render("Help") + "  " +
		m.th.Muted.Render(fmt.Sprintf("↑/↓ scroll · esc close · %3.0f%%", m.vp.ScrollPercent()*100))
	body := lipgloss.JoinVertical(lipgloss.Left, ansi.Truncate(header, m.inner, "…"), m.vp.View())
	return m.frame().Width(m.width).Height(m.height).Render(body), nil
}

// SetSize fits the overlay into width × height cells and re-renders the
// markdown at the new wrap width.
func (m *Model) SetSize(width, height int) {
	width, height = max(width, 32), max(height, 8)
	if width == m.width && height == m.height {
		return
	}
	m.width, m.height = width, height
	fx, fy := m.frame().GetFrameSize()
	m.inner = max(width-fx, 1)
	m.vp.SetWidth(m.inner)
	m.vp.SetHeight(max(height-fy-1, 1))
	m.vp.SetContent(m.render(m.inner))
	m.vp.GotoTop()
}

func (m *Model) frame() lipgloss.Style {
	return m.th.Frame.Padding(0, 1)
}

func (m *Model) render(wrap int) string {
	style := "dark"
	if m.scheme == board.ThemeLight {
		style = "light"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle(style),
		glamour.WithWordWrap(max(wrap, 10)),
	)
	if err == nil {
		doc := strings.TrimSpace(reference)
		if m.locked {
			doc = lockedNote + doc
		}
		var out string
		if out, err = r.Render(doc); err == nil {
			// The frame carries the theme, so only the layout is kept.
			return ansi.Strip(out)
		}
	}
	return "help unavailable: " + err.Error()
}
