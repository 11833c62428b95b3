// Package panel renders the inspector shown in the corner while a widget is
// being moved or resized.
package panel

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/geometry"
	"tableflip.dev/smartboard/pkg/tui/theme"
)

// Reading is the geometry of one widget at one moment of a gesture.
type Reading struct {
	Name        board.ComponentName
	Gesture     string
	Widget      board.Widget
	Constraints geometry.Constraints
	// Resizing adds the size limits to the panel.
	Resizing bool
}

// Model holds the latest reading.
type Model struct {
	th      theme.PanelTheme
	reading *Reading
}

func New(th theme.PanelTheme) Model {
	return Model{th: th}
}

// Show replaces the displayed reading.
func (m *Model) Show(r Reading) {
	m.reading = &r
}

// Hide clears the panel.
func (m *Model) Hide() {
	m.reading = nil
}

func (m Model) Visible() bool { return m.reading != nil }

func (m Model) lines() []string {
	r := m.reading
	w := r.Widget
	lines := []string{
		fmt.Sprintf("center %.1f%%, %.1f%%", w.Position.X, w.Position.Y),
		fmt.Sprintf("size   %.0f × %.0f", w.Size.Width, w.Size.Height),
	}
	if r.Resizing {
		c := r.Constraints
		lines = append(lines, fmt.Sprintf("range  %.0f–%.0f", c.Min, c.Max))
		if c.AspectLocked() {
			lines = append(lines, fmt.Sprintf("aspect %.2f", c.AspectRatio))
		} else {
			lines = append(lines, "aspect free")
		}
	}
	return lines
}

// View returns the framed panel and its height in rows. A hidden panel
// renders nothing.
func (m Model) View() (string, int) {
	if m.reading == nil {
		return "", 0
	}
	rows := []string{m.th.Title.Render(m.reading.Name.Title() + " · " + m.reading.Gesture)}
	for _, l := range m.lines() {
		rows = append(rows, m.th.Body.Render(l))
	}
	view := m.th.Frame.Render(strings.Join(rows, "\n"))
	return view, lipgloss.Height(view)
}
