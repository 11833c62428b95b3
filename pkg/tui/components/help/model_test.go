package help

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/tui/theme"
)

func TestHelpRendersReference(t *testing.T) {
	m := New(theme.Default().Modal, board.ThemeDark, false)
	if view, _ := m.View(); view != "" {
		t.Fatalf("unsized help should render nothing")
	}
	m.SetSize(70, 30)
	view, cursor := m.View()
	if cursor != nil {
		t.Fatalf("help should not place a cursor")
	}
	plain := ansi.Strip(view)
	for _, want := range []string{"Help", "esc close", "Smartboard"} {
		if !strings.Contains(plain, want) {
			t.Fatalf("expected %q in:\n%s", want, plain)
		}
	}
	if strings.Contains(plain, "locked") {
		t.Fatalf("unlocked board should not show the lock note")
	}
	if got := lipgloss.Height(view); got != 30 {
		t.Fatalf("height = %d, want 30", got)
	}
}

func TestHelpLockedNote(t *testing.T) {
	m := New(theme.For(board.ThemeLight).Modal, board.ThemeLight, true)
	m.SetSize(70, 30)
	view, _ := m.View()
	if !strings.Contains(ansi.Strip(view), "locked") {
		t.Fatalf("expected lock note:\n%s", ansi.Strip(view))
	}
}

func TestHelpMinimumSizeAndScroll(t *testing.T) {
	m := New(theme.Default().Modal, board.ThemeDark, false)
	m.SetSize(5, 2)
	view, _ := m.View()
	if w := lipgloss.Width(view); w != 32 {
		t.Fatalf("width = %d, want 32", w)
	}
	m.Update(tea.KeyPressMsg{Code: 'G', Text: "G"})
	if !m.vp.AtBottom() {
		t.Fatalf("expected G to jump to the end")
	}
	m.Update(tea.KeyPressMsg{Code: 'g', Text: "g"})
	if !m.vp.AtTop() {
		t.Fatalf("expected g to jump to the start")
	}
}
