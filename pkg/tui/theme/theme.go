package theme

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/smartboard/pkg/board"
)

// Theme centralizes Lip Gloss styles for the display.
type Theme struct {
	Widget     WidgetTheme
	Footer     FooterTheme
	Panel      PanelTheme
	Modal      ModalTheme
	Debug      DebugTheme
	Background BackgroundTheme
}

// WidgetTheme styles the framed widgets.
type WidgetTheme struct {
	Frame    lipgloss.Style
	Selected lipgloss.Style
	Big      lipgloss.Style
	Text     lipgloss.Style
	Muted    lipgloss.Style
	Alert    lipgloss.Style
}

// FooterTheme groups styles used by the bottom status line.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
	Locked lipgloss.Style
}

// PanelTheme styles small framed panels and headings.
type PanelTheme struct {
	Frame lipgloss.Style
	Title lipgloss.Style
	Body  lipgloss.Style
}

// ModalTheme styles centered modal overlays (settings, help).
type ModalTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// DebugTheme styles the event log strip.
type DebugTheme struct {
	Frame  lipgloss.Style
	Header lipgloss.Style
	Stamp  lipgloss.Style
	Origin lipgloss.Style
	Text   lipgloss.Style
	Warn   lipgloss.Style
}

// BackgroundTheme holds the gradient stops painted behind the widgets.
type BackgroundTheme struct {
	From string
	To   string
}

// HandleBorder draws the resize handles as the frame's corners.
var HandleBorder = lipgloss.Border{
	Top:         "─",
	Bottom:      "─",
	Left:        "│",
	Right:       "│",
	TopLeft:     "◆",
	TopRight:    "◆",
	BottomLeft:  "◆",
	BottomRight: "◆",
}

// Default returns the built-in dark theme.
func Default() Theme {
	return For(board.ThemeDark)
}

// For returns the theme matching the configured color scheme.
func For(t board.Theme) Theme {
	fg := lipgloss.Color("255")
	muted := lipgloss.Color("250")
	border := lipgloss.Color("246")
	bg := BackgroundTheme{From: "#667eea", To: "#764ba2"}
	if t == board.ThemeLight {
		fg = lipgloss.Color("235")
		muted = lipgloss.Color("240")
		border = lipgloss.Color("242")
		bg = BackgroundTheme{From: "#e0e7ff", To: "#fbcfe8"}
	}

	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Foreground(fg).
		Padding(0, 1).
		Align(lipgloss.Center, lipgloss.Center)

	return Theme{
		Widget: WidgetTheme{
			Frame: frame,
			Selected: frame.
				Border(HandleBorder).
				BorderForeground(lipgloss.Color("212")),
			Big:   lipgloss.NewStyle().Bold(true).Foreground(fg),
			Text:  lipgloss.NewStyle().Foreground(fg),
			Muted: lipgloss.NewStyle().Foreground(muted),
			Alert: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ff6b6b")),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Locked: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("212")).
				Padding(0, 1),
			Title: lipgloss.NewStyle().Bold(true).Foreground(fg),
			Body:  lipgloss.NewStyle().Foreground(muted),
		},
		Modal: ModalTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("252")).
				Padding(1, 2),
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Selected: lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
		Debug: DebugTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")),
			Header: lipgloss.NewStyle().Bold(true).Foreground(muted),
			Stamp:  lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Origin: lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Text:   lipgloss.NewStyle().Foreground(fg),
			Warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB347")),
		},
		Background: bg,
	}
}
