package display

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	colorful "github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/tui/theme"
)

// background caches the painted gradient for one size and palette.
type background struct {
	key  backgroundKey
	view string
}

type backgroundKey struct {
	width, height int
	from, to      string
	skrim         string
	opacity       float64
	plain         bool
}

func (m *Model) background(cfg board.AppConfig, rows int) string {
	key := backgroundKey{
		width:   m.width,
		height:  rows,
		from:    m.theme.Background.From,
		to:      m.theme.Background.To,
		skrim:   cfg.DisplaySettings.SkrimColor,
		opacity: cfg.DisplaySettings.SkrimOpacity,
		plain:   m.plain,
	}
	if m.bg.key == key && m.bg.view != "" {
		return m.bg.view
	}
	m.bg = background{key: key, view: paintBackground(key, m.theme.Background)}
	return m.bg.view
}

// Gradient returns one color per row, blending the theme's stops top to
// bottom and dimming them toward the skrim color by opacity.
func Gradient(rows int, bg theme.BackgroundTheme, skrim string, opacity float64) []string {
	from, err := colorful.Hex(bg.From)
	if err != nil {
		from = colorful.Color{}
	}
	to, err := colorful.Hex(bg.To)
	if err != nil {
		to = from
	}
	dim, err := colorful.Hex(skrim)
	if err != nil {
		dim = colorful.Color{}
	}
	opacity = max(0, min(1, opacity))

	out := make([]string, rows)
	for i := range out {
		t := 0.0
		if rows > 1 {
			t = float64(i) / float64(rows-1)
		}
		c := from.BlendLab(to, t).BlendRgb(dim, opacity).Clamped()
		out[i] = c.Hex()
	}
	return out
}

func paintBackground(key backgroundKey, bg theme.BackgroundTheme) string {
	if key.width <= 0 || key.height <= 0 {
		return ""
	}
	blank := strings.Repeat(" ", key.width)
	lines := make([]string, key.height)
	if key.plain {
		for i := range lines {
			lines[i] = blank
		}
		return strings.Join(lines, "\n")
	}
	for i, hex := range Gradient(key.height, bg, key.skrim, key.opacity) {
		lines[i] = lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render(blank)
	}
	return strings.Join(lines, "\n")
}
