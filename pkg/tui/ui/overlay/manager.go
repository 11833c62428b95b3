package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
)

// Placement controls overlay alignment and sizing. A zero alignment centers
// the overlay, since lipgloss.Left and lipgloss.Top are zero too; Absolute
// places it at MarginX, MarginY instead.
type Placement struct {
	Horizontal lipgloss.Position
	Vertical   lipgloss.Position
	MarginX    int
	MarginY    int
	Width      int
	Height     int
	Absolute   bool
}

// Layer is a foreground view with its placement.
type Layer struct {
	View      string
	Placement Placement
}

// At places a layer at an absolute cell offset.
func At(col, row int) Placement {
	return Placement{MarginX: col, MarginY: row, Absolute: true}
}

// ComposeLayers stacks layers over the background in order, the last one on
// top.
func ComposeLayers(background string, width, height int, layers ...Layer) string {
	out := background
	for _, l := range layers {
		out = Compose(out, width, height, l.View, l.Placement)
	}
	if len(layers) == 0 {
		out = strings.Join(normalizeBackground(out, width, height), "\n")
	}
	return out
}

// Offsets returns the top-left cell where a foreground of the given size
// lands under placement.
func Offsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	return computeOffsets(width, height, min(overlayWidth, width), min(overlayHeight, height), placement)
}

// Compose overlays the foreground view atop the background while preserving
// background content outside the overlay bounds.
func Compose(background string, width, height int, foreground string, placement Placement) string {
	bgLines := normalizeBackground(background, width, height)
	if foreground == "" {
		return strings.Join(bgLines, "\n")
	}

	fgLines := strings.Split(foreground, "\n")
	if len(fgLines) == 0 {
		return strings.Join(bgLines, "\n")
	}

	overlayWidth := placement.Width
	if overlayWidth <= 0 {
		for _, line := range fgLines {
			if w := lipgloss.Width(line); w > overlayWidth {
				overlayWidth = w
			}
		}
	}
	if overlayWidth <= 0 {
		return strings.Join(bgLines, "\n")
	}
	if overlayWidth > width {
		overlayWidth = width
	}

	overlayHeight := placement.Height
	if overlayHeight <= 0 {
		overlayHeight = len(fgLines)
	}
	if overlayHeight <= 0 {
		return strings.Join(bgLines, "\n")
	}
	if overlayHeight > height {
		overlayHeight = height
	}

	offsetX, offsetY := computeOffsets(width, height, overlayWidth, overlayHeight, placement)

	for row := 0; row < overlayHeight; row++ {
		destY := offsetY + row
		if destY < 0 || destY >= len(bgLines) {
			continue
		}
		fgLine := ""
		if row < len(fgLines) {
			fgLine = fgLines[row]
		}
		fgLine = padToWidth(fgLine, overlayWidth)

		baseLine := bgLines[destY]
		prefix := sliceWidth(baseLine, 0, offsetX)
		suffix := sliceWidth(baseLine, offsetX+overlayWidth, width)
		bgLines[destY] = prefix + fgLine + ansi.ResetStyle + suffix
	}

	return strings.Join(bgLines, "\n")
}

func normalizeBackground(view string, width, height int) []string {
	lines := strings.Split(view, "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	for len(lines) < height {
		lines = append(lines, "")
	}
	for i := range lines {
		lines[i] = padToWidth(lines[i], width)
	}
	return lines
}

func padToWidth(s string, width int) string {
	if width <= 0 {
		return ""
	}
	currWidth := ansi.StringWidth(s)
	if currWidth > width {
		return ansi.Truncate(s, width, "") + ansi.ResetStyle
	}
	return s + strings.Repeat(" ", width-currWidth)
}

// sliceWidth cuts the cells [start,end) out of s, keeping the styling that
// applies to them and closing it off at the end.
func sliceWidth(s string, start, end int) string {
	if start < 0 {
		start = 0
	}
	if end <= start {
		return ""
	}
	out := ansi.Cut(s, start, end)
	if out == "" {
		return ""
	}
	return out + ansi.ResetStyle
}

func computeOffsets(width, height, overlayWidth, overlayHeight int, placement Placement) (int, int) {
	h := placement.Horizontal
	if h == 0 && !placement.Absolute {
		h = lipgloss.Center
	}
	v := placement.Vertical
	if v == 0 && !placement.Absolute {
		v = lipgloss.Center
	}

	offsetX := placement.MarginX
	switch h {
	case lipgloss.Right:
		offsetX = width - overlayWidth - placement.MarginX
	case lipgloss.Center:
		offsetX = (width - overlayWidth) / 2
	}
	if offsetX < 0 {
		offsetX = 0
	}
	if offsetX > width-overlayWidth {
		offsetX = width - overlayWidth
	}

	offsetY := placement.MarginY
	switch v {
	case lipgloss.Bottom:
		offsetY = height - overlayHeight - placement.MarginY
	case lipgloss.Center:
		offsetY = (height - overlayHeight) / 2
	}
	if offsetY < 0 {
		offsetY = 0
	}
	if offsetY > height-overlayHeight {
		offsetY = height - overlayHeight
	}

	return offsetX, offsetY
}
