package widget

import (
	"math"
	"strings"
	"time"
)

// Face draws an analog clock dial of the given cell size. Terminal cells are
// about twice as tall as they are wide, so the horizontal radius is doubled
// relative to the vertical one.
func Face(t time.Time, width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	grid := make([][]rune, height)
	for i := range grid {
		grid[i] = []rune(strings.Repeat(" ", width))
	}

	cx, cy := float64(width-1)/2, float64(height-1)/2
	ry := cy
	rx := min(cx, ry*2)
	ry = min(ry, rx/2)

	plot := func(x, y float64, r rune) {
		col, row := int(math.Round(x)), int(math.Round(y))
		if row >= 0 && row < height && col >= 0 && col < width {
			grid[row][col] = r
		}
	}

	for h := 0; h < 12; h++ {
		a := float64(h) * math.Pi / 6
		mark := '·'
		if h%3 == 0 {
			mark = '•'
		}
		plot(cx+math.Sin(a)*rx, cy-math.Cos(a)*ry, mark)
	}

	hand := func(angle, length float64, r rune) {
		steps := int(math.Ceil(length * max(rx, ry) * 2))
		for i := 1; i <= steps; i++ {
			f := length * float64(i) / float64(steps)
			plot(cx+math.Sin(angle)*rx*f, cy-math.Cos(angle)*ry*f, r)
		}
	}

	hour := float64(t.Hour()%12) + float64(t.Minute())/60
	minute := float64(t.Minute()) + float64(t.Second())/60
	hand(minute*math.Pi/30, 0.8, '∙')
	hand(hour*math.Pi/6, 0.5, '●')
	plot(cx, cy, '◉')

	lines := make([]string, height)
	for i, row := range grid {
		lines[i] = string(row)
	}
	return strings.Join(lines, "\n")
}
