package widget

import (
	"math"

	"tableflip.dev/smartboard/pkg/geometry"
)

// Surface maps the terminal grid onto a pixel viewport. Every widget on a
// display shares one Surface, updated when the terminal resizes.
type Surface struct {
	CellWidth  float64
	CellHeight float64
	Cols       int
	Rows       int
}

// NewSurface returns a surface with the given cell size in pixels.
func NewSurface(cellWidth, cellHeight int) *Surface {
	return &Surface{CellWidth: float64(max(cellWidth, 1)), CellHeight: float64(max(cellHeight, 1))}
}

// SetSize records the terminal size in cells.
func (s *Surface) SetSize(cols, rows int) {
	s.Cols, s.Rows = max(cols, 0), max(rows, 0)
}

// Viewport is the pixel size of the whole terminal.
func (s *Surface) Viewport() geometry.Viewport {
	return geometry.Viewport{
		Width:  float64(s.Cols) * s.CellWidth,
		Height: float64(s.Rows) * s.CellHeight,
	}
}

// Point converts a cell coordinate into the pixel at the cell's center.
func (s *Surface) Point(col, row int) geometry.Point {
	return geometry.Point{
		X: (float64(col) + 0.5) * s.CellWidth,
		Y: (float64(row) + 0.5) * s.CellHeight,
	}
}

// Cells converts a pixel size into whole cells, never less than one.
func (s *Surface) Cells(size geometry.Size) (cols, rows int) {
	cols = int(math.Round(size.Width / s.CellWidth))
	rows = int(math.Round(size.Height / s.CellHeight))
	return max(cols, 1), max(rows, 1)
}

// Pixels converts a cell extent into pixels.
func (s *Surface) Pixels(cols, rows int) geometry.Size {
	return geometry.Size{Width: float64(cols) * s.CellWidth, Height: float64(rows) * s.CellHeight}
}
