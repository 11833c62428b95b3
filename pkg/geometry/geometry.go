// Package geometry holds the pure math that turns pointer movement into
// viewport-relative widget positions and constrained widget sizes.
//
// Positions are percentages of the viewport and name the widget's center.
// Sizes, pointers and viewports are in pixels.
package geometry

import "fmt"

// ResizeSensitivity multiplies pointer deltas while resizing. Widgets are
// centered on their position, so a corner moves half as far as the size grows.
const ResizeSensitivity = 2

// Position is a percentage offset of a widget's center from the viewport's
// top-left corner. Both axes are in [0,100].
type Position struct {
	X float64 `json:"x" toml:"x"`
	Y float64 `json:"y" toml:"y"`
}

// Size is a pixel extent.
type Size struct {
	Width  float64 `json:"width" toml:"width"`
	Height float64 `json:"height" toml:"height"`
}

// Point is an absolute pointer location in pixels.
type Point struct {
	X, Y float64
}

// Sub returns p - o.
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// Offset is the pointer-to-widget distance captured when a drag starts.
type Offset struct {
	X, Y float64
}

// Viewport is the pixel size of the display surface.
type Viewport struct {
	Width, Height float64
}

// Valid reports whether both dimensions are positive.
func (v Viewport) Valid() bool {
	return v.Width > 0 && v.Height > 0
}

// Pixels converts a percentage position into absolute pixels.
func (v Viewport) Pixels(p Position) Point {
	return Point{X: p.X * v.Width / 100, Y: p.Y * v.Height / 100}
}

// Rect is a bounding box expressed in viewport percentages.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Handle names a resize corner.
type Handle int

const (
	TopLeft Handle = iota
	TopRight
	BottomLeft
	BottomRight
)

// Handles lists all corners in drawing order.
var Handles = []Handle{TopLeft, TopRight, BottomLeft, BottomRight}

// Right reports whether the handle sits on the right edge.
func (h Handle) Right() bool { return h == TopRight || h == BottomRight }

// Bottom reports whether the handle sits on the bottom edge.
func (h Handle) Bottom() bool { return h == BottomLeft || h == BottomRight }

func (h Handle) String() string {
	switch h {
	case TopLeft:
		return "top-left"
	case TopRight:
		return "top-right"
	case BottomLeft:
		return "bottom-left"
	case BottomRight:
		return "bottom-right"
	default:
		return fmt.Sprintf("handle(%d)", int(h))
	}
}

// Constraints bound the size scalar of a widget kind. AspectRatio of zero
// means free resize.
type Constraints struct {
	Min         float64
	Max         float64
	AspectRatio float64
}

// AspectLocked reports whether height is derived from width.
func (c Constraints) AspectLocked() bool {
	return c.AspectRatio > 0
}

// Clamp limits size to [Min, Max].
func (c Constraints) Clamp(size float64) float64 {
	if size < c.Min {
		return c.Min
	}
	if c.Max > 0 && size > c.Max {
		return c.Max
	}
	return size
}

// SizeFor expands the size scalar into a width and height. Aspect-locked
// widgets derive height from width; free widgets are square.
func (c Constraints) SizeFor(width float64) Size {
	if c.AspectLocked() {
		return Size{Width: width, Height: width / c.AspectRatio}
	}
	return Size{Width: width, Height: width}
}

// AnchorOffset is the pointer position minus the widget's pixel position.
func AnchorOffset(pointer Point, pos Position, vp Viewport) Offset {
	at := vp.Pixels(pos)
	return Offset{X: pointer.X - at.X, Y: pointer.Y - at.Y}
}

// PositionFromPointer converts an absolute pointer location and the anchor
// captured at drag start into a percentage position.
func PositionFromPointer(pointer Point, anchor Offset, vp Viewport) Position {
	if !vp.Valid() {
		return Position{}
	}
	return Position{
		X: (pointer.X - anchor.X) / vp.Width * 100,
		Y: (pointer.Y - anchor.Y) / vp.Height * 100,
	}
}

// ClampPositionToViewport shifts pos so that a box of the given pixel size,
// centered on pos, stays inside the viewport. box must be the measured
// footprint of the rendered widget. A box wider than the viewport pins to
// its half extent.
func ClampPositionToViewport(pos Position, box Size, vp Viewport) Position {
	if !vp.Valid() {
		return pos
	}
	halfW := box.Width / 2 / vp.Width * 100
	halfH := box.Height / 2 / vp.Height * 100
	return Position{
		X: clampAxis(pos.X, halfW),
		Y: clampAxis(pos.Y, halfH),
	}
}

func clampAxis(v, half float64) float64 {
	return max(half, min(100-half, v))
}

// Box returns the percentage bounding rectangle of a box centered on pos.
func Box(pos Position, box Size, vp Viewport) Rect {
	if !vp.Valid() {
		return Rect{}
	}
	halfW := box.Width / 2 / vp.Width * 100
	halfH := box.Height / 2 / vp.Height * 100
	return Rect{
		Left:   pos.X - halfW,
		Top:    pos.Y - halfH,
		Right:  pos.X + halfW,
		Bottom: pos.Y + halfH,
	}
}

// ResizedDimension computes the new size scalar for a resize gesture that
// started at start with the given pointer delta. Aspect-locked widgets follow
// the horizontal axis only when it moved strictly further, so ties go to the
// vertical axis. Free widgets follow the horizontal axis.
func ResizedDimension(start float64, delta Point, h Handle, c Constraints) float64 {
	var d float64
	if c.AspectLocked() && abs(delta.X) <= abs(delta.Y) {
		d = delta.Y
		if !h.Bottom() {
			d = -d
		}
	} else {
		d = delta.X
		if !h.Right() {
			d = -d
		}
	}
	return c.Clamp(start + d*ResizeSensitivity)
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
