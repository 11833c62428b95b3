package geometry

import (
	"math"
	"testing"
)

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestClampIdempotent(t *testing.T) {
	c := Constraints{Min: 100, Max: 800}
	for _, s := range []float64{-50, 0, 99.9, 100, 250, 800, 800.1, 1e6} {
		once := c.Clamp(s)
		if twice := c.Clamp(once); twice != once {
			t.Fatalf("clamp(clamp(%v)) = %v, want %v", s, twice, once)
		}
		if once < c.Min || once > c.Max {
			t.Fatalf("clamp(%v) = %v outside [%v,%v]", s, once, c.Min, c.Max)
		}
	}
}

func TestDragScenario(t *testing.T) {
	vp := Viewport{Width: 1920, Height: 1080}
	start := Position{X: 50, Y: 50}
	pointer := vp.Pixels(start)
	anchor := AnchorOffset(pointer, start, vp)

	moved := PositionFromPointer(Point{X: pointer.X + 192, Y: pointer.Y}, anchor, vp)
	moved = ClampPositionToViewport(moved, Size{Width: 200, Height: 200}, vp)

	if !near(moved.X, 60) {
		t.Fatalf("expected x=60, got %v", moved.X)
	}
	if !near(moved.Y, 50) {
		t.Fatalf("expected y unchanged, got %v", moved.Y)
	}
}

func TestAnchorOffsetHeldAcrossMoves(t *testing.T) {
	vp := Viewport{Width: 1000, Height: 500}
	start := Position{X: 20, Y: 40}
	// grab the widget 30px right of and 10px above its center
	grab := Point{X: 230, Y: 190}
	anchor := AnchorOffset(grab, start, vp)
	if anchor.X != 30 || anchor.Y != -10 {
		t.Fatalf("unexpected anchor %+v", anchor)
	}
	got := PositionFromPointer(grab, anchor, vp)
	if !near(got.X, start.X) || !near(got.Y, start.Y) {
		t.Fatalf("pointer at grab point should map back to start, got %+v", got)
	}
}

func TestClampKeepsBoxOnScreen(t *testing.T) {
	vp := Viewport{Width: 1280, Height: 720}
	box := Size{Width: 320, Height: 180}
	for _, p := range []Position{
		{X: -40, Y: -40},
		{X: 0, Y: 100},
		{X: 50, Y: 50},
		{X: 99, Y: 1},
		{X: 180, Y: 250},
	} {
		got := ClampPositionToViewport(p, box, vp)
		r := Box(got, box, vp)
		if r.Left < -1e-9 || r.Top < -1e-9 || r.Right > 100+1e-9 || r.Bottom > 100+1e-9 {
			t.Fatalf("box for %+v escaped viewport: %+v", p, r)
		}
	}
}

func TestClampOversizedBoxPinsToHalfExtent(t *testing.T) {
	vp := Viewport{Width: 100, Height: 100}
	got := ClampPositionToViewport(Position{X: 10, Y: 90}, Size{Width: 160, Height: 40}, vp)
	if !near(got.X, 80) {
		t.Fatalf("expected oversized x pinned to 80, got %v", got.X)
	}
	if !near(got.Y, 80) {
		t.Fatalf("expected y clamped to 80, got %v", got.Y)
	}
}

func TestClampZeroViewport(t *testing.T) {
	p := Position{X: 12, Y: 34}
	if got := ClampPositionToViewport(p, Size{Width: 10, Height: 10}, Viewport{}); got != p {
		t.Fatalf("expected position unchanged, got %+v", got)
	}
}

func TestResizeClampsToMax(t *testing.T) {
	c := Constraints{Min: 100, Max: 800, AspectRatio: 1}
	got := ResizedDimension(200, Point{X: 1000, Y: 1000}, BottomRight, c)
	if got != 800 {
		t.Fatalf("expected 800, got %v", got)
	}
}

func TestResizeNeverBelowMin(t *testing.T) {
	c := Constraints{Min: 150, Max: 800}
	got := ResizedDimension(200, Point{X: -5000, Y: 0}, BottomRight, c)
	if got != 150 {
		t.Fatalf("expected 150, got %v", got)
	}
}

func TestResizeSymmetry(t *testing.T) {
	tests := []struct {
		name string
		c    Constraints
	}{
		{name: "aspect", c: Constraints{Min: 100, Max: 800, AspectRatio: 1.2}},
		{name: "free", c: Constraints{Min: 100, Max: 800}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			br := ResizedDimension(300, Point{X: 10, Y: 10}, BottomRight, tt.c)
			tl := ResizedDimension(300, Point{X: -10, Y: -10}, TopLeft, tt.c)
			tr := ResizedDimension(300, Point{X: 10, Y: -10}, TopRight, tt.c)
			bl := ResizedDimension(300, Point{X: -10, Y: 10}, BottomLeft, tt.c)
			if br != 320 || tl != br || tr != br || bl != br {
				t.Fatalf("asymmetric resize: br=%v tl=%v tr=%v bl=%v", br, tl, tr, bl)
			}
		})
	}
}

func TestResizeAspectPicksLargerAxis(t *testing.T) {
	c := Constraints{Min: 100, Max: 800, AspectRatio: 1}
	// vertical movement dominates and the bottom edge grows downwards
	got := ResizedDimension(300, Point{X: -5, Y: 40}, BottomLeft, c)
	if got != 380 {
		t.Fatalf("expected 380, got %v", got)
	}
	// equal movement on both axes follows the vertical one
	if tie := ResizedDimension(200, Point{X: 10, Y: 10}, TopRight, Constraints{Min: 100, Max: 800, AspectRatio: 1}); tie != 180 {
		t.Fatalf("expected tie to shrink from the top edge to 180, got %v", tie)
	}
	if tie := ResizedDimension(200, Point{X: -10, Y: -10}, BottomLeft, Constraints{Min: 100, Max: 800, AspectRatio: 1}); tie != 180 {
		t.Fatalf("expected tie to shrink from the bottom edge to 180, got %v", tie)
	}
	// free resize ignores the vertical axis entirely
	free := ResizedDimension(300, Point{X: -5, Y: 40}, BottomLeft, Constraints{Min: 100, Max: 800})
	if free != 310 {
		t.Fatalf("expected 310, got %v", free)
	}
}

func TestAspectLockHolds(t *testing.T) {
	c := Constraints{Min: 200, Max: 800, AspectRatio: 1.2}
	size := 250.0
	for _, d := range []Point{{X: 40, Y: 3}, {X: -300, Y: 0}, {X: 0, Y: 900}, {X: 17, Y: -17}} {
		size = ResizedDimension(size, d, BottomRight, c)
		s := c.SizeFor(size)
		if !near(s.Height, s.Width/1.2) {
			t.Fatalf("aspect broken: %+v", s)
		}
	}
}

func TestHandleString(t *testing.T) {
	if BottomRight.String() != "bottom-right" || TopLeft.String() != "top-left" {
		t.Fatalf("unexpected handle names")
	}
}
