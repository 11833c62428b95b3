package interaction

import (
	"math"
	"math/rand"
	"testing"

	"tableflip.dev/smartboard/pkg/geometry"
)

// fakeWidget applies its own commands, standing in for a widget adapter
// wired to a store.
type fakeWidget struct {
	id       string
	pos      geometry.Position
	size     float64
	c        geometry.Constraints
	vp       geometry.Viewport
	padding  float64
	commands []Command
}

func (w *fakeWidget) ID() string { return w.id }

func (w *fakeWidget) Frame() Frame {
	s := w.c.SizeFor(w.size)
	return Frame{
		Position:    w.pos,
		Size:        w.size,
		Constraints: w.c,
		Box:         geometry.Size{Width: s.Width + w.padding, Height: s.Height + w.padding},
		Viewport:    w.vp,
	}
}

func (w *fakeWidget) Emit(cmd Command) {
	w.commands = append(w.commands, cmd)
	switch cmd.Kind {
	case KindMove:
		w.pos = cmd.Position
	case KindResize:
		w.size = cmd.Size
	}
}

func newClock() *fakeWidget {
	return &fakeWidget{
		id:   "clock",
		pos:  geometry.Position{X: 50, Y: 50},
		size: 200,
		c:    geometry.Constraints{Min: 100, Max: 800, AspectRatio: 1},
		vp:   geometry.Viewport{Width: 1920, Height: 1080},
	}
}

func TestDragScenario(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)

	start := w.vp.Pixels(w.pos)
	if !c.PointerDown(start, Hit{Part: PartBody}) {
		t.Fatalf("expected body press to capture the pointer")
	}
	if c.State() != Dragging || !doc.Attached("clock") {
		t.Fatalf("expected dragging with listener attached, state=%v", c.State())
	}

	doc.PointerMove(geometry.Point{X: start.X + 192, Y: start.Y})
	doc.PointerUp(geometry.Point{X: start.X + 192, Y: start.Y})

	if math.Abs(w.pos.X-60) > 1e-9 || w.pos.Y != 50 {
		t.Fatalf("expected (60,50), got %+v", w.pos)
	}
	if c.State() != Idle || doc.Len() != 0 {
		t.Fatalf("expected idle with no listeners, state=%v listeners=%d", c.State(), doc.Len())
	}
}

func TestEveryMoveEmits(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)
	start := w.vp.Pixels(w.pos)
	c.PointerDown(start, Hit{Part: PartBody})
	for i := 1; i <= 7; i++ {
		doc.PointerMove(geometry.Point{X: start.X + float64(i), Y: start.Y})
	}
	doc.PointerUp(start)
	if len(w.commands) != 7 {
		t.Fatalf("expected one command per move, got %d", len(w.commands))
	}
	// moves after release go nowhere
	doc.PointerMove(geometry.Point{X: 0, Y: 0})
	if len(w.commands) != 7 {
		t.Fatalf("listener leaked past pointer up")
	}
}

func TestDragStaysOnScreen(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	w := newClock()
	w.padding = 48 // rendered box is larger than nominal size
	doc := NewDocument()
	c := New(w, doc)

	p := w.vp.Pixels(w.pos)
	c.PointerDown(p, Hit{Part: PartBody})
	for i := 0; i < 500; i++ {
		p = geometry.Point{X: p.X + rng.Float64()*800 - 400, Y: p.Y + rng.Float64()*800 - 400}
		doc.PointerMove(p)
		r := geometry.Box(w.pos, w.Frame().Box, w.vp)
		if r.Left < -1e-9 || r.Top < -1e-9 || r.Right > 100+1e-9 || r.Bottom > 100+1e-9 {
			t.Fatalf("move %d left the viewport: %+v", i, r)
		}
	}
	doc.PointerUp(p)
}

func TestResizeScenario(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)

	if _, ok := c.DoubleClick(Hit{Part: PartBody}); !ok {
		t.Fatalf("expected handles to show")
	}
	corner := geometry.Point{X: 1060, Y: 640}
	if !c.PointerDown(corner, Hit{Part: PartHandle, Handle: geometry.BottomRight}) {
		t.Fatalf("expected handle press to capture")
	}
	if c.State() != Resizing {
		t.Fatalf("expected resizing, got %v", c.State())
	}
	doc.PointerMove(geometry.Point{X: corner.X + 1000, Y: corner.Y + 1000})
	doc.PointerUp(geometry.Point{X: corner.X + 1000, Y: corner.Y + 1000})

	if w.size != 800 {
		t.Fatalf("expected size clamped to 800, got %v", w.size)
	}
	if doc.Len() != 0 {
		t.Fatalf("listeners left attached")
	}
}

func TestHiddenHandleActsAsBody(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)
	c.PointerDown(geometry.Point{X: 1060, Y: 640}, Hit{Part: PartHandle, Handle: geometry.BottomRight})
	if c.State() != Dragging {
		t.Fatalf("expected drag when handles are hidden, got %v", c.State())
	}
	c.PointerUp(geometry.Point{})
}

func TestResizeKeepsAspect(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	w := &fakeWidget{
		id:   "timer",
		pos:  geometry.Position{X: 50, Y: 50},
		size: 250,
		c:    geometry.Constraints{Min: 200, Max: 800, AspectRatio: 1.2},
		vp:   geometry.Viewport{Width: 1920, Height: 1080},
	}
	doc := NewDocument()
	c := New(w, doc)
	c.DoubleClick(Hit{Part: PartBody})

	from := geometry.Point{X: 1100, Y: 640}
	c.PointerDown(from, Hit{Part: PartHandle, Handle: geometry.TopLeft})
	for i := 0; i < 200; i++ {
		doc.PointerMove(geometry.Point{X: from.X + rng.Float64()*1200 - 600, Y: from.Y + rng.Float64()*1200 - 600})
		s := w.c.SizeFor(w.size)
		if math.Abs(s.Height-s.Width/1.2) > 1e-9 {
			t.Fatalf("aspect broken at step %d: %+v", i, s)
		}
		if w.size < 200 || w.size > 800 {
			t.Fatalf("size escaped bounds: %v", w.size)
		}
	}
	doc.PointerUp(from)
}

func TestResizeReadsStartSizeOnce(t *testing.T) {
	w := &fakeWidget{
		id:   "message",
		pos:  geometry.Position{X: 50, Y: 50},
		size: 300,
		c:    geometry.Constraints{Min: 150, Max: 800},
		vp:   geometry.Viewport{Width: 1920, Height: 1080},
	}
	doc := NewDocument()
	c := New(w, doc)
	c.DoubleClick(Hit{Part: PartBody})
	from := geometry.Point{X: 1110, Y: 690}
	c.PointerDown(from, Hit{Part: PartHandle, Handle: geometry.BottomRight})
	doc.PointerMove(geometry.Point{X: from.X + 10, Y: from.Y})
	doc.PointerMove(geometry.Point{X: from.X + 20, Y: from.Y})
	if w.size != 340 {
		t.Fatalf("expected 300 + 20*2 = 340, got %v", w.size)
	}
}

func TestHandleTimerLifecycle(t *testing.T) {
	w := newClock()
	c := New(w, NewDocument())

	first, ok := c.DoubleClick(Hit{Part: PartBody})
	if !ok || !c.HandlesVisible() {
		t.Fatalf("expected handles visible")
	}
	// second double-click hides them and cancels the deadline
	if _, ok := c.DoubleClick(Hit{Part: PartBody}); ok || c.HandlesVisible() {
		t.Fatalf("expected handles hidden")
	}
	second, _ := c.DoubleClick(Hit{Part: PartBody})
	if c.ExpireHandles(first) {
		t.Fatalf("stale token must be ignored")
	}
	if !c.HandlesVisible() {
		t.Fatalf("stale expiry hid the handles")
	}
	if !c.ExpireHandles(second) || c.HandlesVisible() {
		t.Fatalf("live token should hide handles")
	}
	if c.ExpireHandles(second) {
		t.Fatalf("token must only fire once")
	}
}

func TestPressOutsideHidesHandles(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)
	token, _ := c.DoubleClick(Hit{Part: PartBody})
	if c.PointerDown(geometry.Point{X: 5, Y: 5}, Hit{Part: PartOutside}) {
		t.Fatalf("outside press must not capture")
	}
	if c.HandlesVisible() {
		t.Fatalf("expected handles hidden")
	}
	if c.ExpireHandles(token) {
		t.Fatalf("cancelled deadline fired")
	}
	if doc.Len() != 0 {
		t.Fatalf("outside press attached a listener")
	}
}

func TestDeactivateMidDrag(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)
	c.DoubleClick(Hit{Part: PartBody})
	c.PointerDown(w.vp.Pixels(w.pos), Hit{Part: PartBody})
	c.Deactivate()
	if c.State() != Idle || doc.Len() != 0 || c.HandlesVisible() {
		t.Fatalf("deactivate left state behind: state=%v listeners=%d handles=%v", c.State(), doc.Len(), c.HandlesVisible())
	}
}

func TestCloseRetiresTimer(t *testing.T) {
	w := newClock()
	c := New(w, NewDocument())
	token, _ := c.DoubleClick(Hit{Part: PartBody})
	c.Close()
	if c.ExpireHandles(token) {
		t.Fatalf("closed timer fired")
	}
	if _, ok := c.DoubleClick(Hit{Part: PartBody}); ok {
		t.Fatalf("closed controller armed a new deadline")
	}
}

func TestDisabledIgnoresInput(t *testing.T) {
	w := newClock()
	doc := NewDocument()
	c := New(w, doc)
	c.SetDisabled(true)
	if c.PointerDown(w.vp.Pixels(w.pos), Hit{Part: PartBody}) {
		t.Fatalf("disabled controller captured the pointer")
	}
	if _, ok := c.DoubleClick(Hit{Part: PartBody}); ok {
		t.Fatalf("disabled controller showed handles")
	}
	if doc.Len() != 0 || len(w.commands) != 0 {
		t.Fatalf("disabled controller reacted")
	}
}

func TestIndependentControllers(t *testing.T) {
	a, b := newClock(), newClock()
	b.id = "message"
	b.pos = geometry.Position{X: 20, Y: 20}
	doc := NewDocument()
	ca, cb := New(a, doc), New(b, doc)

	ca.PointerDown(a.vp.Pixels(a.pos), Hit{Part: PartBody})
	cb.PointerDown(geometry.Point{}, Hit{Part: PartOutside})
	doc.PointerMove(geometry.Point{X: 1000, Y: 540})
	doc.PointerUp(geometry.Point{X: 1000, Y: 540})

	if len(b.commands) != 0 || b.pos != (geometry.Position{X: 20, Y: 20}) {
		t.Fatalf("second widget moved: %+v", b.pos)
	}
	if len(a.commands) != 1 {
		t.Fatalf("expected one command for the dragged widget, got %d", len(a.commands))
	}
}
