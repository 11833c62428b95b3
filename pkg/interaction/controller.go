// Package interaction implements the drag and resize behaviour shared by all
// widgets. A Controller turns raw pointer events into discrete move and
// resize commands; it never touches configuration itself.
package interaction

import (
	"fmt"
	"io"
	"log/slog"

	"tableflip.dev/smartboard/pkg/geometry"
)

// State is the gesture a controller is in.
type State int

const (
	Idle State = iota
	Dragging
	Resizing
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Dragging:
		return "dragging"
	case Resizing:
		return "resizing"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

// Part is the region of a widget under the pointer.
type Part int

const (
	// PartOutside is anywhere but the widget.
	PartOutside Part = iota
	// PartBody is the widget box away from a visible handle.
	PartBody
	// PartHandle is a resize corner.
	PartHandle
)

// Hit is the result of hit-testing a pointer against a widget.
type Hit struct {
	Part   Part
	Handle geometry.Handle
}

// Frame is the geometry of a widget at the moment of an event. Box is the
// measured footprint of what was actually rendered.
type Frame struct {
	Position    geometry.Position
	Size        float64
	Constraints geometry.Constraints
	Box         geometry.Size
	Viewport    geometry.Viewport
}

// Kind is the type of a Command.
type Kind int

const (
	KindMove Kind = iota
	KindResize
)

func (k Kind) String() string {
	if k == KindResize {
		return "resize"
	}
	return "move"
}

// Command is emitted for every accepted pointer move. Move commands carry
// Position, resize commands carry Size.
type Command struct {
	Kind     Kind
	WidgetID string
	Position geometry.Position
	Size     float64
}

// Binding connects a controller to its widget. Frame is read fresh on every
// event, so a configuration change mid-gesture is always observed.
type Binding interface {
	ID() string
	Frame() Frame
	Emit(Command)
}

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for gesture transitions.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.log = l
		}
	}
}

// Controller is the per-widget gesture state machine.
type Controller struct {
	binding Binding
	doc     *Document
	log     *slog.Logger

	state       State
	showHandles bool
	timer       HandleTimer
	disabled    bool

	anchor     geometry.Offset
	resizeFrom geometry.Point
	startSize  float64
	handle     geometry.Handle
}

// New creates an idle controller for b that attaches to doc during gestures.
func New(b Binding, doc *Document, opts ...Option) *Controller {
	c := &Controller{
		binding: b,
		doc:     doc,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current gesture.
func (c *Controller) State() State { return c.state }

// HandlesVisible reports whether resize handles are shown.
func (c *Controller) HandlesVisible() bool { return c.showHandles }

// Disabled reports whether input is ignored.
func (c *Controller) Disabled() bool { return c.disabled }

// SetDisabled turns input handling off or on. Disabling ends any gesture.
func (c *Controller) SetDisabled(disabled bool) {
	if disabled {
		c.Deactivate()
	}
	c.disabled = disabled
}

// PointerDown starts a gesture when the pointer lands on the widget and
// reports whether the controller captured the pointer. A press outside the
// widget hides the resize handles.
func (c *Controller) PointerDown(p geometry.Point, hit Hit) bool {
	if c.disabled {
		return false
	}
	if c.state != Idle {
		c.end()
	}

	switch hit.Part {
	case PartOutside:
		c.hideHandles()
		return false
	case PartHandle:
		if c.showHandles {
			f := c.binding.Frame()
			c.resizeFrom = p
			c.startSize = f.Size
			c.handle = hit.Handle
			c.begin(Resizing)
			return true
		}
	}

	f := c.binding.Frame()
	c.anchor = geometry.AnchorOffset(p, f.Position, f.Viewport)
	c.begin(Dragging)
	return true
}

// PointerMove implements Listener. While dragging it emits the clamped
// position, while resizing the constrained size.
func (c *Controller) PointerMove(p geometry.Point) {
	switch c.state {
	case Dragging:
		f := c.binding.Frame()
		if !f.Viewport.Valid() {
			return
		}
		pos := geometry.PositionFromPointer(p, c.anchor, f.Viewport)
		pos = geometry.ClampPositionToViewport(pos, f.Box, f.Viewport)
		c.binding.Emit(Command{Kind: KindMove, WidgetID: c.binding.ID(), Position: pos})
	case Resizing:
		f := c.binding.Frame()
		size := geometry.ResizedDimension(c.startSize, p.Sub(c.resizeFrom), c.handle, f.Constraints)
		c.binding.Emit(Command{Kind: KindResize, WidgetID: c.binding.ID(), Size: size})
	}
}

// PointerUp implements Listener. It ends the gesture where the pointer was
// last seen.
func (c *Controller) PointerUp(geometry.Point) {
	if c.state != Idle {
		c.end()
	}
}

// DoubleClick toggles the resize handles. When they become visible it returns
// the handle timer token the host should schedule HandleTimeout from now.
func (c *Controller) DoubleClick(hit Hit) (uint64, bool) {
	if c.disabled || hit.Part == PartOutside {
		return 0, false
	}
	if c.showHandles {
		c.hideHandles()
		return 0, false
	}
	token, ok := c.timer.Arm()
	if !ok {
		return 0, false
	}
	c.showHandles = true
	c.log.Debug("resize handles shown", slog.String("widget", c.binding.ID()))
	return token, true
}

// ExpireHandles hides the handles if token is the live deadline.
func (c *Controller) ExpireHandles(token uint64) bool {
	if !c.timer.Expire(token) {
		return false
	}
	c.showHandles = false
	c.log.Debug("resize handles expired", slog.String("widget", c.binding.ID()))
	return true
}

// Deactivate returns to Idle, detaches from the document and hides the
// handles. Used when the widget stops being rendered.
func (c *Controller) Deactivate() {
	if c.state != Idle {
		c.end()
	}
	c.hideHandles()
}

// Close deactivates the controller and retires its handle timer.
func (c *Controller) Close() {
	c.Deactivate()
	c.timer.Close()
}

func (c *Controller) begin(s State) {
	c.state = s
	c.doc.Attach(c.binding.ID(), c)
	c.log.Debug("gesture started", slog.String("widget", c.binding.ID()), slog.String("state", s.String()))
}

func (c *Controller) end() {
	prev := c.state
	c.state = Idle
	c.doc.Detach(c.binding.ID())
	c.log.Debug("gesture ended", slog.String("widget", c.binding.ID()), slog.String("state", prev.String()))
}

func (c *Controller) hideHandles() {
	c.showHandles = false
	c.timer.Cancel()
}
