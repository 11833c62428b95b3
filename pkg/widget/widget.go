// Package widget adapts the board's components to the terminal. A Widget
// renders one component slice from the config store, measures what it drew
// and binds an interaction controller whose commands are written back to the
// store.
package widget

import (
	"io"
	"log/slog"
	"math"
	"time"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/geometry"
	"tableflip.dev/smartboard/pkg/interaction"
	"tableflip.dev/smartboard/pkg/tui/theme"
)

const (
	minCols = 7
	minRows = 3
)

// Store is the part of the config store a widget needs.
type Store interface {
	Snapshot() board.AppConfig
	UpdateComponent(name board.ComponentName, patch board.ComponentPatch) error
}

// Placement is where a widget was last drawn, in cells.
type Placement struct {
	Col, Row      int
	Width, Height int
}

// Contains reports whether the cell lies inside the placement.
func (p Placement) Contains(col, row int) bool {
	return col >= p.Col && col < p.Col+p.Width && row >= p.Row && row < p.Row+p.Height
}

// Option configures a Widget.
type Option func(*Widget)

// WithLogger sets the logger for store write failures and gestures.
func WithLogger(l *slog.Logger) Option {
	return func(w *Widget) {
		if l != nil {
			w.log = l
		}
	}
}

// WithTheme sets the widget styles.
func WithTheme(t theme.WidgetTheme) Option {
	return func(w *Widget) { w.theme = t }
}

// Widget is one draggable, resizable component on the board.
type Widget struct {
	kind    Kind
	store   Store
	surface *Surface
	ctrl    *interaction.Controller
	log     *slog.Logger
	theme   theme.WidgetTheme

	measured geometry.Size
	padding  geometry.Size
	placed   Placement
	visible  bool
}

// New binds kind to the store and the shared pointer document.
func New(kind Kind, store Store, doc *interaction.Document, surface *Surface, opts ...Option) *Widget {
	w := &Widget{
		kind:    kind,
		store:   store,
		surface: surface,
		log:     slog.New(slog.NewTextHandler(io.Discard, nil)),
		theme:   theme.Default().Widget,
	}
	for _, opt := range opts {
		opt(w)
	}
	w.ctrl = interaction.New(w, doc, interaction.WithLogger(w.log))
	return w
}

// Name is the component this widget draws.
func (w *Widget) Name() board.ComponentName { return w.kind.Name() }

// Controller exposes the gesture state machine.
func (w *Widget) Controller() *interaction.Controller { return w.ctrl }

// Placement returns the cells covered by the last render.
func (w *Widget) Placement() Placement { return w.placed }

// Visible reports whether the last render drew anything.
func (w *Widget) Visible() bool { return w.visible }

// SetTheme swaps the widget styles.
func (w *Widget) SetTheme(t theme.WidgetTheme) { w.theme = t }

// ID implements interaction.Binding.
func (w *Widget) ID() string { return string(w.kind.Name()) }

// Frame implements interaction.Binding. It reads the store on every call.
func (w *Widget) Frame() interaction.Frame {
	cfg := w.store.Snapshot()
	wc, _ := cfg.Components.Widget(w.kind.Name())
	c := ConstraintsFor(w.kind.Name())
	size := c.Clamp(wc.Size.Width)
	box := w.measured
	if box.Width == 0 || box.Height == 0 {
		box = c.SizeFor(size)
	}
	return interaction.Frame{
		Position:    wc.Position,
		Size:        size,
		Constraints: c,
		Box:         box,
		Viewport:    w.surface.Viewport(),
	}
}

// Emit implements interaction.Binding by writing the command to the store.
// A resize also pulls the widget back on screen if the larger box would
// overhang the viewport.
func (w *Widget) Emit(cmd interaction.Command) {
	name := w.kind.Name()
	var patch board.WidgetPatch
	switch cmd.Kind {
	case interaction.KindMove:
		pos := cmd.Position
		patch.Position = &pos
	case interaction.KindResize:
		patch = w.resizePatch(cmd.Size)
	}
	if err := w.store.UpdateComponent(name, patch); err != nil {
		w.log.Warn("failed to apply widget command",
			slog.String("widget", string(name)),
			slog.String("kind", cmd.Kind.String()),
			slog.Any("err", err))
	}
}

// Resize sets the widget to width, keeping its aspect, and moves it back on
// screen when the larger box would overhang the viewport.
func (w *Widget) Resize(width float64) error {
	return w.store.UpdateComponent(w.kind.Name(), w.resizePatch(width))
}

func (w *Widget) resizePatch(width float64) board.WidgetPatch {
	size := ConstraintsFor(w.kind.Name()).SizeFor(width)
	patch := board.WidgetPatch{Size: &size}
	f := w.Frame()
	box := geometry.Size{Width: size.Width + w.padding.Width, Height: size.Height + w.padding.Height}
	if pos := geometry.ClampPositionToViewport(f.Position, box, f.Viewport); pos != f.Position {
		patch.Position = &pos
	}
	return patch
}

// Render draws the widget for now. Inactive widgets draw nothing and drop
// any gesture in progress.
func (w *Widget) Render(now time.Time) (string, bool) {
	cfg := w.store.Snapshot()
	wc, ok := cfg.Components.Widget(w.kind.Name())
	if !ok || !wc.IsActive {
		w.ctrl.Deactivate()
		w.visible = false
		w.measured = geometry.Size{}
		return "", false
	}

	c := ConstraintsFor(w.kind.Name())
	nominal := c.SizeFor(c.Clamp(wc.Size.Width))
	cols, rows := w.surface.Cells(nominal)
	cols, rows = max(cols, minCols), max(rows, minRows)

	style := w.theme.Frame
	if w.ctrl.HandlesVisible() {
		style = w.theme.Selected
	}
	body := w.kind.Body(Content{
		Config: cfg,
		Now:    now,
		Width:  max(cols-style.GetHorizontalFrameSize(), 1),
		Height: max(rows-style.GetVerticalFrameSize(), 1),
		Theme:  w.theme,
	})
	out := style.Width(cols).Height(rows).MaxWidth(cols).MaxHeight(rows).Render(body)

	bw, bh := lipgloss.Width(out), lipgloss.Height(out)
	w.measured = w.surface.Pixels(bw, bh)
	w.padding = geometry.Size{
		Width:  max(w.measured.Width-nominal.Width, 0),
		Height: max(w.measured.Height-nominal.Height, 0),
	}

	center := w.surface.Viewport().Pixels(wc.Position)
	col := int(math.Round(center.X/w.surface.CellWidth - float64(bw)/2))
	row := int(math.Round(center.Y/w.surface.CellHeight - float64(bh)/2))
	w.placed = Placement{
		Col:    clampInt(col, 0, w.surface.Cols-bw),
		Row:    clampInt(row, 0, w.surface.Rows-bh),
		Width:  bw,
		Height: bh,
	}
	w.visible = true
	return out, true
}

// HitTest classifies a cell against the last render. While the handles are
// shown each corner, plus the cell beside it, grabs a resize.
func (w *Widget) HitTest(col, row int) interaction.Hit {
	p := w.placed
	if !w.visible || !p.Contains(col, row) {
		return interaction.Hit{Part: interaction.PartOutside}
	}
	if w.ctrl.HandlesVisible() {
		top, bottom := row == p.Row, row == p.Row+p.Height-1
		left, right := col <= p.Col+1, col >= p.Col+p.Width-2
		switch {
		case top && left:
			return interaction.Hit{Part: interaction.PartHandle, Handle: geometry.TopLeft}
		case top && right:
			return interaction.Hit{Part: interaction.PartHandle, Handle: geometry.TopRight}
		case bottom && left:
			return interaction.Hit{Part: interaction.PartHandle, Handle: geometry.BottomLeft}
		case bottom && right:
			return interaction.Hit{Part: interaction.PartHandle, Handle: geometry.BottomRight}
		}
	}
	return interaction.Hit{Part: interaction.PartBody}
}

// Close retires the controller.
func (w *Widget) Close() {
	w.ctrl.Close()
	w.visible = false
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(hi, v))
}
