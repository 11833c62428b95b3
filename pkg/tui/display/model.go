// Package display hosts the board in a Bubble Tea program. It owns the
// terminal surface, routes mouse input to the widget controllers and
// composes widgets, overlays and the footer into one frame.
package display

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/interaction"
	"tableflip.dev/smartboard/pkg/store"
	"tableflip.dev/smartboard/pkg/tui/components/eventviewer"
	"tableflip.dev/smartboard/pkg/tui/components/help"
	"tableflip.dev/smartboard/pkg/tui/components/panel"
	"tableflip.dev/smartboard/pkg/tui/components/settings"
	"tableflip.dev/smartboard/pkg/tui/events"
	"tableflip.dev/smartboard/pkg/tui/theme"
	"tableflip.dev/smartboard/pkg/tui/ui"
	"tableflip.dev/smartboard/pkg/tui/ui/overlay"
	"tableflip.dev/smartboard/pkg/widget"
)

const (
	rootID       = events.ComponentID("display")
	tickInterval = time.Second
	footerRows   = 1
)

type overlayKind int

const (
	overlayNone overlayKind = iota
	overlayHelp
	overlaySettings
)

// Options configures the display.
type Options struct {
	Store *configstore.Store
	// Watch delivers changes made to the saved record by other processes.
	Watch <-chan store.Event
	// CellWidth and CellHeight are the assumed pixel size of a terminal cell.
	CellWidth   int
	CellHeight  int
	DoubleClick time.Duration
	Locked      bool
	Debug       bool
	// Settings opens the settings panel on start.
	Settings bool
	// Plain disables the background gradient, for terminals without color.
	Plain  bool
	Logger *slog.Logger
	Now    func() time.Time
}

// Model composes the board, its overlays and the footer.
type Model struct {
	store       *configstore.Store
	changes     <-chan configstore.Change
	unsubscribe func()
	watch       <-chan store.Event
	log         *slog.Logger
	now         func() time.Time

	doc     *interaction.Document
	surface *widget.Surface
	widgets *widget.Set

	theme     theme.Theme
	themeName board.Theme
	plain     bool
	bg        background

	width  int
	height int

	locked      bool
	doubleClick time.Duration
	lastClick   time.Time
	lastClickX  int
	lastClickY  int
	captured    *widget.Widget

	lastTick time.Time

	overlay     ui.Overlay
	overlayKind overlayKind
	inspector   panel.Model

	debugEnabled bool
	eventViewer  *eventviewer.Model

	status string
}

// New constructs the display around the store in opts.
func New(opts Options) *Model {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	if opts.DoubleClick <= 0 {
		opts.DoubleClick = 500 * time.Millisecond
	}

	cfg := opts.Store.Snapshot()
	th := theme.For(cfg.Theme)
	doc := interaction.NewDocument()
	surface := widget.NewSurface(opts.CellWidth, opts.CellHeight)
	set := widget.NewSet(opts.Store, doc, surface, widget.WithLogger(log), widget.WithTheme(th.Widget))
	changes, unsubscribe := opts.Store.Subscribe()

	m := &Model{
		store:       opts.Store,
		changes:     changes,
		unsubscribe: unsubscribe,
		watch:       opts.Watch,
		log:         log,
		now:         now,
		doc:         doc,
		surface:     surface,
		widgets:     set,
		theme:       th,
		themeName:   cfg.Theme,
		plain:       opts.Plain,
		doubleClick: opts.DoubleClick,
		lastTick:    now(),
		inspector:   panel.New(th.Panel),
	}
	if opts.Locked {
		m.setLocked(true)
	}
	if opts.Debug {
		m.toggleDebug()
	}
	if opts.Settings {
		m.openSettings()
	}
	return m
}

// Run launches the Bubble Tea program that renders the board.
func Run(opts Options) error {
	m := New(opts)
	defer m.Close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Close releases the store subscription and retires every controller.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
	m.widgets.Close()
}

// Widgets exposes the board's widgets.
func (m *Model) Widgets() *widget.Set { return m.widgets }

// Locked reports whether the layout is locked.
func (m *Model) Locked() bool { return m.locked }

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		tea.SetWindowTitle("Smartboard"),
		events.TickCmd(tickInterval),
		events.WaitForChangeCmd(m.changes),
	}
	if m.watch != nil {
		cmds = append(cmds, events.WaitForStorageCmd(m.watch))
	}
	return tea.Batch(cmds...)
}

// Update routes Bubble Tea messages to the board and its overlays.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m.noteEvent(msg)

	var cmds []tea.Cmd

	switch v := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = v.Width
		m.height = v.Height
		m.layout()
	case events.TickMsg:
		elapsed := v.Time.Sub(m.lastTick)
		m.lastTick = v.Time
		if m.widgets.Countdown.Tick(elapsed) {
			at := v.Time
			cmds = append(cmds, func() tea.Msg { return events.CountdownFinishedMsg{At: at} })
		}
		cmds = append(cmds, events.TickCmd(tickInterval))
	case events.CountdownFinishedMsg:
		m.status = widget.TimesUp
		m.log.Info("countdown finished")
	case events.HandlesExpiredMsg:
		if w := m.widgets.Get(v.Widget); w != nil {
			w.Controller().ExpireHandles(v.Token)
		}
	case events.ConfigChangedMsg:
		m.applyChange(v.Change)
		cmds = append(cmds, events.WaitForChangeCmd(m.changes))
	case events.StorageEventMsg:
		m.applyStorageEvent(v.Event)
		cmds = append(cmds, events.WaitForStorageCmd(m.watch))
	case events.SettingsClosedMsg:
		m.closeOverlay()
	case tea.KeyPressMsg:
		if cmd, quit := m.handleKey(v); quit {
			return m, tea.Quit
		} else if cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseClickMsg:
		if cmd := m.handlePress(v.Mouse()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseMotionMsg:
		mouse := v.Mouse()
		m.doc.PointerMove(m.surface.Point(mouse.X, mouse.Y))
	case tea.MouseReleaseMsg:
		if cmd := m.handleRelease(v.Mouse()); cmd != nil {
			cmds = append(cmds, cmd)
		}
	case tea.MouseWheelMsg:
		if m.overlay != nil {
			next, cmd := m.overlay.Update(msg)
			m.overlay = next
			cmds = append(cmds, cmd)
		} else if m.eventViewer != nil {
			_, cmd := m.eventViewer.Update(msg)
			cmds = append(cmds, cmd)
		}
	default:
		if m.overlay != nil {
			next, cmd := m.overlay.Update(msg)
			m.overlay = next
			cmds = append(cmds, cmd)
		}
	}

	if len(cmds) == 0 {
		return m, nil
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyPressMsg) (tea.Cmd, bool) {
	key := msg.String()
	if key == "ctrl+c" {
		return nil, true
	}

	switch m.overlayKind {
	case overlayHelp:
		switch key {
		case "?", "esc", "q":
			m.closeOverlay()
			return nil, false
		}
		next, cmd := m.overlay.Update(msg)
		m.overlay = next
		return cmd, false
	case overlaySettings:
		next, cmd := m.overlay.Update(msg)
		m.overlay = next
		return cmd, false
	}

	switch key {
	case "q":
		return nil, true
	case "?":
		m.openHelp()
	case "s":
		m.openSettings()
	case "d":
		m.toggleDebug()
	case "l":
		m.setLocked(!m.locked)
	case "space", " ":
		preset := m.store.Snapshot().Components.CountdownTimer.Preset()
		if m.widgets.Countdown.Toggle(preset) {
			m.status = "Countdown running"
		} else if m.widgets.Countdown.Idle() {
			m.status = "Countdown preset is zero"
		} else {
			m.status = "Countdown paused"
		}
	case "r":
		m.widgets.Countdown.Reset()
		m.status = "Countdown reset"
	case "esc":
		for _, w := range m.widgets.Widgets {
			w.Controller().Deactivate()
		}
		m.captured = nil
	}
	return nil, false
}

// handlePress hit-tests a left click against the widgets, topmost first. A
// second press within the double-click window toggles resize handles instead
// of starting a drag. Every other widget sees the press as outside.
func (m *Model) handlePress(mouse tea.Mouse) tea.Cmd {
	if mouse.Button != tea.MouseLeft || m.overlay != nil {
		return nil
	}
	now := m.now()
	double := !m.lastClick.IsZero() &&
		now.Sub(m.lastClick) <= m.doubleClick &&
		absInt(mouse.X-m.lastClickX) <= 1 && absInt(mouse.Y-m.lastClickY) <= 1
	if double {
		m.lastClick = time.Time{}
	} else {
		m.lastClick, m.lastClickX, m.lastClickY = now, mouse.X, mouse.Y
	}

	p := m.surface.Point(mouse.X, mouse.Y)
	target, hit := m.widgets.Hit(mouse.X, mouse.Y)
	for _, w := range m.widgets.Widgets {
		if w != target {
			w.Controller().PointerDown(p, interaction.Hit{Part: interaction.PartOutside})
		}
	}
	m.captured = nil
	if target == nil {
		return nil
	}

	ctrl := target.Controller()
	if double {
		ctrl.PointerUp(p)
		if token, ok := ctrl.DoubleClick(hit); ok {
			return events.HandlesExpiredCmd(target.Name(), token, interaction.HandleTimeout)
		}
		return nil
	}
	if !ctrl.PointerDown(p, hit) {
		return nil
	}
	m.captured = target
	return events.WidgetGestureCmd(rootID, target.Name(), ctrl.State().String(), false)
}

func (m *Model) handleRelease(mouse tea.Mouse) tea.Cmd {
	m.doc.PointerUp(m.surface.Point(mouse.X, mouse.Y))
	if m.captured == nil {
		return nil
	}
	w := m.captured
	m.captured = nil
	return events.WidgetGestureCmd(rootID, w.Name(), "release", true)
}

func (m *Model) applyChange(c configstore.Change) {
	cfg := c.Config
	if cfg.Theme != m.themeName {
		m.themeName = cfg.Theme
		m.theme = theme.For(cfg.Theme)
		for _, w := range m.widgets.Widgets {
			w.SetTheme(m.theme.Widget)
		}
		m.inspector = panel.New(m.theme.Panel)
		if m.eventViewer != nil {
			m.eventViewer.SetTheme(m.theme.Debug)
		}
		m.bg = background{}
	}
	if c.Origin == configstore.OriginReset {
		m.widgets.Countdown.Reset()
	}
}

func (m *Model) applyStorageEvent(ev store.Event) {
	switch ev.Type {
	case store.EventConfigChanged:
		if m.store.Reload() {
			m.status = "Layout reloaded"
			m.log.Info("reloaded config changed on disk")
		}
	case store.EventConfigRemoved:
		m.status = "Saved layout removed"
		m.log.Warn("saved config removed on disk")
	}
}

func (m *Model) setLocked(locked bool) {
	m.locked = locked
	m.widgets.SetDisabled(locked)
	m.captured = nil
	if locked {
		m.status = "Layout locked"
	} else {
		m.status = "Layout unlocked"
	}
	m.log.Debug("layout lock changed", slog.Bool("locked", locked))
}

func (m *Model) openHelp() {
	h := help.New(m.theme.Modal, m.themeName, m.locked)
	h.SetSize(m.overlaySize(80))
	m.overlay = h
	m.overlayKind = overlayHelp
}

func (m *Model) openSettings() {
	s := settings.New(m.store, m.theme.Modal)
	s.SetResizer(m.widgets)
	s.SetSize(m.width, m.boardRows())
	m.overlay = s
	m.overlayKind = overlaySettings
}

func (m *Model) closeOverlay() {
	m.overlay = nil
	m.overlayKind = overlayNone
}

func (m *Model) overlaySize(maxWidth int) (int, int) {
	w := min(maxWidth, m.width-4)
	h := m.boardRows() - 2
	return max(w, 1), max(h, 1)
}

func (m *Model) boardRows() int {
	return max(m.height-footerRows, 1)
}

func (m *Model) layout() {
	m.surface.SetSize(m.width, m.boardRows())
	m.bg = background{}
	switch m.overlayKind {
	case overlayHelp:
		m.overlay.SetSize(m.overlaySize(80))
	case overlaySettings:
		m.overlay.SetSize(m.width, m.boardRows())
	}
	if m.eventViewer != nil {
		m.eventViewer.SetSize(m.width, m.debugRows())
	}
}

func (m *Model) debugRows() int {
	rows := m.boardRows()
	if rows <= 8 {
		return 0
	}
	return clamp(rows/3, 5, 12)
}

// View renders the composed board.
func (m *Model) View() (string, *tea.Cursor) {
	if m.width <= 0 || m.height <= 0 {
		return "initializing…", nil
	}
	rows := m.boardRows()
	cfg := m.store.Snapshot()
	now := m.now()

	layers := make([]overlay.Layer, 0, len(m.widgets.Widgets)+2)
	for _, w := range m.widgets.Widgets {
		out, ok := w.Render(now)
		if !ok {
			continue
		}
		p := w.Placement()
		layers = append(layers, overlay.Layer{View: out, Placement: overlay.At(p.Col, p.Row)})
	}

	if view, ok := m.inspectorView(cfg); ok {
		layers = append(layers, overlay.Layer{View: view, Placement: overlay.At(1, 0)})
	}

	if m.debugEnabled && m.eventViewer != nil {
		if dr := m.debugRows(); dr > 0 {
			layers = append(layers, overlay.Layer{View: m.eventViewer.View(), Placement: overlay.At(0, rows-dr)})
		}
	}

	var cursor *tea.Cursor
	if m.overlay != nil {
		view, c := m.overlay.View()
		placement := overlay.Placement{}
		if c != nil {
			x, y := overlay.Offsets(m.width, rows, lipgloss.Width(view), lipgloss.Height(view), placement)
			clone := *c
			clone.Position.X += x
			clone.Position.Y += y
			cursor = &clone
		}
		layers = append(layers, overlay.Layer{View: view, Placement: placement})
	}

	frame := overlay.ComposeLayers(m.background(cfg, rows), m.width, rows, layers...)
	return frame + "\n" + m.footer(), cursor
}

// inspectorView shows the live geometry of the widget under a gesture.
func (m *Model) inspectorView(cfg board.AppConfig) (string, bool) {
	if m.captured == nil {
		return "", false
	}
	state := m.captured.Controller().State()
	if state == interaction.Idle {
		return "", false
	}
	w, ok := cfg.Components.Widget(m.captured.Name())
	if !ok {
		return "", false
	}
	m.inspector.Show(panel.Reading{
		Name:        m.captured.Name(),
		Gesture:     state.String(),
		Widget:      w,
		Constraints: widget.ConstraintsFor(m.captured.Name()),
		Resizing:    state == interaction.Resizing,
	})
	view, _ := m.inspector.View()
	return view, true
}

func (m *Model) footer() string {
	hints := "? help · s settings · space timer · l lock · q quit"
	left := m.status
	if m.locked {
		left = m.theme.Footer.Locked.Render("locked") + "  " + left
	}
	left = m.theme.Footer.Status.Render(left)
	right := m.theme.Footer.Help.Render(hints)
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(left + " " + right)
	}
	return left + strings.Repeat(" ", gap) + right
}

func (m *Model) toggleDebug() {
	if m.debugEnabled {
		m.debugEnabled = false
		m.eventViewer = nil
		m.status = "Debug log hidden"
		return
	}
	m.debugEnabled = true
	if m.eventViewer == nil {
		m.eventViewer = eventviewer.New(m.theme.Debug, 400)
	}
	if m.width > 0 {
		m.eventViewer.SetSize(m.width, m.debugRows())
	}
	m.appendEvent(eventviewer.Entry{Kind: "debug", Text: "log enabled"})
	m.status = "Debug log visible"
}

func (m *Model) noteEvent(msg tea.Msg) {
	if m.eventViewer == nil {
		return
	}
	switch msg.(type) {
	case events.TickMsg, tea.MouseMotionMsg:
		return
	}

	entry := eventviewer.Entry{
		At:   m.now(),
		Kind: strings.TrimPrefix(fmt.Sprintf("%T", msg), "events."),
		Text: describeMsg(msg),
	}
	if s, ok := eventSource(msg); ok {
		entry.Origin = s
	}
	if _, ok := msg.(events.StorageEventMsg); ok {
		entry.Warn = true
	}
	m.eventViewer.Record(entry)
}

func (m *Model) appendEvent(entry eventviewer.Entry) {
	if m.eventViewer == nil {
		return
	}
	if entry.At.IsZero() {
		entry.At = m.now()
	}
	m.eventViewer.Record(entry)
}

func describeMsg(msg tea.Msg) string {
	if d, ok := msg.(interface{ Describe() string }); ok {
		return d.Describe()
	}
	switch v := msg.(type) {
	case tea.KeyMsg:
		return fmt.Sprintf("key=%q", v.String())
	case tea.WindowSizeMsg:
		return fmt.Sprintf("size=%dx%d", v.Width, v.Height)
	case tea.MouseMsg:
		mouse := v.Mouse()
		return fmt.Sprintf("mouse=%d,%d", mouse.X, mouse.Y)
	default:
		return ""
	}
}

func eventSource(msg tea.Msg) (string, bool) {
	switch v := msg.(type) {
	case events.WidgetGestureMsg:
		return string(v.Component), true
	case events.SettingsClosedMsg:
		return string(v.Component), true
	case events.DebugMsg:
		return string(v.Component), true
	case events.ConfigChangedMsg:
		return "store", true
	case events.StorageEventMsg:
		return "disk", true
	case events.HandlesExpiredMsg:
		return string(v.Widget), true
	default:
		return "", false
	}
}

func clamp(value, lower, upper int) int {
	if value < lower {
		return lower
	}
	if value > upper {
		return upper
	}
	return value
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
