package display

import (
	"math"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/store"
	"tableflip.dev/smartboard/pkg/tui/events"
	"tableflip.dev/smartboard/pkg/tui/theme"
	"tableflip.dev/smartboard/pkg/widget"
)

type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func (c *testClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

type memPersistence struct {
	saved *board.AppConfig
}

func (m *memPersistence) Save(cfg board.AppConfig) error {
	m.saved = &cfg
	return nil
}

func (m *memPersistence) Load() (board.AppConfig, error) {
	if m.saved == nil {
		return board.AppConfig{}, store.ErrNotFound
	}
	return *m.saved, nil
}

func (m *memPersistence) Clear() error {
	m.saved = nil
	return nil
}

func newTestModel(t *testing.T, opts ...configstore.Option) (*Model, *configstore.Store, *testClock) {
	t.Helper()
	clock := &testClock{now: time.Date(2024, 3, 4, 13, 45, 0, 0, time.UTC)}
	cfg := board.Defaults(clock.Now())
	cfg.Timezone = "UTC"
	s := configstore.New(cfg, append([]configstore.Option{configstore.WithClock(clock.Now)}, opts...)...)
	t.Cleanup(s.Dispose)

	m := New(Options{Store: s, CellWidth: 8, CellHeight: 16, Now: clock.Now})
	t.Cleanup(m.Close)
	m.Update(tea.WindowSizeMsg{Width: 240, Height: 68})
	m.View()
	return m, s, clock
}

func click(m *Model, x, y int) tea.Cmd {
	_, cmd := m.Update(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
	return cmd
}

func key(m *Model, k tea.KeyPressMsg) tea.Cmd {
	_, cmd := m.Update(k)
	return cmd
}

// deliver runs cmd and feeds what it produces back into the model. Batches
// are flattened.
func deliver(m *Model, cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			deliver(m, c)
		}
	case nil:
	default:
		m.Update(msg)
	}
}

func TestMouseDragMovesWidget(t *testing.T) {
	m, s, _ := newTestModel(t)

	click(m, 120, 33)
	m.Update(tea.MouseMotionMsg{X: 144, Y: 33, Button: tea.MouseLeft})
	if view, _ := m.View(); !strings.Contains(view, "Clock · dragging") {
		t.Fatalf("expected the geometry panel while dragging")
	}
	m.Update(tea.MouseReleaseMsg{X: 144, Y: 33, Button: tea.MouseLeft})
	if view, _ := m.View(); strings.Contains(view, "dragging") {
		t.Fatalf("geometry panel left after release")
	}

	got := s.Snapshot().Components.Clock.Position
	if math.Abs(got.X-60) > 1e-9 || math.Abs(got.Y-50) > 1e-9 {
		t.Fatalf("expected (60,50), got %+v", got)
	}
	if m.doc.Len() != 0 {
		t.Fatalf("listener left after release")
	}
	m.Update(tea.MouseMotionMsg{X: 10, Y: 10})
	if s.Snapshot().Components.Clock.Position != got {
		t.Fatalf("widget moved after release")
	}
}

func TestDoubleClickShowsHandles(t *testing.T) {
	m, _, clock := newTestModel(t)
	clock2 := m.widgets.Get(board.Clock).Controller()

	click(m, 120, 33)
	m.Update(tea.MouseReleaseMsg{X: 120, Y: 33})
	clock.Advance(200 * time.Millisecond)
	if cmd := click(m, 120, 33); cmd == nil {
		t.Fatalf("expected an expiry to be scheduled")
	}
	if !clock2.HandlesVisible() {
		t.Fatalf("expected handles after double-click")
	}
	if m.doc.Len() != 0 {
		t.Fatalf("double-click left a drag running")
	}

	m.Update(events.HandlesExpiredMsg{Widget: board.Clock, Token: 1})
	if clock2.HandlesVisible() {
		t.Fatalf("expected handles hidden on expiry")
	}
}

func TestSlowClicksDoNotDoubleClick(t *testing.T) {
	m, _, clock := newTestModel(t)
	click(m, 120, 33)
	m.Update(tea.MouseReleaseMsg{X: 120, Y: 33})
	clock.Advance(time.Second)
	click(m, 120, 33)
	m.Update(tea.MouseReleaseMsg{X: 120, Y: 33})
	if m.widgets.Get(board.Clock).Controller().HandlesVisible() {
		t.Fatalf("slow clicks showed handles")
	}
}

func TestClickOutsideHidesHandles(t *testing.T) {
	m, _, clock := newTestModel(t)
	ctrl := m.widgets.Get(board.Clock).Controller()
	click(m, 120, 33)
	clock.Advance(100 * time.Millisecond)
	click(m, 120, 33)
	if !ctrl.HandlesVisible() {
		t.Fatalf("expected handles")
	}
	clock.Advance(time.Second)
	click(m, 1, 1)
	if ctrl.HandlesVisible() {
		t.Fatalf("press outside kept handles visible")
	}
}

func TestLockedIgnoresDrag(t *testing.T) {
	m, s, _ := newTestModel(t)
	key(m, tea.KeyPressMsg{Code: 'l', Text: "l"})
	if !m.Locked() {
		t.Fatalf("expected locked")
	}
	before := s.Snapshot().Components.Clock.Position
	click(m, 120, 33)
	m.Update(tea.MouseMotionMsg{X: 150, Y: 40})
	m.Update(tea.MouseReleaseMsg{X: 150, Y: 40})
	if s.Snapshot().Components.Clock.Position != before {
		t.Fatalf("locked board moved")
	}
}

func TestCountdownRunsOnTicks(t *testing.T) {
	m, s, clock := newTestModel(t)
	if err := s.UpdateCountdownTimer(board.CountdownTimerPatch{Minutes: board.Ptr(0), Seconds: board.Ptr(2)}); err != nil {
		t.Fatalf("update: %v", err)
	}
	key(m, tea.KeyPressMsg{Code: tea.KeySpace, Text: " "})
	if !m.widgets.Countdown.Running() {
		t.Fatalf("expected countdown running")
	}

	clock.Advance(time.Second)
	m.Update(events.TickMsg{Time: clock.Now()})
	if got := m.widgets.Countdown.Remaining(); got != time.Second {
		t.Fatalf("expected 1s left, got %v", got)
	}
	clock.Advance(time.Second)
	m.Update(events.TickMsg{Time: clock.Now()})
	if !m.widgets.Countdown.Finished() {
		t.Fatalf("expected countdown finished")
	}
	m.Update(events.CountdownFinishedMsg{At: clock.Now()})
	view, _ := m.View()
	if !strings.Contains(view, widget.TimesUp) {
		t.Fatalf("expected %q in the footer", widget.TimesUp)
	}

	key(m, tea.KeyPressMsg{Code: 'r', Text: "r"})
	if !m.widgets.Countdown.Idle() || m.widgets.Countdown.Finished() {
		t.Fatalf("expected reset countdown")
	}
}

func TestSettingsOverlayOpensAndCloses(t *testing.T) {
	m, s, _ := newTestModel(t)
	key(m, tea.KeyPressMsg{Code: 's', Text: "s"})
	if m.overlayKind != overlaySettings {
		t.Fatalf("expected settings open")
	}
	view, _ := m.View()
	if !strings.Contains(view, "Settings") {
		t.Fatalf("expected settings in view")
	}

	// first row toggles the clock
	key(m, tea.KeyPressMsg{Code: tea.KeyEnter})
	if s.Snapshot().Components.Clock.IsActive {
		t.Fatalf("expected clock hidden")
	}

	cmd := key(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatalf("expected close command")
	}
	deliver(m, cmd)
	if m.overlay != nil {
		t.Fatalf("expected overlay closed")
	}
}

func TestHelpOverlay(t *testing.T) {
	m, _, _ := newTestModel(t)
	key(m, tea.KeyPressMsg{Code: '?', Text: "?"})
	if m.overlayKind != overlayHelp {
		t.Fatalf("expected help open")
	}
	key(m, tea.KeyPressMsg{Code: tea.KeyEscape})
	if m.overlay != nil {
		t.Fatalf("expected help closed")
	}
}

func TestViewFillsTerminal(t *testing.T) {
	m, _, _ := newTestModel(t)
	view, cursor := m.View()
	if h := lipgloss.Height(view); h != 68 {
		t.Fatalf("expected 68 rows, got %d", h)
	}
	if cursor != nil {
		t.Fatalf("unexpected cursor")
	}
	if !strings.Contains(view, "13:45") && !strings.Contains(view, "1:45 PM") {
		t.Fatalf("expected the clock in the view")
	}
	if !strings.Contains(view, "q quit") {
		t.Fatalf("expected footer hints")
	}
}

func TestStorageEventReloads(t *testing.T) {
	p := &memPersistence{}
	m, s, clock := newTestModel(t, configstore.WithPersistence(p))

	external := s.Snapshot()
	external.Components.Message.Text = "from another terminal"
	external.UpdatedAt = clock.Now().Add(time.Minute)
	p.saved = &external

	m.Update(events.StorageEventMsg{Event: store.Event{Type: store.EventConfigChanged}})
	if got := s.Snapshot().Components.Message.Text; got != "from another terminal" {
		t.Fatalf("expected reload, got %q", got)
	}
}

func TestThemeFollowsConfig(t *testing.T) {
	m, s, _ := newTestModel(t)
	light := board.ThemeLight
	if err := s.UpdateConfig(board.ConfigPatch{Theme: &light}); err != nil {
		t.Fatalf("update: %v", err)
	}
	m.Update(events.ConfigChangedMsg{Change: configstore.Change{Config: s.Snapshot()}})
	if m.themeName != board.ThemeLight || m.theme.Background != theme.For(board.ThemeLight).Background {
		t.Fatalf("theme not applied")
	}
}

func TestGradient(t *testing.T) {
	bg := theme.BackgroundTheme{From: "#000000", To: "#ffffff"}
	got := Gradient(2, bg, "#000000", 0)
	if got[0] != "#000000" || got[1] != "#ffffff" {
		t.Fatalf("unexpected gradient %v", got)
	}
	for _, c := range Gradient(3, bg, "#000000", 1) {
		if c != "#000000" {
			t.Fatalf("full skrim should be solid, got %v", c)
		}
	}
}
