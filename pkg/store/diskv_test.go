package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/smartboard/pkg/board"
)

func newTestPersistence(t *testing.T, now time.Time) *persistence {
	t.Helper()
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}
	impl := p.(*persistence)
	impl.now = func() time.Time { return now }
	return impl
}

func TestSaveLoadRoundTrip(t *testing.T) {
	created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.UTC)
	saved := created.Add(time.Hour)
	p := newTestPersistence(t, saved)

	cfg := board.Defaults(created)
	cfg.BackgroundImageURL = "file:///srv/bg.jpg"
	cfg.Components.Message.IsActive = true
	cfg.Components.Message.Text = "Welcome back"
	cfg.Components.Clock.Position.X = 61.25
	cfg.DisplaySettings.SkrimOpacity = 0.4

	if err := p.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if !got.UpdatedAt.Equal(cfg.UpdatedAt) {
		t.Fatalf("expected save to keep %v, got %v", cfg.UpdatedAt, got.UpdatedAt)
	}
	if !got.CreatedAt.Equal(cfg.CreatedAt) {
		t.Fatalf("createdAt changed: %v", got.CreatedAt)
	}
	got.UpdatedAt, got.CreatedAt = cfg.UpdatedAt, cfg.CreatedAt
	if got != cfg {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", got, cfg)
	}
}

func TestSaveStampsZeroTimestamp(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := newTestPersistence(t, now)
	cfg := board.Defaults(now.Add(-time.Hour))
	cfg.UpdatedAt = time.Time{}
	if err := p.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Fatalf("expected %v, got %v", now, got.UpdatedAt)
	}
}

func TestSaveKeepsNewerTimestamp(t *testing.T) {
	p := newTestPersistence(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	cfg := board.Defaults(time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC))
	if err := p.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !got.UpdatedAt.Equal(cfg.UpdatedAt) {
		t.Fatalf("expected %v, got %v", cfg.UpdatedAt, got.UpdatedAt)
	}
}

func TestLoadMissing(t *testing.T) {
	p := newTestPersistence(t, time.Now())
	if _, err := p.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestLoadRejectsInvalidRecords(t *testing.T) {
	tests := map[string]string{
		"garbage":        `{not json`,
		"null":           `null`,
		"array":          `[1,2,3]`,
		"missing id":     `{"components":{}}`,
		"missing comps":  `{"id":"abc"}`,
		"null comps":     `{"id":"abc","components":null}`,
		"wrong id shape": `{"id":{"nested":true},"components":{}}`,
	}
	for name, raw := range tests {
		t.Run(name, func(t *testing.T) {
			p := newTestPersistence(t, time.Now())
			if err := os.WriteFile(filepath.Join(p.basePath, ConfigKey), []byte(raw), 0o644); err != nil {
				t.Fatalf("write: %v", err)
			}
			if _, err := p.Load(); !errors.Is(err, ErrInvalidRecord) {
				t.Fatalf("expected ErrInvalidRecord, got %v", err)
			}
		})
	}
}

func TestClear(t *testing.T) {
	p := newTestPersistence(t, time.Now())
	if err := p.Clear(); err != nil {
		t.Fatalf("clear empty: %v", err)
	}
	if err := p.Save(board.Defaults(time.Now())); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := p.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := p.Load(); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after clear, got %v", err)
	}
}

func TestAvailable(t *testing.T) {
	p := newTestPersistence(t, time.Now())
	if !p.Available() {
		t.Fatalf("expected temp dir storage to be available")
	}
	if p.d.Has(probeKey) {
		t.Fatalf("probe key left behind")
	}
}
