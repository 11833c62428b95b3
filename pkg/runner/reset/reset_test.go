package reset

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/geometry"
	"tableflip.dev/smartboard/pkg/store"
)

func moved(t *testing.T) (store.Persistence, board.AppConfig) {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := board.Defaults(time.Now())
	cfg.Components.Clock.Position = geometry.Position{X: 12, Y: 88}
	if err := p.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	return p, cfg
}

func TestResetDeclined(t *testing.T) {
	p, _ := moved(t)
	r := Reset{
		Persistence: p,
		Confirm:     func(string) (bool, error) { return false, nil },
		Out:         &bytes.Buffer{},
	}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	cfg, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Components.Clock.Position.X != 12 {
		t.Fatalf("declined reset changed the layout")
	}
}

func TestResetKeepsIdentity(t *testing.T) {
	p, before := moved(t)
	asked := false
	r := Reset{
		Persistence: p,
		Yes:         true,
		Confirm: func(string) (bool, error) {
			asked = true
			return true, nil
		},
		Out: &bytes.Buffer{},
	}
	if err := r.Do(context.Background()); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if asked {
		t.Fatalf("--yes should skip the prompt")
	}
	cfg, err := p.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Components.Clock.Position != (geometry.Position{X: 50, Y: 50}) {
		t.Fatalf("expected default position, got %+v", cfg.Components.Clock.Position)
	}
	if cfg.ID != before.ID {
		t.Fatalf("reset changed the id")
	}
}
