package get

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/store"
)

func newPersistence(t *testing.T) store.Persistence {
	t.Helper()
	color.NoColor = true
	p, err := store.Load(&store.Settings{Path: t.TempDir()})
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := board.Defaults(time.Now())
	cfg.Components.Message.Text = "Lab starts at 10"
	if err := p.Save(cfg); err != nil {
		t.Fatalf("save: %v", err)
	}
	return p
}

func TestGetComponentJSON(t *testing.T) {
	var out bytes.Buffer
	g := Get{Persistence: newPersistence(t), Component: board.Message, Output: "json", Out: &out}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	var msg board.MessageConfig
	if err := json.Unmarshal(out.Bytes(), &msg); err != nil {
		t.Fatalf("decode %q: %v", out.String(), err)
	}
	if msg.Text != "Lab starts at 10" {
		t.Fatalf("unexpected text %q", msg.Text)
	}
}

func TestGetBoardTable(t *testing.T) {
	var out bytes.Buffer
	g := Get{Persistence: newPersistence(t), Out: &out}
	if err := g.Do(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(out.String(), "Lab starts at 10") {
		t.Fatalf("expected saved text in table:\n%s", out.String())
	}
}
