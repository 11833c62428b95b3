package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/smartboard/pkg/board"
)

const (
	// ConfigKey names the durable record holding the AppConfig JSON.
	ConfigKey = "smartboard-config"

	probeKey = "smartboard-probe"
)

var (
	// ErrNotFound reports that nothing has been saved yet.
	ErrNotFound = errors.New("store: no saved config")
	// ErrInvalidRecord reports a stored value that is not a usable config.
	ErrInvalidRecord = errors.New("store: invalid config record")
)

// Persistence defines the durable storage contract for the configuration.
type Persistence interface {
	// Save writes cfg as given. A zero UpdatedAt is stamped with the wall
	// clock; any other stamp is kept so the caller can recognise its own write.
	Save(cfg board.AppConfig) error
	// Load reads the saved config. It returns ErrNotFound when nothing has
	// been saved and ErrInvalidRecord when the record fails validation.
	Load() (board.AppConfig, error)
	// Clear erases the saved config.
	Clear() error
	// Available reports whether the storage accepts writes.
	Available() bool
	// Watch streams change notifications for the record until ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		s, err := LoadSettings()
		if err != nil {
			return nil, err
		}
		cfg = s
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: persistence base path unknown")
	}
	return &persistence{
		d: diskv.New(diskv.Options{
			BasePath:  basePath,
			Transform: flatTransform,
			TempDir:   filepath.Join(basePath, ".tmp"),
			// Another process may rewrite the record, so reads always go to disk.
			CacheSizeMax: 0,
		}),
		basePath: basePath,
		now:      time.Now,
	}, nil
}

func flatTransform(string) []string { return []string{} }

type persistence struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

func (p *persistence) Save(cfg board.AppConfig) error {
	if cfg.UpdatedAt.IsZero() {
		cfg.UpdatedAt = p.now()
	}
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("store: encode config: %w", err)
	}
	if err := p.d.Write(ConfigKey, data); err != nil {
		return fmt.Errorf("store: write config: %w", err)
	}
	return nil
}

func (p *persistence) Load() (board.AppConfig, error) {
	if !p.d.Has(ConfigKey) {
		return board.AppConfig{}, ErrNotFound
	}
	data, err := p.d.Read(ConfigKey)
	if err != nil {
		return board.AppConfig{}, fmt.Errorf("store: read config: %w", err)
	}
	return decodeRecord(data)
}

// decodeRecord accepts only a JSON object carrying both id and components.
func decodeRecord(data []byte) (board.AppConfig, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return board.AppConfig{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	if fields == nil {
		return board.AppConfig{}, fmt.Errorf("%w: not an object", ErrInvalidRecord)
	}
	for _, required := range []string{"id", "components"} {
		raw, ok := fields[required]
		if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
			return board.AppConfig{}, fmt.Errorf("%w: missing %q", ErrInvalidRecord, required)
		}
	}

	var cfg board.AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return board.AppConfig{}, fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}
	return cfg, nil
}

func (p *persistence) Clear() error {
	if !p.d.Has(ConfigKey) {
		return nil
	}
	if err := p.d.Erase(ConfigKey); err != nil {
		return fmt.Errorf("store: erase config: %w", err)
	}
	return nil
}

func (p *persistence) Available() bool {
	if err := p.d.Write(probeKey, []byte("ok")); err != nil {
		return false
	}
	if err := p.d.Erase(probeKey); err != nil {
		fmt.Fprintf(os.Stderr, "store: erase probe: %v\n", err)
	}
	return true
}
