// Package transfer moves a board layout in and out of the saved record as a
// JSON or TOML file.
package transfer

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/pelletier/go-toml/v2"

	"tableflip.dev/smartboard/pkg/board"
	"tableflip.dev/smartboard/pkg/configstore"
	"tableflip.dev/smartboard/pkg/store"
)

const (
	FormatJSON = "json"
	FormatTOML = "toml"
)

// Export writes the saved board to a file or Out.
type Export struct {
	Persistence store.Persistence
	Format      string
	// Path is the destination file. Empty writes to Out.
	Path string
	Out  io.Writer
}

func (e *Export) Do(ctx context.Context) error {
	if e.Persistence == nil {
		return errors.New("can not export, no persistence")
	}
	format, err := resolveFormat(e.Format, e.Path)
	if err != nil {
		return err
	}

	s := configstore.Open(e.Persistence)
	defer s.Dispose()
	data, err := Encode(s.Snapshot(), format)
	if err != nil {
		return err
	}

	if e.Path == "" {
		out := e.Out
		if out == nil {
			out = color.Output
		}
		_, err := out.Write(data)
		return err
	}
	if err := os.WriteFile(e.Path, data, 0o644); err != nil {
		return fmt.Errorf("transfer: write %s: %w", e.Path, err)
	}
	return nil
}

// Import replaces the saved board with the layout in a file. The board keeps
// its own identity.
type Import struct {
	Persistence store.Persistence
	Path        string
	Format      string
	Out         io.Writer
}

func (i *Import) Do(ctx context.Context) error {
	if i.Persistence == nil {
		return errors.New("can not import, no persistence")
	}
	format, err := resolveFormat(i.Format, i.Path)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(i.Path)
	if err != nil {
		return fmt.Errorf("transfer: read %s: %w", i.Path, err)
	}
	cfg, err := Decode(data, format)
	if err != nil {
		return err
	}

	s := configstore.Open(i.Persistence)
	defer s.Dispose()
	if err := s.UpdateConfig(board.ConfigPatch{
		BackgroundImageURL: &cfg.BackgroundImageURL,
		BackgroundRotation: &cfg.BackgroundRotation,
		Components:         &cfg.Components,
		ClockFormat:        &cfg.ClockFormat,
		ClockStyle:         &cfg.ClockStyle,
		Timezone:           &cfg.Timezone,
		Theme:              &cfg.Theme,
		RefreshInterval:    &cfg.RefreshInterval,
		DisplaySettings:    &cfg.DisplaySettings,
	}); err != nil {
		return err
	}

	out := i.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintln(out, color.GreenString("Imported layout from %s.", i.Path))
	return nil
}

// Encode renders cfg in format.
func Encode(cfg board.AppConfig, format string) ([]byte, error) {
	switch format {
	case FormatJSON:
		b, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("transfer: encode json: %w", err)
		}
		return append(b, '\n'), nil
	case FormatTOML:
		b, err := toml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("transfer: encode toml: %w", err)
		}
		return b, nil
	}
	return nil, fmt.Errorf("transfer: unknown format %q", format)
}

// Decode parses a layout and checks the enumerated fields.
func Decode(data []byte, format string) (board.AppConfig, error) {
	var cfg board.AppConfig
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("transfer: decode json: %w", err)
		}
	case FormatTOML:
		if err := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields().Decode(&cfg); err != nil {
			return cfg, fmt.Errorf("transfer: decode toml: %w", err)
		}
	default:
		return cfg, fmt.Errorf("transfer: unknown format %q", format)
	}
	return cfg, validate(cfg)
}

func validate(cfg board.AppConfig) error {
	if _, err := board.ParseTheme(string(cfg.Theme)); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	if _, err := board.ParseClockFormat(string(cfg.ClockFormat)); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	if _, err := board.ParseClockType(string(cfg.Components.Clock.Type)); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	if _, err := board.ParseDayFormat(string(cfg.Components.DayOfWeek.Format)); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}
	return nil
}

// resolveFormat prefers an explicit format, then the file extension, then JSON.
func resolveFormat(format, path string) (string, error) {
	if format == "" {
		switch strings.ToLower(filepath.Ext(path)) {
		case ".toml":
			return FormatTOML, nil
		default:
			return FormatJSON, nil
		}
	}
	switch f := strings.ToLower(format); f {
	case FormatJSON, FormatTOML:
		return f, nil
	}
	return "", fmt.Errorf("transfer: unknown format %q, want json or toml", format)
}
