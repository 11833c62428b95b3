package store

import (
	"fmt"
	"os"
	"time"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

// Config tells the persistence layer where to keep its records.
type Config interface {
	BasePath() string
}

// Settings are the machine-local knobs of the smartboard, read from
// .smartboard.yaml and SMARTBOARD_* environment variables.
type Settings struct {
	// Path is the directory holding the durable config record.
	Path string `json:"path"`
	// CellWidth and CellHeight are the pixel size of one terminal cell. They
	// turn the terminal grid into a pixel viewport.
	CellWidth  int `json:"cellWidth"`
	CellHeight int `json:"cellHeight"`
	// LogFile receives structured logs. Empty discards them.
	LogFile string `json:"logFile,omitempty"`
	// Locked disables dragging and resizing on the display.
	Locked bool `json:"locked"`
	// DoubleClick is the longest gap between two clicks of a double-click.
	DoubleClick time.Duration `json:"doubleClick"`
}

// BasePath implements Config.
func (s *Settings) BasePath() string {
	return s.Path
}

// LoadSettings resolves settings from defaults, the optional config file and
// the environment, in increasing priority.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetDefault("path", "~/.smartboard")
	v.SetDefault("cell_width", 8)
	v.SetDefault("cell_height", 16)
	v.SetDefault("log_file", "")
	v.SetDefault("locked", false)
	v.SetDefault("double_click_ms", 500)
	v.SetConfigName(".smartboard") // .yaml is implicit
	v.SetEnvPrefix("SMARTBOARD")
	v.AutomaticEnv()

	if override := os.Getenv("SMARTBOARD_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("store: read config file: %w", err)
		}
	}

	path, err := homedir.Expand(v.GetString("path"))
	if err != nil {
		return nil, fmt.Errorf("store: expand path: %w", err)
	}
	logFile := v.GetString("log_file")
	if logFile != "" {
		if logFile, err = homedir.Expand(logFile); err != nil {
			return nil, fmt.Errorf("store: expand log file: %w", err)
		}
	}

	s := &Settings{
		Path:        path,
		CellWidth:   v.GetInt("cell_width"),
		CellHeight:  v.GetInt("cell_height"),
		LogFile:     logFile,
		Locked:      v.GetBool("locked"),
		DoubleClick: time.Duration(v.GetInt("double_click_ms")) * time.Millisecond,
	}
	if s.CellWidth <= 0 {
		s.CellWidth = 8
	}
	if s.CellHeight <= 0 {
		s.CellHeight = 16
	}
	if s.DoubleClick <= 0 {
		s.DoubleClick = 500 * time.Millisecond
	}
	return s, nil
}
