// Package config loads boxpush settings from YAML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/plus3/boxpush/internal/sokoban"
)

//go:embed defaults/config.yaml
var defaultYAML []byte

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all settings for the game host and the simulation.
type Config struct {
	Window      WindowConfig    `yaml:"window"`
	TileSize    int             `yaml:"tile_size"`
	TickRate    int             `yaml:"tick_rate"`
	Animation   AnimationConfig `yaml:"animation"`
	FreezeOnWin bool            `yaml:"freeze_on_win"`
	AssetDir    string          `yaml:"asset_dir"`
	LogLevel    string          `yaml:"log_level"`
}

// WindowConfig sizes the host window.
type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

// AnimationConfig is the frame timing for animated sprites.
type AnimationConfig struct {
	Step  time.Duration `yaml:"step"`
	Cycle time.Duration `yaml:"cycle"`
}

// Default returns the hardcoded defaults. They match the embedded config.yaml.
func Default() Config {
	return Config{
		Window: WindowConfig{
			Width:  800,
			Height: 600,
			Title:  "boxpush",
		},
		TileSize: 32,
		TickRate: 60,
		Animation: AnimationConfig{
			Step:  sokoban.DefaultAnimation.Step,
			Cycle: sokoban.DefaultAnimation.Cycle,
		},
		FreezeOnWin: true,
		AssetDir:    "resources",
		LogLevel:    "info",
	}
}

// DefaultYAML returns the embedded default config file.
func DefaultYAML() []byte {
	return defaultYAML
}

// Parse decodes data over the defaults, so omitted keys keep their default
// value, and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects settings the host cannot run with.
func (c Config) Validate() error {
	switch {
	case c.Window.Width <= 0 || c.Window.Height <= 0:
		return fmt.Errorf("%w: window size %dx%d", ErrInvalid, c.Window.Width, c.Window.Height)
	case c.TileSize <= 0:
		return fmt.Errorf("%w: tile_size %d", ErrInvalid, c.TileSize)
	case c.TickRate <= 0:
		return fmt.Errorf("%w: tick_rate %d", ErrInvalid, c.TickRate)
	case c.Animation.Step <= 0 || c.Animation.Cycle <= 0:
		return fmt.Errorf("%w: animation step %v, cycle %v", ErrInvalid, c.Animation.Step, c.Animation.Cycle)
	case c.Animation.Step > c.Animation.Cycle:
		return fmt.Errorf("%w: animation step %v exceeds cycle %v", ErrInvalid, c.Animation.Step, c.Animation.Cycle)
	}
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: log_level %q", ErrInvalid, c.LogLevel)
	}
	return nil
}

// Level returns the parsed log level. Validate has already checked it.
func (c Config) Level() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// TickInterval is the simulated time covered by one tick.
func (c Config) TickInterval() time.Duration {
	return time.Second / time.Duration(c.TickRate)
}

// WorldOptions converts the config into simulation options.
func (c Config) WorldOptions(logger *log.Logger) sokoban.Options {
	return sokoban.Options{
		FreezeOnWin: c.FreezeOnWin,
		Animation: sokoban.Animation{
			Step:  c.Animation.Step,
			Cycle: c.Animation.Cycle,
		},
		Logger: logger,
	}
}
