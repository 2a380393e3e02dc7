// Package config loads frames settings from a TOML file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// DefaultPath is the file looked up when no path is given.
const DefaultPath = "frames.toml"

// Config holds every tunable of the frames CLI.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string   `toml:"log_level"`
	Geometry Geometry `toml:"geometry"`
	Engine   Engine   `toml:"engine"`
}

// Geometry settings.
type Geometry struct {
	// Tolerance bounds unit length and orthogonality of rotation matrices
	// given element by element.
	Tolerance float64 `toml:"tolerance"`
}

// Engine settings.
type Engine struct {
	// Timeout is a Go duration string, e.g. "5s".
	Timeout string `toml:"timeout"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		LogLevel: "info",
		Geometry: Geometry{Tolerance: 1e-5},
		Engine:   Engine{Timeout: "5s"},
	}
}

// Load reads path on top of the defaults. Keys missing from the file keep
// their default. An empty path reads DefaultPath if it exists.
func Load(path string) (Config, error) {
	cfg := Default()
	explicit := path != ""
	if !explicit {
		path = DefaultPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !explicit && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges and formats.
func (c Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.Geometry.Tolerance <= 0 || c.Geometry.Tolerance >= 1 {
		return fmt.Errorf("geometry.tolerance must be in (0, 1), got %g", c.Geometry.Tolerance)
	}
	if _, err := c.EvalTimeout(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel.
func (c Config) Level() (log.Level, error) {
	l, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, fmt.Errorf("log_level: %w", err)
	}
	return l, nil
}

// EvalTimeout parses Engine.Timeout.
func (c Config) EvalTimeout() (time.Duration, error) {
	d, err := time.ParseDuration(c.Engine.Timeout)
	if err != nil {
		return 0, fmt.Errorf("engine.timeout: %w", err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("engine.timeout must be positive, got %s", d)
	}
	return d, nil
}
