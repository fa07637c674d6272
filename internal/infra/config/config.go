// Package config provides configuration loading from YAML or TOML files.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/osa030/relaxbox/internal/domain/playlist"
	"github.com/osa030/relaxbox/internal/domain/track"
)

// Player backend types.
const (
	PlayerMPD       = "mpd"
	PlayerSimulated = "simulated"
)

// Config represents the application configuration.
type Config struct {
	UI      UIConfig      `yaml:"ui" toml:"ui"`
	Player  PlayerConfig  `yaml:"player" toml:"player"`
	Catalog []track.Track `yaml:"catalog" toml:"catalog" validate:"omitempty,dive"`
}

// UIConfig represents terminal UI configuration.
type UIConfig struct {
	Title       string `yaml:"title" toml:"title" default:"Relaxing Music"`
	SeekStepSec int    `yaml:"seek_step_sec" toml:"seek_step_sec" default:"10" validate:"gte=1,lte=600"`
	Inline      bool   `yaml:"inline" toml:"inline"` // Render inline instead of the alternate screen
}

// PlayerConfig selects and configures the player backend.
// Settings are decoded by the selected backend.
type PlayerConfig struct {
	Type     string         `yaml:"type" toml:"type" default:"simulated" validate:"oneof=mpd simulated"`
	Settings map[string]any `yaml:"settings" toml:"settings"`
}

// Default returns the configuration used when no file is given.
func Default() (*Config, error) {
	var cfg Config
	return finalize(&cfg)
}

// Load loads configuration from a file. The format is chosen by extension:
// ".toml" for TOML, anything else is parsed as YAML.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse TOML config file")
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, errors.Wrap(err, "failed to parse config file")
		}
	}

	return finalize(&cfg)
}

func finalize(cfg *Config) (*Config, error) {
	// Override with environment variables
	cfg.overrideFromEnv()

	// Set defaults using creasty/defaults
	if err := defaults.Set(cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "config validation failed")
	}

	return cfg, nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() {
	if v := os.Getenv("RELAXBOX_PLAYER"); v != "" {
		c.Player.Type = v
	}
	if v := os.Getenv("MPD_HOST"); v != "" {
		c.setPlayerSetting("addr", v)
	}
	if v := os.Getenv("MPD_PASSWORD"); v != "" {
		c.setPlayerSetting("password", v)
	}
}

func (c *Config) setPlayerSetting(key string, value any) {
	if c.Player.Settings == nil {
		c.Player.Settings = make(map[string]any)
	}
	c.Player.Settings[key] = value
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// Playlist builds the catalog: the configured tracks, or the built-in
// catalog when none are configured.
func (c *Config) Playlist() (*playlist.Playlist, error) {
	if len(c.Catalog) == 0 {
		return playlist.Default(), nil
	}
	p, err := playlist.New(c.Catalog)
	if err != nil {
		return nil, errors.Wrap(err, "invalid catalog")
	}
	return p, nil
}
