// Package config provides configuration loading from YAML files.
package config

import (
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Player types understood by the player factory.
const (
	PlayerAfplay = "afplay"
	PlayerMpv    = "mpv"
	PlayerFfplay = "ffplay"
	PlayerExec   = "exec"
)

// Config represents the application configuration.
type Config struct {
	Library LibraryConfig           `yaml:"library"`
	Player  PlayerConfig            `yaml:"player"`
	Shuffle ShuffleConfig           `yaml:"shuffle"`
	Log     LogConfig               `yaml:"log"`
	Filters map[string]FilterConfig `yaml:"filters"`
}

// LibraryConfig represents where tracks are listed from.
type LibraryConfig struct {
	DefaultDir string            `yaml:"default_dir" default:"./songs" validate:"required"`
	Aliases    map[string]string `yaml:"aliases" validate:"dive,keys,required,endkeys,required"`
}

// PlayerConfig represents the external player configuration.
type PlayerConfig struct {
	Type       string         `yaml:"type" validate:"required,oneof=afplay mpv ffplay exec"`
	Settings   map[string]any `yaml:"settings"`
	ShowOutput bool           `yaml:"show_output"`
}

// ShuffleConfig represents shuffle configuration.
type ShuffleConfig struct {
	Seed   int64 `yaml:"seed"`
	Passes int   `yaml:"passes" default:"4" validate:"gte=1,lte=64"`
}

// LogConfig represents logging configuration.
type LogConfig struct {
	Level string `yaml:"level" default:"warn" validate:"oneof=debug info warn warning error"`
	File  string `yaml:"file"`
}

// FilterConfig represents a track filter's configuration.
type FilterConfig struct {
	Enabled  bool           `yaml:"enabled"`
	Settings map[string]any `yaml:"settings,omitempty"`
}

// SetDefaults picks the platform player when none is configured.
func (p *PlayerConfig) SetDefaults() {
	if p.Type != "" {
		return
	}
	if runtime.GOOS == "darwin" {
		p.Type = PlayerAfplay
	} else {
		p.Type = PlayerMpv
	}
}

// Default returns the configuration used when no config file is given.
func Default() (*Config, error) {
	var cfg Config
	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Load loads configuration from a YAML file.
// Environment variables take precedence over file values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if err := cfg.finish(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// finish applies env overrides and defaults, then validates.
func (c *Config) finish() error {
	if err := c.overrideFromEnv(); err != nil {
		return err
	}

	if err := defaults.Set(c); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}
	c.Player.SetDefaults()

	if err := c.Validate(); err != nil {
		return errors.Wrap(err, "config validation failed")
	}
	return nil
}

// overrideFromEnv overrides config values with environment variables.
func (c *Config) overrideFromEnv() error {
	if v := os.Getenv("SHUFFLEPLAY_DIR"); v != "" {
		c.Library.DefaultDir = v
	}
	if v := os.Getenv("SHUFFLEPLAY_PLAYER"); v != "" {
		c.Player.Type = v
	}
	if v := os.Getenv("SHUFFLEPLAY_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid SHUFFLEPLAY_SEED %q", v)
		}
		c.Shuffle.Seed = seed
	}
	return nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return errors.Wrap(err, "struct validation failed")
	}
	return nil
}

// ResolveDir returns the directory to play.
// An explicit dir wins over an alias; with neither the default directory is used.
func (c *Config) ResolveDir(dir, alias string) (string, error) {
	if dir != "" {
		return dir, nil
	}
	if alias != "" {
		path, ok := c.Library.Aliases[alias]
		if !ok {
			return "", errors.Newf("unknown library alias %q", alias)
		}
		return expandHome(path), nil
	}
	return expandHome(c.Library.DefaultDir), nil
}

// IsFilterEnabled checks if a filter is enabled.
func (c *Config) IsFilterEnabled(filterName string) bool {
	if f, ok := c.Filters[filterName]; ok {
		return f.Enabled
	}
	return false
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return home + path[1:]
}
