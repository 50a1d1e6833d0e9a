package player

import (
	"os"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/stoned-ape/shuffleplay/internal/infra/config"
)

// PresetSettings configures one of the built-in players.
type PresetSettings struct {
	Binary    string   `mapstructure:"binary"`
	ExtraArgs []string `mapstructure:"extra_args"`
}

// ExecSettings configures an arbitrary player command.
type ExecSettings struct {
	Command string   `mapstructure:"command" validate:"required"`
	Args    []string `mapstructure:"args"`
}

type preset struct {
	binary string
	args   []string
}

// Built-in players. Each must exit on SIGINT and tolerate SIGSTOP/SIGCONT.
var presets = map[string]preset{
	config.PlayerAfplay: {binary: "afplay"},
	config.PlayerMpv:    {binary: "mpv", args: []string{"--no-video", "--no-terminal"}},
	config.PlayerFfplay: {binary: "ffplay", args: []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
}

// NewFromConfig creates a runner from the player configuration.
func NewFromConfig(cfg config.PlayerConfig) (*Runner, error) {
	var runner *Runner

	switch cfg.Type {
	case config.PlayerExec:
		var s ExecSettings
		if err := decodeSettings(cfg.Settings, &s); err != nil {
			return nil, errors.Wrapf(err, "invalid settings for player %s", cfg.Type)
		}
		runner = &Runner{Path: s.Command, Args: s.Args}

	default:
		p, ok := presets[cfg.Type]
		if !ok {
			return nil, errors.Newf("unsupported player type: %s", cfg.Type)
		}
		var s PresetSettings
		if err := decodeSettings(cfg.Settings, &s); err != nil {
			return nil, errors.Wrapf(err, "invalid settings for player %s", cfg.Type)
		}
		binary := p.binary
		if s.Binary != "" {
			binary = s.Binary
		}
		args := append(append([]string{}, p.args...), s.ExtraArgs...)
		runner = &Runner{Path: binary, Args: args}
	}

	if cfg.ShowOutput {
		runner.Stdout = os.Stdout
		runner.Stderr = os.Stderr
	}

	zlog.Debug().Msgf("player: configured: type=%s path=%s args=%q", cfg.Type, runner.Path, runner.Args)
	return runner, nil
}

// decodeSettings decodes a settings map into out, applies defaults and validates.
func decodeSettings(settings map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		TagName:     "mapstructure",
		ErrorUnused: true,
	})
	if err != nil {
		return errors.Wrap(err, "failed to create decoder")
	}

	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "failed to decode settings")
	}

	if err := defaults.Set(out); err != nil {
		return errors.Wrap(err, "failed to set defaults")
	}

	if err := validator.New().Struct(out); err != nil {
		return errors.Wrap(err, "validation failed")
	}
	return nil
}
