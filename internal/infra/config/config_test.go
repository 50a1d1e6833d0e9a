package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Library: LibraryConfig{DefaultDir: "./songs"},
		Player:  PlayerConfig{Type: PlayerMpv},
		Shuffle: ShuffleConfig{Passes: 4},
		Log:     LogConfig{Level: "warn"},
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{
			name:    "valid config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "missing default dir",
			mutate:  func(c *Config) { c.Library.DefaultDir = "" },
			wantErr: true,
			errMsg:  "DefaultDir",
		},
		{
			name:    "unknown player type",
			mutate:  func(c *Config) { c.Player.Type = "winamp" },
			wantErr: true,
			errMsg:  "Type",
		},
		{
			name:    "zero shuffle passes",
			mutate:  func(c *Config) { c.Shuffle.Passes = 0 },
			wantErr: true,
			errMsg:  "Passes",
		},
		{
			name:    "invalid log level",
			mutate:  func(c *Config) { c.Log.Level = "verbose" },
			wantErr: true,
			errMsg:  "Level",
		},
		{
			name:    "empty alias path",
			mutate:  func(c *Config) { c.Library.Aliases = map[string]string{"youtube": ""} },
			wantErr: true,
			errMsg:  "Aliases",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()

			if tt.wantErr {
				require.Error(t, err, "expected validation to fail")
				assert.Contains(t, err.Error(), tt.errMsg,
					"error message should mention the problematic field")
			} else {
				assert.NoError(t, err, "expected validation to pass")
			}
		})
	}
}

func TestDefault(t *testing.T) {
	t.Setenv("SHUFFLEPLAY_DIR", "")
	t.Setenv("SHUFFLEPLAY_PLAYER", "")
	t.Setenv("SHUFFLEPLAY_SEED", "")

	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "./songs", cfg.Library.DefaultDir)
	assert.Equal(t, 4, cfg.Shuffle.Passes)
	assert.Equal(t, int64(0), cfg.Shuffle.Seed)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Contains(t, []string{PlayerAfplay, PlayerMpv}, cfg.Player.Type)
}

func TestLoad(t *testing.T) {
	t.Setenv("SHUFFLEPLAY_DIR", "")
	t.Setenv("SHUFFLEPLAY_PLAYER", "")
	t.Setenv("SHUFFLEPLAY_SEED", "")

	path := filepath.Join(t.TempDir(), "shuffleplay.yaml")
	content := `
library:
  default_dir: /music
  aliases:
    youtube: /music/ytmusic
    spotify: /music/spotify
player:
  type: exec
  settings:
    command: /usr/bin/afplay
shuffle:
  seed: 42
filters:
  hidden_entry_filter:
    enabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/music", cfg.Library.DefaultDir)
	assert.Equal(t, "/music/ytmusic", cfg.Library.Aliases["youtube"])
	assert.Equal(t, PlayerExec, cfg.Player.Type)
	assert.Equal(t, "/usr/bin/afplay", cfg.Player.Settings["command"])
	assert.Equal(t, int64(42), cfg.Shuffle.Seed)
	assert.Equal(t, 4, cfg.Shuffle.Passes, "passes should fall back to the default")
	assert.True(t, cfg.IsFilterEnabled("hidden_entry_filter"))
	assert.False(t, cfg.IsFilterEnabled("extension_filter"))
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read config file")

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("library: [unterminated"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config file")
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SHUFFLEPLAY_DIR", "/env/music")
	t.Setenv("SHUFFLEPLAY_PLAYER", "ffplay")
	t.Setenv("SHUFFLEPLAY_SEED", "7")

	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "/env/music", cfg.Library.DefaultDir)
	assert.Equal(t, PlayerFfplay, cfg.Player.Type)
	assert.Equal(t, int64(7), cfg.Shuffle.Seed)
}

func TestLoad_InvalidSeedEnv(t *testing.T) {
	t.Setenv("SHUFFLEPLAY_SEED", "soon")

	_, err := Default()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SHUFFLEPLAY_SEED")
}

func TestConfig_ResolveDir(t *testing.T) {
	cfg := validConfig()
	cfg.Library.Aliases = map[string]string{"youtube": "/music/yt"}

	tests := []struct {
		name     string
		dir      string
		alias    string
		expected string
		wantErr  bool
	}{
		{name: "explicit dir", dir: "/tmp/x", alias: "youtube", expected: "/tmp/x"},
		{name: "alias", alias: "youtube", expected: "/music/yt"},
		{name: "default", expected: "./songs"},
		{name: "unknown alias", alias: "spotify", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir, err := cfg.ResolveDir(tt.dir, tt.alias)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, dir)
		})
	}
}

func TestPlayerConfig_SetDefaults(t *testing.T) {
	p := PlayerConfig{Type: PlayerFfplay}
	p.SetDefaults()
	assert.Equal(t, PlayerFfplay, p.Type, "configured type must be kept")

	var empty PlayerConfig
	empty.SetDefaults()
	assert.NotEmpty(t, empty.Type)
}
