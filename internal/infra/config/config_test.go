package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/relaxbox/internal/domain/track"
)

// clearEnv unsets the environment overrides for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"RELAXBOX_PLAYER", "MPD_HOST", "MPD_PASSWORD"} {
		t.Setenv(key, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	clearEnv(t)

	cfg, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "Relaxing Music", cfg.UI.Title)
	assert.Equal(t, 10, cfg.UI.SeekStepSec)
	assert.False(t, cfg.UI.Inline)
	assert.Equal(t, PlayerSimulated, cfg.Player.Type)

	p, err := cfg.Playlist()
	require.NoError(t, err)
	assert.Equal(t, 5, p.Len())
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid config",
			config: Config{
				UI:     UIConfig{Title: "Calm", SeekStepSec: 15},
				Player: PlayerConfig{Type: PlayerMPD},
			},
			wantErr: false,
		},
		{
			name: "unknown player type",
			config: Config{
				UI:     UIConfig{SeekStepSec: 10},
				Player: PlayerConfig{Type: "vlc"},
			},
			wantErr: true,
			errMsg:  "Type",
		},
		{
			name: "seek step too small",
			config: Config{
				UI:     UIConfig{SeekStepSec: 0},
				Player: PlayerConfig{Type: PlayerSimulated},
			},
			wantErr: true,
			errMsg:  "SeekStepSec",
		},
		{
			name: "catalog entry without url",
			config: Config{
				UI:      UIConfig{SeekStepSec: 10},
				Player:  PlayerConfig{Type: PlayerSimulated},
				Catalog: []track.Track{{Title: "no url"}},
			},
			wantErr: true,
			errMsg:  "URL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()

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

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "relaxbox.yaml", `
ui:
  title: Evening
  seek_step_sec: 30
player:
  type: mpd
  settings:
    addr: localhost:6601
    poll_interval_ms: 250
catalog:
  - title: Rain
    artist: Clouds
    duration: "12:00"
    url: http://radio.example.com/rain.mp3
    category: Nature
  - title: Waves
    duration: "1:00:00"
    url: http://radio.example.com/waves.mp3
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Evening", cfg.UI.Title)
	assert.Equal(t, 30, cfg.UI.SeekStepSec)
	assert.Equal(t, PlayerMPD, cfg.Player.Type)
	assert.Equal(t, "localhost:6601", cfg.Player.Settings["addr"])
	assert.Equal(t, 250, cfg.Player.Settings["poll_interval_ms"])

	p, err := cfg.Playlist()
	require.NoError(t, err)
	require.Equal(t, 2, p.Len())
	assert.Equal(t, "Rain", p.First().Title)
	assert.Equal(t, "Clouds", p.First().Artist)
}

func TestLoad_TOML(t *testing.T) {
	clearEnv(t)

	path := writeFile(t, "relaxbox.toml", `
[ui]
title = "Night"

[player]
type = "simulated"

[player.settings]
tick_ms = 200

[[catalog]]
title = "Forest"
duration = "5:00"
url = "file:///music/forest.ogg"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "Night", cfg.UI.Title)
	assert.Equal(t, 10, cfg.UI.SeekStepSec, "default applied")
	assert.Equal(t, PlayerSimulated, cfg.Player.Type)
	assert.EqualValues(t, 200, cfg.Player.Settings["tick_ms"])
	require.Len(t, cfg.Catalog, 1)
	assert.Equal(t, "Forest", cfg.Catalog[0].Title)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "ui: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.toml", "ui = "))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "invalid.yaml", "player:\n  type: winamp\n"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("RELAXBOX_PLAYER", "mpd")
	t.Setenv("MPD_HOST", "music.local:6600")
	t.Setenv("MPD_PASSWORD", "secret")

	cfg, err := Load(writeFile(t, "relaxbox.yaml", "player:\n  type: simulated\n"))
	require.NoError(t, err)

	assert.Equal(t, PlayerMPD, cfg.Player.Type)
	assert.Equal(t, "music.local:6600", cfg.Player.Settings["addr"])
	assert.Equal(t, "secret", cfg.Player.Settings["password"])
}

func TestConfig_Playlist_DuplicateTitles(t *testing.T) {
	cfg := &Config{
		Catalog: []track.Track{
			{Title: "same", URL: "u1"},
			{Title: "same", URL: "u2"},
		},
	}

	_, err := cfg.Playlist()
	assert.Error(t, err)
}
