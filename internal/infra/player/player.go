// Package player creates the playback widget selected by configuration.
package player

import (
	"io"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/relaxbox/internal/app/playback"
	"github.com/osa030/relaxbox/internal/domain/playlist"
	"github.com/osa030/relaxbox/internal/infra/config"
	"github.com/osa030/relaxbox/internal/infra/player/mpd"
	"github.com/osa030/relaxbox/internal/infra/player/simulated"
)

// Widget is a playback widget that reports changes and holds resources.
type Widget interface {
	playback.Widget
	playback.Runner
	io.Closer
}

// New creates the widget for cfg.
func New(cfg config.PlayerConfig, pl *playlist.Playlist) (Widget, error) {
	zlog.Debug().Msgf("creating player: type=%s settings=%+v", cfg.Type, redact(cfg.Settings))

	switch cfg.Type {
	case config.PlayerMPD:
		mcfg, err := mpd.ParseSettings(cfg.Settings)
		if err != nil {
			return nil, errors.Wrap(err, "invalid mpd settings")
		}
		w, err := mpd.Dial(mcfg)
		if err != nil {
			return nil, err
		}
		return w, nil

	case config.PlayerSimulated:
		w, err := simulated.NewFromSettings(cfg.Settings, pl)
		if err != nil {
			return nil, errors.Wrap(err, "invalid simulated player settings")
		}
		return w, nil

	default:
		return nil, errors.Newf("unsupported player type: %s", cfg.Type)
	}
}

// redact hides secrets before settings are logged.
func redact(settings map[string]any) map[string]any {
	result := make(map[string]any, len(settings))
	for k, v := range settings {
		if k == "password" {
			v = "***"
		}
		result[k] = v
	}
	return result
}
