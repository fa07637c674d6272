// Package mpd drives a Music Player Daemon as the playback widget.
//
// The daemon owns decoding and streaming. This package loads one source at a
// time into MPD's queue, forwards play/pause/seek/volume commands, and polls
// the daemon status to report playback changes back to the controller.
package mpd

import (
	"context"
	"math"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	m "github.com/fhs/gompd/mpd"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/relaxbox/internal/app/playback"
)

// ErrNoMixer is returned when MPD reports no volume control.
var ErrNoMixer = errors.New("mpd has no mixer, cannot mute")

// MPD player states as reported in the "state" status attribute.
const (
	statePlay  = "play"
	statePause = "pause"
	stateStop  = "stop"
)

// Config represents MPD connection settings.
type Config struct {
	Addr           string `yaml:"addr" mapstructure:"addr" default:"localhost:6600" validate:"required"`
	Password       string `yaml:"password" mapstructure:"password"`
	PollIntervalMs int    `yaml:"poll_interval_ms" mapstructure:"poll_interval_ms" default:"500" validate:"gte=100,lte=10000"`
	KeepaliveSec   int    `yaml:"keepalive_sec" mapstructure:"keepalive_sec" default:"30" validate:"gte=1,lte=3600"`
}

// client is the subset of *mpd.Client used by Player.
type client interface {
	Ping() error
	Status() (m.Attrs, error)
	Clear() error
	Add(uri string) error
	Play(pos int) error
	Pause(pause bool) error
	SetVolume(volume int) error
	Seek(pos, time int) error
	Close() error
}

// watcher delivers MPD idle events.
type watcher struct {
	events <-chan string
	errors <-chan error
	close  func() error
}

// Player is an MPD-backed playback widget.
type Player struct {
	// emitMu is held from reading status until its callbacks return, so Load
	// cannot land between the two.
	emitMu sync.Mutex
	mu     sync.Mutex
	cfg    Config
	client client

	// newWatcher opens an idle watcher; nil disables idle notifications.
	newWatcher func() (*watcher, error)

	playing     bool   // Last requested playback state
	savedVolume int    // Volume to restore on unmute
	lastState   string // Last observed MPD state
	songID      string // Song ID of the last observed song
	hasDuration bool   // Duration reported for songID
}

// ParseSettings decodes, defaults and validates MPD settings.
func ParseSettings(settings map[string]any) (Config, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&cfg); err != nil {
		return Config{}, errors.Wrap(err, "failed to set defaults")
	}
	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, errors.Wrap(err, "validation failed")
	}
	return cfg, nil
}

// Dial connects to MPD.
func Dial(cfg Config) (*Player, error) {
	var (
		c   *m.Client
		err error
	)
	if cfg.Password != "" {
		c, err = m.DialAuthenticated("tcp", cfg.Addr, cfg.Password)
	} else {
		c, err = m.Dial("tcp", cfg.Addr)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect to mpd at %s", cfg.Addr)
	}
	zlog.Info().Msgf("mpd: connected: addr=%s", cfg.Addr)

	p := newPlayer(cfg, c)
	p.newWatcher = func() (*watcher, error) {
		w, err := m.NewWatcher("tcp", cfg.Addr, cfg.Password, "player", "mixer")
		if err != nil {
			return nil, err
		}
		return &watcher{events: w.Event, errors: w.Error, close: w.Close}, nil
	}
	return p, nil
}

func newPlayer(cfg Config, c client) *Player {
	return &Player{
		cfg:         cfg,
		client:      c,
		savedVolume: 100,
	}
}

// Load implements playback.Widget. MPD's queue holds exactly the loaded source.
func (p *Player) Load(ctx context.Context, url string) error {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.client.Clear(); err != nil {
		return errors.Wrap(err, "mpd clear")
	}
	if err := p.client.Add(url); err != nil {
		return errors.Wrapf(err, "mpd add %s", url)
	}
	p.songID = ""
	p.hasDuration = false

	if p.playing {
		if err := p.client.Play(0); err != nil {
			return errors.Wrap(err, "mpd play")
		}
	}
	return nil
}

// SetPlaying implements playback.Widget.
func (p *Player) SetPlaying(ctx context.Context, playing bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.playing = playing
	if !playing {
		return errors.Wrap(p.client.Pause(true), "mpd pause")
	}

	status, err := p.client.Status()
	if err != nil {
		return errors.Wrap(err, "mpd status")
	}
	if status["state"] == stateStop {
		return errors.Wrap(p.client.Play(0), "mpd play")
	}
	return errors.Wrap(p.client.Pause(false), "mpd resume")
}

// SetMuted implements playback.Widget. MPD has no mute switch, so muting
// stores the current volume and sets it to zero.
func (p *Player) SetMuted(ctx context.Context, muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	status, err := p.client.Status()
	if err != nil {
		return errors.Wrap(err, "mpd status")
	}
	volume, err := strconv.Atoi(status["volume"])
	if err != nil || volume < 0 {
		return ErrNoMixer
	}

	if muted {
		if volume > 0 {
			p.savedVolume = volume
		}
		return errors.Wrap(p.client.SetVolume(0), "mpd mute")
	}
	if volume > 0 {
		// Volume was raised externally while muted; keep it.
		return nil
	}
	return errors.Wrap(p.client.SetVolume(p.savedVolume), "mpd unmute")
}

// SeekTo implements playback.Widget.
func (p *Player) SeekTo(ctx context.Context, seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	return errors.Wrap(p.client.Seek(0, int(math.Floor(seconds))), "mpd seek")
}

// Run implements playback.Runner. It polls MPD status at the configured
// interval, polls immediately on idle events, and pings to keep the
// connection open. Status errors are logged and polling continues.
func (p *Player) Run(ctx context.Context, cb playback.Callbacks) error {
	poll := time.NewTicker(time.Duration(p.cfg.PollIntervalMs) * time.Millisecond)
	defer poll.Stop()
	keepAlive := time.NewTicker(time.Duration(p.cfg.KeepaliveSec) * time.Second)
	defer keepAlive.Stop()

	var (
		events <-chan string
		errCh  <-chan error
	)
	if p.newWatcher != nil {
		w, err := p.newWatcher()
		if err != nil {
			zlog.Warn().Err(err).Msg("mpd: idle watcher unavailable, polling only")
		} else {
			events, errCh = w.events, w.errors
			defer func() { _ = w.close() }()
		}
	}

	p.Poll(cb)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-poll.C:
			p.Poll(cb)
		case subsystem, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			zlog.Debug().Msgf("mpd: idle event: %s", subsystem)
			p.Poll(cb)
		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			zlog.Warn().Err(err).Msg("mpd: watcher error")
		case <-keepAlive.C:
			p.mu.Lock()
			err := p.client.Ping()
			p.mu.Unlock()
			if err != nil {
				zlog.Warn().Err(err).Msg("mpd: ping failed")
			}
		}
	}
}

// Poll reads MPD status once and reports changes.
func (p *Player) Poll(cb playback.Callbacks) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	p.mu.Lock()
	status, err := p.client.Status()
	if err != nil {
		p.mu.Unlock()
		zlog.Warn().Err(err).Msg("mpd: status failed")
		return
	}
	events := p.observeLocked(status, cb)
	p.mu.Unlock()

	for _, emit := range events {
		emit()
	}
}

// observeLocked compares status with the previous observation and returns
// the callbacks to run. Must be called with lock held.
func (p *Player) observeLocked(status m.Attrs, cb playback.Callbacks) []func() {
	var events []func()

	state := status["state"]
	if state != p.lastState {
		switch {
		case state == statePlay:
			events = append(events, cb.OnStarted)
		case p.lastState == statePlay:
			events = append(events, cb.OnPaused)
		}
		p.lastState = state
	}

	songID := status["songid"]
	if songID != p.songID {
		p.songID = songID
		p.hasDuration = false
	}
	if songID == "" {
		return events
	}

	elapsed, total := parseTimes(status)
	if !p.hasDuration && total > 0 {
		p.hasDuration = true
		events = append(events, func() { cb.OnDuration(total) })
	}
	if state == statePlay || state == statePause {
		events = append(events, func() { cb.OnProgress(elapsed) })
	}
	return events
}

// parseTimes extracts elapsed and total seconds from a status. It prefers
// the "elapsed"/"duration" attributes and falls back to the legacy
// "time" attribute ("elapsed:total").
func parseTimes(status m.Attrs) (elapsed, total float64) {
	elapsed, _ = strconv.ParseFloat(status["elapsed"], 64)
	total, _ = strconv.ParseFloat(status["duration"], 64)

	if legacy, ok := status["time"]; ok {
		parts := strings.SplitN(legacy, ":", 2)
		if len(parts) == 2 {
			if elapsed == 0 {
				elapsed, _ = strconv.ParseFloat(parts[0], 64)
			}
			if total == 0 {
				total, _ = strconv.ParseFloat(parts[1], 64)
			}
		}
	}
	return elapsed, total
}

// Close closes the MPD connection.
func (p *Player) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.client.Close()
}
