// Package simulated provides a clock-driven player that stands in for a real
// media backend. Sources resolve their duration from the catalog after a
// delay and then advance in real time while playing.
package simulated

import (
	"context"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/relaxbox/internal/app/playback"
	"github.com/osa030/relaxbox/internal/domain/playlist"
	"github.com/osa030/relaxbox/internal/domain/track"
)

// ErrNoSource is returned when playback is requested before a source is loaded.
var ErrNoSource = errors.New("no source loaded")

// Config represents simulated player settings.
type Config struct {
	TickMs         int `yaml:"tick_ms" mapstructure:"tick_ms" default:"1000" validate:"gte=10,lte=60000"`
	ResolveDelayMs int `yaml:"resolve_delay_ms" mapstructure:"resolve_delay_ms" default:"1500" validate:"gte=0,lte=600000"`
}

// Option configures a Player.
type Option func(*Player)

// WithClock replaces the wall clock. Used by tests.
func WithClock(now func() time.Time) Option {
	return func(p *Player) {
		p.now = now
	}
}

// Player is a simulated media player.
type Player struct {
	// emitMu is held from reading state until its callbacks return, so Load
	// cannot land between the two.
	emitMu sync.Mutex
	mu     sync.Mutex
	cfg Config
	now func() time.Time

	durations map[string]float64 // Source URL -> length in seconds

	url      string
	loadedAt time.Time
	lastTick time.Time
	resolved bool
	duration float64
	position float64
	playing  bool
	muted    bool
	reported bool // Last playing state reported through callbacks
}

// NewFromSettings decodes settings and creates a Player for the playlist's sources.
func NewFromSettings(settings map[string]any, pl *playlist.Playlist, opts ...Option) (*Player, error) {
	var cfg Config
	if err := mapstructure.Decode(settings, &cfg); err != nil {
		return nil, errors.Wrap(err, "failed to decode settings")
	}
	if err := defaults.Set(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to set defaults")
	}
	zlog.Debug().Msgf("simulated player config: %+v", cfg)
	if err := validator.New().Struct(cfg); err != nil {
		return nil, errors.Wrap(err, "validation failed")
	}
	return New(cfg, pl, opts...), nil
}

// New creates a Player. Sources whose display duration cannot be parsed never resolve.
func New(cfg Config, pl *playlist.Playlist, opts ...Option) *Player {
	p := &Player{
		cfg:       cfg,
		now:       time.Now,
		durations: make(map[string]float64, pl.Len()),
	}
	for _, opt := range opts {
		opt(p)
	}

	for _, t := range pl.Tracks() {
		d, err := track.ParseDisplayDuration(t.Duration)
		if err != nil {
			zlog.Warn().Msgf("simulated player: track %q has no usable duration: %v", t.Title, err)
			continue
		}
		p.durations[t.URL] = d.Seconds()
	}
	return p
}

// Load implements playback.Widget.
func (p *Player) Load(ctx context.Context, url string) error {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.url = url
	p.loadedAt = now
	p.lastTick = now
	p.resolved = false
	p.duration = 0
	p.position = 0
	return nil
}

// SetPlaying implements playback.Widget.
func (p *Player) SetPlaying(ctx context.Context, playing bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.url == "" {
		return ErrNoSource
	}
	now := p.now()
	if p.playing && p.resolved {
		p.position = min(p.position+now.Sub(p.lastTick).Seconds(), p.duration)
	}
	p.lastTick = now

	if playing && p.resolved && p.position >= p.duration {
		// Replay from the start after reaching the end.
		p.position = 0
	}
	p.playing = playing
	return nil
}

// SetMuted implements playback.Widget.
func (p *Player) SetMuted(ctx context.Context, muted bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = muted
	return nil
}

// SeekTo implements playback.Widget.
func (p *Player) SeekTo(ctx context.Context, seconds float64) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.resolved {
		return nil
	}
	if seconds < 0 {
		seconds = 0
	}
	if seconds > p.duration {
		seconds = p.duration
	}
	p.position = seconds
	return nil
}

// Muted reports the mute flag.
func (p *Player) Muted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.muted
}

// Run implements playback.Runner. It steps the simulation every tick.
func (p *Player) Run(ctx context.Context, cb playback.Callbacks) error {
	ticker := time.NewTicker(time.Duration(p.cfg.TickMs) * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			p.Step(cb)
		}
	}
}

// Step advances the simulation to the current clock time and reports changes.
func (p *Player) Step(cb playback.Callbacks) {
	p.emitMu.Lock()
	defer p.emitMu.Unlock()

	var events []func()

	p.mu.Lock()
	now := p.now()
	elapsed := now.Sub(p.lastTick).Seconds()
	p.lastTick = now

	if p.url != "" && !p.resolved {
		if d, ok := p.durations[p.url]; ok && now.Sub(p.loadedAt) >= p.resolveDelay() {
			p.resolved = true
			p.duration = d
			events = append(events, func() { cb.OnDuration(d) })
			// Playback starts once the source is ready.
			elapsed = 0
		}
	}

	// Unresolved sources never start.
	active := p.playing && p.resolved
	if active {
		p.position += elapsed
		if p.position >= p.duration {
			p.position = p.duration
			p.playing = false
			active = false
		}
	}
	// A playing source that is still resolving is buffering, not paused.
	buffering := p.playing && !p.resolved
	if !buffering && active != p.reported {
		if active {
			events = append(events, cb.OnStarted)
		} else {
			events = append(events, cb.OnPaused)
		}
		p.reported = active
	}
	if p.resolved {
		position := p.position
		events = append(events, func() { cb.OnProgress(position) })
	}
	p.mu.Unlock()

	for _, emit := range events {
		emit()
	}
}

func (p *Player) resolveDelay() time.Duration {
	return time.Duration(p.cfg.ResolveDelayMs) * time.Millisecond
}

// Close implements io.Closer.
func (p *Player) Close() error {
	return nil
}
