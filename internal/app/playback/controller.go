package playback

import (
	"context"
	"sync"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/osa030/relaxbox/internal/app/notification"
	"github.com/osa030/relaxbox/internal/domain/playlist"
	"github.com/osa030/relaxbox/internal/domain/track"
)

// Errors
var (
	ErrTrackNotFound   = errors.New("track not in playlist")
	ErrIndexOutOfRange = errors.New("track index out of range")
	ErrClosed          = errors.New("controller closed")

	errSourceLoading = errors.New("source is loading")
)

// Option configures a Controller.
type Option func(*Controller)

// WithNotificationBuffer sets the per-subscriber snapshot buffer size.
func WithNotificationBuffer(size int) Option {
	return func(c *Controller) {
		c.notifier = notification.NewManager[Snapshot](size)
	}
}

// Controller owns the playback state for one playlist and keeps the widget
// in line with it.
type Controller struct {
	mu       sync.RWMutex
	snapshot Snapshot
	closed   bool
	loading  bool // A Load is in flight; widget events still describe the old source

	// cmdMu serializes user operations so widget commands run in event order.
	cmdMu sync.Mutex

	playlist *playlist.Playlist
	widget   Widget
	notifier *notification.Manager[Snapshot]
}

// NewController creates a controller with the first playlist entry selected and paused.
func NewController(pl *playlist.Playlist, w Widget, opts ...Option) *Controller {
	c := &Controller{
		snapshot: InitialSnapshot(pl.First()),
		playlist: pl,
		widget:   w,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.notifier == nil {
		c.notifier = notification.NewManager[Snapshot](notification.DefaultBufferSize)
	}
	return c
}

// Open loads the current track into the widget without starting playback.
func (c *Controller) Open(ctx context.Context) error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	c.mu.Lock()
	s, closed := c.snapshot, c.closed
	if !closed {
		c.loading = true
	}
	c.mu.Unlock()
	if closed {
		return ErrClosed
	}

	c.execute(ctx, []Command{
		{Type: CommandLoad, URL: s.Current.URL},
		{Type: CommandSetMuted, Muted: s.Muted},
	})
	return nil
}

// Playlist returns the playlist the controller plays from.
func (c *Controller) Playlist() *playlist.Playlist {
	return c.playlist
}

// Snapshot returns the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// Subscribe returns a subscription ID and a channel of state snapshots.
func (c *Controller) Subscribe() (string, <-chan notification.Notification[Snapshot]) {
	return c.notifier.Subscribe()
}

// Unsubscribe removes a subscription.
func (c *Controller) Unsubscribe(id string) {
	c.notifier.Unsubscribe(id)
}

// SelectTrack makes t the current track and starts playback,
// even when t is already current.
func (c *Controller) SelectTrack(ctx context.Context, t track.Track) error {
	i, ok := c.playlist.IndexOf(t.Key())
	if !ok {
		return errors.Wrapf(ErrTrackNotFound, "%q", t.Key())
	}
	return c.SelectIndex(ctx, i)
}

// SelectIndex selects the track at playlist position i.
func (c *Controller) SelectIndex(ctx context.Context, i int) error {
	t, ok := c.playlist.At(i)
	if !ok {
		return errors.Wrapf(ErrIndexOutOfRange, "index %d (playlist has %d tracks)", i, c.playlist.Len())
	}
	return c.dispatch(ctx, TrackSelected(t))
}

// TogglePlayPause flips the playback intent.
func (c *Controller) TogglePlayPause(ctx context.Context) error {
	return c.dispatch(ctx, UserToggled())
}

// ToggleMute flips the mute flag.
func (c *Controller) ToggleMute(ctx context.Context) error {
	return c.dispatch(ctx, MuteToggled())
}

// Seek asks the widget to jump to targetSeconds, clamped to [0, duration].
func (c *Controller) Seek(ctx context.Context, targetSeconds float64) error {
	return c.dispatch(ctx, SeekRequested(targetSeconds))
}

// SeekBy seeks relative to the last reported position.
func (c *Controller) SeekBy(ctx context.Context, deltaSeconds float64) error {
	return c.Seek(ctx, c.Snapshot().PlayedSeconds+deltaSeconds)
}

// OnStarted implements Callbacks.
func (c *Controller) OnStarted() {
	c.apply(WidgetStarted())
}

// OnPaused implements Callbacks.
func (c *Controller) OnPaused() {
	c.apply(WidgetPaused())
}

// OnProgress implements Callbacks.
func (c *Controller) OnProgress(elapsedSeconds float64) {
	c.apply(ProgressTick(elapsedSeconds))
}

// OnDuration implements Callbacks.
func (c *Controller) OnDuration(totalSeconds float64) {
	c.apply(DurationResolved(totalSeconds))
}

// Close stops notifications. Later operations return ErrClosed.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.notifier.Close()
}

// dispatch applies a user event and runs the resulting widget commands.
func (c *Controller) dispatch(ctx context.Context, e Event) error {
	c.cmdMu.Lock()
	defer c.cmdMu.Unlock()

	cmds, err := c.reduce(e)
	if err != nil {
		return err
	}
	c.execute(ctx, cmds)
	return nil
}

// apply applies a widget event. Widget events never produce commands.
func (c *Controller) apply(e Event) {
	if _, err := c.reduce(e); err != nil {
		zlog.Debug().Msgf("playback: dropping %s: %v", e.Type, err)
	}
}

// reduce runs the reducer under the state lock and broadcasts changes.
func (c *Controller) reduce(e Event) ([]Command, error) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil, ErrClosed
	}
	if c.loading && e.IsWidgetEvent() {
		c.mu.Unlock()
		return nil, errSourceLoading
	}
	prev := c.snapshot
	next, cmds := Reduce(prev, e)
	c.snapshot = next
	for _, cmd := range cmds {
		if cmd.Type == CommandLoad {
			c.loading = true
		}
	}
	// Broadcast under the lock so subscribers see snapshots in reduce order.
	if next != prev {
		c.notifier.Broadcast(next)
	}
	c.mu.Unlock()

	if !e.IsWidgetEvent() {
		zlog.Debug().Msgf("playback: %s: track=%q state=%s muted=%t commands=%d",
			e.Type, next.Current.Title, next.State(), next.Muted, len(cmds))
	}
	return cmds, nil
}

// execute runs widget commands in order. Widget failures are logged only;
// a failing source simply does not progress.
func (c *Controller) execute(ctx context.Context, cmds []Command) {
	for _, cmd := range cmds {
		var err error
		switch cmd.Type {
		case CommandLoad:
			err = c.widget.Load(ctx, cmd.URL)
			c.mu.Lock()
			c.loading = false
			c.mu.Unlock()
		case CommandPlay:
			err = c.widget.SetPlaying(ctx, true)
		case CommandPause:
			err = c.widget.SetPlaying(ctx, false)
		case CommandSetMuted:
			err = c.widget.SetMuted(ctx, cmd.Muted)
		case CommandSeek:
			err = c.widget.SeekTo(ctx, cmd.Seconds)
		}
		if err != nil {
			zlog.Warn().Err(err).Msgf("playback: widget command %s failed", cmd.Type)
		}
	}
}
