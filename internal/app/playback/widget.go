package playback

import "context"

// Widget is the external player the controller drives.
// Decoding and streaming happen behind this interface.
type Widget interface {
	// Load replaces the media source. The widget keeps its current play/pause state.
	// Callbacks about the previous source are delivered before Load returns.
	Load(ctx context.Context, url string) error
	// SetPlaying starts or pauses playback.
	SetPlaying(ctx context.Context, playing bool) error
	// SetMuted mutes or unmutes the output.
	SetMuted(ctx context.Context, muted bool) error
	// SeekTo jumps playback to an absolute offset in seconds.
	SeekTo(ctx context.Context, seconds float64) error
}

// Callbacks receives widget-originated notifications.
// Widgets call these from their own goroutines at their own pace.
type Callbacks interface {
	OnStarted()
	OnPaused()
	OnProgress(elapsedSeconds float64)
	OnDuration(totalSeconds float64)
}

// Runner is implemented by widgets that report playback changes.
// Run blocks until ctx is done or the widget fails.
type Runner interface {
	Run(ctx context.Context, cb Callbacks) error
}
