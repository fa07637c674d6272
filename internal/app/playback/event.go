package playback

import "github.com/osa030/relaxbox/internal/domain/track"

// EventType represents a playback event type.
type EventType int

const (
	EventTrackSelected    EventType = iota // User selected a track
	EventUserToggled                       // User toggled play/pause
	EventMuteToggled                       // User toggled mute
	EventWidgetStarted                     // Widget reported playback started
	EventWidgetPaused                      // Widget reported playback paused
	EventProgressTick                      // Widget reported elapsed seconds
	EventDurationResolved                  // Widget reported total duration
	EventSeekRequested                     // User moved the position slider
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackSelected:
		return "track_selected"
	case EventUserToggled:
		return "user_toggled"
	case EventMuteToggled:
		return "mute_toggled"
	case EventWidgetStarted:
		return "widget_started"
	case EventWidgetPaused:
		return "widget_paused"
	case EventProgressTick:
		return "progress_tick"
	case EventDurationResolved:
		return "duration_resolved"
	case EventSeekRequested:
		return "seek_requested"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type    EventType
	Track   track.Track // Selected track (EventTrackSelected only)
	Seconds float64     // Position or duration (progress, duration and seek events)
}

// IsWidgetEvent reports whether the event originates from the player widget.
func (e Event) IsWidgetEvent() bool {
	switch e.Type {
	case EventWidgetStarted, EventWidgetPaused, EventProgressTick, EventDurationResolved:
		return true
	default:
		return false
	}
}

// TrackSelected returns an EventTrackSelected event.
func TrackSelected(t track.Track) Event {
	return Event{Type: EventTrackSelected, Track: t}
}

// UserToggled returns an EventUserToggled event.
func UserToggled() Event {
	return Event{Type: EventUserToggled}
}

// MuteToggled returns an EventMuteToggled event.
func MuteToggled() Event {
	return Event{Type: EventMuteToggled}
}

// WidgetStarted returns an EventWidgetStarted event.
func WidgetStarted() Event {
	return Event{Type: EventWidgetStarted}
}

// WidgetPaused returns an EventWidgetPaused event.
func WidgetPaused() Event {
	return Event{Type: EventWidgetPaused}
}

// ProgressTick returns an EventProgressTick event.
func ProgressTick(elapsedSeconds float64) Event {
	return Event{Type: EventProgressTick, Seconds: elapsedSeconds}
}

// DurationResolved returns an EventDurationResolved event.
func DurationResolved(totalSeconds float64) Event {
	return Event{Type: EventDurationResolved, Seconds: totalSeconds}
}

// SeekRequested returns an EventSeekRequested event.
func SeekRequested(targetSeconds float64) Event {
	return Event{Type: EventSeekRequested, Seconds: targetSeconds}
}
