package playback

import (
	"math"

	"github.com/osa030/relaxbox/internal/domain/track"
)

// Snapshot is the playback state at a point in time.
type Snapshot struct {
	Current         track.Track // Selected track, always a playlist entry
	Playing         bool        // Playback intent, not widget ground truth
	Muted           bool
	PlayedSeconds   float64 // Last elapsed time reported by the widget
	DurationSeconds float64 // Last duration reported by the widget, 0 until resolved
}

// InitialSnapshot returns the state for a freshly loaded track: paused,
// unmuted, nothing reported yet.
func InitialSnapshot(first track.Track) Snapshot {
	return Snapshot{Current: first}
}

// State returns the playback intent as a State.
func (s Snapshot) State() State {
	if s.Playing {
		return StatePlaying
	}
	return StatePaused
}

// IsCurrent reports whether t is the selected track.
func (s Snapshot) IsCurrent(t track.Track) bool {
	return s.Current.Is(t)
}

// Progress returns PlayedSeconds as a fraction of DurationSeconds in [0, 1].
// It is 0 while the duration is unknown.
func (s Snapshot) Progress() float64 {
	if s.DurationSeconds <= 0 {
		return 0
	}
	return clamp(s.PlayedSeconds/s.DurationSeconds, 0, 1)
}

// TimeLabel returns "elapsed / total".
func (s Snapshot) TimeLabel() string {
	return FormatTime(s.PlayedSeconds) + " / " + FormatTime(s.DurationSeconds)
}

// Reduce applies an event to a snapshot and returns the next snapshot together
// with the commands the player widget must execute. It has no side effects.
func Reduce(s Snapshot, e Event) (Snapshot, []Command) {
	switch e.Type {
	case EventTrackSelected:
		var cmds []Command
		if !s.Current.Is(e.Track) {
			// The new source has not reported anything yet.
			s.PlayedSeconds = 0
			s.DurationSeconds = 0
			cmds = append(cmds, Command{Type: CommandLoad, URL: e.Track.URL})
		}
		s.Current = e.Track
		s.Playing = true
		cmds = append(cmds, Command{Type: CommandPlay})
		return s, cmds

	case EventUserToggled:
		s.Playing = !s.Playing
		if s.Playing {
			return s, []Command{{Type: CommandPlay}}
		}
		return s, []Command{{Type: CommandPause}}

	case EventMuteToggled:
		s.Muted = !s.Muted
		return s, []Command{{Type: CommandSetMuted, Muted: s.Muted}}

	case EventWidgetStarted:
		s.Playing = true
		return s, nil

	case EventWidgetPaused:
		s.Playing = false
		return s, nil

	case EventProgressTick:
		s.PlayedSeconds = e.Seconds
		return s, nil

	case EventDurationResolved:
		s.DurationSeconds = e.Seconds
		return s, nil

	case EventSeekRequested:
		// PlayedSeconds is left alone; the next progress tick reports the new position.
		target := clamp(e.Seconds, 0, s.DurationSeconds)
		return s, []Command{{Type: CommandSeek, Seconds: target}}

	default:
		return s, nil
	}
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) || v < lo {
		return lo
	}
	if hi < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
