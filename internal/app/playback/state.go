// Package playback provides the playback controller: the playback-intent
// state machine and its synchronization with an external player widget.
package playback

// State represents the playback intent.
type State int

const (
	StatePaused  State = iota // Playback not requested (initial state)
	StatePlaying              // Playback requested
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StatePaused:
		return "paused"
	case StatePlaying:
		return "playing"
	default:
		return "unknown"
	}
}
