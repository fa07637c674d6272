package playback

// CommandType represents an instruction for the player widget.
type CommandType int

const (
	CommandLoad     CommandType = iota // Replace the widget source
	CommandPlay                        // Start or resume playback
	CommandPause                       // Pause playback
	CommandSetMuted                    // Mute or unmute
	CommandSeek                        // Jump to an absolute position
)

// String returns the string representation of the command type.
func (c CommandType) String() string {
	switch c {
	case CommandLoad:
		return "load"
	case CommandPlay:
		return "play"
	case CommandPause:
		return "pause"
	case CommandSetMuted:
		return "set_muted"
	case CommandSeek:
		return "seek"
	default:
		return "unknown"
	}
}

// Command is an instruction produced by Reduce for the player widget.
type Command struct {
	Type    CommandType
	URL     string  // CommandLoad
	Muted   bool    // CommandSetMuted
	Seconds float64 // CommandSeek
}
