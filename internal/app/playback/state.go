// Package playback coordinates the external player process between the
// playback driver and the command listener.
package playback

// State represents the playback state.
type State int

const (
	StateIdle     State = iota // No track started yet
	StatePlaying               // Track is playing
	StatePaused                // Track is suspended
	StateEnded                 // Track was terminated by a command
	StateFinished              // Track process exited on its own
)

// String returns the string representation of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePlaying:
		return "playing"
	case StatePaused:
		return "paused"
	case StateEnded:
		return "ended"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}
