package playback

// EventType represents a playback event type.
type EventType int

const (
	EventTrackStarted EventType = iota // Player process spawned and announced
	EventTrackEnded                    // Player process exited
	EventStateChanged                  // Playback paused or resumed
)

// String returns the string representation of the event type.
func (e EventType) String() string {
	switch e {
	case EventTrackStarted:
		return "track_started"
	case EventTrackEnded:
		return "track_ended"
	case EventStateChanged:
		return "state_changed"
	default:
		return "unknown"
	}
}

// Event represents a playback event.
type Event struct {
	Type   EventType
	Index  int    // Playlist index of the track
	Name   string // Track name
	State  State  // Playback state after the event
	Intent Intent // Set on EventTrackEnded
}
