package playback

// Intent tells the driver which track to play after the current one ends.
type Intent int

const (
	IntentAdvance  Intent = iota // Next track in order
	IntentReplay                 // Same track again
	IntentPrevious               // Previous track, or the first one
)

// Next returns the index to play after index.
func (i Intent) Next(index int) int {
	switch i {
	case IntentReplay:
		return index
	case IntentPrevious:
		return max(0, index-1)
	default:
		return index + 1
	}
}

// String returns the string representation of the intent.
func (i Intent) String() string {
	switch i {
	case IntentAdvance:
		return "advance"
	case IntentReplay:
		return "replay"
	case IntentPrevious:
		return "previous"
	default:
		return "unknown"
	}
}
