// Package playlist provides the Playlist domain entity.
package playlist

import "github.com/stoned-ape/shuffleplay/internal/domain/track"

// Playlist represents the ordered tracks of one library directory.
type Playlist struct {
	Dir    string        // Library directory
	Tracks []track.Track // Tracks in play order
}

// New creates a playlist for dir.
func New(dir string, tracks []track.Track) *Playlist {
	return &Playlist{
		Dir:    dir,
		Tracks: tracks,
	}
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.Tracks)
}

// At returns the track at index i.
// Returns false if i is out of range.
func (p *Playlist) At(i int) (track.Track, bool) {
	if i < 0 || i >= len(p.Tracks) {
		return track.Track{}, false
	}
	return p.Tracks[i], true
}

// Swap exchanges the tracks at i and j.
func (p *Playlist) Swap(i, j int) {
	p.Tracks[i], p.Tracks[j] = p.Tracks[j], p.Tracks[i]
}

// Names returns all track names in play order.
func (p *Playlist) Names() []string {
	names := make([]string, len(p.Tracks))
	for i, t := range p.Tracks {
		names[i] = t.Name
	}
	return names
}
