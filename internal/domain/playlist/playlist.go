// Package playlist provides the Playlist domain entity: the fixed, ordered
// catalog of tracks the player offers.
package playlist

import (
	"github.com/cockroachdb/errors"

	"github.com/osa030/relaxbox/internal/domain/track"
)

// Errors
var (
	ErrEmpty          = errors.New("playlist is empty")
	ErrDuplicateTitle = errors.New("duplicate track title")
	ErrMissingTitle   = errors.New("track title is empty")
)

// Playlist is an immutable ordered list of tracks.
type Playlist struct {
	tracks []track.Track
	index  map[string]int // Track key -> position
}

// New creates a playlist from tracks. The slice is copied.
func New(tracks []track.Track) (*Playlist, error) {
	if len(tracks) == 0 {
		return nil, ErrEmpty
	}

	p := &Playlist{
		tracks: make([]track.Track, len(tracks)),
		index:  make(map[string]int, len(tracks)),
	}
	copy(p.tracks, tracks)

	for i, t := range p.tracks {
		if t.Key() == "" {
			return nil, errors.Wrapf(ErrMissingTitle, "track %d", i)
		}
		if prev, ok := p.index[t.Key()]; ok {
			return nil, errors.Wrapf(ErrDuplicateTitle, "%q at positions %d and %d", t.Key(), prev, i)
		}
		p.index[t.Key()] = i
	}

	return p, nil
}

// MustNew is like New but panics on error. Intended for static catalogs.
func MustNew(tracks []track.Track) *Playlist {
	p, err := New(tracks)
	if err != nil {
		panic(err)
	}
	return p
}

// Tracks returns a copy of the tracks in declaration order.
func (p *Playlist) Tracks() []track.Track {
	result := make([]track.Track, len(p.tracks))
	copy(result, p.tracks)
	return result
}

// Len returns the number of tracks.
func (p *Playlist) Len() int {
	return len(p.tracks)
}

// At returns the track at position i.
func (p *Playlist) At(i int) (track.Track, bool) {
	if i < 0 || i >= len(p.tracks) {
		return track.Track{}, false
	}
	return p.tracks[i], true
}

// First returns the first track.
func (p *Playlist) First() track.Track {
	return p.tracks[0]
}

// IndexOf returns the position of the track with the given key.
func (p *Playlist) IndexOf(key string) (int, bool) {
	i, ok := p.index[key]
	return i, ok
}

// Categories returns the distinct categories in first-appearance order.
func (p *Playlist) Categories() []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)
	for _, t := range p.tracks {
		if t.Category == "" || seen[t.Category] {
			continue
		}
		seen[t.Category] = true
		categories = append(categories, t.Category)
	}
	return categories
}
