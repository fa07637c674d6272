// Package track provides the Track domain entity.
package track

import (
	"strconv"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
)

// Track represents a static catalog entry describing one playable media item.
type Track struct {
	Title    string `yaml:"title" toml:"title" validate:"required"` // Track title (identity key)
	Artist   string `yaml:"artist" toml:"artist"`                   // Artist name
	Duration string `yaml:"duration" toml:"duration"`               // Display duration, e.g. "3:05:48"
	URL      string `yaml:"url" toml:"url" validate:"required"`     // Playable media URI
	Category string `yaml:"category" toml:"category"`               // Category label
	Cover    string `yaml:"cover" toml:"cover"`                     // Cover image URI
}

// Key returns the identity key of the track.
// Titles identify tracks within a catalog.
func (t Track) Key() string {
	return t.Title
}

// Is reports whether t and other share the same identity key.
func (t Track) Is(other Track) bool {
	return t.Key() == other.Key()
}

// ParseDisplayDuration parses a display duration in "M:SS" or "H:MM:SS" form.
func ParseDisplayDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("empty duration")
	}

	parts := strings.Split(s, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, errors.Newf("invalid duration %q: expected M:SS or H:MM:SS", s)
	}

	values := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 {
			return 0, errors.Newf("invalid duration %q: bad component %q", s, p)
		}
		// Every component after the leading one is a two-digit field below 60.
		if i > 0 && (len(p) != 2 || v >= 60) {
			return 0, errors.Newf("invalid duration %q: component %q out of range", s, p)
		}
		values[i] = v
	}

	var total int
	for _, v := range values {
		total = total*60 + v
	}
	return time.Duration(total) * time.Second, nil
}
