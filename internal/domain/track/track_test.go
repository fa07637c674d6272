package track

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrack_Key(t *testing.T) {
	a := Track{Title: "Beautiful Meditation Music", Artist: "Peder B. Helland"}
	b := Track{Title: "Beautiful Meditation Music", Artist: "Someone Else"}
	c := Track{Title: "Krishna Flute Music", Artist: "Peder B. Helland"}

	assert.Equal(t, "Beautiful Meditation Music", a.Key())
	assert.True(t, a.Is(b))
	assert.False(t, a.Is(c))
}

func TestParseDisplayDuration(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected time.Duration
		wantErr  bool
	}{
		{
			name:     "minutes and seconds",
			input:    "58:41",
			expected: 58*time.Minute + 41*time.Second,
		},
		{
			name:     "hours minutes seconds",
			input:    "3:05:48",
			expected: 11148 * time.Second,
		},
		{
			name:     "one hour",
			input:    "1:00:05",
			expected: time.Hour + 5*time.Second,
		},
		{
			name:     "zero",
			input:    "0:00",
			expected: 0,
		},
		{
			name:     "surrounding whitespace",
			input:    " 37:54 ",
			expected: 37*time.Minute + 54*time.Second,
		},
		{
			name:    "empty",
			input:   "",
			wantErr: true,
		},
		{
			name:    "no separator",
			input:   "3600",
			wantErr: true,
		},
		{
			name:    "too many components",
			input:   "1:2:03:04",
			wantErr: true,
		},
		{
			name:    "seconds out of range",
			input:   "1:75",
			wantErr: true,
		},
		{
			name:    "single digit seconds",
			input:   "1:5",
			wantErr: true,
		},
		{
			name:    "not a number",
			input:   "a:00",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ParseDisplayDuration(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}
