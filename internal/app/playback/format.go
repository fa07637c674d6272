package playback

import (
	"fmt"
	"math"
)

// FormatTime renders seconds as "M:SS", or "H:MM:SS" once an hour is reached.
// Fractions are truncated. Negative and non-finite input is not supported.
func FormatTime(seconds float64) string {
	hrs := int(math.Floor(seconds / 3600))
	mins := int(math.Floor(math.Mod(seconds, 3600) / 60))
	secs := int(math.Floor(math.Mod(seconds, 60)))

	if hrs > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hrs, mins, secs)
	}
	return fmt.Sprintf("%d:%02d", mins, secs)
}
