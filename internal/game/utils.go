package game

import (
	"fmt"
	"time"
)

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// FormatClock formats whole seconds as MM:SS. Minutes are not wrapped into
// hours, so 90 minutes reads 90:00.
func FormatClock(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}

// formatDuration formats a duration as MM:SS
func formatDuration(d time.Duration) string {
	return FormatClock(int(d / time.Second))
}
