package helpers

import (
	"fmt"
	"time"
)

func IntMillisecondDefault(x int, def time.Duration) time.Duration {
	if x == 0 {
		return def
	}
	return time.Duration(x) * time.Millisecond
}

// FormatHMS renders a duration in seconds as HH:MM:SS with 99:59:59 cap,
// suitable for a fixed-width status line.
func FormatHMS(seconds uint32) string {
	const max = 99*3600 + 59*60 + 59
	if seconds > max {
		seconds = max
	}
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
