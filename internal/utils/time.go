package utils

import (
	"fmt"
	"time"
)

const displayFormat = "2006-01-02 15:04:05"

// FormatTimestamp renders a timestamp for table display.
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return t.Format(displayFormat)
}

// FormatDurationSeconds renders a duration like "3m 12s".
func FormatDurationSeconds(seconds float64) string {
	if seconds <= 0 {
		return "N/A"
	}

	total := int(seconds)
	minutes := total / 60
	secs := total % 60
	if minutes > 0 {
		return fmt.Sprintf("%dm %ds", minutes, secs)
	}
	return fmt.Sprintf("%ds", secs)
}
