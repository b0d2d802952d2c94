// Package common provides the relative-time formatting shared by the refresher,
// the CLI and the server.
package common

import (
	"fmt"
	"time"
)

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
	daysPerMonth     = 30
	monthsPerYear    = 12
)

// FormatAge returns a human-readable age string for a timestamp relative to
// the current time.
func FormatAge(t time.Time) string {
	return FormatRelative(t, time.Now())
}

// FormatRelative returns how long before now the instant occurred.
// Examples: "just now", "42 seconds ago", "3 mins ago", "yesterday", "2 years ago"
func FormatRelative(instant, now time.Time) string {
	return FormatElapsed(ElapsedSeconds(instant, now))
}

// ElapsedSeconds returns floor(now - instant) in whole seconds, clamped to 0.
// It avoids time.Duration so instants centuries apart do not saturate.
func ElapsedSeconds(instant, now time.Time) int64 {
	secs := now.Unix() - instant.Unix()
	if now.Nanosecond() < instant.Nanosecond() {
		secs--
	}
	if secs < 0 {
		return 0
	}
	return secs
}

// FormatElapsed buckets a number of elapsed seconds.
// Months are 30 days and years 12 months.
func FormatElapsed(s int64) string {
	if s < 10 {
		return "just now"
	}
	if s < secondsPerMinute {
		return ago(s, "second")
	}
	if s < secondsPerHour {
		return ago(s/secondsPerMinute, "min")
	}
	if s < secondsPerDay {
		return ago(s/secondsPerHour, "hour")
	}

	days := s / secondsPerDay
	if days == 1 {
		return "yesterday"
	}
	if days < daysPerMonth {
		return ago(days, "day")
	}

	months := days / daysPerMonth
	if months < monthsPerYear {
		return ago(months, "month")
	}
	return ago(months/monthsPerYear, "year")
}

func ago(n int64, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s ago", n, unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
