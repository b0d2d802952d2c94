package common

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRelative(t *testing.T) {
	now := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		elapsed time.Duration
		want    string
	}{
		{"zero", 0, "just now"},
		{"nine seconds", 9 * time.Second, "just now"},
		{"ten seconds", 10 * time.Second, "10 seconds ago"},
		{"fifty nine seconds", 59 * time.Second, "59 seconds ago"},
		{"one minute", 60 * time.Second, "1 min ago"},
		{"two minutes", 125 * time.Second, "2 mins ago"},
		{"fifty nine minutes", 59*time.Minute + 59*time.Second, "59 mins ago"},
		{"one hour", time.Hour, "1 hour ago"},
		{"twenty three hours", 23 * time.Hour, "23 hours ago"},
		{"one day", 24 * time.Hour, "yesterday"},
		{"almost two days", 47*time.Hour + 59*time.Minute, "yesterday"},
		{"two days", 48 * time.Hour, "2 days ago"},
		{"twenty nine days", 29 * 24 * time.Hour, "29 days ago"},
		{"thirty days", 30 * 24 * time.Hour, "1 month ago"},
		{"sixty days", 60 * 24 * time.Hour, "2 months ago"},
		{"eleven months", 359 * 24 * time.Hour, "11 months ago"},
		{"twelve months", 360 * 24 * time.Hour, "1 year ago"},
		{"two years", 720 * 24 * time.Hour, "2 years ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FormatRelative(now.Add(-tt.elapsed), now)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormatRelative_FutureIsJustNow(t *testing.T) {
	now := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", FormatRelative(now.Add(time.Hour), now))
	assert.Equal(t, "just now", FormatRelative(now.AddDate(5, 0, 0), now))
}

func TestFormatRelative_FloorsSubSecond(t *testing.T) {
	now := time.Date(2025, time.December, 25, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, "just now", FormatRelative(now.Add(-9999*time.Millisecond), now))
	assert.Equal(t, "59 seconds ago", FormatRelative(now.Add(-59999*time.Millisecond), now))
}

func TestFormatRelative_Centuries(t *testing.T) {
	now := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	old := time.Date(1025, time.January, 1, 0, 0, 0, 0, time.UTC)

	// 365243 days / 30 / 12 = 1014 approximated years, well past what a
	// time.Duration can hold.
	assert.Equal(t, "1014 years ago", FormatRelative(old, now))
}

func TestFormatElapsed_MonotonicBuckets(t *testing.T) {
	order := map[string]int{
		"just now":  0,
		"second":    1,
		"min":       2,
		"hour":      3,
		"yesterday": 4,
		"day":       5,
		"month":     6,
		"year":      7,
	}
	bucket := func(s string) string {
		fields := strings.Fields(s)
		if len(fields) != 3 {
			return s
		}
		return strings.TrimSuffix(fields[1], "s")
	}

	prev := 0
	for s := int64(0); s < 3*366*secondsPerDay; s += 997 {
		got := FormatElapsed(s)
		r, ok := order[bucket(got)]
		if !assert.True(t, ok, "unexpected output %q", got) {
			return
		}
		assert.GreaterOrEqual(t, r, prev, "elapsed %d", s)
		prev = r
	}
}

func TestFormatAge(t *testing.T) {
	assert.Equal(t, "just now", FormatAge(time.Now()))
	assert.Equal(t, "5 mins ago", FormatAge(time.Now().Add(-5*time.Minute-time.Second)))
}
