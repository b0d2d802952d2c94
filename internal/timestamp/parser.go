package timestamp

import (
	"math"
	"regexp"
	"time"
)

// MillisecondThreshold separates the two epoch units. Values at or above it
// are milliseconds, values below it are seconds. It sits around 2001-09-09
// when read as milliseconds.
const MillisecondThreshold = 1e12

// maxEpochMillis bounds representable instants to ±100,000,000 days around
// the epoch. Anything outside does not parse.
const maxEpochMillis = 8.64e15

var (
	spaceDateTime = regexp.MustCompile(`^\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}(?:\.\d+)?$`)
	isoNoZone     = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}(?:\.\d+)?$`)
)

const (
	spaceLayout = "2006-01-02 15:04:05"
	isoLayout   = "2006-01-02T15:04:05"
)

// Config controls how zone-less timestamps are interpreted. The zero value
// reads them as UTC.
type Config struct {
	// AssumeLocal reads zone-less datetimes in Location instead of UTC.
	AssumeLocal bool

	// Location is the local zone of the rendering environment.
	// Default: time.Local
	Location *time.Location
}

// DefaultConfig returns a Config that reads zone-less datetimes as UTC.
func DefaultConfig() Config {
	return Config{Location: time.Local}
}

// Parser converts Raw values into instants. It is safe for concurrent use.
type Parser struct {
	assumeLocal bool
	local       *time.Location
}

// New creates a Parser. The configuration is fixed for the Parser's lifetime.
func New(cfg Config) *Parser {
	loc := cfg.Location
	if loc == nil {
		loc = time.Local
	}
	return &Parser{assumeLocal: cfg.AssumeLocal, local: loc}
}

// AssumeUTC reports whether zone-less datetimes are read as UTC.
func (p *Parser) AssumeUTC() bool {
	return !p.assumeLocal
}

// ParseString classifies s and parses it.
func (p *Parser) ParseString(s string) (time.Time, bool) {
	return p.Parse(Classify(s))
}

// Parse returns the instant denoted by raw. The second result is false when
// raw is empty or matches no accepted encoding; the time is then zero and
// must not be used.
func (p *Parser) Parse(raw Raw) (time.Time, bool) {
	switch raw.Kind() {
	case KindNumeric:
		return fromEpoch(raw.Number())
	case KindText:
		return p.parseText(raw.String())
	default:
		return time.Time{}, false
	}
}

func (p *Parser) parseText(s string) (time.Time, bool) {
	switch {
	case spaceDateTime.MatchString(s):
		return parseIn(spaceLayout, s, p.zoneless())
	case isoNoZone.MatchString(s):
		return parseIn(isoLayout, s, p.zoneless())
	default:
		return p.parseGeneric(s)
	}
}

// zoneless returns the zone applied to datetimes that carry none.
func (p *Parser) zoneless() *time.Location {
	if p.assumeLocal {
		return p.local
	}
	return time.UTC
}

// fromEpoch applies the seconds/milliseconds heuristic.
func fromEpoch(n float64) (time.Time, bool) {
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return time.Time{}, false
	}
	ms := n
	if n < MillisecondThreshold {
		ms = n * 1000
	}
	if math.Abs(ms) > maxEpochMillis {
		return time.Time{}, false
	}
	ms = math.Trunc(ms)
	sec := math.Floor(ms / 1000)
	rem := ms - sec*1000
	return time.Unix(int64(sec), int64(rem)*int64(time.Millisecond)).UTC(), true
}

func parseIn(layout, s string, loc *time.Location) (time.Time, bool) {
	t, err := time.ParseInLocation(layout, s, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
