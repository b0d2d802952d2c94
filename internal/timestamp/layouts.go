package timestamp

import (
	"time"
)

// genericLayouts are tried in order once the zone-less fast paths miss.
// Layouts without a zone are read in the parser's local location.
var genericLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02T15:04:05.999999999Z0700",
	time.RFC1123Z,
	time.RFC1123,
	time.RFC850,
	time.RFC822Z,
	time.RFC822,
	time.ANSIC,
	time.UnixDate,
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"January 2, 2006 15:04:05",
	"January 2, 2006",
	"Jan 2, 2006 15:04:05",
	"Jan 2, 2006",
}

// dateOnlyLayout is read as UTC, like ISO date-only forms are elsewhere.
const dateOnlyLayout = "2006-01-02"

func (p *Parser) parseGeneric(s string) (time.Time, bool) {
	if t, err := time.Parse(dateOnlyLayout, s); err == nil {
		return t, true
	}
	for _, layout := range genericLayouts {
		if t, err := time.ParseInLocation(layout, s, p.local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
