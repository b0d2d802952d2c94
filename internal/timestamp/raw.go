// Package timestamp normalizes raw timestamp values of mixed encodings
// (epoch numbers, SQL-style datetimes, ISO-8601) into absolute instants.
package timestamp

import (
	"math"
	"strconv"
	"strings"
)

// Kind identifies which variant a Raw value holds.
type Kind int

const (
	// KindNone is an empty or missing value. It never parses.
	KindNone Kind = iota
	// KindNumeric is an epoch value in seconds or milliseconds.
	KindNumeric
	// KindText is any other textual encoding.
	KindText
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindNumeric:
		return "numeric"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Raw is a timestamp exactly as it was received. The zero value is KindNone.
type Raw struct {
	kind Kind
	num  float64
	text string
}

// Numeric returns a Raw holding an epoch value.
func Numeric(n float64) Raw {
	return Raw{kind: KindNumeric, num: n, text: strconv.FormatFloat(n, 'f', -1, 64)}
}

// Text returns a Raw holding a textual timestamp without classifying it.
// Use Classify for values captured from a document.
func Text(s string) Raw {
	s = strings.TrimSpace(s)
	if s == "" {
		return Raw{}
	}
	return Raw{kind: KindText, text: s}
}

// Classify resolves a captured string into its variant. Strings holding a
// finite numeric literal become KindNumeric, empty strings KindNone and
// everything else KindText. The original text is kept either way.
func Classify(s string) Raw {
	s = strings.TrimSpace(s)
	if s == "" {
		return Raw{}
	}
	if n, ok := parseNumber(s); ok {
		return Raw{kind: KindNumeric, num: n, text: s}
	}
	return Raw{kind: KindText, text: s}
}

// Kind returns the variant held by r.
func (r Raw) Kind() Kind {
	return r.kind
}

// Number returns the epoch value. Only meaningful for KindNumeric.
func (r Raw) Number() float64 {
	return r.num
}

// String returns the original text of the value.
func (r Raw) String() string {
	return r.text
}

// IsZero reports whether r holds no value.
func (r Raw) IsZero() bool {
	return r.kind == KindNone
}

// parseNumber accepts decimal and exponent literals. Inf and NaN spellings
// are rejected so that words like "infinity" stay text.
func parseNumber(s string) (float64, bool) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	if math.IsInf(n, 0) || math.IsNaN(n) {
		return 0, false
	}
	return n, true
}
