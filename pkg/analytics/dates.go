package analytics

import (
	"strconv"
	"strings"
	"time"
)

// Layouts tried for strict parsing, most specific first. time.Parse is
// strict about separators and digit counts, which is what we want here;
// anything sloppier goes through the lenient fallback.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

const dateLayout = "2006-01-02"

// NormalizeTemporalValue converts a date-like value into a time.Time.
//
// A calendar date (no time-of-day component) expands to 00:00:00 when
// endOfDay is false and to 23:59:59.999999 when true, so that inclusive
// date ranges behave intuitively at day granularity. Values that are
// already timestamps are returned unchanged, as is anything that cannot
// be parsed: an unparseable string flows through to the storage engine
// and fails there rather than being masked here.
func NormalizeTemporalValue(value interface{}, endOfDay bool) interface{} {
	switch v := value.(type) {
	case time.Time:
		return v
	case string:
		if t, ok := parseTemporalString(v, endOfDay); ok {
			return t
		}
		return v
	default:
		return value
	}
}

func parseTemporalString(s string, endOfDay bool) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	if t, err := time.Parse(dateLayout, s); err == nil {
		return expandDate(t, endOfDay), true
	}

	// Lenient fallback: take the YYYY-MM-DD prefix before any 'T' or space
	// and parse it by hand. Covers inputs like "2025-01-02 oddsuffix".
	prefix := s
	if idx := strings.IndexAny(prefix, "T "); idx >= 0 {
		prefix = prefix[:idx]
	}
	parts := strings.Split(prefix, "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}
	year, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	day, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil {
		return time.Time{}, false
	}
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 31 becomes Mar 3). A date that does
	// not round-trip never existed, so it is not parseable.
	if d.Year() != year || d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, false
	}
	return expandDate(d, endOfDay), true
}

// expandDate turns a midnight date into the first or last instant of that
// calendar day. The last instant uses microsecond precision, matching the
// resolution of a Postgres timestamp.
func expandDate(d time.Time, endOfDay bool) time.Time {
	if !endOfDay {
		return d
	}
	return time.Date(d.Year(), d.Month(), d.Day(), 23, 59, 59, 999999000, d.Location())
}
