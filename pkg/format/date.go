package format

import (
	"time"

	"github.com/go-faster/errors"
)

// dateLayout is the display layout for dates: day without leading zero,
// full month name, four-digit year.
const dateLayout = "2 January 2006"

// ParseDate parses an ISO-8601 date or date-time string, keeping only the
// date portion. Any time-of-day component is truncated rather than parsed,
// and the result is fixed to UTC, so "2020-09-25T23:00:00+01:00" and
// "2020-09-25" both yield the same day regardless of the host timezone.
func ParseDate(s string) (time.Time, error) {
	if len(s) > 10 {
		s = s[:10]
	}
	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parse date %q", s)
	}
	return t, nil
}

// Date renders t as e.g. "25 September 2020".
func Date(t time.Time) string {
	return t.Format(dateLayout)
}

// DateOrEmpty renders t like Date, or "" when t is nil.
func DateOrEmpty(t *time.Time) string {
	if t == nil {
		return ""
	}
	return Date(*t)
}
