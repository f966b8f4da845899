// Package monthkey implements the "YYYY-MM" calendar month key used to
// address budgets and to resolve month-windowed expense queries.
package monthkey

import (
	"fmt"
	"regexp"
	"time"
)

// Key identifies a calendar month as "YYYY-MM", e.g. "2024-01".
type Key string

var keyPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// FromTime returns the key of the month containing t.
func FromTime(t time.Time) Key {
	return Key(t.Format("2006-01"))
}

// Parse validates s as a month key.
func Parse(s string) (Key, error) {
	if !keyPattern.MatchString(s) {
		return "", fmt.Errorf("invalid month %q, expected YYYY-MM", s)
	}
	return Key(s), nil
}

// String returns the key in its wire form.
func (k Key) String() string { return string(k) }

// Start returns the first instant of the month (first day, 00:00 local).
// A malformed key yields the zero time.
func (k Key) Start() time.Time {
	t, err := time.ParseInLocation("2006-01", string(k), time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// End returns the last instant of the month (last day, 23:59:59.999999999).
func (k Key) End() time.Time {
	return k.Start().AddDate(0, 1, 0).Add(-time.Nanosecond)
}

// Label returns the human-readable month name, e.g. "January 2024".
func (k Key) Label() string {
	return k.Start().Format("January 2006")
}

// ShortLabel returns the abbreviated month name, e.g. "Jan 2024".
func (k Key) ShortLabel() string {
	return k.Start().Format("Jan 2006")
}

// AddMonths returns the key n calendar months after k (n may be negative).
func (k Key) AddMonths(n int) Key {
	return FromTime(k.Start().AddDate(0, n, 0))
}

// Trailing returns the n keys ending at last, oldest first.
func Trailing(last Key, n int) []Key {
	keys := make([]Key, 0, n)
	for i := n - 1; i >= 0; i-- {
		keys = append(keys, last.AddMonths(-i))
	}
	return keys
}
