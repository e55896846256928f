// Package dates provides the calendar primitives the rest of the application
// is built on: the canonical YYYY-MM-DD date key and the Monday-first weekday
// index. All conversions use local calendar fields rather than UTC; an
// off-by-one from a timezone conversion would silently corrupt streaks.
package dates

import (
	"fmt"
	"time"

	"github.com/julianstephens/tendril/internal/constants"
)

// Today returns the date key for the current local calendar day.
func Today() string {
	return Key(time.Now())
}

// Key formats t as a YYYY-MM-DD date key using its local calendar fields.
func Key(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// Parse converts a date key back into a time.Time at local midnight. It is
// built from the year/month/day components rather than a timestamp parse so
// the result never drifts across a timezone boundary.
func Parse(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date key %q: %w", key, err)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// Weekday maps t to the application's weekday index, 0=Monday through
// 6=Sunday. Go's native numbering is Sunday=0, so this is an explicit remap.
func Weekday(t time.Time) int {
	native := int(t.Weekday())
	if native == 0 {
		return 6
	}
	return native - 1
}

// WeekStart returns the Monday of the week containing t, at t's clock time.
func WeekStart(t time.Time) time.Time {
	return t.AddDate(0, 0, -Weekday(t))
}

// AddDays returns t shifted by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// LastN returns the date keys for the n days ending at anchor, most recent
// first. n <= 0 yields an empty slice.
func LastN(anchor time.Time, n int) []string {
	keys := make([]string, 0, max(n, 0))
	for i := 0; i < n; i++ {
		keys = append(keys, Key(AddDays(anchor, -i)))
	}
	return keys
}
