// Package dates is the calendar arithmetic used by the reservation
// engine. Everything works on whole days in UTC; time of day never
// carries meaning across the API boundary.
package dates

import "time"

const Layout = "2006-01-02"

// Day truncates t to UTC midnight.
func Day(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Today() time.Time { return Day(time.Now()) }

func ParseDay(s string) (time.Time, error) {
	t, err := time.ParseInLocation(Layout, s, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}

func FormatDay(t time.Time) string { return Day(t).Format(Layout) }

func SameDay(a, b time.Time) bool { return Day(a).Equal(Day(b)) }

// Overlaps reports whether [aFrom, aTo] and [bFrom, bTo] share at
// least one day. Bounds are inclusive on both ends.
func Overlaps(aFrom, aTo, bFrom, bTo time.Time) bool {
	return !Day(aFrom).After(Day(bTo)) && !Day(aTo).Before(Day(bFrom))
}

// AddDays moves d whole days forward (or back, if negative), staying
// correct across month boundaries and leap years.
func AddDays(t time.Time, d int) time.Time {
	return Day(t).AddDate(0, 0, d)
}

// WithinDays reports whether day falls in [from, from+n], inclusive.
func WithinDays(day, from time.Time, n int) bool {
	day, from = Day(day), Day(from)
	return !day.Before(from) && !day.After(AddDays(from, n))
}
