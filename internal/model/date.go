package model

import (
	"math"
	"time"
)

// DateLayout is the ISO 8601 calendar date layout used for every stored date.
const DateLayout = "2006-01-02"

// MonthLayout is the layout of a month key.
const MonthLayout = "2006-01"

// Clock supplies the current time. Everything that depends on "today"
// takes a Clock so tests can pin the calendar.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the host clock.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant.
type FixedClock time.Time

// Now implements Clock.
func (c FixedClock) Now() time.Time { return time.Time(c) }

// FixedDate returns a FixedClock pinned to noon of the given ISO date.
// It panics on malformed input and is meant for tests and fixtures.
func FixedDate(iso string) FixedClock {
	d, err := time.ParseInLocation(DateLayout, iso, time.Local)
	if err != nil {
		panic(err)
	}
	return FixedClock(d.Add(12 * time.Hour))
}

// Today returns the clock's local calendar date as YYYY-MM-DD.
func Today(c Clock) string {
	return c.Now().Format(DateLayout)
}

// CurrentMonth returns the clock's local month key.
func CurrentMonth(c Clock) string {
	return c.Now().Format(MonthLayout)
}

// MonthKey truncates an ISO date to its YYYY-MM prefix.
func MonthKey(dateISO string) string {
	if len(dateISO) < 7 {
		return dateISO
	}
	return dateISO[:7]
}

// ParseDate parses a YYYY-MM-DD date as a UTC midnight.
func ParseDate(iso string) (time.Time, bool) {
	t, err := time.Parse(DateLayout, iso)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseMonth parses a YYYY-MM month key as the first day of the month, UTC.
func ParseMonth(key string) (time.Time, bool) {
	t, err := time.Parse(MonthLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// DaysBetween returns the calendar-day difference to - from, rounded to the
// nearest whole day. Both are ISO dates; ok is false if either is malformed.
func DaysBetween(from, to string) (days int, ok bool) {
	f, ok1 := ParseDate(from)
	t, ok2 := ParseDate(to)
	if !ok1 || !ok2 {
		return 0, false
	}
	return int(math.Round(t.Sub(f).Hours() / 24)), true
}

// AddDays shifts an ISO date by n calendar days.
func AddDays(iso string, n int) string {
	t, ok := ParseDate(iso)
	if !ok {
		return iso
	}
	return t.AddDate(0, 0, n).Format(DateLayout)
}

// DaysInMonth returns the number of days in the month containing t.
func DaysInMonth(t time.Time) int {
	return time.Date(t.Year(), t.Month()+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
