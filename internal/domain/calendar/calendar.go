// Package calendar holds the date arithmetic shared by the birthday projection.
// Every function works on calendar dates in the location of its argument and
// ignores the time-of-day component.
package calendar

import "time"

// IsLeapYear reports whether year has a February 29.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// StartOfDay truncates t to midnight in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// AnniversaryIn returns the occurrence of date's month/day in year, at
// midnight in loc. February 29 resolves to February 28 when year is not a
// leap year instead of overflowing into March.
func AnniversaryIn(date time.Time, year int, loc *time.Location) time.Time {
	month, day := date.Month(), date.Day()
	if month == time.February && day == 29 && !IsLeapYear(year) {
		day = 28
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// AddYears moves t by n calendar years, clamping February 29 to February 28
// in non-leap target years.
func AddYears(t time.Time, n int) time.Time {
	shifted := AnniversaryIn(t, t.Year()+n, t.Location())
	return shifted.Add(t.Sub(StartOfDay(t)))
}

// DaysBetween returns the number of calendar days from a to b. It is negative
// when b is before a. Daylight saving transitions do not affect the result.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// NextAnniversary returns the next occurrence of date's month/day on or after
// the day containing now. An anniversary falling on today is not past.
func NextAnniversary(date, now time.Time) time.Time {
	today := StartOfDay(now)
	next := AnniversaryIn(date, today.Year(), today.Location())
	if next.Before(today) {
		next = AnniversaryIn(date, today.Year()+1, today.Location())
	}
	return next
}

// HasOccurred reports whether date's anniversary in the year of now falls on
// or before the day containing now.
func HasOccurred(date, now time.Time) bool {
	today := StartOfDay(now)
	return !AnniversaryIn(date, today.Year(), today.Location()).After(today)
}
