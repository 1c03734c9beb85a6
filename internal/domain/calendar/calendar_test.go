package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestIsLeapYear(t *testing.T) {
	assert.True(t, IsLeapYear(2000))
	assert.True(t, IsLeapYear(2024))
	assert.False(t, IsLeapYear(1900))
	assert.False(t, IsLeapYear(2025))
}

func TestStartOfDay(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*3600)
	in := time.Date(2024, 3, 10, 23, 59, 59, 999, loc)

	got := StartOfDay(in)

	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, loc), got)
}

func TestAnniversaryIn(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		year int
		want time.Time
	}{
		{"regular date", date(1990, 3, 15), 2024, date(2024, 3, 15)},
		{"leap day in leap year", date(2000, 2, 29), 2028, date(2028, 2, 29)},
		{"leap day in common year", date(2000, 2, 29), 2025, date(2025, 2, 28)},
		{"end of year", date(1985, 12, 31), 2026, date(2026, 12, 31)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AnniversaryIn(tt.date, tt.year, time.UTC))
		})
	}
}

func TestAddYears(t *testing.T) {
	assert.Equal(t, date(2001, 2, 28), AddYears(date(2000, 2, 29), 1))
	assert.Equal(t, date(2004, 2, 29), AddYears(date(2000, 2, 29), 4))
	assert.Equal(t, date(2019, 7, 1), AddYears(date(2020, 7, 1), -1))

	withTime := time.Date(2020, 7, 1, 13, 30, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2021, 7, 1, 13, 30, 0, 0, time.UTC), AddYears(withTime, 1))
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, DaysBetween(date(2024, 3, 10), time.Date(2024, 3, 10, 22, 0, 0, 0, time.UTC)))
	assert.Equal(t, 5, DaysBetween(date(2024, 3, 10), date(2024, 3, 15)))
	assert.Equal(t, 297, DaysBetween(date(2024, 3, 10), date(2025, 1, 1)))
	assert.Equal(t, -1, DaysBetween(date(2024, 3, 10), date(2024, 3, 9)))
}

func TestDaysBetweenAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("timezone database not available")
	}

	before := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	after := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)

	assert.Equal(t, 2, DaysBetween(before, after))
}

func TestNextAnniversary(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

	assert.Equal(t, date(2024, 3, 10), NextAnniversary(date(1990, 3, 10), now), "today is not past")
	assert.Equal(t, date(2024, 3, 15), NextAnniversary(date(1990, 3, 15), now))
	assert.Equal(t, date(2025, 1, 1), NextAnniversary(date(1990, 1, 1), now))
	assert.Equal(t, date(2025, 2, 28), NextAnniversary(date(2000, 2, 29), now))
}

func TestHasOccurred(t *testing.T) {
	now := date(2024, 3, 10)

	assert.True(t, HasOccurred(date(1990, 3, 10), now))
	assert.True(t, HasOccurred(date(1990, 1, 1), now))
	assert.False(t, HasOccurred(date(1990, 3, 11), now))
	assert.True(t, HasOccurred(date(2000, 2, 29), date(2025, 2, 28)))
}

func TestFixedClock(t *testing.T) {
	instant := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	var clock Clock = FixedClock(instant)

	assert.Equal(t, instant, clock.Now())
}
