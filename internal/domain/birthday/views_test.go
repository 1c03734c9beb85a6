package birthday

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func names(profiles []Profile) []string {
	out := make([]string, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, p.FullName)
	}
	return out
}

func TestViews(t *testing.T) {
	projected := Project([]RawProfile{
		raw("1", "Asha", "1990-03-10"),
		raw("2", "Ravi", "1990-03-15"),
		raw("3", "Kiran", "1990-03-17"),
		raw("4", "Lata", "1990-03-18"),
		raw("5", "Meera", "1990-01-01"),
		raw("6", "Neel", "1990-03-31"),
	}, now)

	assert.Equal(t, []string{"Asha"}, names(Today(projected)))
	assert.Equal(t, []string{"Ravi", "Kiran"}, names(ThisWeek(projected)))
	assert.Equal(t, []string{"Asha", "Ravi", "Kiran", "Lata", "Neel"}, names(ByMonth(projected, 2)))
	assert.Equal(t, []string{"Meera"}, names(ByMonth(projected, 0)))
	assert.Empty(t, ByMonth(projected, 6))
	assert.Equal(t, []string{"Asha", "Ravi"}, names(Upcoming(projected, 2)))
	assert.Len(t, Upcoming(projected, 100), len(projected))
	assert.Empty(t, Upcoming(projected, -1))
}

func TestBucket(t *testing.T) {
	projected := Project([]RawProfile{
		raw("1", "Asha", "1990-03-10"),
		raw("2", "Meera", "1990-01-01"),
	}, now)

	buckets := Bucket(projected, 0)

	assert.Equal(t, 0, buckets.Month)
	assert.Equal(t, []string{"Asha"}, names(buckets.Today))
	assert.NotNil(t, buckets.ThisWeek)
	assert.Empty(t, buckets.ThisWeek)
	assert.Equal(t, []string{"Meera"}, names(buckets.ByMonth))
	assert.Equal(t, []string{"Asha", "Meera"}, names(buckets.All))
}
