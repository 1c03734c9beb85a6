package icalfeed

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/community-api/internal/domain/birthday"
)

var now = time.Date(2024, 3, 10, 15, 0, 0, 0, time.UTC)

func strPtr(s string) *string { return &s }

func TestRenderEmptyRoster(t *testing.T) {
	out, err := Render(nil, now)
	require.NoError(t, err)
	assert.Equal(t, emptyCalendar, string(out))
}

func TestRenderOneEventPerProfile(t *testing.T) {
	profiles := birthday.Project([]birthday.RawProfile{
		{ID: "asha", FullName: strPtr("Asha"), DOB: strPtr("1990-03-10")},
		{ID: "meera", FullName: strPtr("Meera"), DOB: strPtr("1990-01-01")},
	}, now)

	out, err := Render(profiles, now)
	require.NoError(t, err)

	cal, err := ical.NewDecoder(bytes.NewReader(out)).Decode()
	require.NoError(t, err)

	events := cal.Events()
	require.Len(t, events, 2)

	first := events[0]
	uid, err := first.Props.Text(ical.PropUID)
	require.NoError(t, err)
	assert.Equal(t, "asha-2024@birthdays.community-api", uid)

	title, err := first.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Asha turns 34", title)

	start, err := first.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, ical.ValueDate, first.Props.Get(ical.PropDateTimeStart).ValueType())

	second := events[1]
	title, err = second.Props.Text(ical.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "Meera turns 35", title)
}
