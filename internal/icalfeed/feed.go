// Package icalfeed renders birthday projections as an iCalendar feed that
// calendar apps can subscribe to.
package icalfeed

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"github.com/gravadigital/community-api/internal/domain/birthday"
)

const (
	prodID   = "-//Community Portal//Birthdays//EN"
	calName  = "Member birthdays"
	uidHost  = "birthdays.community-api"
	refresh  = 6 * time.Hour
)

// emptyCalendar is served when nobody has a birthday on file; go-ical
// refuses to encode a calendar without components.
const emptyCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + prodID + "\r\nEND:VCALENDAR\r\n"

// Render writes one all-day VEVENT per profile on its next birthday. UIDs
// are stable per profile and year so subscribers update events in place.
func Render(profiles []birthday.Profile, now time.Time) ([]byte, error) {
	if len(profiles) == 0 {
		return []byte(emptyCalendar), nil
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, prodID)
	cal.Props.SetText(ical.PropCalendarScale, "GREGORIAN")
	cal.Props.SetText(ical.PropMethod, "PUBLISH")
	cal.Props.SetText("X-WR-CALNAME", calName)

	refreshProp := ical.NewProp(ical.PropRefreshInterval)
	refreshProp.SetDuration(refresh)
	cal.Props.Set(refreshProp)

	stamp := ical.NewProp(ical.PropDateTimeStamp)
	stamp.SetDateTime(now.UTC())

	for _, p := range profiles {
		event := ical.NewEvent()
		event.Props.SetText(ical.PropUID, fmt.Sprintf("%s-%d@%s", p.ID, p.NextBirthday.Year(), uidHost))
		event.Props.SetText(ical.PropSummary, summary(p))
		event.Props.Set(stamp)

		start := ical.NewProp(ical.PropDateTimeStart)
		start.SetDate(p.NextBirthday)
		event.Props.Set(start)

		end := ical.NewProp(ical.PropDateTimeEnd)
		end.SetDate(p.NextBirthday.AddDate(0, 0, 1))
		event.Props.Set(end)

		event.Props.SetText(ical.PropTransparency, "TRANSPARENT")
		cal.Children = append(cal.Children, event.Component)
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("failed to encode birthday calendar: %w", err)
	}
	return buf.Bytes(), nil
}

// summary names the age the member turns on the event date.
func summary(p birthday.Profile) string {
	turns := p.NextBirthday.Year() - p.DOB.Year()
	if turns <= 0 {
		return fmt.Sprintf("%s's birthday", p.FullName)
	}
	return fmt.Sprintf("%s turns %d", p.FullName, turns)
}
