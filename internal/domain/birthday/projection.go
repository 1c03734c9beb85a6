// Package birthday turns a member roster into birthday views ordered by how
// soon each birthday comes up. Everything here is pure: no I/O, inputs are
// never modified and every call returns a fresh slice.
package birthday

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/gravadigital/community-api/internal/domain/calendar"
	"github.com/gravadigital/community-api/internal/logger"
)

// Project builds the birthday list relative to now using English collation
// for name ordering.
func Project(profiles []RawProfile, now time.Time) []Profile {
	return ProjectWithLocale(profiles, now, language.English)
}

// ProjectWithLocale is Project with names ordered by the collation rules of
// locale, ignoring case.
func ProjectWithLocale(profiles []RawProfile, now time.Time, locale language.Tag) []Profile {
	today := calendar.StartOfDay(now)
	out := make([]Profile, 0, len(profiles))

	for _, raw := range profiles {
		p, ok := enrich(raw, today)
		if ok {
			out = append(out, p)
		}
	}

	// Collators keep scratch buffers and are not safe to share across calls.
	collator := collate.New(locale, collate.IgnoreCase)
	slices.SortFunc(out, func(a, b Profile) int {
		if c := cmp.Compare(a.DaysUntil, b.DaysUntil); c != 0 {
			return c
		}
		if c := collator.CompareString(a.FullName, b.FullName); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})

	return out
}

func enrich(raw RawProfile, today time.Time) (Profile, bool) {
	if raw.FullName == nil || strings.TrimSpace(*raw.FullName) == "" || raw.DOB == nil {
		return Profile{}, false
	}

	dob, err := ParseDOB(*raw.DOB)
	if err != nil {
		logger.Service("birthday").Debug("dropping profile with unreadable date of birth", "profile_id", raw.ID, "error", err)
		return Profile{}, false
	}

	next := calendar.NextAnniversary(dob, today)
	days := calendar.DaysBetween(today, next)

	age := today.Year() - dob.Year()
	if !calendar.HasOccurred(dob, today) {
		age--
	}
	if age < 0 {
		age = 0
	}

	return Profile{
		ID:           raw.ID,
		FullName:     *raw.FullName,
		AvatarURL:    raw.AvatarURL,
		DOB:          dob,
		Age:          age,
		NextBirthday: next,
		IsToday:      days == 0,
		DaysUntil:    days,
		BirthMonth:   int(dob.Month()) - 1,
	}, true
}
