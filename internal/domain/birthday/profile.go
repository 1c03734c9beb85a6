package birthday

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrMalformedDate is returned by ParseDOB for values that are not a date.
var ErrMalformedDate = errors.New("birthday: malformed date of birth")

const dateLayout = "2006-01-02"

// RawProfile is a roster row as the store returns it. Name and date of birth
// are optional there; profiles missing either are left out of projections.
type RawProfile struct {
	ID        string  `json:"id"`
	FullName  *string `json:"full_name"`
	DOB       *string `json:"dob"`
	AvatarURL string  `json:"avatar_url"`
}

// Profile is a RawProfile enriched with values derived from "today". It is
// recomputed on every projection and never stored.
type Profile struct {
	ID           string    `json:"id"`
	FullName     string    `json:"full_name"`
	AvatarURL    string    `json:"avatar_url"`
	DOB          time.Time `json:"dob"`
	Age          int       `json:"age"`
	NextBirthday time.Time `json:"next_birthday"`
	IsToday      bool      `json:"is_today"`
	DaysUntil    int       `json:"days_until"`
	BirthMonth   int       `json:"birth_month"`
}

// ParseDOB reads a date-only value. RFC 3339 timestamps are accepted and
// reduced to their date in the timestamp's own offset.
func ParseDOB(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("%w: empty value", ErrMalformedDate)
	}

	if t, err := time.Parse(dateLayout, value); err == nil {
		return t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		y, m, d := t.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	}

	return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, value)
}
