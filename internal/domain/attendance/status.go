package attendance

import (
	"database/sql/driver"
	"fmt"
)

// Status is one user's RSVP state for one event. The zero value means no RSVP
// row exists.
type Status byte

const (
	StatusNone Status = iota
	StatusGoing
	StatusInterested
)

func (s Status) String() string {
	switch s {
	case StatusGoing:
		return "going"
	case StatusInterested:
		return "interested"
	default:
		return "none"
	}
}

// Storable reports whether s may be written to the store. StatusNone is
// represented by the absence of a row.
func (s Status) Storable() bool {
	return s == StatusGoing || s == StatusInterested
}

// StatusFromString converts a string to a Status
func StatusFromString(s string) (Status, bool) {
	switch s {
	case "going":
		return StatusGoing, true
	case "interested":
		return StatusInterested, true
	case "none", "":
		return StatusNone, true
	default:
		return StatusNone, false
	}
}

// MarshalJSON implements the json.Marshaler interface
func (s Status) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (s *Status) UnmarshalJSON(data []byte) error {
	str := string(data)
	if len(str) >= 2 && str[0] == '"' && str[len(str)-1] == '"' {
		str = str[1 : len(str)-1]
	}

	status, valid := StatusFromString(str)
	if !valid {
		return fmt.Errorf("%w: %s", ErrInvalidStatus, str)
	}
	*s = status
	return nil
}

// Scan implements the sql.Scanner interface for database deserialization
func (s *Status) Scan(value any) error {
	if value == nil {
		*s = StatusNone
		return nil
	}

	var str string
	switch v := value.(type) {
	case string:
		str = v
	case []byte:
		str = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Status", value)
	}

	status, valid := StatusFromString(str)
	if !valid {
		return fmt.Errorf("invalid attendance status value: %s", str)
	}
	*s = status
	return nil
}

// Value implements the driver.Valuer interface for database serialization
func (s Status) Value() (driver.Value, error) {
	if !s.Storable() {
		return nil, fmt.Errorf("%w: %s cannot be stored", ErrInvalidStatus, s)
	}
	return s.String(), nil
}
