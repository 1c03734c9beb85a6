package migrations

import (
	"time"

	"github.com/google/uuid"
)

// The models below freeze the schema as of migration 002. They are kept
// apart from the domain types so later domain changes never alter what an
// old migration creates.

type Profile struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FullName  *string    `gorm:"type:varchar(255)"`
	Email     string     `gorm:"type:varchar(255);uniqueIndex;not null"`
	DOB       *time.Time `gorm:"type:date"`
	AvatarURL string     `gorm:"type:text;not null;default:''"`
	CreatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Profile) TableName() string {
	return "profiles"
}

type Event struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Title       string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Location    string    `gorm:"type:varchar(255)"`
	StartsAt    time.Time `gorm:"not null"`
	EndsAt      time.Time `gorm:"not null"`
	CreatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt   time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (Event) TableName() string {
	return "events"
}

// EventAttendance holds one RSVP per (event, user). The composite primary
// key is the uniqueness constraint the upsert conflicts on.
type EventAttendance struct {
	EventID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey"`
	Status    string    `gorm:"type:attendance_status;not null"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"`
}

func (EventAttendance) TableName() string {
	return "event_attendance"
}

// AllModels returns all models for auto-migration
func AllModels() []any {
	return []any{
		&Profile{},
		&Event{},
		&EventAttendance{},
	}
}
