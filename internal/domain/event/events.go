package event

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event is a community gathering members can RSVP to
type Event struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Title       string    `json:"title" gorm:"not null"`
	Description string    `json:"description" gorm:"type:text"`
	Location    string    `json:"location"`
	StartsAt    time.Time `json:"starts_at" gorm:"not null"`
	EndsAt      time.Time `json:"ends_at" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Event) TableName() string {
	return "events"
}

// BeforeCreate sets a UUID before creating the record
func (e *Event) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// NewEvent creates a new event with the given parameters
func NewEvent(title, description, location string, startsAt, endsAt time.Time) *Event {
	return &Event{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Location:    location,
		StartsAt:    startsAt,
		EndsAt:      endsAt,
		CreatedAt:   time.Now(),
	}
}

// IsUpcoming reports whether the event has not ended at now
func (e *Event) IsUpcoming(now time.Time) bool {
	return e.EndsAt.After(now)
}

// Validate checks if the event data is valid
func (e *Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if e.StartsAt.IsZero() {
		return fmt.Errorf("starts_at is required")
	}
	if e.EndsAt.Before(e.StartsAt) {
		return fmt.Errorf("ends_at must be after starts_at")
	}
	return nil
}
