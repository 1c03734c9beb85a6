package attendance

import (
	"time"

	"github.com/google/uuid"
)

// Record is the stored RSVP row. The (event_id, user_id) primary key is the
// uniqueness constraint the engine relies on: an upsert replaces the status of
// the existing row instead of inserting a second one.
type Record struct {
	EventID   uuid.UUID `json:"event_id" gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `json:"user_id" gorm:"type:uuid;primaryKey"`
	Status    Status    `json:"status" gorm:"type:attendance_status;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Record) TableName() string {
	return "event_attendance"
}
