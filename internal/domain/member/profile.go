package member

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/community-api/internal/domain/birthday"
)

// Profile is a member's directory entry. Name and date of birth are optional
// because members fill them in after signing up.
type Profile struct {
	ID        uuid.UUID  `json:"id" gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	FullName  *string    `json:"full_name"`
	Email     string     `json:"email" gorm:"uniqueIndex;not null"`
	DOB       *time.Time `json:"dob" gorm:"type:date"`
	AvatarURL string     `json:"avatar_url"`
	CreatedAt time.Time  `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName overrides the table name used by GORM
func (Profile) TableName() string {
	return "profiles"
}

// BeforeCreate sets a UUID before creating the record
func (p *Profile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Raw converts the stored row into the roster shape the birthday projection
// reads. The date of birth is rendered as a plain calendar date.
func (p *Profile) Raw() birthday.RawProfile {
	raw := birthday.RawProfile{
		ID:        p.ID.String(),
		FullName:  p.FullName,
		AvatarURL: p.AvatarURL,
	}
	if p.DOB != nil {
		dob := p.DOB.Format("2006-01-02")
		raw.DOB = &dob
	}
	return raw
}
