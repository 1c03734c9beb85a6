package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/community-api/internal/domain/birthday"
	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/domain/member"
	"github.com/gravadigital/community-api/internal/logger"
)

// PostgresProfileRepository implements the member directory using GORM
type PostgresProfileRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresProfileRepository creates a new PostgreSQL profile repository
func NewPostgresProfileRepository(db *gorm.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{
		db:  db,
		log: logger.Repository("profile"),
	}
}

func (r *PostgresProfileRepository) Create(ctx context.Context, p *member.Profile) error {
	r.log.Debug("Creating profile", "email", p.Email)

	var existing member.Profile
	if err := r.db.WithContext(ctx).Where("email = ?", p.Email).Take(&existing).Error; err == nil {
		r.log.Error("Profile with email already exists", "email", p.Email)
		return fmt.Errorf("profile with email %s already exists", p.Email)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		r.log.Error("Failed to check existing profile", "email", p.Email, "error", err)
		return fmt.Errorf("failed to check existing profile: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(p).Error; err != nil {
		r.log.Error("Failed to create profile", "error", err, "email", p.Email)
		return fmt.Errorf("failed to create profile: %w", err)
	}

	r.log.Info("Profile created successfully", "id", p.ID, "email", p.Email)
	return nil
}

func (r *PostgresProfileRepository) GetByID(ctx context.Context, id string) (*member.Profile, error) {
	profileID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid profile ID format", common.ErrNotFound)
	}

	var p member.Profile
	if err := r.db.WithContext(ctx).First(&p, "id = ?", profileID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("Profile not found", "id", id)
			return nil, common.ErrNotFound
		}
		r.log.Error("Failed to get profile by ID", "id", id, "error", err)
		return nil, fmt.Errorf("failed to get profile by ID: %w", err)
	}

	return &p, nil
}

// ListWithBirthday reads every profile that has a date of birth. Rows
// without a name are still returned; the projection decides what to drop.
func (r *PostgresProfileRepository) ListWithBirthday(ctx context.Context) ([]birthday.RawProfile, error) {
	var profiles []member.Profile
	if err := r.db.WithContext(ctx).
		Select("id", "full_name", "dob", "avatar_url").
		Where("dob IS NOT NULL").
		Order("created_at ASC").
		Find(&profiles).Error; err != nil {
		r.log.Error("Failed to list profiles with birthday", "error", err)
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	out := make([]birthday.RawProfile, 0, len(profiles))
	for i := range profiles {
		out = append(out, profiles[i].Raw())
	}

	r.log.Debug("Profiles with birthday listed", "count", len(out))
	return out, nil
}
