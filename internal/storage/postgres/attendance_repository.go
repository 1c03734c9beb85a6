package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/logger"
)

// PostgresAttendanceRepository implements attendance.Store on the
// event_attendance table
type PostgresAttendanceRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresAttendanceRepository creates a new PostgreSQL attendance repository
func NewPostgresAttendanceRepository(db *gorm.DB) *PostgresAttendanceRepository {
	return &PostgresAttendanceRepository{
		db:  db,
		log: logger.Repository("attendance"),
	}
}

func parseKey(eventID, userID string) (uuid.UUID, uuid.UUID, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid event ID format: %w", err)
	}
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return uuid.Nil, uuid.Nil, fmt.Errorf("invalid user ID format: %w", err)
	}
	return eventUUID, userUUID, nil
}

func (r *PostgresAttendanceRepository) GetStatus(ctx context.Context, eventID, userID string) (attendance.Status, error) {
	eventUUID, userUUID, err := parseKey(eventID, userID)
	if err != nil {
		return attendance.StatusNone, err
	}

	var record attendance.Record
	err = r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventUUID, userUUID).
		Take(&record).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return attendance.StatusNone, nil
	}
	if err != nil {
		r.log.Error("failed to fetch attendance status", "event_id", eventID, "user_id", userID, "error", err)
		return attendance.StatusNone, fmt.Errorf("failed to fetch attendance status: %w", err)
	}

	return record.Status, nil
}

func (r *PostgresAttendanceRepository) CountGoing(ctx context.Context, eventID string) (int, error) {
	eventUUID, err := uuid.Parse(eventID)
	if err != nil {
		return 0, fmt.Errorf("invalid event ID format: %w", err)
	}

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&attendance.Record{}).
		Where("event_id = ? AND status = ?", eventUUID, attendance.StatusGoing).
		Count(&count).Error; err != nil {
		r.log.Error("failed to count going attendees", "event_id", eventID, "error", err)
		return 0, fmt.Errorf("failed to count going attendees: %w", err)
	}

	return int(count), nil
}

// Upsert writes status for (eventID, userID), replacing an existing row in a
// single statement so concurrent writers can never produce two rows.
func (r *PostgresAttendanceRepository) Upsert(ctx context.Context, eventID, userID string, status attendance.Status) error {
	if !status.Storable() {
		return fmt.Errorf("%w: %s", attendance.ErrInvalidStatus, status)
	}

	eventUUID, userUUID, err := parseKey(eventID, userID)
	if err != nil {
		return err
	}

	record := attendance.Record{
		EventID:   eventUUID,
		UserID:    userUUID,
		Status:    status,
		UpdatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&record).Error; err != nil {
		r.log.Error("failed to upsert attendance", "event_id", eventID, "user_id", userID, "status", status.String(), "error", err)
		return fmt.Errorf("failed to upsert attendance: %w", err)
	}

	r.log.Debug("attendance upserted", "event_id", eventID, "user_id", userID, "status", status.String())
	return nil
}

func (r *PostgresAttendanceRepository) Delete(ctx context.Context, eventID, userID string) error {
	eventUUID, userUUID, err := parseKey(eventID, userID)
	if err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Where("event_id = ? AND user_id = ?", eventUUID, userUUID).
		Delete(&attendance.Record{})
	if result.Error != nil {
		r.log.Error("failed to delete attendance", "event_id", eventID, "user_id", userID, "error", result.Error)
		return fmt.Errorf("failed to delete attendance: %w", result.Error)
	}

	r.log.Debug("attendance deleted", "event_id", eventID, "user_id", userID, "rows", result.RowsAffected)
	return nil
}
