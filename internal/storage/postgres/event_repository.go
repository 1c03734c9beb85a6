package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/domain/event"
	"github.com/gravadigital/community-api/internal/logger"
)

// PostgresEventRepository implements the event repository using GORM
type PostgresEventRepository struct {
	db  *gorm.DB
	log *log.Logger
}

// NewPostgresEventRepository creates a new PostgreSQL event repository
func NewPostgresEventRepository(db *gorm.DB) *PostgresEventRepository {
	return &PostgresEventRepository{
		db:  db,
		log: logger.Repository("event"),
	}
}

func (r *PostgresEventRepository) Create(ctx context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return fmt.Errorf("event validation failed: %w", err)
	}

	if err := r.db.WithContext(ctx).Create(e).Error; err != nil {
		r.log.Error("failed to create event", "title", e.Title, "error", err)
		return fmt.Errorf("failed to create event: %w", err)
	}

	r.log.Info("event created", "event_id", e.ID, "title", e.Title)
	return nil
}

func (r *PostgresEventRepository) GetByID(ctx context.Context, id string) (*event.Event, error) {
	eventID, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid event ID format", common.ErrNotFound)
	}

	var e event.Event
	if err := r.db.WithContext(ctx).First(&e, "id = ?", eventID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("event not found", "event_id", id)
			return nil, common.ErrNotFound
		}
		r.log.Error("failed to retrieve event", "event_id", id, "error", err)
		return nil, fmt.Errorf("failed to retrieve event: %w", err)
	}

	return &e, nil
}

// List returns events ordered by start time. A non-zero from hides events
// that have already ended.
func (r *PostgresEventRepository) List(ctx context.Context, from time.Time, page common.Page) ([]*event.Event, error) {
	page = page.Normalize()

	query := r.db.WithContext(ctx).Order("starts_at ASC").Limit(page.Limit).Offset(page.Offset)
	if !from.IsZero() {
		query = query.Where("ends_at > ?", from)
	}

	var events []*event.Event
	if err := query.Find(&events).Error; err != nil {
		r.log.Error("failed to list events", "error", err)
		return nil, fmt.Errorf("failed to list events: %w", err)
	}

	r.log.Debug("events listed", "count", len(events), "limit", page.Limit, "offset", page.Offset)
	return events, nil
}
