package event

import (
	"context"
	"time"

	"github.com/gravadigital/community-api/internal/domain/common"
)

type Repository interface {
	Create(ctx context.Context, e *Event) error
	GetByID(ctx context.Context, id string) (*Event, error)
	List(ctx context.Context, from time.Time, page common.Page) ([]*Event, error)
}
