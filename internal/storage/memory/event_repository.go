package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/domain/event"
)

// EventRepository is an in-memory event store for tests and local runs
type EventRepository struct {
	mu     sync.RWMutex
	events map[string]*event.Event
}

func NewEventRepository() *EventRepository {
	return &EventRepository{
		events: make(map[string]*event.Event),
	}
}

func (r *EventRepository) Create(_ context.Context, e *event.Event) error {
	if err := e.Validate(); err != nil {
		return err
	}
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *e
	r.events[e.ID.String()] = &stored
	return nil
}

func (r *EventRepository) GetByID(_ context.Context, id string) (*event.Event, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, exists := r.events[id]
	if !exists {
		return nil, common.ErrNotFound
	}
	found := *e
	return &found, nil
}

func (r *EventRepository) List(_ context.Context, from time.Time, page common.Page) ([]*event.Event, error) {
	page = page.Normalize()

	r.mu.RLock()
	events := make([]*event.Event, 0, len(r.events))
	for _, e := range r.events {
		if from.IsZero() || e.IsUpcoming(from) {
			found := *e
			events = append(events, &found)
		}
	}
	r.mu.RUnlock()

	slices.SortFunc(events, func(a, b *event.Event) int {
		return a.StartsAt.Compare(b.StartsAt)
	})

	if page.Offset >= len(events) {
		return []*event.Event{}, nil
	}
	end := min(page.Offset+page.Limit, len(events))
	return events[page.Offset:end], nil
}
