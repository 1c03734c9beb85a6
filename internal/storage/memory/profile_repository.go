package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/gravadigital/community-api/internal/domain/birthday"
	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/domain/member"
)

// ProfileRepository is an in-memory member directory
type ProfileRepository struct {
	mu       sync.RWMutex
	profiles []*member.Profile
}

func NewProfileRepository() *ProfileRepository {
	return &ProfileRepository{}
}

func (r *ProfileRepository) Create(_ context.Context, p *member.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *p
	r.profiles = append(r.profiles, &stored)
	return nil
}

func (r *ProfileRepository) GetByID(_ context.Context, id string) (*member.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.profiles {
		if p.ID.String() == id {
			found := *p
			return &found, nil
		}
	}
	return nil, common.ErrNotFound
}

// ListWithBirthday returns the roster rows that have a date of birth, in
// insertion order.
func (r *ProfileRepository) ListWithBirthday(_ context.Context) ([]birthday.RawProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]birthday.RawProfile, 0, len(r.profiles))
	for _, p := range r.profiles {
		if p.DOB != nil {
			out = append(out, p.Raw())
		}
	}
	return out, nil
}
