package member

import (
	"context"

	"github.com/gravadigital/community-api/internal/domain/birthday"
)

// Repository is the member directory. It doubles as the roster the birthday
// projection reads.
type Repository interface {
	birthday.ProfileSource
	Create(ctx context.Context, p *Profile) error
	GetByID(ctx context.Context, id string) (*Profile, error)
}
