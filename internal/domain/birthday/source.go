package birthday

import "context"

// ProfileSource supplies the roster a projection runs over.
type ProfileSource interface {
	ListWithBirthday(ctx context.Context) ([]RawProfile, error)
}
