package attendance

import "errors"

var (
	// ErrUnauthenticated rejects a toggle attempted without a signed-in user.
	ErrUnauthenticated = errors.New("attendance: not signed in")

	// ErrInvalidStatus rejects a requested status other than going or interested.
	ErrInvalidStatus = errors.New("attendance: invalid status")

	// ErrStoreRead marks a failed status or count fetch. Load never returns it;
	// it is logged and the view degrades to safe defaults.
	ErrStoreRead = errors.New("attendance: store read failed")

	// ErrStoreWrite marks a failed upsert or delete. The optimistic change has
	// been rolled back and the caller may retry.
	ErrStoreWrite = errors.New("attendance: store write failed")
)
