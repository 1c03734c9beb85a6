package attendance_test

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/storage/memory"
)

const (
	eventID = "7a1c2f64-3a53-4a4e-9d38-6a0b8f2c1d11"
	userID  = "0f5e8a4c-2b7d-4d0e-8a61-5c9e3f7b2a90"
)

var errBoom = errors.New("connection reset")

func signedIn(id string) attendance.Identity {
	return attendance.IdentityFunc(func(context.Context) (string, bool) { return id, true })
}

var anonymous = attendance.IdentityFunc(func(context.Context) (string, bool) { return "", false })

// flakyStore wraps the memory store and fails the operations it is told to.
type flakyStore struct {
	*memory.AttendanceStore
	failUpsert error
	failDelete error
	failStatus error
	failCount  error
}

func (s *flakyStore) Upsert(ctx context.Context, eventID, userID string, status attendance.Status) error {
	if s.failUpsert != nil {
		return s.failUpsert
	}
	return s.AttendanceStore.Upsert(ctx, eventID, userID, status)
}

func (s *flakyStore) Delete(ctx context.Context, eventID, userID string) error {
	if s.failDelete != nil {
		return s.failDelete
	}
	return s.AttendanceStore.Delete(ctx, eventID, userID)
}

func (s *flakyStore) GetStatus(ctx context.Context, eventID, userID string) (attendance.Status, error) {
	if s.failStatus != nil {
		return attendance.StatusNone, s.failStatus
	}
	return s.AttendanceStore.GetStatus(ctx, eventID, userID)
}

func (s *flakyStore) CountGoing(ctx context.Context, eventID string) (int, error) {
	if s.failCount != nil {
		return 0, s.failCount
	}
	return s.AttendanceStore.CountGoing(ctx, eventID)
}

type recordingObserver struct {
	mu       sync.Mutex
	degraded []string
	settled  []error
}

func (o *recordingObserver) ReadDegraded(field string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.degraded = append(o.degraded, field)
}

func (o *recordingObserver) ToggleSettled(_ attendance.Action, err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.settled = append(o.settled, err)
}

// seedGoing records n other members as going.
func seedGoing(t *testing.T, store attendance.Store, n int) {
	t.Helper()
	for i := range n {
		require.NoError(t, store.Upsert(context.Background(), eventID, string(rune('a'+i)), attendance.StatusGoing))
	}
}

func TestLoadSignedIn(t *testing.T) {
	store := memory.NewAttendanceStore()
	seedGoing(t, store, 3)
	require.NoError(t, store.Upsert(context.Background(), eventID, userID, attendance.StatusInterested))

	_, view := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	assert.Equal(t, attendance.View{Status: attendance.StatusInterested, GoingCount: 3}, view)
}

func TestLoadAnonymousStillCounts(t *testing.T) {
	store := memory.NewAttendanceStore()
	seedGoing(t, store, 2)

	_, view := attendance.NewEngine(store, anonymous, nil).Load(context.Background(), eventID)

	assert.Equal(t, attendance.StatusNone, view.Status)
	assert.Equal(t, 2, view.GoingCount)
	assert.False(t, view.Pending)
}

func TestLoadDegradesOnReadErrors(t *testing.T) {
	store := &flakyStore{AttendanceStore: memory.NewAttendanceStore(), failStatus: errBoom, failCount: errBoom}
	seedGoing(t, store.AttendanceStore, 4)
	observer := &recordingObserver{}

	tracker, view := attendance.NewEngine(store, signedIn(userID), observer).Load(context.Background(), eventID)

	assert.Equal(t, attendance.View{}, view)
	assert.Equal(t, attendance.PhaseReconciled, tracker.State().Phase)
	assert.ElementsMatch(t, []string{"status", "going_count"}, observer.degraded)
}

func TestLoadDegradesOnlyFailedField(t *testing.T) {
	store := &flakyStore{AttendanceStore: memory.NewAttendanceStore(), failStatus: errBoom}
	seedGoing(t, store.AttendanceStore, 2)

	_, view := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	assert.Equal(t, attendance.StatusNone, view.Status)
	assert.Equal(t, 2, view.GoingCount)
}

func TestToggleGoingFromNone(t *testing.T) {
	store := memory.NewAttendanceStore()
	seedGoing(t, store, 5)
	engine := attendance.NewEngine(store, signedIn(userID), nil)
	tracker, before := engine.Load(context.Background(), eventID)

	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusGoing, view.Status)
	assert.Equal(t, before.GoingCount+1, view.GoingCount)

	_, reloaded := engine.Load(context.Background(), eventID)
	assert.Equal(t, attendance.StatusGoing, reloaded.Status)
	assert.Equal(t, before.GoingCount+1, reloaded.GoingCount)
}

func TestToggleSameStatusTwiceClears(t *testing.T) {
	store := memory.NewAttendanceStore()
	seedGoing(t, store, 2)
	tracker, before := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	_, err := tracker.Toggle(context.Background(), attendance.StatusGoing)
	require.NoError(t, err)
	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusNone, view.Status)
	assert.Equal(t, before.GoingCount, view.GoingCount)
	assert.Equal(t, 2, store.Len(), "the cleared RSVP row must be deleted")
}

func TestToggleSwitchGoingToInterested(t *testing.T) {
	store := memory.NewAttendanceStore()
	seedGoing(t, store, 1)
	tracker, _ := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	going, err := tracker.Toggle(context.Background(), attendance.StatusGoing)
	require.NoError(t, err)
	view, err := tracker.Toggle(context.Background(), attendance.StatusInterested)
	require.NoError(t, err)

	assert.Equal(t, attendance.StatusInterested, view.Status)
	assert.Equal(t, going.GoingCount-1, view.GoingCount)
	assert.Equal(t, 2, store.Len(), "switching must replace the row, not add one")
}

func TestToggleRollsBackFailedUpsert(t *testing.T) {
	store := &flakyStore{AttendanceStore: memory.NewAttendanceStore()}
	seedGoing(t, store.AttendanceStore, 3)
	observer := &recordingObserver{}
	tracker, before := attendance.NewEngine(store, signedIn(userID), observer).Load(context.Background(), eventID)

	store.failUpsert = errBoom
	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)

	require.Error(t, err)
	assert.ErrorIs(t, err, attendance.ErrStoreWrite)
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, before, view)
	assert.Equal(t, before, tracker.View())
	assert.Equal(t, attendance.PhaseReconciled, tracker.State().Phase)
	require.Len(t, observer.settled, 1)
	assert.ErrorIs(t, observer.settled[0], errBoom)
}

func TestToggleRollsBackFailedDelete(t *testing.T) {
	store := &flakyStore{AttendanceStore: memory.NewAttendanceStore()}
	require.NoError(t, store.AttendanceStore.Upsert(context.Background(), eventID, userID, attendance.StatusGoing))
	tracker, before := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)
	require.Equal(t, attendance.StatusGoing, before.Status)

	store.failDelete = errBoom
	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)

	assert.ErrorIs(t, err, attendance.ErrStoreWrite)
	assert.Equal(t, before, view)
}

func TestToggleRetryAfterFailure(t *testing.T) {
	store := &flakyStore{AttendanceStore: memory.NewAttendanceStore()}
	tracker, _ := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	store.failUpsert = errBoom
	_, err := tracker.Toggle(context.Background(), attendance.StatusInterested)
	require.Error(t, err)

	store.failUpsert = nil
	view, err := tracker.Toggle(context.Background(), attendance.StatusInterested)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusInterested, view.Status)
}

func TestToggleUnauthenticated(t *testing.T) {
	store := memory.NewAttendanceStore()
	seedGoing(t, store, 1)
	tracker, before := attendance.NewEngine(store, anonymous, nil).Load(context.Background(), eventID)

	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)

	assert.ErrorIs(t, err, attendance.ErrUnauthenticated)
	assert.Equal(t, before, view)
	assert.Equal(t, 1, store.Len())
}

func TestToggleInvalidStatus(t *testing.T) {
	store := memory.NewAttendanceStore()
	tracker, _ := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	_, err := tracker.Toggle(context.Background(), attendance.StatusNone)

	assert.ErrorIs(t, err, attendance.ErrInvalidStatus)
	assert.Zero(t, store.Len())
}

func TestToggleKeepsOptimisticViewWhenRefetchFails(t *testing.T) {
	store := &flakyStore{AttendanceStore: memory.NewAttendanceStore()}
	seedGoing(t, store.AttendanceStore, 2)
	tracker, _ := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	store.failCount = errBoom
	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)

	require.NoError(t, err)
	assert.Equal(t, attendance.View{Status: attendance.StatusGoing, GoingCount: 3}, view)
}

func TestToggleRefetchCorrectsDrift(t *testing.T) {
	store := memory.NewAttendanceStore()
	tracker, _ := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	// Another session RSVPs after this view loaded.
	seedGoing(t, store, 4)

	view, err := tracker.Toggle(context.Background(), attendance.StatusGoing)
	require.NoError(t, err)
	assert.Equal(t, 5, view.GoingCount)
}

// gatedStore blocks the first upsert until released.
type gatedStore struct {
	*memory.AttendanceStore
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func (s *gatedStore) Upsert(ctx context.Context, eventID, userID string, status attendance.Status) error {
	first := false
	s.once.Do(func() { first = true })
	if first {
		close(s.entered)
		<-s.release
	}
	return s.AttendanceStore.Upsert(ctx, eventID, userID, status)
}

func TestOverlappingTogglesDiscardStaleRefetch(t *testing.T) {
	store := &gatedStore{
		AttendanceStore: memory.NewAttendanceStore(),
		entered:         make(chan struct{}),
		release:         make(chan struct{}),
	}
	tracker, _ := attendance.NewEngine(store, signedIn(userID), nil).Load(context.Background(), eventID)

	done := make(chan error, 1)
	go func() {
		_, err := tracker.Toggle(context.Background(), attendance.StatusGoing)
		done <- err
	}()
	<-store.entered

	second, err := tracker.Toggle(context.Background(), attendance.StatusInterested)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusInterested, second.Status)

	close(store.release)
	require.NoError(t, <-done)

	assert.Equal(t, attendance.StatusInterested, tracker.View().Status, "stale re-fetch must not clobber the newer state")
	assert.Equal(t, uint64(3), tracker.State().Seq)
}
