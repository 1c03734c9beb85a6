package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravadigital/community-api/internal/domain/attendance"
	"github.com/gravadigital/community-api/internal/domain/common"
	"github.com/gravadigital/community-api/internal/domain/event"
	"github.com/gravadigital/community-api/internal/domain/member"
)

var base = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

func TestEventRepositoryListOrdersAndFilters(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()

	past := event.NewEvent("Past", "", "", base.Add(-48*time.Hour), base.Add(-47*time.Hour))
	later := event.NewEvent("Later", "", "", base.Add(72*time.Hour), base.Add(73*time.Hour))
	soon := event.NewEvent("Soon", "", "", base.Add(24*time.Hour), base.Add(25*time.Hour))
	for _, e := range []*event.Event{past, later, soon} {
		require.NoError(t, repo.Create(ctx, e))
	}

	all, err := repo.List(ctx, time.Time{}, common.Page{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"Past", "Soon", "Later"}, []string{all[0].Title, all[1].Title, all[2].Title})

	upcoming, err := repo.List(ctx, base, common.Page{})
	require.NoError(t, err)
	require.Len(t, upcoming, 2)
	assert.Equal(t, "Soon", upcoming[0].Title)

	paged, err := repo.List(ctx, time.Time{}, common.Page{Limit: 1, Offset: 2})
	require.NoError(t, err)
	require.Len(t, paged, 1)
	assert.Equal(t, "Later", paged[0].Title)

	empty, err := repo.List(ctx, time.Time{}, common.Page{Offset: 10})
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestEventRepositoryGetByID(t *testing.T) {
	ctx := context.Background()
	repo := NewEventRepository()
	e := event.NewEvent("Meetup", "", "", base, base.Add(time.Hour))
	require.NoError(t, repo.Create(ctx, e))

	found, err := repo.GetByID(ctx, e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Meetup", found.Title)

	found.Title = "mutated"
	again, err := repo.GetByID(ctx, e.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "Meetup", again.Title, "callers get copies")

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestProfileRepositoryListWithBirthday(t *testing.T) {
	ctx := context.Background()
	repo := NewProfileRepository()
	name := "Asha"
	dob := time.Date(1990, 3, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.Create(ctx, &member.Profile{FullName: &name, Email: "asha@example.org", DOB: &dob}))
	require.NoError(t, repo.Create(ctx, &member.Profile{Email: "pending@example.org"}))

	rows, err := repo.ListWithBirthday(ctx)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.NotNil(t, rows[0].DOB)
	assert.Equal(t, "1990-03-10", *rows[0].DOB)
	assert.Equal(t, "Asha", *rows[0].FullName)
}

func TestAttendanceStore(t *testing.T) {
	ctx := context.Background()
	store := NewAttendanceStore()

	status, err := store.GetStatus(ctx, "e1", "u1")
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusNone, status)

	require.NoError(t, store.Upsert(ctx, "e1", "u1", attendance.StatusGoing))
	require.NoError(t, store.Upsert(ctx, "e1", "u2", attendance.StatusInterested))
	require.NoError(t, store.Upsert(ctx, "e2", "u1", attendance.StatusGoing))

	count, err := store.CountGoing(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	require.NoError(t, store.Upsert(ctx, "e1", "u1", attendance.StatusInterested))
	count, err = store.CountGoing(ctx, "e1")
	require.NoError(t, err)
	assert.Zero(t, count)
	assert.Equal(t, 3, store.Len())

	require.NoError(t, store.Delete(ctx, "e1", "u1"))
	require.NoError(t, store.Delete(ctx, "e1", "u1"), "deleting a missing row is a no-op")
	assert.Equal(t, 2, store.Len())

	assert.ErrorIs(t, store.Upsert(ctx, "e1", "u1", attendance.StatusNone), attendance.ErrInvalidStatus)
}
