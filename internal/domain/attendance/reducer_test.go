package attendance

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		current, requested Status
		action             Action
		next               Status
		delta              int
	}{
		{StatusNone, StatusGoing, ActionUpsert, StatusGoing, 1},
		{StatusNone, StatusInterested, ActionUpsert, StatusInterested, 0},
		{StatusGoing, StatusGoing, ActionDelete, StatusNone, -1},
		{StatusInterested, StatusInterested, ActionDelete, StatusNone, 0},
		{StatusGoing, StatusInterested, ActionUpsert, StatusInterested, -1},
		{StatusInterested, StatusGoing, ActionUpsert, StatusGoing, 1},
	}

	for _, tt := range tests {
		t.Run(tt.current.String()+"->"+tt.requested.String(), func(t *testing.T) {
			action, next, delta := Transition(tt.current, tt.requested)
			assert.Equal(t, tt.action, action)
			assert.Equal(t, tt.next, next)
			assert.Equal(t, tt.delta, delta)
		})
	}
}

func TestReduceLoadCycle(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Seq: 1})
	assert.True(t, s.View.Pending)
	assert.Equal(t, PhasePending, s.Phase)

	s = Reduce(s, Loaded{Seq: 1, Status: StatusGoing, GoingCount: 7})
	assert.Equal(t, View{Status: StatusGoing, GoingCount: 7}, s.View)
	assert.Equal(t, PhaseReconciled, s.Phase)
}

func TestReduceToggleAndRollback(t *testing.T) {
	loaded := Reduce(Reduce(State{}, LoadStarted{Seq: 1}), Loaded{Seq: 1, GoingCount: 4})

	optimistic := Reduce(loaded, ToggleRequested{Seq: 2, Requested: StatusGoing})
	assert.Equal(t, View{Status: StatusGoing, GoingCount: 5, Pending: true}, optimistic.View)
	assert.Equal(t, PhasePending, optimistic.Phase)

	rolledBack := Reduce(optimistic, MutationFailed{Seq: 2})
	assert.Equal(t, loaded.View, rolledBack.View)
	assert.Equal(t, loaded.Phase, rolledBack.Phase)
}

func TestReduceIgnoresStaleCompletions(t *testing.T) {
	s := Reduce(State{}, LoadStarted{Seq: 1})
	s = Reduce(s, Loaded{Seq: 1, GoingCount: 2})
	s = Reduce(s, ToggleRequested{Seq: 2, Requested: StatusGoing})
	s = Reduce(s, ToggleRequested{Seq: 3, Requested: StatusInterested})

	afterStale := Reduce(s, Refetched{Seq: 2, Status: StatusGoing, GoingCount: 3, OK: true})
	assert.Equal(t, s, afterStale)

	afterStaleFailure := Reduce(s, MutationFailed{Seq: 2})
	assert.Equal(t, s, afterStaleFailure)

	final := Reduce(s, Refetched{Seq: 3, Status: StatusInterested, GoingCount: 2, OK: true})
	assert.Equal(t, View{Status: StatusInterested, GoingCount: 2}, final.View)
}

func TestReduceNeverGoesNegative(t *testing.T) {
	s := State{View: View{Status: StatusGoing, GoingCount: 0}, Phase: PhaseReconciled}

	s = Reduce(s, ToggleRequested{Seq: 1, Requested: StatusGoing})

	assert.Equal(t, 0, s.View.GoingCount)
	assert.Equal(t, StatusNone, s.View.Status)
}

func TestReduceDoesNotMutateInput(t *testing.T) {
	in := State{View: View{Status: StatusInterested, GoingCount: 1}, Phase: PhaseReconciled, Seq: 4}
	copyOfIn := in

	_ = Reduce(in, ToggleRequested{Seq: 5, Requested: StatusGoing})

	assert.Equal(t, copyOfIn, in)
}

func TestStatusJSON(t *testing.T) {
	data, err := json.Marshal(View{Status: StatusInterested, GoingCount: 3})
	require.NoError(t, err)
	assert.JSONEq(t, `{"status":"interested","going_count":3,"pending":false}`, string(data))

	var s Status
	require.NoError(t, json.Unmarshal([]byte(`"going"`), &s))
	assert.Equal(t, StatusGoing, s)

	err = json.Unmarshal([]byte(`"maybe"`), &s)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestStatusDatabaseRoundTrip(t *testing.T) {
	v, err := StatusGoing.Value()
	require.NoError(t, err)
	assert.Equal(t, "going", v)

	_, err = StatusNone.Value()
	assert.ErrorIs(t, err, ErrInvalidStatus)

	var s Status
	require.NoError(t, s.Scan([]byte("interested")))
	assert.Equal(t, StatusInterested, s)
	require.NoError(t, s.Scan(nil))
	assert.Equal(t, StatusNone, s)
	assert.Error(t, s.Scan(42))
}
