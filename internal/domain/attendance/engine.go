package attendance

import (
	"context"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/gravadigital/community-api/internal/logger"
)

// Store is the data-access collaborator holding RSVP rows. Implementations
// must upsert keyed uniquely on (eventID, userID).
type Store interface {
	GetStatus(ctx context.Context, eventID, userID string) (Status, error)
	CountGoing(ctx context.Context, eventID string) (int, error)
	Upsert(ctx context.Context, eventID, userID string, status Status) error
	Delete(ctx context.Context, eventID, userID string) error
}

// Identity resolves the signed-in user for a request.
type Identity interface {
	CurrentUser(ctx context.Context) (userID string, ok bool)
}

// IdentityFunc adapts a function to Identity.
type IdentityFunc func(ctx context.Context) (string, bool)

func (f IdentityFunc) CurrentUser(ctx context.Context) (string, bool) {
	return f(ctx)
}

// Observer is notified of engine outcomes. A nil Observer is allowed.
type Observer interface {
	ReadDegraded(field string)
	ToggleSettled(action Action, err error)
}

// Engine hands out trackers bound to one store and identity source.
type Engine struct {
	store    Store
	identity Identity
	observer Observer
	log      *log.Logger
}

// NewEngine creates an attendance engine. observer may be nil.
func NewEngine(store Store, identity Identity, observer Observer) *Engine {
	return &Engine{
		store:    store,
		identity: identity,
		observer: observer,
		log:      logger.Service("attendance"),
	}
}

// Track creates the state for one event in one viewing session. Trackers never
// share state; two trackers for the same event converge through re-fetches.
func (e *Engine) Track(eventID string) *Tracker {
	return &Tracker{
		engine:  e,
		eventID: eventID,
		log:     e.log.With("event_id", eventID),
	}
}

// Load is a shortcut for a fresh tracker's first fetch.
func (e *Engine) Load(ctx context.Context, eventID string) (*Tracker, View) {
	t := e.Track(eventID)
	return t, t.Load(ctx)
}

// Tracker mirrors one user's RSVP for one event against the store. State
// transitions are serialized; store calls run unlocked, so overlapping toggles
// are allowed and the latest one wins.
type Tracker struct {
	engine  *Engine
	eventID string
	log     *log.Logger

	mu    sync.Mutex
	state State
	seq   uint64
}

// EventID returns the event this tracker follows.
func (t *Tracker) EventID() string {
	return t.eventID
}

// View returns the current view.
func (t *Tracker) View() View {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.View
}

// State returns a copy of the full tracker state.
func (t *Tracker) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Load fetches the caller's status and the going count. It never fails: an
// anonymous caller gets StatusNone with the real count, and a failed read
// degrades that field to its default.
func (t *Tracker) Load(ctx context.Context) View {
	seq := t.dispatchNext(func(seq uint64) Event { return LoadStarted{Seq: seq} })

	status, count, _ := t.read(ctx, true)

	return t.dispatch(Loaded{Seq: seq, Status: status, GoingCount: count})
}

// Toggle applies requested with toggle-button semantics: the same status twice
// clears the RSVP. The view changes optimistically before the store call and is
// rolled back if the call fails, in which case the returned error wraps
// ErrStoreWrite. On success the view is replaced by a fresh read.
func (t *Tracker) Toggle(ctx context.Context, requested Status) (View, error) {
	if !requested.Storable() {
		return t.View(), fmt.Errorf("%w: %s", ErrInvalidStatus, requested)
	}

	userID, ok := t.engine.identity.CurrentUser(ctx)
	if !ok || userID == "" {
		t.log.Debug("toggle rejected, no signed-in user")
		return t.View(), ErrUnauthenticated
	}

	var action Action
	seq := t.dispatchNext(func(seq uint64) Event {
		action, _, _ = Transition(t.state.View.Status, requested)
		return ToggleRequested{Seq: seq, Requested: requested}
	})

	log := t.log.With("user_id", userID, "seq", seq, "action", action.String())
	log.Debug("optimistic toggle applied", "requested", requested.String())

	var err error
	switch action {
	case ActionDelete:
		err = t.engine.store.Delete(ctx, t.eventID, userID)
	default:
		err = t.engine.store.Upsert(ctx, t.eventID, userID, requested)
	}

	if err != nil {
		view := t.dispatch(MutationFailed{Seq: seq})
		log.Error("toggle failed, rolled back", "error", err)
		t.notifySettled(action, err)
		return view, fmt.Errorf("%w: %w", ErrStoreWrite, err)
	}

	status, count, readOK := t.read(ctx, false)
	view := t.dispatch(Refetched{Seq: seq, Status: status, GoingCount: count, OK: readOK})
	log.Debug("toggle reconciled", "status", view.Status.String(), "going_count", view.GoingCount)
	t.notifySettled(action, nil)
	return view, nil
}

// read fetches status and count. With degrade set, failed fields fall back to
// none/0; otherwise ok reports whether both reads succeeded.
func (t *Tracker) read(ctx context.Context, degrade bool) (status Status, count int, ok bool) {
	ok = true

	if userID, signedIn := t.engine.identity.CurrentUser(ctx); signedIn && userID != "" {
		s, err := t.engine.store.GetStatus(ctx, t.eventID, userID)
		if err != nil {
			ok = false
			t.log.Error("failed to fetch attendance status", "user_id", userID, "error", fmt.Errorf("%w: %w", ErrStoreRead, err))
			t.notifyDegraded("status")
		} else {
			status = s
		}
	}

	n, err := t.engine.store.CountGoing(ctx, t.eventID)
	if err != nil {
		ok = false
		t.log.Error("failed to fetch going count", "error", fmt.Errorf("%w: %w", ErrStoreRead, err))
		t.notifyDegraded("going_count")
	} else {
		count = n
	}

	if !degrade && !ok {
		return StatusNone, 0, false
	}
	return status, count, ok
}

func (t *Tracker) dispatchNext(build func(seq uint64) Event) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.seq++
	t.state = Reduce(t.state, build(t.seq))
	return t.seq
}

func (t *Tracker) dispatch(ev Event) View {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = Reduce(t.state, ev)
	return t.state.View
}

func (t *Tracker) notifyDegraded(field string) {
	if t.engine.observer != nil {
		t.engine.observer.ReadDegraded(field)
	}
}

func (t *Tracker) notifySettled(action Action, err error) {
	if t.engine.observer != nil {
		t.engine.observer.ToggleSettled(action, err)
	}
}
