package attendance

// Phase is where a view sits in the load/toggle cycle.
type Phase byte

const (
	PhaseIdle Phase = iota
	PhasePending
	PhaseReconciled
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseReconciled:
		return "reconciled"
	default:
		return "idle"
	}
}

// View is what an event card renders: the caller's RSVP, the number of members
// going, and whether a store call is still outstanding.
type View struct {
	Status     Status `json:"status"`
	GoingCount int    `json:"going_count"`
	Pending    bool   `json:"pending"`
}

// State is the full tracker state. Seq is the sequence number of the latest
// issued operation; results tagged with an older number are discarded.
// Rollback holds what the view looked like before the latest toggle.
type State struct {
	View     View
	Phase    Phase
	Seq      uint64
	Rollback View
	Before   Phase
}

// Event is an input to Reduce.
type Event interface {
	seq() uint64
}

// LoadStarted marks the beginning of an initial fetch.
type LoadStarted struct{ Seq uint64 }

// Loaded carries the result of an initial fetch, already degraded to defaults
// for any field whose read failed.
type Loaded struct {
	Seq        uint64
	Status     Status
	GoingCount int
}

// ToggleRequested applies the optimistic change for a toggle.
type ToggleRequested struct {
	Seq       uint64
	Requested Status
}

// MutationFailed rolls a toggle back.
type MutationFailed struct{ Seq uint64 }

// Refetched carries the authoritative state read after a successful mutation.
// When OK is false the read failed and the optimistic value is kept.
type Refetched struct {
	Seq        uint64
	Status     Status
	GoingCount int
	OK         bool
}

func (e LoadStarted) seq() uint64     { return e.Seq }
func (e Loaded) seq() uint64          { return e.Seq }
func (e ToggleRequested) seq() uint64 { return e.Seq }
func (e MutationFailed) seq() uint64  { return e.Seq }
func (e Refetched) seq() uint64       { return e.Seq }

// Reduce returns the state that follows s after ev. It never mutates s.
// Completion events (Loaded, MutationFailed, Refetched) whose sequence number
// is not the latest issued are ignored so a slow response cannot overwrite a
// newer optimistic state.
func Reduce(s State, ev Event) State {
	switch e := ev.(type) {
	case LoadStarted:
		s.Seq = e.Seq
		s.View.Pending = true
		s.Phase = PhasePending

	case Loaded:
		if e.Seq != s.Seq {
			return s
		}
		s.View = View{Status: e.Status, GoingCount: clampCount(e.GoingCount)}
		s.Phase = PhaseReconciled

	case ToggleRequested:
		s.Rollback = s.View
		s.Rollback.Pending = false
		s.Before = s.Phase
		if s.Before == PhasePending {
			s.Before = PhaseReconciled
		}

		_, next, delta := Transition(s.View.Status, e.Requested)
		s.Seq = e.Seq
		s.View = View{
			Status:     next,
			GoingCount: clampCount(s.View.GoingCount + delta),
			Pending:    true,
		}
		s.Phase = PhasePending

	case MutationFailed:
		if e.Seq != s.Seq {
			return s
		}
		s.View = s.Rollback
		s.Phase = s.Before

	case Refetched:
		if e.Seq != s.Seq {
			return s
		}
		if e.OK {
			s.View = View{Status: e.Status, GoingCount: clampCount(e.GoingCount)}
		} else {
			s.View.Pending = false
		}
		s.Phase = PhaseReconciled
	}

	return s
}

func clampCount(n int) int {
	if n < 0 {
		return 0
	}
	return n
}
