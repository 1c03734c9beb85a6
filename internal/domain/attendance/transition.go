package attendance

// Action is the store mutation a toggle resolves to.
type Action byte

const (
	ActionUpsert Action = iota
	ActionDelete
)

func (a Action) String() string {
	if a == ActionDelete {
		return "delete"
	}
	return "upsert"
}

// Transition resolves a toggle from current to requested. Clicking the active
// status again clears the RSVP; anything else writes requested. delta is the
// change to the going count.
func Transition(current, requested Status) (action Action, next Status, delta int) {
	if current == requested {
		return ActionDelete, StatusNone, -goingWeight(current)
	}
	return ActionUpsert, requested, goingWeight(requested) - goingWeight(current)
}

func goingWeight(s Status) int {
	if s == StatusGoing {
		return 1
	}
	return 0
}
