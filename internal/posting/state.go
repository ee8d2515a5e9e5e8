package posting

import "fmt"

// State is the tri-state notification status of a posting.
//
// Valid transition graph inside the engine:
//
//	UNNOTIFIED ──► NOTIFIED
//
// SUPPRESSED is a terminal state reserved for an external user opt-out; the
// engine never sets it. NOTIFIED and SUPPRESSED have no outgoing transitions.
type State string

const (
	StateUnnotified State = "unnotified"
	StateNotified   State = "notified"
	StateSuppressed State = "suppressed"
)

// ParseState converts a raw string to a State, returning an error for
// unknown values.
func ParseState(s string) (State, error) {
	st := State(s)
	switch st {
	case StateUnnotified, StateNotified, StateSuppressed:
		return st, nil
	}
	return "", fmt.Errorf("unknown notification state %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// engine's state machine.
func IsTransitionAllowed(from, to State) bool {
	return from == StateUnnotified && to == StateNotified
}

// Pending returns true when the posting still awaits delivery.
func Pending(s State) bool { return s == StateUnnotified }
