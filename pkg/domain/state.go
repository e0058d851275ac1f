package domain

// SessionStatus is the tag of a UI session's state machine.
type SessionStatus string

const (
	StatusIdle    SessionStatus = "idle"    // No move in flight
	StatusPending SessionStatus = "pending" // A validated move waits for metadata
)

// SessionState is the tagged variant {Idle, Pending(candidate)}.
// Candidate is nil exactly when Status is StatusIdle.
type SessionState struct {
	Status    SessionStatus      `json:"status"`
	Candidate *PendingTransition `json:"candidate,omitempty"`

	// Notice is the transient error banner text, empty when dismissed.
	Notice string `json:"notice,omitempty"`
}

// Idle returns the resting state.
func Idle() SessionState {
	return SessionState{Status: StatusIdle}
}

// Pending returns the state holding candidate.
func Pending(candidate PendingTransition) SessionState {
	return SessionState{Status: StatusPending, Candidate: &candidate}
}
