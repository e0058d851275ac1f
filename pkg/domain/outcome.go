package domain

// OutcomeKind classifies the result of a move request.
type OutcomeKind string

const (
	// OutcomeNoOp means the block was dropped on its own lane. Nothing is shown.
	OutcomeNoOp OutcomeKind = "noop"
	// OutcomeRejected means the registry has no edge for the move.
	OutcomeRejected OutcomeKind = "rejected"
	// OutcomePending means the move is allowed and waits for metadata + confirmation.
	OutcomePending OutcomeKind = "pending"
	// OutcomeNotFound means the block id does not resolve.
	OutcomeNotFound OutcomeKind = "not_found"
)

// ReasonNotAllowed is the rejection reason for a structurally disallowed move.
const ReasonNotAllowed = "not allowed"

// Outcome is the explicit result of RequestMove.
// Expected conditions (no-op, rejection, unknown block) are values, not errors.
type Outcome struct {
	Kind    OutcomeKind       `json:"kind"`
	BlockID string            `json:"block_id"`
	From    LaneID            `json:"from,omitempty"`
	To      LaneID            `json:"to"`
	Fields  []TransitionField `json:"fields,omitempty"`
	Reason  string            `json:"reason,omitempty"`
}

// Pending extracts the candidate transition from a pending outcome.
func (o Outcome) Pending() (PendingTransition, bool) {
	if o.Kind != OutcomePending {
		return PendingTransition{}, false
	}
	return PendingTransition{
		BlockID: o.BlockID,
		From:    o.From,
		To:      o.To,
		Fields:  o.Fields,
	}, true
}

// PendingTransition is a validated move held while the user supplies metadata.
// From is informational: the commit re-derives it from the block.
type PendingTransition struct {
	BlockID string            `json:"block_id"`
	From    LaneID            `json:"from"`
	To      LaneID            `json:"to"`
	Fields  []TransitionField `json:"fields"`
}
