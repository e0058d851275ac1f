package domain

// BlockDiff represents the changes a commit made to a block.
// It is designed to be serialized to JSON for partial updates on the client.
type BlockDiff struct {
	// BlockID is always present to identify the target.
	BlockID string `json:"block_id"`

	// Lane is set when the block changed lane.
	Lane *LaneID `json:"state,omitempty"`

	// Appended contains the records added to the history.
	// History is append-only, so a diff never removes records.
	Appended []TransitionRecord `json:"appended,omitempty"`
}

// Diff calculates the difference between oldBlock and newBlock.
// If oldBlock is nil, it returns a diff representing the entire newBlock (initial load).
// Returns nil when nothing changed.
func Diff(oldBlock, newBlock *Block) *BlockDiff {
	if newBlock == nil {
		return nil
	}

	diff := &BlockDiff{BlockID: newBlock.ID}

	if oldBlock == nil || oldBlock.Lane != newBlock.Lane {
		lane := newBlock.Lane
		diff.Lane = &lane
	}

	oldLen := 0
	if oldBlock != nil {
		oldLen = len(oldBlock.History)
	}
	if len(newBlock.History) > oldLen {
		for _, rec := range newBlock.History[oldLen:] {
			diff.Appended = append(diff.Appended, rec.Clone())
		}
	}

	if diff.IsEmpty() {
		return nil
	}
	return diff
}

// IsEmpty checks if the diff contains any actionable changes.
func (d *BlockDiff) IsEmpty() bool {
	return d.Lane == nil && len(d.Appended) == 0
}
