package domain

import "strings"

// Block is a work item tracked by the board.
// ID and Content never change after creation; Lane and History only change
// through a committed transition.
type Block struct {
	ID      string             `json:"id"`
	Content string             `json:"content"`
	Lane    LaneID             `json:"state"`
	History []TransitionRecord `json:"history"`
}

// NewBlock creates a block with an empty history.
func NewBlock(id, content string, lane LaneID) Block {
	return Block{
		ID:      id,
		Content: content,
		Lane:    lane,
		History: []TransitionRecord{},
	}
}

// Snapshot returns a deep copy so callers cannot alias the stored history.
func (b Block) Snapshot() Block {
	history := make([]TransitionRecord, len(b.History))
	for i, rec := range b.History {
		history[i] = rec.Clone()
	}
	b.History = history
	return b
}

// Matches reports whether the block content contains filter, ignoring case.
// An empty filter matches every block.
func (b Block) Matches(filter string) bool {
	if filter == "" {
		return true
	}
	return strings.Contains(strings.ToLower(b.Content), strings.ToLower(filter))
}

// FilterBlocks keeps the blocks whose content matches filter.
// The input slice is not modified.
func FilterBlocks(blocks []Block, filter string) []Block {
	out := make([]Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Matches(filter) {
			out = append(out, b)
		}
	}
	return out
}
