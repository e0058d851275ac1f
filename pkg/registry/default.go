package registry

import "github.com/aretw0/swimlane/pkg/domain"

// DefaultDefinition describes the reference four-lane board.
func DefaultDefinition() Definition {
	return Definition{
		Name: "default",
		Lanes: []domain.Lane{
			{ID: domain.LaneTodo, Title: "To Do"},
			{ID: domain.LaneInProgress, Title: "In Progress"},
			{ID: domain.LaneReview, Title: "Review"},
			{ID: domain.LaneDone, Title: "Done"},
		},
		Transitions: []EdgeDefinition{
			{From: domain.LaneTodo, To: domain.LaneInProgress, Fields: []domain.TransitionField{
				{Name: "assignee", Kind: domain.FieldText, Label: "Assignee"},
			}},
			{From: domain.LaneInProgress, To: domain.LaneReview, Fields: []domain.TransitionField{
				{Name: "reviewer", Kind: domain.FieldText, Label: "Reviewer"},
			}},
			{From: domain.LaneInProgress, To: domain.LaneDone, Fields: []domain.TransitionField{
				{Name: "completionDate", Kind: domain.FieldDate, Label: "Completion Date"},
			}},
			{From: domain.LaneReview, To: domain.LaneInProgress, Fields: []domain.TransitionField{
				{Name: "comments", Kind: domain.FieldText, Label: "Review Comments"},
			}},
			{From: domain.LaneReview, To: domain.LaneDone, Fields: []domain.TransitionField{
				{Name: "approvalDate", Kind: domain.FieldDate, Label: "Approval Date"},
			}},
			{From: domain.LaneDone, To: domain.LaneTodo, Fields: []domain.TransitionField{
				{Name: "reason", Kind: domain.FieldText, Label: "Reason for Reopening"},
			}},
		},
	}
}

// Default returns the registry for the reference board.
// The definition is static, so a validation failure is a programming error.
func Default() *Registry {
	r, err := New(DefaultDefinition())
	if err != nil {
		panic(err)
	}
	return r
}

// SeedBlocks returns the blocks the reference board starts with.
func SeedBlocks() []domain.Block {
	return []domain.Block{
		domain.NewBlock("block-1", "Block 1", domain.LaneTodo),
		domain.NewBlock("block-2", "Block 2", domain.LaneInProgress),
		domain.NewBlock("block-3", "Block 3", domain.LaneDone),
	}
}
