package domain

// LaneID identifies a lane of the board.
type LaneID string

// Lanes of the reference board.
const (
	LaneTodo       LaneID = "todo"
	LaneInProgress LaneID = "inProgress"
	LaneReview     LaneID = "review"
	LaneDone       LaneID = "done"
)

// Lane is a column of the board. Lanes are immutable once a registry is built.
type Lane struct {
	ID    LaneID `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
}

func (id LaneID) String() string {
	return string(id)
}
