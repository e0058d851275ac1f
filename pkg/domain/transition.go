package domain

import "time"

// FieldKind tells the presentation layer which input widget to use.
type FieldKind string

const (
	FieldText FieldKind = "text"
	FieldDate FieldKind = "date"
)

// Valid reports whether the kind is one the board knows how to render.
func (k FieldKind) Valid() bool {
	return k == FieldText || k == FieldDate
}

// TransitionRule is a directed edge: moving a block From -> To is permitted.
type TransitionRule struct {
	From LaneID `json:"from" yaml:"from"`
	To   LaneID `json:"to" yaml:"to"`
}

// TransitionField describes one piece of metadata collected when crossing an edge.
type TransitionField struct {
	Name  string    `json:"name" yaml:"name"`
	Kind  FieldKind `json:"type" yaml:"type"`
	Label string    `json:"label" yaml:"label"`
}

// TransitionRecord is an audit entry appended to a block's history on commit.
// It is never mutated after it has been appended.
type TransitionRecord struct {
	From      LaneID            `json:"from"`
	To        LaneID            `json:"to"`
	Data      map[string]string `json:"data"`
	Timestamp time.Time         `json:"timestamp"`
}

// Clone returns a deep copy of the record.
func (r TransitionRecord) Clone() TransitionRecord {
	data := make(map[string]string, len(r.Data))
	for k, v := range r.Data {
		data[k] = v
	}
	r.Data = data
	return r
}
