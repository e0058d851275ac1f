// Package registry holds the static description of a board: its lanes, the
// directed transition graph between them (Lane Registry) and the metadata
// each edge asks for (Transition Metadata Catalog).
//
// A Registry is immutable after New returns and safe for concurrent use.
package registry

import (
	"fmt"
	"strings"

	"github.com/aretw0/swimlane/pkg/domain"
)

// EdgeDefinition declares one allowed transition and the fields it collects.
type EdgeDefinition struct {
	From   domain.LaneID            `json:"from" yaml:"from"`
	To     domain.LaneID            `json:"to" yaml:"to"`
	Fields []domain.TransitionField `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Definition is the serializable form of a board.
type Definition struct {
	Name        string           `json:"name,omitempty" yaml:"name,omitempty"`
	Lanes       []domain.Lane    `json:"lanes" yaml:"lanes"`
	Transitions []EdgeDefinition `json:"transitions" yaml:"transitions"`
}

// Registry answers "may a block move from A to B, and what do we ask for?".
type Registry struct {
	name    string
	lanes   []domain.Lane
	index   map[domain.LaneID]int
	targets map[domain.LaneID][]domain.LaneID
	reach   map[domain.LaneID]map[domain.LaneID]struct{}
	fields  map[domain.TransitionRule][]domain.TransitionField
}

// New validates def and builds a Registry from it.
// Every edge must reference declared lanes; field names must be unique per edge.
func New(def Definition) (*Registry, error) {
	r := &Registry{
		name:    def.Name,
		index:   make(map[domain.LaneID]int),
		targets: make(map[domain.LaneID][]domain.LaneID),
		reach:   make(map[domain.LaneID]map[domain.LaneID]struct{}),
		fields:  make(map[domain.TransitionRule][]domain.TransitionField),
	}

	var problems []string
	if len(def.Lanes) == 0 {
		problems = append(problems, "board declares no lanes")
	}

	for _, lane := range def.Lanes {
		if lane.ID == "" {
			problems = append(problems, "lane with empty id")
			continue
		}
		if _, dup := r.index[lane.ID]; dup {
			problems = append(problems, fmt.Sprintf("duplicate lane '%s'", lane.ID))
			continue
		}
		if lane.Title == "" {
			lane.Title = string(lane.ID)
		}
		r.index[lane.ID] = len(r.lanes)
		r.lanes = append(r.lanes, lane)
	}

	for _, edge := range def.Transitions {
		problems = append(problems, r.addEdge(edge)...)
	}

	if len(problems) > 0 {
		return nil, fmt.Errorf("%w: found %d errors:\n- %s", domain.ErrInvalidDefinition, len(problems), strings.Join(problems, "\n- "))
	}
	return r, nil
}

func (r *Registry) addEdge(edge EdgeDefinition) []string {
	var problems []string
	label := fmt.Sprintf("%s -> %s", edge.From, edge.To)

	if !r.HasLane(edge.From) {
		problems = append(problems, fmt.Sprintf("edge %s: unknown source lane '%s'", label, edge.From))
	}
	if !r.HasLane(edge.To) {
		problems = append(problems, fmt.Sprintf("edge %s: unknown target lane '%s'", label, edge.To))
	}
	if edge.From == edge.To {
		problems = append(problems, fmt.Sprintf("edge %s: self transitions are not allowed", label))
	}
	rule := domain.TransitionRule{From: edge.From, To: edge.To}
	if _, dup := r.fields[rule]; dup {
		problems = append(problems, fmt.Sprintf("edge %s: declared twice", label))
	}

	seen := make(map[string]struct{}, len(edge.Fields))
	fields := make([]domain.TransitionField, 0, len(edge.Fields))
	for _, f := range edge.Fields {
		if f.Name == "" {
			problems = append(problems, fmt.Sprintf("edge %s: field with empty name", label))
			continue
		}
		if _, dup := seen[f.Name]; dup {
			problems = append(problems, fmt.Sprintf("edge %s: duplicate field '%s'", label, f.Name))
			continue
		}
		seen[f.Name] = struct{}{}
		if f.Kind == "" {
			f.Kind = domain.FieldText
		}
		if !f.Kind.Valid() {
			problems = append(problems, fmt.Sprintf("edge %s: field '%s' has unknown type '%s'", label, f.Name, f.Kind))
			continue
		}
		if f.Label == "" {
			f.Label = f.Name
		}
		fields = append(fields, f)
	}

	if len(problems) > 0 {
		return problems
	}

	if r.reach[edge.From] == nil {
		r.reach[edge.From] = make(map[domain.LaneID]struct{})
	}
	r.reach[edge.From][edge.To] = struct{}{}
	r.targets[edge.From] = append(r.targets[edge.From], edge.To)
	r.fields[rule] = fields
	return nil
}

// Name returns the board name, if the definition had one.
func (r *Registry) Name() string {
	return r.name
}

// IsTransitionAllowed reports whether to is directly reachable from from.
// An unknown source lane has no outbound transitions.
func (r *Registry) IsTransitionAllowed(from, to domain.LaneID) bool {
	_, ok := r.reach[from][to]
	return ok
}

// HasLane reports whether id is a declared lane.
func (r *Registry) HasLane(id domain.LaneID) bool {
	_, ok := r.index[id]
	return ok
}

// Lane returns the lane with the given id.
func (r *Registry) Lane(id domain.LaneID) (domain.Lane, bool) {
	i, ok := r.index[id]
	if !ok {
		return domain.Lane{}, false
	}
	return r.lanes[i], true
}

// Lanes returns the lanes in display order.
func (r *Registry) Lanes() []domain.Lane {
	out := make([]domain.Lane, len(r.lanes))
	copy(out, r.lanes)
	return out
}

// Position returns the display index of a lane, or -1.
func (r *Registry) Position(id domain.LaneID) int {
	i, ok := r.index[id]
	if !ok {
		return -1
	}
	return i
}

// Targets returns the lanes reachable from from, in declaration order.
func (r *Registry) Targets(from domain.LaneID) []domain.LaneID {
	out := make([]domain.LaneID, len(r.targets[from]))
	copy(out, r.targets[from])
	return out
}

// Edges returns every rule, grouped by source lane in display order.
func (r *Registry) Edges() []domain.TransitionRule {
	var out []domain.TransitionRule
	for _, lane := range r.lanes {
		for _, to := range r.targets[lane.ID] {
			out = append(out, domain.TransitionRule{From: lane.ID, To: to})
		}
	}
	return out
}

// Definition rebuilds the serializable form of the registry.
func (r *Registry) Definition() Definition {
	def := Definition{Name: r.name, Lanes: r.Lanes()}
	for _, rule := range r.Edges() {
		def.Transitions = append(def.Transitions, EdgeDefinition{
			From:   rule.From,
			To:     rule.To,
			Fields: r.FieldsFor(rule.From, rule.To),
		})
	}
	return def
}
