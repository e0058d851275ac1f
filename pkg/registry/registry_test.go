package registry_test

import (
	"testing"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault_TransitionTable(t *testing.T) {
	r := registry.Default()

	allowed := map[domain.LaneID][]domain.LaneID{
		domain.LaneTodo:       {domain.LaneInProgress},
		domain.LaneInProgress: {domain.LaneReview, domain.LaneDone},
		domain.LaneReview:     {domain.LaneInProgress, domain.LaneDone},
		domain.LaneDone:       {domain.LaneTodo},
	}

	for _, from := range r.Lanes() {
		for _, to := range r.Lanes() {
			want := false
			for _, target := range allowed[from.ID] {
				if target == to.ID {
					want = true
				}
			}
			assert.Equal(t, want, r.IsTransitionAllowed(from.ID, to.ID), "%s -> %s", from.ID, to.ID)
		}
	}
}

func TestDefault_UnknownLanes(t *testing.T) {
	r := registry.Default()

	assert.False(t, r.IsTransitionAllowed("archived", domain.LaneTodo))
	assert.False(t, r.IsTransitionAllowed(domain.LaneTodo, "archived"))
	assert.Empty(t, r.Targets("archived"))
	assert.Equal(t, -1, r.Position("archived"))
}

func TestDefault_Lanes(t *testing.T) {
	r := registry.Default()
	lanes := r.Lanes()

	require.Len(t, lanes, 4)
	assert.Equal(t, domain.Lane{ID: domain.LaneTodo, Title: "To Do"}, lanes[0])
	assert.Equal(t, domain.Lane{ID: domain.LaneDone, Title: "Done"}, lanes[3])

	lanes[0].Title = "mutated"
	assert.Equal(t, "To Do", r.Lanes()[0].Title, "Lanes must return a copy")
}

func TestFieldsFor(t *testing.T) {
	r := registry.Default()

	t.Run("Declared edge", func(t *testing.T) {
		fields := r.FieldsFor(domain.LaneTodo, domain.LaneInProgress)
		require.Len(t, fields, 1)
		assert.Equal(t, "assignee", fields[0].Name)
		assert.Equal(t, domain.FieldText, fields[0].Kind)
		assert.Equal(t, "Assignee", fields[0].Label)
	})

	t.Run("Date field", func(t *testing.T) {
		fields := r.FieldsFor(domain.LaneInProgress, domain.LaneDone)
		require.Len(t, fields, 1)
		assert.Equal(t, domain.FieldDate, fields[0].Kind)
	})

	t.Run("Missing edge yields empty", func(t *testing.T) {
		fields := r.FieldsFor(domain.LaneTodo, domain.LaneReview)
		assert.NotNil(t, fields)
		assert.Empty(t, fields)
	})
}

func TestFieldValues_DropsUndeclared(t *testing.T) {
	r := registry.Default()

	got := r.FieldValues(domain.LaneTodo, domain.LaneInProgress, map[string]string{
		"assignee": "Alice",
		"priority": "high",
	})
	assert.Equal(t, map[string]string{"assignee": "Alice"}, got)

	got = r.FieldValues(domain.LaneDone, domain.LaneTodo, nil)
	assert.Empty(t, got)
}

func TestDecodeValues(t *testing.T) {
	got, err := registry.DecodeValues(map[string]any{
		"assignee": "Alice",
		"points":   float64(3),
		"urgent":   true,
		"empty":    nil,
	})
	require.NoError(t, err)
	assert.Equal(t, "Alice", got["assignee"])
	assert.Equal(t, "3", got["points"])
	assert.Equal(t, "1", got["urgent"])
	assert.Equal(t, "", got["empty"])

	_, err = registry.DecodeValues(map[string]any{"nested": map[string]any{"a": 1}})
	assert.Error(t, err)
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		def     registry.Definition
		wantMsg string
	}{
		{
			name:    "No lanes",
			def:     registry.Definition{},
			wantMsg: "no lanes",
		},
		{
			name: "Duplicate lane",
			def: registry.Definition{Lanes: []domain.Lane{
				{ID: "a"}, {ID: "a"},
			}},
			wantMsg: "duplicate lane 'a'",
		},
		{
			name: "Dangling edge",
			def: registry.Definition{
				Lanes:       []domain.Lane{{ID: "a"}},
				Transitions: []registry.EdgeDefinition{{From: "a", To: "b"}},
			},
			wantMsg: "unknown target lane 'b'",
		},
		{
			name: "Self edge",
			def: registry.Definition{
				Lanes:       []domain.Lane{{ID: "a"}},
				Transitions: []registry.EdgeDefinition{{From: "a", To: "a"}},
			},
			wantMsg: "self transitions",
		},
		{
			name: "Duplicate edge",
			def: registry.Definition{
				Lanes: []domain.Lane{{ID: "a"}, {ID: "b"}},
				Transitions: []registry.EdgeDefinition{
					{From: "a", To: "b"},
					{From: "a", To: "b"},
				},
			},
			wantMsg: "declared twice",
		},
		{
			name: "Duplicate field",
			def: registry.Definition{
				Lanes: []domain.Lane{{ID: "a"}, {ID: "b"}},
				Transitions: []registry.EdgeDefinition{{From: "a", To: "b", Fields: []domain.TransitionField{
					{Name: "x"}, {Name: "x"},
				}}},
			},
			wantMsg: "duplicate field 'x'",
		},
		{
			name: "Unknown field kind",
			def: registry.Definition{
				Lanes: []domain.Lane{{ID: "a"}, {ID: "b"}},
				Transitions: []registry.EdgeDefinition{{From: "a", To: "b", Fields: []domain.TransitionField{
					{Name: "x", Kind: "checkbox"},
				}}},
			},
			wantMsg: "unknown type 'checkbox'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := registry.New(tt.def)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidDefinition)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	r, err := registry.New(registry.Definition{
		Lanes: []domain.Lane{{ID: "a"}, {ID: "b", Title: "Bee"}},
		Transitions: []registry.EdgeDefinition{{From: "a", To: "b", Fields: []domain.TransitionField{
			{Name: "note"},
		}}},
	})
	require.NoError(t, err)

	lane, ok := r.Lane("a")
	require.True(t, ok)
	assert.Equal(t, "a", lane.Title, "title falls back to id")

	fields := r.FieldsFor("a", "b")
	require.Len(t, fields, 1)
	assert.Equal(t, domain.FieldText, fields[0].Kind)
	assert.Equal(t, "note", fields[0].Label)
}

func TestEdges_DisplayOrder(t *testing.T) {
	edges := registry.Default().Edges()

	require.Len(t, edges, 6)
	assert.Equal(t, domain.TransitionRule{From: domain.LaneTodo, To: domain.LaneInProgress}, edges[0])
	assert.Equal(t, domain.TransitionRule{From: domain.LaneDone, To: domain.LaneTodo}, edges[5])
}
