package graph_test

import (
	"strings"
	"testing"

	"github.com/aretw0/swimlane/internal/presentation/graph"
	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/registry"
)

func TestGenerateMermaid(t *testing.T) {
	hyphenated, err := registry.New(registry.Definition{
		Lanes: []domain.Lane{{ID: "to-do", Title: `The "inbox"`}, {ID: "shipped.v1"}},
		Transitions: []registry.EdgeDefinition{
			{From: "to-do", To: "shipped.v1"},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		reg      *registry.Registry
		overlay  *graph.GraphOverlay
		contains []string
		excludes []string
	}{
		{
			name: "Lane Nodes",
			reg:  registry.Default(),
			contains: []string{
				"graph LR",
				`todo["To Do"]`,
				`inProgress["In Progress"]`,
			},
		},
		{
			name: "Field Labels",
			reg:  registry.Default(),
			contains: []string{
				`todo -- "assignee" --> inProgress`,
				`review -- "approvalDate" --> done`,
			},
		},
		{
			name: "Rework Edges Are Dotted",
			reg:  registry.Default(),
			contains: []string{
				`review -. "comments" .-> inProgress`,
				`done -. "reason" .-> todo`,
			},
		},
		{
			name: "ID Sanitization",
			reg:  hyphenated,
			contains: []string{
				`to_do["The 'inbox'"]`,
				`shipped_v1["shipped.v1"]`,
				"to_do --> shipped_v1",
			},
		},
		{
			name: "Overlay",
			reg:  registry.Default(),
			overlay: &graph.GraphOverlay{
				Counts:  map[domain.LaneID]int{domain.LaneTodo: 2},
				Trail:   []domain.LaneID{domain.LaneTodo, domain.LaneInProgress},
				Current: domain.LaneReview,
			},
			contains: []string{
				`todo["To Do (2)"]`,
				`done["Done (0)"]`,
				"class todo visited;",
				"class inProgress visited;",
				"class review current;",
			},
		},
		{
			name:     "No Overlay Styles Without A Trace",
			reg:      registry.Default(),
			overlay:  &graph.GraphOverlay{Counts: map[domain.LaneID]int{}},
			excludes: []string{"classDef"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := graph.GenerateMermaid(tt.reg, tt.overlay)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("GenerateMermaid() = \n%v\nWant substring: %v", got, want)
				}
			}
			for _, unwanted := range tt.excludes {
				if strings.Contains(got, unwanted) {
					t.Errorf("GenerateMermaid() = \n%v\nUnexpected substring: %v", got, unwanted)
				}
			}
		})
	}
}

func TestOverlayFor(t *testing.T) {
	blocks := registry.SeedBlocks()
	traced := domain.NewBlock("b", "traced", domain.LaneReview)
	traced.History = []domain.TransitionRecord{
		{From: domain.LaneTodo, To: domain.LaneInProgress},
		{From: domain.LaneInProgress, To: domain.LaneReview},
	}

	o := graph.OverlayFor(blocks, &traced)
	if o.Counts[domain.LaneTodo] != 1 || o.Counts[domain.LaneReview] != 0 {
		t.Errorf("unexpected counts: %v", o.Counts)
	}
	if len(o.Trail) != 2 || o.Trail[0] != domain.LaneTodo || o.Current != domain.LaneReview {
		t.Errorf("unexpected trail: %v -> %s", o.Trail, o.Current)
	}
}
