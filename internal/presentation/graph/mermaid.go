package graph

import (
	"fmt"
	"strings"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/aretw0/swimlane/pkg/registry"
)

// GraphOverlay contains dynamic block data to visualize on the lane graph.
type GraphOverlay struct {
	// Counts is the number of blocks per lane, shown in the node label.
	Counts map[domain.LaneID]int
	// Trail is the lanes one block went through, oldest first.
	Trail []domain.LaneID
	// Current is the lane the traced block sits in now.
	Current domain.LaneID
}

// OverlayFor builds an overlay tracing one block over the board's lane counts.
func OverlayFor(blocks []domain.Block, traced *domain.Block) *GraphOverlay {
	o := &GraphOverlay{Counts: make(map[domain.LaneID]int)}
	for _, b := range blocks {
		o.Counts[b.Lane]++
	}
	if traced != nil {
		for _, rec := range traced.History {
			o.Trail = append(o.Trail, rec.From)
		}
		o.Current = traced.Lane
	}
	return o
}

// GenerateMermaid produces a Mermaid flowchart of the lanes and transition rules.
// Edges that collect metadata are labelled with their field names.
// It also applies overlay styles (Visited/Current) if provided.
func GenerateMermaid(reg *registry.Registry, overlay *GraphOverlay) string {
	var sb strings.Builder
	sb.WriteString("graph LR\n")

	for _, lane := range reg.Lanes() {
		label := lane.Title
		if overlay != nil && overlay.Counts != nil {
			label = fmt.Sprintf("%s (%d)", lane.Title, overlay.Counts[lane.ID])
		}
		fmt.Fprintf(&sb, "    %s[\"%s\"]\n", sanitizeMermaidID(string(lane.ID)), escapeLabel(label))
	}

	for _, edge := range reg.Edges() {
		from := sanitizeMermaidID(string(edge.From))
		to := sanitizeMermaidID(string(edge.To))

		arrow := "-->"
		// Moving back to an earlier lane reads as a rework loop.
		if reg.Position(edge.To) < reg.Position(edge.From) {
			arrow = "-.->"
		}

		fields := reg.FieldsFor(edge.From, edge.To)
		if len(fields) > 0 {
			names := make([]string, len(fields))
			for i, f := range fields {
				names[i] = f.Name
			}
			label := escapeLabel(strings.Join(names, ", "))
			if arrow == "-->" {
				arrow = fmt.Sprintf("-- \"%s\" -->", label)
			} else {
				arrow = fmt.Sprintf("-. \"%s\" .->", label)
			}
		}
		fmt.Fprintf(&sb, "    %s %s %s\n", from, arrow, to)
	}

	if overlay != nil && (len(overlay.Trail) > 0 || overlay.Current != "") {
		sb.WriteString("\n    %% Overlay Styles\n")
		// Force black text (color:#000) for high-contrast on light backgrounds, regardless of theme (Light/Dark)
		sb.WriteString("    classDef visited fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		visited := make(map[string]bool)
		for _, id := range overlay.Trail {
			safeID := sanitizeMermaidID(string(id))
			if safeID != "" && !visited[safeID] && id != overlay.Current {
				visited[safeID] = true
				fmt.Fprintf(&sb, "    class %s visited;\n", safeID)
			}
		}
		if overlay.Current != "" {
			fmt.Fprintf(&sb, "    class %s current;\n", sanitizeMermaidID(string(overlay.Current)))
		}
	}

	return sb.String()
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
