package tui

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/aretw0/swimlane/pkg/domain"
)

// historyMarkdown describes a block's transitions as a markdown table.
func historyMarkdown(block domain.Block, history []domain.TransitionRecord) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", block.Content)
	if len(history) == 0 {
		sb.WriteString("_No transitions yet._\n")
		return sb.String()
	}

	sb.WriteString("| From | To | When | Details |\n|---|---|---|---|\n")
	for _, rec := range history {
		fmt.Fprintf(&sb, "| %s | %s | %s | %s |\n", rec.From, rec.To, rec.Timestamp.Format(time.DateTime), formatData(rec.Data))
	}
	return sb.String()
}

func formatData(data map[string]string) string {
	if len(data) == 0 {
		return "-"
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		v := data[k]
		if v == "" {
			v = "_(empty)_"
		}
		parts[i] = fmt.Sprintf("%s: %s", k, strings.ReplaceAll(v, "|", "\\|"))
	}
	return strings.Join(parts, ", ")
}
