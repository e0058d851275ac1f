package tui

import (
	"fmt"
	"strings"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// moveForm collects the metadata of a pending transition, one input per field.
type moveForm struct {
	active  bool
	pending domain.PendingTransition
	inputs  []textinput.Model
	focus   int
}

func newMoveForm(p domain.PendingTransition) moveForm {
	f := moveForm{active: true, pending: p}
	for i, field := range p.Fields {
		ti := textinput.New()
		ti.Prompt = ""
		ti.CharLimit = 256
		ti.Cursor.SetMode(cursor.CursorStatic)
		if field.Kind == domain.FieldDate {
			ti.Placeholder = "YYYY-MM-DD"
		}
		if i == 0 {
			ti.Focus()
		}
		f.inputs = append(f.inputs, ti)
	}
	return f
}

func (f *moveForm) next(delta int) {
	if len(f.inputs) == 0 {
		return
	}
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + delta + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f moveForm) onLast() bool {
	return len(f.inputs) == 0 || f.focus == len(f.inputs)-1
}

func (f *moveForm) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// values returns the entered text keyed by field name. Blank fields are kept.
func (f moveForm) values() map[string]string {
	out := make(map[string]string, len(f.inputs))
	for i, field := range f.pending.Fields {
		out[field.Name] = strings.TrimSpace(f.inputs[i].Value())
	}
	return out
}

func (f moveForm) view(content string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s → %s\n", titleStyle.Render("Move"), content, f.pending.To)
	if len(f.inputs) == 0 {
		sb.WriteString(subtleStyle.Render("No details needed."))
		sb.WriteString("\n")
	}
	for i, field := range f.pending.Fields {
		label := field.Label
		if i == f.focus {
			label = selectedStyle.Render(label)
		}
		fmt.Fprintf(&sb, "%s: %s\n", label, f.inputs[i].View())
	}
	sb.WriteString(subtleStyle.Render("enter confirm · tab next field · esc cancel"))
	return formStyle.Render(sb.String())
}
