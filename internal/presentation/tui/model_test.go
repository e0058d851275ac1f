package tui

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/aretw0/swimlane"
	"github.com/aretw0/swimlane/pkg/domain"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func key(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, cmd := m.Update(msg)
	got, ok := next.(Model)
	require.True(t, ok, "Update returned %T, want Model", next)
	return drain(t, got, cmd)
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		m = apply(t, m, key(k))
	}
	return m
}

func typeText(t *testing.T, m Model, input string) Model {
	t.Helper()
	for _, r := range input {
		m = apply(t, m, key(string(r)))
	}
	return m
}

func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for i := 0; len(queue) > 0; i++ {
		require.Less(t, i, 64, "command chain exceeded max depth")
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case nil:
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case tea.QuitMsg:
			return m
		default:
			next, nextCmd := m.Update(msg)
			m = next.(Model)
			queue = append(queue, nextCmd)
		}
	}
	return m
}

func newTestModel(t *testing.T) (Model, *swimlane.Board) {
	t.Helper()
	board, err := swimlane.New()
	require.NoError(t, err)
	m := NewModel(context.Background(), board, WithTitle("default"))
	return drain(t, m, m.Init()), board
}

func TestModel_InitLoadsBoard(t *testing.T) {
	m, _ := newTestModel(t)

	require.Len(t, m.lanes, 4)
	assert.Len(t, m.blocks, 3)
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "block-1", sel.ID)

	view := m.View()
	assert.Contains(t, view, "To Do (1)")
	assert.Contains(t, view, "Block 2")
}

func TestModel_Navigation(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "l")
	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "block-2", sel.ID)

	m = press(t, m, "l")
	_, ok = m.selected()
	assert.False(t, ok, "review is empty")

	m = press(t, m, "l", "l", "l")
	assert.Equal(t, 3, m.col, "cursor stays on the last lane")
	sel, _ = m.selected()
	assert.Equal(t, "block-3", sel.ID)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	assert.Equal(t, 2, m.col)
}

func TestModel_MoveWithMetadata(t *testing.T) {
	m, board := newTestModel(t)

	m = press(t, m, "L")
	require.True(t, m.form.active)
	assert.Equal(t, domain.LaneInProgress, m.form.pending.To)
	assert.Contains(t, m.View(), "Assignee")

	m = typeText(t, m, "Alice")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.form.active)
	assert.NoError(t, m.err)

	block, err := board.Block(context.Background(), "block-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneInProgress, block.Lane)
	require.Len(t, block.History, 1)
	assert.Equal(t, map[string]string{"assignee": "Alice"}, block.History[0].Data)

	sel, ok := m.selected()
	require.True(t, ok)
	assert.Equal(t, "block-1", sel.ID, "selection follows the moved block")
	assert.Equal(t, 1, m.col)
}

func TestModel_MoveByNumberSkipsLanes(t *testing.T) {
	m, board := newTestModel(t)

	m = press(t, m, "l", "4")
	require.True(t, m.form.active)
	assert.Equal(t, domain.LaneDone, m.form.pending.To)

	m = typeText(t, m, "2024-06-01")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	block, err := board.Block(context.Background(), "block-2")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneDone, block.Lane)
	assert.Equal(t, "2024-06-01", block.History[0].Data["completionDate"])
}

func TestModel_RejectedMoveShowsNotice(t *testing.T) {
	m, board := newTestModel(t)

	m = press(t, m, "3")
	assert.False(t, m.form.active)
	assert.Contains(t, m.View(), "This transition is not allowed")

	m = press(t, m, "x")
	assert.Empty(t, board.Notice())
	assert.NotContains(t, m.View(), "This transition is not allowed")
}

func TestModel_NoOpMoveIsSilent(t *testing.T) {
	m, board := newTestModel(t)

	m = press(t, m, "1")
	assert.False(t, m.form.active)
	assert.Empty(t, board.Notice())
	assert.NoError(t, m.err)
}

func TestModel_CancelForm(t *testing.T) {
	m, board := newTestModel(t)

	m = press(t, m, "L")
	require.True(t, m.form.active)
	m = typeText(t, m, "Bob")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})

	assert.False(t, m.form.active)
	_, pending := board.Pending()
	assert.False(t, pending)

	block, err := board.Block(context.Background(), "block-1")
	require.NoError(t, err)
	assert.Equal(t, domain.LaneTodo, block.Lane)
	assert.Empty(t, block.History)
}

func TestModel_Filter(t *testing.T) {
	m, _ := newTestModel(t)

	m = press(t, m, "/")
	require.True(t, m.filtering)
	m = typeText(t, m, "block 3")
	assert.Len(t, m.blocks, 1)
	assert.Equal(t, "block-3", m.blocks[0].ID)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.filtering)
	assert.Contains(t, m.View(), "filter: block 3")

	m = press(t, m, "/")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Len(t, m.blocks, 3)
}

func TestModel_HistoryPane(t *testing.T) {
	m, _ := newTestModel(t)

	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Contains(t, m.history, "No transitions yet")

	m = press(t, m, "L")
	m = typeText(t, m, "Carol")
	m = apply(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Contains(t, m.history, "| todo | inProgress |")
	assert.Contains(t, m.history, "assignee: Carol")
}

func TestHistoryMarkdown_EscapesPipes(t *testing.T) {
	block := domain.NewBlock("b", "Pipes", domain.LaneTodo)
	md := historyMarkdown(block, []domain.TransitionRecord{
		{From: domain.LaneDone, To: domain.LaneTodo, Data: map[string]string{"reason": "a|b", "empty": ""}},
	})
	assert.Contains(t, md, `a\|b`)
	assert.Contains(t, md, "empty: _(empty)_")
}

func TestNewRenderer_RendersMarkdown(t *testing.T) {
	render, err := NewRenderer("notty", 80)
	require.NoError(t, err)

	out, err := render("## Heading\n\nsome *text*")
	require.NoError(t, err)
	assert.Contains(t, out, "Heading")
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Greater(t, strings.Count(buf.String(), "\n"), 4)
}
