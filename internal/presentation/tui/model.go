// Package tui implements the interactive terminal board.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/aretw0/swimlane/pkg/domain"
	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Board is what the terminal board drives. *swimlane.Board satisfies it.
type Board interface {
	ListLanes() []domain.Lane
	ListBlocks(ctx context.Context, filter string) ([]domain.Block, error)
	RequestMove(ctx context.Context, blockID string, to domain.LaneID) (domain.Outcome, error)
	CommitMove(ctx context.Context, blockID string, to domain.LaneID, values map[string]string) (domain.Block, error)
	CancelMove(ctx context.Context)
	Notice() string
	DismissNotice()
	GetHistory(ctx context.Context, blockID string) ([]domain.TransitionRecord, error)
}

type boardLoadedMsg struct {
	lanes  []domain.Lane
	blocks []domain.Block
	err    error
}

// Model is the bubbletea model of the board.
type Model struct {
	board  Board
	ctx    context.Context
	render Renderer
	title  string

	lanes  []domain.Lane
	blocks []domain.Block
	col    int
	row    int
	follow string // block to select after the next load

	filter    textinput.Model
	filtering bool

	form moveForm

	historyOpen bool
	history     string

	err    error
	width  int
	height int
}

// Option configures the Model.
type Option func(*Model)

// WithRenderer sets how the history pane renders markdown.
func WithRenderer(r Renderer) Option {
	return func(m *Model) {
		m.render = r
	}
}

// WithTitle sets the header text, usually the board name.
func WithTitle(title string) Option {
	return func(m *Model) {
		m.title = title
	}
}

// NewModel creates a board model. Call Init (or run it in a tea.Program) to load blocks.
func NewModel(ctx context.Context, board Board, opts ...Option) Model {
	filter := textinput.New()
	filter.Prompt = "/ "
	filter.Placeholder = "filter blocks"
	filter.Cursor.SetMode(cursor.CursorStatic)

	m := Model{
		board:  board,
		ctx:    ctx,
		filter: filter,
		render: func(s string) (string, error) { return s, nil },
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Init loads the board.
func (m Model) Init() tea.Cmd {
	return m.load()
}

func (m Model) load() tea.Cmd {
	board, ctx, filter := m.board, m.ctx, m.filter.Value()
	return func() tea.Msg {
		blocks, err := board.ListBlocks(ctx, filter)
		return boardLoadedMsg{lanes: board.ListLanes(), blocks: blocks, err: err}
	}
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case boardLoadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.lanes, m.blocks = msg.lanes, msg.blocks
		if m.follow != "" {
			m.selectBlock(m.follow)
			m.follow = ""
		}
		m.clamp()
		m.refreshHistory()
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		switch {
		case m.form.active:
			return m.updateForm(msg)
		case m.filtering:
			return m.updateFilter(msg)
		}
		return m.updateBoard(msg)
	}
	return m, nil
}

func (m Model) updateBoard(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "q":
		return m, tea.Quit
	case "left", "h":
		m.col--
		m.row = 0
	case "right", "l":
		m.col++
		m.row = 0
	case "up", "k":
		m.row--
	case "down", "j":
		m.row++
	case "H", "shift+left", "<":
		return m.moveBy(-1)
	case "L", "shift+right", ">":
		return m.moveBy(1)
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(m.lanes) {
			return m.requestMove(m.lanes[idx].ID)
		}
		return m, nil
	case "enter":
		m.historyOpen = !m.historyOpen
	case "/":
		m.filtering = true
		m.filter.Focus()
		return m, nil
	case "x", "esc":
		m.board.DismissNotice()
		m.err = nil
		return m, nil
	case "r":
		return m, m.load()
	default:
		return m, nil
	}
	m.clamp()
	m.refreshHistory()
	return m, nil
}

func (m Model) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.filtering = false
		m.filter.Blur()
		return m, nil
	case "esc":
		m.filtering = false
		m.filter.Blur()
		m.filter.SetValue("")
		return m, m.load()
	}
	var cmd tea.Cmd
	m.filter, cmd = m.filter.Update(msg)
	return m, tea.Batch(cmd, m.load())
}

func (m Model) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.board.CancelMove(m.ctx)
		m.form = moveForm{}
		return m, nil
	case "tab", "down":
		m.form.next(1)
		return m, nil
	case "shift+tab", "up":
		m.form.next(-1)
		return m, nil
	case "enter":
		if !m.form.onLast() {
			m.form.next(1)
			return m, nil
		}
		return m.confirm()
	}
	return m, m.form.update(msg)
}

// moveBy requests a move of the selected block to the neighbouring lane.
func (m Model) moveBy(delta int) (tea.Model, tea.Cmd) {
	idx := m.col + delta
	if idx < 0 || idx >= len(m.lanes) {
		return m, nil
	}
	return m.requestMove(m.lanes[idx].ID)
}

func (m Model) requestMove(to domain.LaneID) (tea.Model, tea.Cmd) {
	block, ok := m.selected()
	if !ok {
		return m, nil
	}

	out, err := m.board.RequestMove(m.ctx, block.ID, to)
	if err != nil {
		m.err = err
		return m, nil
	}
	m.err = nil

	switch out.Kind {
	case domain.OutcomePending:
		p, _ := out.Pending()
		m.form = newMoveForm(p)
	case domain.OutcomeNotFound:
		m.err = fmt.Errorf("block %s no longer exists", block.ID)
		return m, m.load()
	}
	// Rejected moves surface through the board notice; no-ops show nothing.
	return m, nil
}

func (m Model) confirm() (tea.Model, tea.Cmd) {
	p := m.form.pending
	values := m.form.values()
	m.form = moveForm{}

	if _, err := m.board.CommitMove(m.ctx, p.BlockID, p.To, values); err != nil {
		m.err = err
	} else {
		m.err = nil
		m.follow = p.BlockID
	}
	return m, m.load()
}

func (m Model) blocksIn(lane domain.LaneID) []domain.Block {
	var out []domain.Block
	for _, b := range m.blocks {
		if b.Lane == lane {
			out = append(out, b)
		}
	}
	return out
}

func (m Model) selected() (domain.Block, bool) {
	if m.col < 0 || m.col >= len(m.lanes) {
		return domain.Block{}, false
	}
	blocks := m.blocksIn(m.lanes[m.col].ID)
	if m.row < 0 || m.row >= len(blocks) {
		return domain.Block{}, false
	}
	return blocks[m.row], true
}

func (m *Model) selectBlock(id string) {
	for c, lane := range m.lanes {
		for r, b := range m.blocksIn(lane.ID) {
			if b.ID == id {
				m.col, m.row = c, r
				return
			}
		}
	}
}

func (m *Model) clamp() {
	m.col = clampInt(m.col, 0, len(m.lanes)-1)
	if len(m.lanes) == 0 {
		m.row = 0
		return
	}
	m.row = clampInt(m.row, 0, len(m.blocksIn(m.lanes[m.col].ID))-1)
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return lo
	}
	return max(lo, min(v, hi))
}

func (m *Model) refreshHistory() {
	if !m.historyOpen {
		m.history = ""
		return
	}
	block, ok := m.selected()
	if !ok {
		m.history = subtleStyle.Render("No block selected.")
		return
	}
	history, err := m.board.GetHistory(m.ctx, block.ID)
	if err != nil {
		m.history = errorStyle.Render(err.Error())
		return
	}
	md := historyMarkdown(block, history)
	out, err := m.render(md)
	if err != nil {
		out = md
	}
	m.history = out
}

// View renders the board.
func (m Model) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Swimlane"))
	if m.title != "" {
		sb.WriteString(" " + subtleStyle.Render(m.title))
	}
	sb.WriteString("\n")

	if notice := m.board.Notice(); notice != "" {
		sb.WriteString(noticeStyle.Render(notice) + " " + subtleStyle.Render("x to dismiss") + "\n")
	}
	if m.err != nil {
		sb.WriteString(errorStyle.Render(m.err.Error()) + "\n")
	}
	sb.WriteString("\n")

	sb.WriteString(m.columnsView())
	sb.WriteString("\n")

	if m.filtering {
		sb.WriteString(m.filter.View() + "\n")
	} else if v := m.filter.Value(); v != "" {
		sb.WriteString(subtleStyle.Render("filter: "+v) + "\n")
	}

	if m.form.active {
		content := m.form.pending.BlockID
		for _, b := range m.blocks {
			if b.ID == m.form.pending.BlockID {
				content = b.Content
				break
			}
		}
		sb.WriteString(m.form.view(content) + "\n")
	}

	if m.historyOpen {
		sb.WriteString(m.history + "\n")
	}

	sb.WriteString(subtleStyle.Render("←/→ lane · ↑/↓ block · H/L or 1-9 move · enter history · / filter · q quit"))
	return sb.String()
}

func (m Model) columnsView() string {
	if len(m.lanes) == 0 {
		return subtleStyle.Render("Loading...")
	}

	width := 24
	if m.width > 0 {
		width = max(16, m.width/len(m.lanes)-4)
	}

	cols := make([]string, len(m.lanes))
	for i, lane := range m.lanes {
		blocks := m.blocksIn(lane.ID)
		var sb strings.Builder
		sb.WriteString(titleStyle.Render(fmt.Sprintf("%s (%d)", lane.Title, len(blocks))))
		for r, b := range blocks {
			line := truncate(b.Content, width-2)
			if i == m.col && r == m.row {
				line = selectedStyle.Render("> " + line)
			} else {
				line = blockStyle.Render("  " + line)
			}
			sb.WriteString("\n" + line)
		}

		style := columnStyle
		if i == m.col {
			style = activeColumnStyle
		}
		cols[i] = style.Width(width).Render(sb.String())
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 1 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
