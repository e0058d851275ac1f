package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/aretw0/swimlane"
	"github.com/aretw0/swimlane/internal/presentation/tui"
	tea "github.com/charmbracelet/bubbletea"
)

// BoardOptions selects how the board is presented.
type BoardOptions struct {
	Input  io.Reader
	Output io.Writer
	// Interactive enables the full-screen TUI. Otherwise the line console runs.
	Interactive bool
	// Headless suppresses banners and prompts in the line console.
	Headless bool
	Width    int
}

// RunBoard presents the board until the user quits or ctx is cancelled.
func RunBoard(ctx context.Context, board *swimlane.Board, opts BoardOptions) error {
	renderer, err := tui.NewRenderer("", opts.Width)
	if err != nil {
		return fmt.Errorf("failed to init renderer: %w", err)
	}

	if opts.Interactive {
		model := tui.NewModel(ctx, board, tui.WithRenderer(renderer), tui.WithTitle(board.Name))
		p := tea.NewProgram(model,
			tea.WithAltScreen(),
			tea.WithContext(ctx),
			tea.WithInput(opts.Input),
			tea.WithOutput(opts.Output),
		)
		_, err := p.Run()
		if err != nil && ctx.Err() != nil {
			return nil
		}
		return err
	}

	if !opts.Headless {
		tui.PrintBanner(opts.Output)
	}
	r := swimlane.NewRunner()
	r.Input = opts.Input
	r.Output = opts.Output
	r.Headless = opts.Headless
	if !opts.Headless {
		r.Renderer = swimlane.ContentRenderer(renderer)
	}
	return r.Run(ctx, board)
}
