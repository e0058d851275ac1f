package swimlane

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/aretw0/swimlane/pkg/domain"
)

// Runner drives a Board from a line-oriented console.
// This allows for easy testing and for use where no terminal UI is available (pipes, CI).
type Runner struct {
	Input    io.Reader
	Output   io.Writer
	Headless bool
	Renderer ContentRenderer
}

// ContentRenderer is a function that transforms markdown before outputting it.
// This allows for TUI rendering (markdown to ANSI) without coupling the core package.
type ContentRenderer func(string) (string, error)

// NewRunner creates a new Runner. Input and Output must be set before Run.
func NewRunner() *Runner {
	return &Runner{}
}

const runnerHelp = `Commands:
  lanes                     list lanes and where blocks can go
  ls [filter]               list blocks, optionally filtered
  add <lane> <content>      create a block
  mv <block> <lane>         move a block (asks for the transition details)
  history <block>           show a block's transitions
  help                      show this help
  exit                      leave`

// Run executes the read-eval loop until exit or end of input.
func (r *Runner) Run(ctx context.Context, board *Board) error {
	if r.Input == nil {
		return fmt.Errorf("input reader must be set (use os.Stdin)")
	}
	if r.Output == nil {
		return fmt.Errorf("output writer must be set (use os.Stdout)")
	}
	in := bufio.NewReader(r.Input)

	if !r.Headless {
		fmt.Fprintf(r.Output, "--- Swimlane Console (%s) ---\n", board.Name)
		fmt.Fprintln(r.Output, "Type 'help' for commands.")
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		line, err := r.prompt(in, "> ")
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("input error: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}

		switch cmd, args := fields[0], fields[1:]; cmd {
		case "exit", "quit":
			fmt.Fprintln(r.Output, "Bye!")
			return nil
		case "help":
			fmt.Fprintln(r.Output, runnerHelp)
		case "lanes":
			r.printLanes(board)
		case "ls", "blocks":
			err = r.printBlocks(ctx, board, strings.Join(args, " "))
		case "add":
			if len(args) < 2 {
				fmt.Fprintln(r.Output, "usage: add <lane> <content>")
				continue
			}
			var b domain.Block
			b, err = board.CreateBlock(ctx, strings.Join(args[1:], " "), domain.LaneID(args[0]))
			if err == nil {
				fmt.Fprintf(r.Output, "created %s in %s\n", b.ID, b.Lane)
			}
		case "mv":
			if len(args) != 2 {
				fmt.Fprintln(r.Output, "usage: mv <block> <lane>")
				continue
			}
			err = r.move(ctx, in, board, args[0], domain.LaneID(args[1]))
		case "history":
			if len(args) != 1 {
				fmt.Fprintln(r.Output, "usage: history <block>")
				continue
			}
			err = r.printHistory(ctx, board, args[0])
		default:
			fmt.Fprintf(r.Output, "unknown command %q (try 'help')\n", cmd)
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			fmt.Fprintf(r.Output, "error: %v\n", err)
		}
	}
}

func (r *Runner) prompt(in *bufio.Reader, label string) (string, error) {
	if !r.Headless {
		fmt.Fprint(r.Output, label)
	}
	text, err := in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && text != "") {
		return "", err
	}
	return strings.TrimSpace(text), nil
}

func (r *Runner) move(ctx context.Context, in *bufio.Reader, board *Board, blockID string, to domain.LaneID) error {
	out, err := board.RequestMove(ctx, blockID, to)
	if err != nil {
		return err
	}

	switch out.Kind {
	case domain.OutcomeNoOp:
		fmt.Fprintf(r.Output, "%s is already in %s\n", blockID, to)
		return nil
	case domain.OutcomeNotFound:
		fmt.Fprintf(r.Output, "no block %s\n", blockID)
		return nil
	case domain.OutcomeRejected:
		fmt.Fprintln(r.Output, board.Notice())
		board.DismissNotice()
		return nil
	}

	values := make(map[string]string, len(out.Fields))
	for _, f := range out.Fields {
		label := f.Label
		if f.Kind == domain.FieldDate {
			label += " (YYYY-MM-DD)"
		}
		v, err := r.prompt(in, label+": ")
		if err != nil {
			board.CancelMove(ctx)
			return err
		}
		values[f.Name] = v
	}

	block, err := board.CommitMove(ctx, blockID, to, values)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.Output, "moved %s: %s -> %s\n", block.ID, out.From, block.Lane)
	return nil
}

func (r *Runner) printLanes(board *Board) {
	reg := board.Registry()
	for _, l := range board.ListLanes() {
		targets := reg.Targets(l.ID)
		names := make([]string, len(targets))
		for i, t := range targets {
			names[i] = string(t)
		}
		fmt.Fprintf(r.Output, "%-12s %-14s -> %s\n", l.ID, l.Title, strings.Join(names, ", "))
	}
}

func (r *Runner) printBlocks(ctx context.Context, board *Board, filter string) error {
	blocks, err := board.ListBlocks(ctx, filter)
	if err != nil {
		return err
	}
	if len(blocks) == 0 {
		fmt.Fprintln(r.Output, "no blocks")
		return nil
	}
	for _, b := range blocks {
		fmt.Fprintf(r.Output, "%-12s %-12s %s\n", b.ID, b.Lane, b.Content)
	}
	return nil
}

func (r *Runner) printHistory(ctx context.Context, board *Board, blockID string) error {
	history, err := board.GetHistory(ctx, blockID)
	if err != nil {
		return err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "## History of %s\n\n", blockID)
	if len(history) == 0 {
		sb.WriteString("No transitions yet.\n")
	}
	for i, rec := range history {
		fmt.Fprintf(&sb, "%d. **%s → %s** at %s", i+1, rec.From, rec.To, rec.Timestamp.Format("2006-01-02 15:04"))
		keys := make([]string, 0, len(rec.Data))
		for k := range rec.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&sb, ", %s: %q", k, rec.Data[k])
		}
		sb.WriteString("\n")
	}

	output := sb.String()
	if r.Renderer != nil {
		if rendered, err := r.Renderer(output); err == nil {
			output = rendered
		}
	}
	fmt.Fprintln(r.Output, strings.TrimSpace(output))
	return nil
}
