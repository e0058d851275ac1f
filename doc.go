/*
Package swimlane is a transition engine for kanban-style swimlane boards.

A board is a fixed set of Lanes and a directed graph of allowed transitions
between them. Each edge may ask for a small metadata form (who picked the
work up, when it was approved, why it was reopened). Moving a block is a
two-step protocol: the engine first validates the move and answers with an
explicit Outcome, then the caller confirms it with the collected values and
the engine appends an immutable TransitionRecord to the block's history.

# Concept

The rules (Registry), the data (BlockStore) and the interaction state
(Session) are separate. The engine never talks to a terminal or a socket, so
the same board can be driven from a line console, a Bubble Tea TUI, an HTTP
API or an MCP server.

# Outcomes

  - Pending: the edge exists; collect the listed fields and commit.
  - Rejected: no edge connects the lanes; the block is unchanged.
  - NoOp: the block is already in the target lane.
  - NotFound: no block has that id.

# Usage

	board, err := swimlane.New()
	if err != nil {
		log.Fatal(err)
	}

	ctx := context.Background()
	out, _ := board.RequestMove(ctx, "block-1", domain.LaneInProgress)
	if out.Kind == domain.OutcomePending {
		// out.Fields lists what to ask the user for.
		block, err := board.CommitMove(ctx, "block-1", domain.LaneInProgress,
			map[string]string{"assignee": "Alice"})
		if err != nil {
			log.Fatal(err)
		}
		fmt.Println(block.Lane, len(block.History))
	}

Custom boards are described in YAML and loaded with WithDefinitionFile:

	name: support
	lanes:
	  - id: triage
	  - id: open
	  - id: closed
	transitions:
	  - from: triage
	    to: open
	    fields:
	      - name: owner
	        label: Owner
*/
package swimlane
