/*
Package domain contains the core domain models of the swimlane board.

It defines the entities the transition engine works on: Lanes, the
Transition rules between them, the metadata Fields an edge asks for, Blocks
and the TransitionRecords appended to their history. This package is kept
pure and free of I/O so every adapter (HTTP, MCP, terminal) shares the same
vocabulary.

# Key Entities

  - Lane: A named stage of the workflow (To Do, In Progress, Review, Done).
  - TransitionRule: A directed edge between two lanes.
  - TransitionField: A form field that must be offered when crossing an edge.
  - Block: A work item with its current lane and append-only history.
  - Outcome: The explicit result of asking the engine to move a block.
  - PendingTransition: A validated move waiting for user metadata.
*/
package domain
