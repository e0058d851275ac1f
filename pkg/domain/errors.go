package domain

import "errors"

// ErrBlockNotFound is returned when a block ID cannot be found in the store.
var ErrBlockNotFound = errors.New("block not found")

// ErrBlockExists is returned when inserting a block whose ID is already taken.
var ErrBlockExists = errors.New("block already exists")

// ErrInvalidBlock is returned when a block cannot be created as requested.
var ErrInvalidBlock = errors.New("invalid block")

// ErrTransitionRejected is returned when a commit targets a lane that is not
// reachable from the block's current lane.
var ErrTransitionRejected = errors.New("transition not allowed")

// ErrNoOpMove is returned when a commit targets the block's current lane.
var ErrNoOpMove = errors.New("block already in lane")

// ErrNoPendingTransition is returned when confirming while no move is pending.
var ErrNoPendingTransition = errors.New("no pending transition")

// ErrInvalidDefinition is returned when a board definition is inconsistent.
var ErrInvalidDefinition = errors.New("invalid board definition")

// ErrSessionNotFound is returned when a UI session ID is unknown.
var ErrSessionNotFound = errors.New("session not found")
