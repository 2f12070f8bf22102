package core

import "errors"

var (
	// ErrRoomNotFound rejects a non-host join when no host holds the room.
	// It is surfaced to the rejected joiner only.
	ErrRoomNotFound = errors.New("room not found")

	// ErrRoundNotActive marks a submission that raced the end of a round.
	// Callers drop it without emitting anything.
	ErrRoundNotActive = errors.New("round not active")
)
