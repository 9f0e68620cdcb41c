package game

import "errors"

// The full error taxonomy of the engine. Everything here is a local,
// recoverable condition surfaced to the caller; nothing crashes the
// running session.
var (
	// ErrNotFound is returned for unknown player, character, or script names.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned for name collisions on add or register.
	ErrDuplicate = errors.New("already exists")

	// ErrInvalidState is returned when an operation is not valid in the
	// session's current state, including operations made through a handle
	// whose epoch has been replaced by a newer game.
	ErrInvalidState = errors.New("invalid state")

	// ErrConflict is returned when an operation contradicts current
	// assignments, such as excluding a role held by a living player.
	ErrConflict = errors.New("conflict")

	// ErrTimeout is returned when a wait expires before its flag is set.
	ErrTimeout = errors.New("timeout")
)
