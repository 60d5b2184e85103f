package world

import "errors"

// Sentinel errors for world operations. Every failure returned by this
// package wraps exactly one of these, so callers can classify with errors.Is.
var (
	// ErrValidation indicates malformed construction input: a non-rectangular
	// or empty grid, a wrong shape relative to the derived size, a negative
	// ball count, an invalid color channel, or an unrecognized tier name.
	ErrValidation = errors.New("world: invalid value")

	// ErrOutOfRange indicates a position or boundary-edge access outside the
	// current world bounds.
	ErrOutOfRange = errors.New("world: position out of range")

	// ErrBlockedMove indicates a move attempted while the robot's front is
	// blocked by a wall or the grid edge.
	ErrBlockedMove = errors.New("world: move blocked")
)
