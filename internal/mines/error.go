package mines

import "errors"

var (
	// ErrInvalidConfiguration is returned when a board cannot be built from
	// the requested size and mine count.
	ErrInvalidConfiguration = errors.New("invalid board configuration")

	// ErrOutOfBounds is returned by [Board.Reveal] for a location outside
	// the grid. The board is left untouched.
	ErrOutOfBounds = errors.New("location out of bounds")

	errCorruptState = errors.New("corrupt board state")
)
