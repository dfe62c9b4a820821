package game

import "errors"

var (
	// ErrFormat is returned for malformed game strings, board strings, FEN
	// records and square notation.
	ErrFormat = errors.New("invalid format")

	// ErrOutOfRange is returned when a square is built outside the 8x8 board.
	ErrOutOfRange = errors.New("square out of range")

	// ErrIllegalState is returned when a move is requested from an empty
	// square or after the game has ended.
	ErrIllegalState = errors.New("illegal state")

	// ErrIllegalMove is returned by MakeMove when the destination is not one
	// of the legal destinations of the source square.
	ErrIllegalMove = errors.New("illegal move")
)
