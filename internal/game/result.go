package game

// Result is how a finished game ended.
type Result uint8

const (
	WhiteWins Result = iota + 1
	BlackWins
	Stalemate
	InsufficientMaterial // declared for completeness; never produced
	ThreefoldRepetition
	FiftyMoveRule
)

// Code returns the stable identifier used in JSON payloads
func (r Result) Code() string {
	switch r {
	case WhiteWins:
		return "white_wins"
	case BlackWins:
		return "black_wins"
	case Stalemate:
		return "stalemate"
	case InsufficientMaterial:
		return "insufficient_material"
	case ThreefoldRepetition:
		return "threefold_repetition"
	case FiftyMoveRule:
		return "fifty_move_rule"
	}
	return ""
}

// String returns a human-readable description of the result
func (r Result) String() string {
	switch r {
	case WhiteWins:
		return "White wins by checkmate."
	case BlackWins:
		return "Black wins by checkmate."
	case Stalemate:
		return "Draw by stalemate."
	case InsufficientMaterial:
		return "Draw by insufficient material."
	case ThreefoldRepetition:
		return "Draw by threefold repetition."
	case FiftyMoveRule:
		return "Draw by fifty move rule."
	}
	return "Game in progress."
}

// Winner returns the winning side; ok is false for draws.
func (r Result) Winner() (side Side, ok bool) {
	switch r {
	case WhiteWins:
		return White, true
	case BlackWins:
		return Black, true
	}
	return White, false
}

// IsDraw reports whether the result is a draw of any kind.
func (r Result) IsDraw() bool {
	return r >= Stalemate && r <= FiftyMoveRule
}

func checkmateBy(winner Side) Result {
	if winner == White {
		return WhiteWins
	}
	return BlackWins
}
