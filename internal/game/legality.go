package game

import "slices"

// IsLegal reports whether the side to move may play from -> to.
func (g *Game) IsLegal(from, to Square) bool {
	if g.IsOver() {
		return false
	}
	piece := g.pos.At(from)
	if piece.IsZero() || piece.Side != g.pos.Turn {
		return false
	}
	return slices.Contains(g.pos.pseudoLegalFrom(from), to) && g.keepsKingSafe(from, to)
}

// keepsKingSafe plays from -> to on a throwaway copy of the game and checks
// that the mover's king is not left attacked.
func (g *Game) keepsKingSafe(from, to Square) bool {
	mover := g.pos.At(from).Side
	sim := g.simulation()
	if err := sim.applyMove(from, to, true); err != nil {
		return false
	}
	return !sim.pos.InCheck(mover)
}

// simulation copies the position into a game with fresh bookkeeping. Nothing
// a simulated move records is ever read back.
func (g *Game) simulation() *Game {
	return &Game{
		pos:         g.pos,
		repetitions: make(map[string]int, 1),
		fullMove:    g.fullMove,
	}
}
