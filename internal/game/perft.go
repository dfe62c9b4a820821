package game

// Perft counts the leaf nodes of the legal move tree to the given depth.
// Promotions count once (always to a queen) and end-of-game rules are not
// applied inside the tree.
func (g *Game) Perft(depth int) uint64 {
	if depth <= 0 {
		return 1
	}
	moves := g.collectLegal()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		child := g.simulation()
		if err := child.applyMove(m.From, m.To, true); err != nil {
			continue
		}
		nodes += child.Perft(depth - 1)
	}
	return nodes
}

// PerftDivide returns the perft count below each root move.
func (g *Game) PerftDivide(depth int) map[Move]uint64 {
	out := make(map[Move]uint64)
	if depth <= 0 {
		return out
	}
	for _, m := range g.collectLegal() {
		child := g.simulation()
		if err := child.applyMove(m.From, m.To, true); err != nil {
			continue
		}
		out[m] = child.Perft(depth - 1)
	}
	return out
}
