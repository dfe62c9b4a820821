package game

// AttackedBy reports whether any piece of side attacks sq. It answers pure
// geometry on the current board and ignores whose turn it is.
func (p *Position) AttackedBy(sq Square, side Side) bool {
	// Pawns attack diagonally forward, so look one row back from their view.
	back := -pawnDirection(side)
	pawn := Piece{Side: side, Kind: Pawn}
	for _, dc := range []int{-1, 1} {
		if from, ok := sq.Add(Vector{DRow: back, DCol: dc}, 1); ok && p.At(from) == pawn {
			return true
		}
	}

	knight := Piece{Side: side, Kind: Knight}
	for _, from := range sq.Neighbours(KnightVectors) {
		if p.At(from) == knight {
			return true
		}
	}

	king := Piece{Side: side, Kind: King}
	for _, from := range sq.Neighbours(KingVectors) {
		if p.At(from) == king {
			return true
		}
	}

	queen := Piece{Side: side, Kind: Queen}
	if p.rayHits(sq, DiagonalVectors, Piece{Side: side, Kind: Bishop}, queen) {
		return true
	}
	return p.rayHits(sq, OrthogonalVectors, Piece{Side: side, Kind: Rook}, queen)
}

// rayHits walks each vector from sq and reports whether the first occupied
// square holds one of the given pieces.
func (p *Position) rayHits(sq Square, vectors []Vector, a, b Piece) bool {
	for _, v := range vectors {
		for n := 1; ; n++ {
			cur, ok := sq.Add(v, n)
			if !ok {
				break
			}
			piece := p.At(cur)
			if piece.IsZero() {
				continue
			}
			if piece == a || piece == b {
				return true
			}
			break
		}
	}
	return false
}
