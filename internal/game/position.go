package game

// CastlingRights records which castles a side may still perform.
type CastlingRights struct {
	Long  bool
	Short bool
}

// Position is a full snapshot of the board and the state needed to continue
// play from it. Positions are comparable with ==.
type Position struct {
	Board     [64]Piece
	Castling  [2]CastlingRights // indexed by Side
	EnPassant [8]bool           // indexed by column of a pawn that just double-stepped
	Turn      Side
}

// At returns the piece on sq (NoPiece when empty).
func (p *Position) At(sq Square) Piece {
	return p.Board[sq.Index()]
}

// Set puts piece on sq; NoPiece clears it.
func (p *Position) Set(sq Square, piece Piece) {
	p.Board[sq.Index()] = piece
}

// KingSquare finds side's king. The second result is false when the board has
// no such king.
func (p *Position) KingSquare(side Side) (Square, bool) {
	king := Piece{Side: side, Kind: King}
	for i, piece := range p.Board {
		if piece == king {
			return SquareAt(i), true
		}
	}
	return Square{}, false
}

// InCheck returns true if side's king is attacked by the opponent. A board
// without that king is never in check.
func (p *Position) InCheck(side Side) bool {
	kingSq, ok := p.KingSquare(side)
	if !ok {
		return false
	}
	return p.AttackedBy(kingSq, side.Opponent())
}

// homeRow is the back rank of side.
func homeRow(side Side) int {
	if side == White {
		return 7
	}
	return 0
}

// pawnDirection is the row delta of side's forward step.
func pawnDirection(side Side) int {
	if side == White {
		return -1
	}
	return 1
}
