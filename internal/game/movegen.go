package game

// Move is a from/to pair. Promotion is always to a queen.
type Move struct {
	From Square
	To   Square
}

func (m Move) String() string {
	return m.From.String() + " -> " + m.To.String()
}

const (
	kingHomeCol  = 4
	longRookCol  = 0
	shortRookCol = 7
)

// pseudoLegalFrom returns the destinations reachable by the piece on from
// under piece geometry and occupancy rules, without regard to exposing the
// mover's own king. Own-occupied squares are already excluded.
func (p *Position) pseudoLegalFrom(from Square) []Square {
	piece := p.At(from)
	if piece.IsZero() {
		return nil
	}

	var moves []Square
	switch piece.Kind {
	case Pawn:
		moves = p.pawnMoves(from, piece.Side)
	case Knight:
		moves = from.Neighbours(KnightVectors)
	case King:
		moves = append(from.Neighbours(KingVectors), p.castlingMoves(from, piece.Side)...)
	case Bishop:
		moves = p.slidingMoves(from, piece.Side, DiagonalVectors)
	case Rook:
		moves = p.slidingMoves(from, piece.Side, OrthogonalVectors)
	case Queen:
		moves = p.slidingMoves(from, piece.Side, KingVectors)
	}

	// Check if destination has own piece
	out := moves[:0]
	for _, to := range moves {
		if target := p.At(to); !target.IsZero() && target.Side == piece.Side {
			continue
		}
		out = append(out, to)
	}
	return out
}

func (p *Position) pawnMoves(from Square, side Side) []Square {
	var moves []Square
	dir := pawnDirection(side)
	startRow := 6
	enPassantRow := 3
	if side == Black {
		startRow = 1
		enPassantRow = 4
	}

	// Forward move
	if one, ok := from.Add(Vector{DRow: dir}, 1); ok && p.At(one).IsZero() {
		moves = append(moves, one)
		// Double move from starting position
		if from.Row() == startRow {
			if two, ok := from.Add(Vector{DRow: dir}, 2); ok && p.At(two).IsZero() {
				moves = append(moves, two)
			}
		}
	}

	for _, dc := range []int{-1, 1} {
		diag, ok := from.Add(Vector{DRow: dir, DCol: dc}, 1)
		if !ok {
			continue
		}
		// Capture
		if target := p.At(diag); !target.IsZero() {
			if target.Side != side {
				moves = append(moves, diag)
			}
			continue
		}
		// En passant
		if from.Row() == enPassantRow && p.EnPassant[diag.Col()] {
			beside := Square{row: from.Row(), col: diag.Col()}
			if p.At(beside) == (Piece{Side: side.Opponent(), Kind: Pawn}) {
				moves = append(moves, diag)
			}
		}
	}
	return moves
}

func (p *Position) slidingMoves(from Square, side Side, vectors []Vector) []Square {
	var moves []Square
	for _, v := range vectors {
		for n := 1; ; n++ {
			to, ok := from.Add(v, n)
			if !ok {
				break
			}
			target := p.At(to)
			if target.IsZero() {
				moves = append(moves, to)
				continue
			}
			if target.Side != side {
				moves = append(moves, to)
			}
			break
		}
	}
	return moves
}

// castlingMoves returns the king's two-column destinations for each castle
// that is currently permitted.
func (p *Position) castlingMoves(from Square, side Side) []Square {
	rights := p.Castling[side]
	row := homeRow(side)
	if (!rights.Long && !rights.Short) || from != (Square{row: row, col: kingHomeCol}) {
		return nil
	}
	opponent := side.Opponent()
	if p.AttackedBy(from, opponent) {
		return nil
	}

	rook := Piece{Side: side, Kind: Rook}
	var moves []Square
	if rights.Short && p.At(Square{row: row, col: shortRookCol}) == rook &&
		p.pathSafe(row, []int{5, 6}, opponent) {
		moves = append(moves, Square{row: row, col: 6})
	}
	if rights.Long && p.At(Square{row: row, col: longRookCol}) == rook &&
		p.pathSafe(row, []int{3, 2}, opponent) && p.At(Square{row: row, col: 1}).IsZero() {
		moves = append(moves, Square{row: row, col: 2})
	}
	return moves
}

// pathSafe reports whether every listed square on row is empty and not
// attacked by opponent.
func (p *Position) pathSafe(row int, cols []int, opponent Side) bool {
	for _, col := range cols {
		sq := Square{row: row, col: col}
		if !p.At(sq).IsZero() || p.AttackedBy(sq, opponent) {
			return false
		}
	}
	return true
}
