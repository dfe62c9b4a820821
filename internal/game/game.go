package game

import (
	"fmt"
	"slices"
)

// fiftyMoveLimit is the number of recorded positions (one per half-move plus
// the one the count started from) after which the fifty-move rule applies.
const fiftyMoveLimit = 100

// Game is a position plus the history needed to apply the rules that depend
// on it: move list, repetition table and the terminal result.
//
// A Game is not safe for concurrent use; callers serialise mutations.
type Game struct {
	pos     Position
	history []string

	// repetitions counts occurrences of each encoded position since the last
	// capture or pawn move. It is replaced, never cleared in place.
	repetitions map[string]int

	// halfMoveBase is a half-move clock carried over from a FEN record. It is
	// dropped at the first capture or pawn move.
	halfMoveBase int
	fullMove     int

	result Result
}

// NewGame starts a game from the standard initial position.
func NewGame() *Game {
	g, err := NewGameFromString(InitialGameString)
	if err != nil {
		panic(err)
	}
	return g
}

// NewGameFromString starts a game from an encoded position. Only the grammar
// is validated; impossible positions are accepted as given.
func NewGameFromString(gameString string) (*Game, error) {
	pos, err := Decode(gameString)
	if err != nil {
		return nil, err
	}
	return newGame(pos, 0, 1), nil
}

// NewGameFromFEN starts a game from a FEN record, keeping its move counters.
func NewGameFromFEN(fen string) (*Game, error) {
	rec, err := ParseFEN(fen)
	if err != nil {
		return nil, err
	}
	return newGame(rec.Position, rec.HalfMoveClock, rec.FullMoveNumber), nil
}

func newGame(pos Position, halfMoveClock, fullMoveNumber int) *Game {
	g := &Game{
		pos:          pos,
		repetitions:  map[string]int{Encode(pos): 1},
		halfMoveBase: halfMoveClock,
		fullMove:     fullMoveNumber,
	}
	return g
}

// Position returns a copy of the current position.
func (g *Game) Position() Position {
	return g.pos
}

// PieceAt returns the piece on sq; ok is false when the square is empty.
func (g *Game) PieceAt(sq Square) (piece Piece, ok bool) {
	piece = g.pos.At(sq)
	return piece, !piece.IsZero()
}

// Turn returns the side to move.
func (g *Game) Turn() Side {
	return g.pos.Turn
}

// History returns the moves played so far as "<from> -> <to>" strings.
func (g *Game) History() []string {
	return slices.Clone(g.history)
}

// Result returns the terminal result; ok is false while the game is active.
func (g *Game) Result() (result Result, ok bool) {
	return g.result, g.result != 0
}

// IsOver reports whether a result has been set.
func (g *Game) IsOver() bool {
	return g.result != 0
}

// InCheck returns true if the side to move is in check.
func (g *Game) InCheck() bool {
	return g.pos.InCheck(g.pos.Turn)
}

// GameString returns the encoded current position.
func (g *Game) GameString() string {
	return Encode(g.pos)
}

// HalfMoveClock is the number of half-moves since the last capture or pawn
// move.
func (g *Game) HalfMoveClock() int {
	return g.recordedPositions() - 1 + g.halfMoveBase
}

// FullMoveNumber follows the FEN convention: it starts at 1 and increases
// after each Black move.
func (g *Game) FullMoveNumber() int {
	return g.fullMove
}

// FEN returns the current position in FEN notation.
func (g *Game) FEN() string {
	return g.pos.FEN(g.HalfMoveClock(), g.FullMoveNumber())
}

// Repetitions returns how often the current position has occurred since the
// last capture or pawn move.
func (g *Game) Repetitions() int {
	return g.repetitions[Encode(g.pos)]
}

// Clone returns an independent deep copy of the game.
func (g *Game) Clone() *Game {
	c := *g
	c.history = slices.Clone(g.history)
	c.repetitions = make(map[string]int, len(g.repetitions))
	for k, v := range g.repetitions {
		c.repetitions[k] = v
	}
	return &c
}

// MovesFrom returns the legal destinations of the piece on sq, sorted by
// board index. It is empty if sq is empty, holds a piece of the side not on
// move, or the game is over.
func (g *Game) MovesFrom(sq Square) []Square {
	if g.IsOver() {
		return nil
	}
	return g.legalFrom(sq)
}

// LegalMoves returns every legal move of the side to move.
func (g *Game) LegalMoves() []Move {
	if g.IsOver() {
		return nil
	}
	return g.collectLegal()
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (g *Game) HasLegalMoves() bool {
	for i := 0; i < 64; i++ {
		if len(g.legalFrom(SquareAt(i))) > 0 {
			return true
		}
	}
	return false
}

func (g *Game) legalFrom(sq Square) []Square {
	piece := g.pos.At(sq)
	if piece.IsZero() || piece.Side != g.pos.Turn {
		return nil
	}
	var moves []Square
	for _, to := range g.pos.pseudoLegalFrom(sq) {
		if g.keepsKingSafe(sq, to) {
			moves = append(moves, to)
		}
	}
	slices.SortFunc(moves, func(a, b Square) int { return a.Index() - b.Index() })
	return moves
}

func (g *Game) collectLegal() []Move {
	var moves []Move
	for i := 0; i < 64; i++ {
		from := SquareAt(i)
		for _, to := range g.legalFrom(from) {
			moves = append(moves, Move{From: from, To: to})
		}
	}
	return moves
}

// MakeMove plays a legal move and updates the result.
func (g *Game) MakeMove(from, to Square) error {
	piece := g.pos.At(from)
	if piece.IsZero() {
		return fmt.Errorf("no piece at %s: %w", from, ErrIllegalState)
	}
	if g.IsOver() {
		return fmt.Errorf("game is over (%s): %w", g.result, ErrIllegalState)
	}
	if !slices.Contains(g.legalFrom(from), to) {
		return fmt.Errorf("%s %s cannot move %s -> %s: %w", piece.Side, piece.Kind, from, to, ErrIllegalMove)
	}
	return g.applyMove(from, to, false)
}

// applyMove edits the board for a move without checking its legality, then
// does the history, repetition and turn bookkeeping. Termination checks are
// skipped when suppressTermination is set, which every simulated move does.
func (g *Game) applyMove(from, to Square, suppressTermination bool) error {
	piece := g.pos.At(from)
	if piece.IsZero() {
		return fmt.Errorf("no piece at %s: %w", from, ErrIllegalState)
	}
	side := piece.Side
	captured := g.pos.At(to)
	resetsClock := !captured.IsZero() || piece.Kind == Pawn

	g.pos.EnPassant = [8]bool{}

	switch {
	case piece.Kind == King && abs(to.col-from.col) == 2:
		// Castle
		g.pos.Set(from, NoPiece)
		g.pos.Set(to, piece)
		rookFrom, rookTo := Square{row: from.row, col: shortRookCol}, Square{row: from.row, col: 5}
		if to.col < from.col {
			rookFrom, rookTo = Square{row: from.row, col: longRookCol}, Square{row: from.row, col: 3}
		}
		g.pos.Set(rookFrom, NoPiece)
		g.pos.Set(rookTo, Piece{Side: side, Kind: Rook})
		g.pos.Castling[side] = CastlingRights{}

	case piece.Kind == Pawn && (to.row == 0 || to.row == 7):
		// Promotion, always to a queen
		g.pos.Set(from, NoPiece)
		g.pos.Set(to, Piece{Side: side, Kind: Queen})

	case piece.Kind == Pawn && from.col != to.col && captured.IsZero():
		// En passant: the captured pawn stands beside the mover
		g.pos.Set(from, NoPiece)
		g.pos.Set(to, piece)
		g.pos.Set(Square{row: from.row, col: to.col}, NoPiece)

	default:
		switch piece.Kind {
		case King:
			g.pos.Castling[side] = CastlingRights{}
		case Rook:
			if from.row == homeRow(side) {
				if from.col == longRookCol {
					g.pos.Castling[side].Long = false
				} else if from.col == shortRookCol {
					g.pos.Castling[side].Short = false
				}
			}
		case Pawn:
			if abs(to.row-from.row) == 2 {
				g.pos.EnPassant[from.col] = true
			}
		}
		g.pos.Set(from, NoPiece)
		g.pos.Set(to, piece)
	}

	// A rook taken on its corner can no longer castle.
	if captured.Kind == Rook && to.row == homeRow(captured.Side) {
		if to.col == longRookCol {
			g.pos.Castling[captured.Side].Long = false
		} else if to.col == shortRookCol {
			g.pos.Castling[captured.Side].Short = false
		}
	}

	g.history = append(g.history, from.String()+" -> "+to.String())
	if side == Black {
		g.fullMove++
	}
	g.pos.Turn = side.Opponent()

	key := Encode(g.pos)
	if resetsClock {
		g.repetitions = make(map[string]int)
		g.halfMoveBase = 0
	}
	g.repetitions[key]++

	if !suppressTermination {
		g.updateResult(side, key)
	}
	return nil
}

// updateResult checks the end conditions after mover has played.
func (g *Game) updateResult(mover Side, key string) {
	switch {
	case !g.HasLegalMoves():
		if g.InCheck() {
			g.result = checkmateBy(mover)
		} else {
			g.result = Stalemate
		}
	case g.repetitions[key] >= 3:
		g.result = ThreefoldRepetition
	case g.recordedPositions()+g.halfMoveBase > fiftyMoveLimit:
		g.result = FiftyMoveRule
	}
}

func (g *Game) recordedPositions() int {
	total := 0
	for _, n := range g.repetitions {
		total += n
	}
	return total
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
