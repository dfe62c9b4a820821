package game

import "unicode"

// Side identifies the owner of a piece or the player to move.
type Side uint8

const (
	White Side = iota
	Black
)

// Opponent returns the other side.
func (s Side) Opponent() Side {
	if s == White {
		return Black
	}
	return White
}

func (s Side) String() string {
	if s == White {
		return "white"
	}
	return "black"
}

// PieceKind is the kind of a piece. The zero value means no piece.
type PieceKind uint8

// Piece kinds
const (
	Pawn PieceKind = iota + 1
	Knight
	Bishop
	Rook
	Queen
	King
)

var kindRunes = map[PieceKind]rune{
	Pawn:   'P',
	Knight: 'N',
	Bishop: 'B',
	Rook:   'R',
	Queen:  'Q',
	King:   'K',
}

var runeKinds = map[rune]PieceKind{
	'P': Pawn,
	'N': Knight,
	'B': Bishop,
	'R': Rook,
	'Q': Queen,
	'K': King,
}

// Letter returns the upper-case letter used for the kind in notation.
func (k PieceKind) Letter() rune {
	return kindRunes[k]
}

func (k PieceKind) String() string {
	switch k {
	case Pawn:
		return "pawn"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Rook:
		return "rook"
	case Queen:
		return "queen"
	case King:
		return "king"
	}
	return "none"
}

// Piece is a side and a kind. The zero Piece is an empty square.
type Piece struct {
	Side Side
	Kind PieceKind
}

// NoPiece is the empty board slot.
var NoPiece = Piece{}

// IsZero reports whether p is the empty slot.
func (p Piece) IsZero() bool {
	return p.Kind == 0
}

// Rune returns the codec character for p: upper case for White, lower case
// for Black and '.' for an empty slot.
func (p Piece) Rune() rune {
	if p.IsZero() {
		return '.'
	}
	r := kindRunes[p.Kind]
	if p.Side == Black {
		return unicode.ToLower(r)
	}
	return r
}

func (p Piece) String() string {
	if p.IsZero() {
		return "empty"
	}
	return p.Side.String() + " " + p.Kind.String()
}

// PieceFromRune is the inverse of Piece.Rune. The second result is false for
// characters outside the "pnbrqkPNBRQK." alphabet.
func PieceFromRune(r rune) (Piece, bool) {
	if r == '.' {
		return NoPiece, true
	}
	kind, ok := runeKinds[unicode.ToUpper(r)]
	if !ok {
		return NoPiece, false
	}
	side := White
	if unicode.IsLower(r) {
		side = Black
	}
	return Piece{Side: side, Kind: kind}, true
}
