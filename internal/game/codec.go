package game

import (
	"fmt"
	"regexp"
	"strings"
)

// InitialBoardString is the standard starting arrangement in board-string form.
const InitialBoardString = "rnbqkbnrpppppppp................................PPPPPPPPRNBQKBNR"

// InitialGameString is the standard starting position: no en-passant markers,
// all castling rights, White to move.
const InitialGameString = InitialBoardString + "ffffffff" + "tttt" + "W"

// GameStringLength is the length of an encoded Position.
const GameStringLength = 77

var (
	boardStringPattern = regexp.MustCompile(`^[pnbrqkPNBRQK.]{64}$`)
	gameStringPattern  = regexp.MustCompile(`^[pnbrqkPNBRQK.]{64}[tf]{8}[tf]{4}[WB]$`)
)

// Encode serializes a position as a 77 character game string: 64 board
// characters, 8 en-passant flags, 4 castling flags (Black long, Black short,
// White long, White short) and the side to move.
func Encode(p Position) string {
	var sb strings.Builder
	sb.Grow(GameStringLength)
	sb.WriteString(EncodeBoard(p.Board))
	for _, marker := range p.EnPassant {
		sb.WriteByte(flag(marker))
	}
	sb.WriteByte(flag(p.Castling[Black].Long))
	sb.WriteByte(flag(p.Castling[Black].Short))
	sb.WriteByte(flag(p.Castling[White].Long))
	sb.WriteByte(flag(p.Castling[White].Short))
	if p.Turn == White {
		sb.WriteByte('W')
	} else {
		sb.WriteByte('B')
	}
	return sb.String()
}

// Decode parses a game string produced by Encode.
func Decode(s string) (Position, error) {
	if !gameStringPattern.MatchString(s) {
		return Position{}, fmt.Errorf("game string %q: %w", s, ErrFormat)
	}
	board, err := DecodeBoard(s[:64])
	if err != nil {
		return Position{}, err
	}

	p := Position{Board: board}
	rest := s[64:]
	for col := 0; col < 8; col++ {
		p.EnPassant[col] = rest[col] == 't'
	}
	p.Castling[Black] = CastlingRights{Long: rest[8] == 't', Short: rest[9] == 't'}
	p.Castling[White] = CastlingRights{Long: rest[10] == 't', Short: rest[11] == 't'}
	if rest[12] == 'W' {
		p.Turn = White
	} else {
		p.Turn = Black
	}
	return p, nil
}

// EncodeBoard serializes only the 64 board slots.
func EncodeBoard(board [64]Piece) string {
	var sb strings.Builder
	sb.Grow(64)
	for _, piece := range board {
		sb.WriteRune(piece.Rune())
	}
	return sb.String()
}

// DecodeBoard parses a 64 character board string.
func DecodeBoard(s string) ([64]Piece, error) {
	var board [64]Piece
	if !boardStringPattern.MatchString(s) {
		return board, fmt.Errorf("board string %q: %w", s, ErrFormat)
	}
	for i, r := range s {
		piece, _ := PieceFromRune(r)
		board[i] = piece
	}
	return board, nil
}

func flag(b bool) byte {
	if b {
		return 't'
	}
	return 'f'
}
