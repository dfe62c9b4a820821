package game

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"
)

// InitialFEN is the standard starting position in FEN notation.
const InitialFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// FENRecord is a position together with the two FEN move counters.
type FENRecord struct {
	Position       Position
	HalfMoveClock  int
	FullMoveNumber int
}

// ParseFEN parses a FEN string. The two move counters may be omitted, in
// which case they default to 0 and 1.
func ParseFEN(fen string) (FENRecord, error) {
	parts := strings.Fields(fen)
	if len(parts) != 4 && len(parts) != 6 {
		return FENRecord{}, fmt.Errorf("FEN %q: expected 4 or 6 fields, got %d: %w", fen, len(parts), ErrFormat)
	}

	rec := FENRecord{FullMoveNumber: 1}
	p := &rec.Position

	// Piece placement
	ranks := strings.Split(parts[0], "/")
	if len(ranks) != 8 {
		return FENRecord{}, fmt.Errorf("FEN %q: expected 8 ranks: %w", fen, ErrFormat)
	}
	for row, rank := range ranks {
		col := 0
		for _, c := range rank {
			if unicode.IsDigit(c) {
				n := int(c - '0')
				if n < 1 || n > 8 {
					return FENRecord{}, fmt.Errorf("FEN %q: bad empty run %q: %w", fen, c, ErrFormat)
				}
				col += n
				continue
			}
			piece, ok := PieceFromRune(c)
			if !ok || piece.IsZero() || col > 7 {
				return FENRecord{}, fmt.Errorf("FEN %q: bad rank %q: %w", fen, rank, ErrFormat)
			}
			p.Board[row*8+col] = piece
			col++
		}
		if col != 8 {
			return FENRecord{}, fmt.Errorf("FEN %q: rank %q does not cover 8 files: %w", fen, rank, ErrFormat)
		}
	}

	// Active color
	switch parts[1] {
	case "w":
		p.Turn = White
	case "b":
		p.Turn = Black
	default:
		return FENRecord{}, fmt.Errorf("FEN %q: bad active color %q: %w", fen, parts[1], ErrFormat)
	}

	// Castling rights
	if parts[2] != "-" {
		for _, c := range parts[2] {
			switch c {
			case 'K':
				p.Castling[White].Short = true
			case 'Q':
				p.Castling[White].Long = true
			case 'k':
				p.Castling[Black].Short = true
			case 'q':
				p.Castling[Black].Long = true
			default:
				return FENRecord{}, fmt.Errorf("FEN %q: bad castling field %q: %w", fen, parts[2], ErrFormat)
			}
		}
	}

	// En passant target; only the file is kept
	if parts[3] != "-" {
		target, err := ParseSquare(parts[3])
		if err != nil || (target.Row() != 2 && target.Row() != 5) {
			return FENRecord{}, fmt.Errorf("FEN %q: bad en passant square %q: %w", fen, parts[3], ErrFormat)
		}
		p.EnPassant[target.Col()] = true
	}

	if len(parts) == 6 {
		half, err := strconv.Atoi(parts[4])
		if err != nil || half < 0 {
			return FENRecord{}, fmt.Errorf("FEN %q: bad half-move clock %q: %w", fen, parts[4], ErrFormat)
		}
		full, err := strconv.Atoi(parts[5])
		if err != nil || full < 1 {
			return FENRecord{}, fmt.Errorf("FEN %q: bad full-move number %q: %w", fen, parts[5], ErrFormat)
		}
		rec.HalfMoveClock = half
		rec.FullMoveNumber = full
	}

	return rec, nil
}

// FEN converts the position to FEN notation with the given move counters.
func (p Position) FEN(halfMoveClock, fullMoveNumber int) string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < 8; row++ {
		empty := 0
		for col := 0; col < 8; col++ {
			piece := p.Board[row*8+col]
			if piece.IsZero() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteRune(rune('0' + empty))
				empty = 0
			}
			sb.WriteRune(piece.Rune())
		}
		if empty > 0 {
			sb.WriteRune(rune('0' + empty))
		}
		if row < 7 {
			sb.WriteRune('/')
		}
	}

	// Active color
	if p.Turn == White {
		sb.WriteString(" w ")
	} else {
		sb.WriteString(" b ")
	}

	// Castling rights
	castling := ""
	if p.Castling[White].Short {
		castling += "K"
	}
	if p.Castling[White].Long {
		castling += "Q"
	}
	if p.Castling[Black].Short {
		castling += "k"
	}
	if p.Castling[Black].Long {
		castling += "q"
	}
	if castling == "" {
		castling = "-"
	}
	sb.WriteString(castling)

	// En passant: the square the double-stepped pawn passed over
	sb.WriteString(" ")
	target := "-"
	for col, marker := range p.EnPassant {
		if !marker {
			continue
		}
		// The pawn that double-stepped belongs to the side not on move.
		row := 2
		if p.Turn == Black {
			row = 5
		}
		target = strings.ToLower(Square{row: row, col: col}.String())
		break
	}
	sb.WriteString(target)

	sb.WriteString(fmt.Sprintf(" %d %d", halfMoveClock, fullMoveNumber))
	return sb.String()
}
