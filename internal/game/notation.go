package game

import (
	"fmt"
	"strings"
)

// SAN generates standard algebraic notation for a legal move of the side to
// move, as it would be written before the move is played.
func (g *Game) SAN(from, to Square) (string, error) {
	if !g.IsLegal(from, to) {
		return "", fmt.Errorf("%s -> %s: %w", from, to, ErrIllegalMove)
	}

	piece := g.pos.At(from)
	isCapture := !g.pos.At(to).IsZero()

	// Handle en passant
	if piece.Kind == Pawn && from.col != to.col {
		isCapture = true
	}

	var notation strings.Builder

	if piece.Kind == King && abs(to.col-from.col) == 2 {
		// Castling
		if to.col > from.col {
			notation.WriteString("O-O")
		} else {
			notation.WriteString("O-O-O")
		}
	} else {
		// Piece letter (not for pawns)
		if piece.Kind != Pawn {
			notation.WriteRune(piece.Kind.Letter())
		}

		// Disambiguation for pieces that could move to the same square
		if piece.Kind != Pawn && piece.Kind != King {
			needFile, needRank := g.needsDisambiguation(from, to, piece)
			if needFile {
				notation.WriteByte(fileLetter(from))
			}
			if needRank {
				notation.WriteByte(rankDigit(from))
			}
		}

		// Pawn captures include file
		if piece.Kind == Pawn && isCapture {
			notation.WriteByte(fileLetter(from))
		}

		if isCapture {
			notation.WriteByte('x')
		}

		notation.WriteString(strings.ToLower(to.String()))

		if piece.Kind == Pawn && (to.row == 0 || to.row == 7) {
			notation.WriteString("=Q")
		}
	}

	// Check/Checkmate
	next := g.Clone()
	if err := next.applyMove(from, to, false); err != nil {
		return "", err
	}
	if result, over := next.Result(); over && !result.IsDraw() {
		notation.WriteByte('#')
	} else if next.InCheck() {
		notation.WriteByte('+')
	}

	return notation.String(), nil
}

// needsDisambiguation reports whether the origin file and/or rank must be
// written because another piece of the same kind can also reach to.
func (g *Game) needsDisambiguation(from, to Square, piece Piece) (needFile, needRank bool) {
	var rivals []Square
	for i, other := range g.pos.Board {
		sq := SquareAt(i)
		if sq == from || other != piece {
			continue
		}
		if g.IsLegal(sq, to) {
			rivals = append(rivals, sq)
		}
	}
	if len(rivals) == 0 {
		return false, false
	}

	sameFile, sameRank := false, false
	for _, sq := range rivals {
		if sq.col == from.col {
			sameFile = true
		}
		if sq.row == from.row {
			sameRank = true
		}
	}
	switch {
	case !sameFile:
		return true, false
	case !sameRank:
		return false, true
	default:
		return true, true
	}
}

func fileLetter(sq Square) byte {
	return byte('a' + sq.col)
}

func rankDigit(sq Square) byte {
	return byte('0' + 8 - sq.row)
}
