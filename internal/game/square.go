package game

import "fmt"

// Square is a board coordinate. Row 0 is the eighth rank (Black's back rank)
// and column 0 is the A file.
type Square struct {
	row int
	col int
}

// NewSquare builds a square, failing with ErrOutOfRange when row or col is
// outside [0,7].
func NewSquare(row, col int) (Square, error) {
	if !onBoard(row, col) {
		return Square{}, fmt.Errorf("row %d, column %d: %w", row, col, ErrOutOfRange)
	}
	return Square{row: row, col: col}, nil
}

// MustSquare is like NewSquare but panics on out of range coordinates.
func MustSquare(row, col int) Square {
	sq, err := NewSquare(row, col)
	if err != nil {
		panic(err)
	}
	return sq
}

// ParseSquare converts algebraic notation (e.g. "E4" or "e4") to a Square.
func ParseSquare(s string) (Square, error) {
	if len(s) != 2 {
		return Square{}, fmt.Errorf("square %q: %w", s, ErrFormat)
	}
	file := s[0]
	if file >= 'a' && file <= 'h' {
		file -= 'a' - 'A'
	}
	rank := s[1]
	if file < 'A' || file > 'H' || rank < '1' || rank > '8' {
		return Square{}, fmt.Errorf("square %q: %w", s, ErrFormat)
	}
	return Square{row: 8 - int(rank-'0'), col: int(file - 'A')}, nil
}

// Row returns the row, 0 being the eighth rank.
func (s Square) Row() int { return s.row }

// Col returns the column, 0 being the A file.
func (s Square) Col() int { return s.col }

// Index returns row*8+col, the square's slot in Position.Board.
func (s Square) Index() int { return s.row*8 + s.col }

// SquareAt returns the square for a board index in [0,63].
func SquareAt(index int) Square {
	return Square{row: index / 8, col: index % 8}
}

// String converts the square to algebraic notation, e.g. "E4".
func (s Square) String() string {
	return fmt.Sprintf("%c%d", 'A'+s.col, 8-s.row)
}

// Add moves n steps along v. The second result is false when the target
// falls off the board.
func (s Square) Add(v Vector, n int) (Square, bool) {
	row, col := s.row+v.DRow*n, s.col+v.DCol*n
	if !onBoard(row, col) {
		return Square{}, false
	}
	return Square{row: row, col: col}, true
}

// Neighbours returns the on-board squares one step along each vector.
func (s Square) Neighbours(vectors []Vector) []Square {
	out := make([]Square, 0, len(vectors))
	for _, v := range vectors {
		if sq, ok := s.Add(v, 1); ok {
			out = append(out, sq)
		}
	}
	return out
}

func onBoard(row, col int) bool {
	return row >= 0 && row < 8 && col >= 0 && col < 8
}

// Vector is a step on the board in rows and columns.
type Vector struct {
	DRow int
	DCol int
}

var (
	DiagonalVectors   = []Vector{{1, 1}, {1, -1}, {-1, 1}, {-1, -1}}
	OrthogonalVectors = []Vector{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}
	KnightVectors     = []Vector{{2, 1}, {2, -1}, {-2, 1}, {-2, -1}, {1, 2}, {-1, 2}, {1, -2}, {-1, -2}}
	KingVectors       = append(append([]Vector{}, OrthogonalVectors...), DiagonalVectors...)
)
