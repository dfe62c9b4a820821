package game

import (
	"errors"
	"testing"
)

func TestNewSquareBounds(t *testing.T) {
	for _, c := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}, {9, 9}} {
		if _, err := NewSquare(c[0], c[1]); !errors.Is(err, ErrOutOfRange) {
			t.Fatalf("NewSquare(%d, %d) error = %v, want ErrOutOfRange", c[0], c[1], err)
		}
	}
	s, err := NewSquare(7, 0)
	if err != nil {
		t.Fatalf("NewSquare(7, 0): %v", err)
	}
	if s.String() != "A1" {
		t.Fatalf("NewSquare(7, 0) = %s, want A1", s)
	}
}

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in       string
		row, col int
	}{
		{"A8", 0, 0},
		{"H1", 7, 7},
		{"E4", 4, 4},
		{"e4", 4, 4},
		{"c6", 2, 2},
	}
	for _, tt := range tests {
		s, err := ParseSquare(tt.in)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", tt.in, err)
		}
		if s.Row() != tt.row || s.Col() != tt.col {
			t.Fatalf("ParseSquare(%q) = (%d,%d), want (%d,%d)", tt.in, s.Row(), s.Col(), tt.row, tt.col)
		}
	}

	for _, bad := range []string{"", "E", "E44", "I1", "A0", "A9", "4E", "e-"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrFormat) {
			t.Fatalf("ParseSquare(%q) error = %v, want ErrFormat", bad, err)
		}
	}
}

func TestSquareStringRoundTrip(t *testing.T) {
	for i := 0; i < 64; i++ {
		s := SquareAt(i)
		back, err := ParseSquare(s.String())
		if err != nil {
			t.Fatalf("ParseSquare(%s): %v", s, err)
		}
		if back != s || back.Index() != i {
			t.Fatalf("round trip of index %d gave %v", i, back)
		}
	}
}

func TestSquareAddOffBoard(t *testing.T) {
	a1 := sq(t, "A1")
	if _, ok := a1.Add(Vector{DRow: 1}, 1); ok {
		t.Fatalf("A1 one row down should be off-board")
	}
	if _, ok := a1.Add(Vector{DCol: -1}, 1); ok {
		t.Fatalf("A1 one column left should be off-board")
	}
	if got, ok := a1.Add(Vector{DRow: -1, DCol: 1}, 7); !ok || got != sq(t, "H8") {
		t.Fatalf("A1 + 7 diagonal steps = %v, %v; want H8", got, ok)
	}
	if _, ok := a1.Add(Vector{DRow: -1, DCol: 1}, 8); ok {
		t.Fatalf("A1 + 8 diagonal steps should be off-board")
	}
}

func TestVectorSets(t *testing.T) {
	if len(DiagonalVectors) != 4 || len(OrthogonalVectors) != 4 || len(KnightVectors) != 8 || len(KingVectors) != 8 {
		t.Fatalf("unexpected vector set sizes")
	}
	if got := len(sq(t, "A1").Neighbours(KnightVectors)); got != 2 {
		t.Fatalf("knight on A1 has %d leaps, want 2", got)
	}
	if got := len(sq(t, "D4").Neighbours(KnightVectors)); got != 8 {
		t.Fatalf("knight on D4 has %d leaps, want 8", got)
	}
}
