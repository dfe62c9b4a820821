package game

import (
	"sort"
	"strings"
	"testing"
)

func sq(t *testing.T, s string) Square {
	t.Helper()
	square, err := ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return square
}

// play applies moves written as "e2e4".
func play(t *testing.T, g *Game, moves ...string) {
	t.Helper()
	for _, m := range moves {
		if len(m) != 4 {
			t.Fatalf("bad move literal %q", m)
		}
		if err := g.MakeMove(sq(t, m[:2]), sq(t, m[2:])); err != nil {
			t.Fatalf("MakeMove(%s): %v", m, err)
		}
	}
}

func gameFromFEN(t *testing.T, fen string) *Game {
	t.Helper()
	g, err := NewGameFromFEN(fen)
	if err != nil {
		t.Fatalf("NewGameFromFEN(%q): %v", fen, err)
	}
	return g
}

func squareNames(squares []Square) string {
	names := make([]string, len(squares))
	for i, s := range squares {
		names[i] = s.String()
	}
	return strings.Join(names, " ")
}

// moveSet renders every legal move as "e2e4", sorted.
func moveSet(g *Game) []string {
	var out []string
	for _, m := range g.LegalMoves() {
		out = append(out, strings.ToLower(m.From.String()+m.To.String()))
	}
	sort.Strings(out)
	return out
}
