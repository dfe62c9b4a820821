package game

import (
	"errors"
	"testing"
)

func TestParseFENInitial(t *testing.T) {
	rec, err := ParseFEN(InitialFEN)
	if err != nil {
		t.Fatalf("ParseFEN failed: %v", err)
	}
	want, err := Decode(InitialGameString)
	if err != nil {
		t.Fatal(err)
	}
	if rec.Position != want {
		t.Fatalf("ParseFEN(InitialFEN) differs from the initial game string")
	}
	if rec.HalfMoveClock != 0 || rec.FullMoveNumber != 1 {
		t.Fatalf("counters = %d/%d, want 0/1", rec.HalfMoveClock, rec.FullMoveNumber)
	}
	if got := NewGame().FEN(); got != InitialFEN {
		t.Fatalf("NewGame().FEN() = %q, want %q", got, InitialFEN)
	}
}

func TestFENAfterMoves(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4")
	if got, want := g.FEN(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1"; got != want {
		t.Fatalf("FEN after e4 = %q, want %q", got, want)
	}
	play(t, g, "c7c5", "g1f3")
	if got, want := g.FEN(), "rnbqkbnr/pp1ppppp/8/2p5/4P3/5N2/PPPP1PPP/RNBQKB1R b KQkq - 1 2"; got != want {
		t.Fatalf("FEN after e4 c5 Nf3 = %q, want %q", got, want)
	}
}

func TestFENRoundTrip(t *testing.T) {
	fens := []string{
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 3",
		"4k3/8/8/8/8/8/8/4K3 b - - 37 80",
	}
	for _, fen := range fens {
		g := gameFromFEN(t, fen)
		if got := g.FEN(); got != fen {
			t.Fatalf("FEN round trip = %q, want %q", got, fen)
		}
	}
}

func TestParseFENShortForm(t *testing.T) {
	rec, err := ParseFEN("4k3/8/8/8/8/8/8/4K3 w - -")
	if err != nil {
		t.Fatalf("ParseFEN: %v", err)
	}
	if rec.HalfMoveClock != 0 || rec.FullMoveNumber != 1 {
		t.Fatalf("default counters = %d/%d, want 0/1", rec.HalfMoveClock, rec.FullMoveNumber)
	}
}

func TestParseFENRejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBN w KQkq - 0 1",
		"rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x KQkq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQxq - 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq e4 0 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - -1 1",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 0",
		"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0",
	}
	for _, fen := range bad {
		if _, err := ParseFEN(fen); !errors.Is(err, ErrFormat) {
			t.Fatalf("ParseFEN(%q) error = %v, want ErrFormat", fen, err)
		}
	}
}
