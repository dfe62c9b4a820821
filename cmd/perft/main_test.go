package main

import (
	"errors"
	"testing"

	"github.com/samstronghammer/chess/internal/game"
)

func TestLoad(t *testing.T) {
	g, err := load("", "")
	if err != nil || g.FEN() != game.InitialFEN {
		t.Fatalf("default load = %v, %v", g, err)
	}
	if _, err := load(game.InitialFEN, game.InitialGameString); err == nil {
		t.Fatalf("expected an error when both -fen and -game are set")
	}
	if _, err := load("", "bad"); !errors.Is(err, game.ErrFormat) {
		t.Fatalf("bad game string error = %v, want ErrFormat", err)
	}
	g, err = load("8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1", "")
	if err != nil {
		t.Fatalf("load FEN: %v", err)
	}
	if n := g.Perft(1); n != 14 {
		t.Fatalf("Perft(1) = %d, want 14", n)
	}
}
