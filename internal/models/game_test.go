package models

import (
	"testing"
	"time"

	"github.com/samstronghammer/chess/internal/game"
)

func TestNewGameViewInitial(t *testing.T) {
	now := time.Now()
	view := NewGame("abc", game.NewGame(), now, now)

	if view.Status != GameStatusActive || view.CurrentTurn != White {
		t.Fatalf("status/turn = %s/%s, want active/white", view.Status, view.CurrentTurn)
	}
	if view.Board[0] != "rnbqkbnr" || view.Board[7] != "RNBQKBNR" {
		t.Fatalf("board rows = %v", view.Board)
	}
	if view.BoardState != game.InitialFEN || view.GameString != game.InitialGameString {
		t.Fatalf("unexpected encodings %q / %q", view.BoardState, view.GameString)
	}
	if view.Winner != "" || view.WinReason != "" {
		t.Fatalf("active game has a result: %+v", view)
	}
}

func TestNewGameViewFinished(t *testing.T) {
	g := game.NewGame()
	for _, m := range [][2]string{{"F2", "F3"}, {"E7", "E5"}, {"G2", "G4"}, {"D8", "H4"}} {
		from, _ := game.ParseSquare(m[0])
		to, _ := game.ParseSquare(m[1])
		if err := g.MakeMove(from, to); err != nil {
			t.Fatalf("MakeMove(%s%s): %v", m[0], m[1], err)
		}
	}

	view := NewGame("abc", g, time.Now(), time.Now())
	if view.Status != GameStatusComplete {
		t.Fatalf("Status = %s, want complete", view.Status)
	}
	if view.Winner != Black || view.WinReason != "black_wins" {
		t.Fatalf("winner/reason = %s/%s", view.Winner, view.WinReason)
	}
	if !view.Check || view.MoveCount != 4 {
		t.Fatalf("check/moveCount = %v/%d", view.Check, view.MoveCount)
	}
}

func TestNewPiece(t *testing.T) {
	e1, _ := game.ParseSquare("E1")
	p := NewPiece(e1, game.Piece{Side: game.White, Kind: game.King})
	if p.Empty || p.Color != White || p.Kind != "king" || p.Symbol != "K" || p.Square != "E1" {
		t.Fatalf("NewPiece = %+v", p)
	}
	empty := NewPiece(e1, game.NoPiece)
	if !empty.Empty || empty.Symbol != "." || empty.Color != "" {
		t.Fatalf("empty NewPiece = %+v", empty)
	}
}
