package models

import (
	"time"

	"github.com/samstronghammer/chess/internal/game"
)

type PlayerColor string

const (
	White PlayerColor = "white"
	Black PlayerColor = "black"
)

func ColorOf(side game.Side) PlayerColor {
	if side == game.Black {
		return Black
	}
	return White
}

type GameStatus string

const (
	GameStatusActive   GameStatus = "active"   // Game in progress
	GameStatusComplete GameStatus = "complete" // Game finished
)

// Game is the JSON view of a session's game.
type Game struct {
	SessionID      string      `json:"sessionId"`
	Status         GameStatus  `json:"status"`
	CurrentTurn    PlayerColor `json:"currentTurn"`
	GameString     string      `json:"gameString"`
	BoardState     string      `json:"boardState"` // FEN notation
	Board          []string    `json:"board"`      // eight rows, rank 8 first
	Check          bool        `json:"check"`
	Winner         PlayerColor `json:"winner,omitempty"`
	WinReason      string      `json:"winReason,omitempty"` // result code, e.g. "threefold_repetition"
	ResultMessage  string      `json:"resultMessage,omitempty"`
	HalfMoveClock  int         `json:"halfMoveClock"`
	FullMoveNumber int         `json:"fullMoveNumber"`
	MoveCount      int         `json:"moveCount"`
	History        []string    `json:"history"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// NewGame builds the view of g. The caller must hold whatever lock guards g.
func NewGame(sessionID string, g *game.Game, createdAt, updatedAt time.Time) Game {
	gameString := g.GameString()
	board := make([]string, 8)
	for row := range board {
		board[row] = gameString[row*8 : row*8+8]
	}

	view := Game{
		SessionID:      sessionID,
		Status:         GameStatusActive,
		CurrentTurn:    ColorOf(g.Turn()),
		GameString:     gameString,
		BoardState:     g.FEN(),
		Board:          board,
		Check:          g.InCheck(),
		HalfMoveClock:  g.HalfMoveClock(),
		FullMoveNumber: g.FullMoveNumber(),
		History:        g.History(),
		CreatedAt:      createdAt,
		UpdatedAt:      updatedAt,
	}
	view.MoveCount = len(view.History)
	if result, over := g.Result(); over {
		view.Status = GameStatusComplete
		view.WinReason = result.Code()
		view.ResultMessage = result.String()
		if winner, ok := result.Winner(); ok {
			view.Winner = ColorOf(winner)
		}
	}
	return view
}

// Move is one played move.
type Move struct {
	MoveNumber int         `json:"moveNumber"`
	Color      PlayerColor `json:"color"`
	From       string      `json:"from"`     // e.g., "E2"
	To         string      `json:"to"`       // e.g., "E4"
	Piece      string      `json:"piece"`    // e.g., "P" for pawn
	Notation   string      `json:"notation"` // Standard algebraic notation, e.g., "e4"
	Capture    bool        `json:"capture"`
	Check      bool        `json:"check"`
	Checkmate  bool        `json:"checkmate"`
	Promotion  string      `json:"promotion,omitempty"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Piece describes the occupant of one square.
type Piece struct {
	Square string      `json:"square"`
	Empty  bool        `json:"empty"`
	Color  PlayerColor `json:"color,omitempty"`
	Kind   string      `json:"kind,omitempty"`
	Symbol string      `json:"symbol"`
}

func NewPiece(sq game.Square, piece game.Piece) Piece {
	view := Piece{Square: sq.String(), Symbol: string(piece.Rune())}
	if piece.IsZero() {
		view.Empty = true
		return view
	}
	view.Color = ColorOf(piece.Side)
	view.Kind = piece.Kind.String()
	return view
}

// Event is the message pushed to websocket clients.
type Event struct {
	Type string `json:"type"`
	Move *Move  `json:"move,omitempty"`
	Game Game   `json:"game"`
}
