package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/samstronghammer/chess/internal/game"
	"github.com/samstronghammer/chess/internal/models"
	"github.com/samstronghammer/chess/internal/session"
)

const maxRequestBody = 4 << 10

type GameHandler struct {
	store *session.Store
}

func NewGameHandler(store *session.Store) *GameHandler {
	return &GameHandler{store: store}
}

type CreateGameRequest struct {
	GameString string `json:"gameString,omitempty"`
	FEN        string `json:"fen,omitempty"`
}

type CreateGameResponse struct {
	SessionID string      `json:"sessionId"`
	Game      models.Game `json:"game"`
}

type MakeMoveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

type MakeMoveResponse struct {
	Success bool        `json:"success"`
	Move    models.Move `json:"move"`
	Game    models.Game `json:"game"`
}

type SquareMovesResponse struct {
	Square string   `json:"square"`
	Moves  []string `json:"moves"`
}

type GetMovesResponse struct {
	Moves []models.Move `json:"moves"`
}

// decodeBody decodes an optional JSON body. An empty body leaves v untouched.
func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) error {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(v)
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}

func (h *GameHandler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req CreateGameRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	var (
		g   *game.Game
		err error
	)
	switch {
	case req.GameString != "" && req.FEN != "":
		respondWithError(w, http.StatusBadRequest, "Provide either gameString or fen, not both")
		return
	case req.GameString != "":
		g, err = game.NewGameFromString(req.GameString)
	case req.FEN != "":
		g, err = game.NewGameFromFEN(req.FEN)
	default:
		g = game.NewGame()
	}
	if err != nil {
		respondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.store.Create(g)
	if err != nil {
		log.Printf("[Server] Failed to create game: %v", err)
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, CreateGameResponse{
		SessionID: s.ID,
		Game:      s.Snapshot(),
	})
}

func (h *GameHandler) GetGame(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, s.Snapshot())
}

func (h *GameHandler) GetSquare(w http.ResponseWriter, r *http.Request) {
	s, sq, ok := h.sessionAndSquare(w, r)
	if !ok {
		return
	}
	respondWithJSON(w, http.StatusOK, models.NewPiece(sq, s.PieceAt(sq)))
}

func (h *GameHandler) GetSquareMoves(w http.ResponseWriter, r *http.Request) {
	s, sq, ok := h.sessionAndSquare(w, r)
	if !ok {
		return
	}
	response := SquareMovesResponse{Square: sq.String(), Moves: []string{}}
	for _, to := range s.MovesFrom(sq) {
		response.Moves = append(response.Moves, to.String())
	}
	respondWithJSON(w, http.StatusOK, response)
}

func (h *GameHandler) sessionAndSquare(w http.ResponseWriter, r *http.Request) (*session.Session, game.Square, bool) {
	vars := mux.Vars(r)
	s, err := h.store.Get(vars["sessionId"])
	if err != nil {
		respondWithStoreError(w, err)
		return nil, game.Square{}, false
	}
	sq, err := game.ParseSquare(vars["square"])
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid square")
		return nil, game.Square{}, false
	}
	return s, sq, true
}

func (h *GameHandler) MakeMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req MakeMoveRequest
	if err := decodeBody(w, r, &req); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	// Parse positions
	from, err := game.ParseSquare(req.From)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid from position")
		return
	}
	to, err := game.ParseSquare(req.To)
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid to position")
		return
	}

	result, err := h.store.Move(sessionID, from, to)
	if err != nil {
		respondWithStoreError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, MakeMoveResponse{
		Success: true,
		Move:    result.Move,
		Game:    result.Game,
	})
}

func (h *GameHandler) GetMoves(w http.ResponseWriter, r *http.Request) {
	s, err := h.store.Get(mux.Vars(r)["sessionId"])
	if err != nil {
		respondWithStoreError(w, err)
		return
	}
	respondWithJSON(w, http.StatusOK, GetMovesResponse{Moves: s.Moves()})
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
