package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/samstronghammer/chess/internal/game"
	"github.com/samstronghammer/chess/internal/session"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		log.Printf("[Server] Failed to encode response: %v", err)
		code = http.StatusInternalServerError
		response = []byte(`{"error":"Internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

// statusForError maps store and engine errors to HTTP status codes.
func statusForError(err error) int {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, session.ErrTooManySessions):
		return http.StatusServiceUnavailable
	case errors.Is(err, game.ErrFormat),
		errors.Is(err, game.ErrOutOfRange),
		errors.Is(err, game.ErrIllegalMove),
		errors.Is(err, game.ErrIllegalState):
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

func respondWithStoreError(w http.ResponseWriter, err error) {
	code := statusForError(err)
	switch code {
	case http.StatusNotFound:
		respondWithError(w, code, "Game not found")
	case http.StatusInternalServerError:
		respondWithError(w, code, "Internal server error")
	default:
		respondWithError(w, code, err.Error())
	}
}
