package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/samstronghammer/chess/internal/middleware"
)

// Limits are the per-client rate limits applied to the expensive routes.
type Limits struct {
	GameCreation middleware.RateLimitConfig
	Move         middleware.RateLimitConfig
	WebSocket    middleware.RateLimitConfig
}

// DefaultLimits returns the middleware package defaults.
func DefaultLimits() Limits {
	return Limits{
		GameCreation: middleware.GameCreationLimit,
		Move:         middleware.MoveLimit,
		WebSocket:    middleware.WebSocketUpgradeLimit,
	}
}

// NewRouter wires the game API, the websocket stream and the health check.
func NewRouter(games *GameHandler, ws *WebSocketHandler, limiter *middleware.RateLimiter, limits Limits) *mux.Router {
	ip := middleware.GetClientIP

	router := mux.NewRouter()

	// WebSocket routes
	router.HandleFunc("/ws/games/{sessionId}",
		limiter.RateLimitHandler(limits.WebSocket, ip, ws.HandleWebSocket)).Methods("GET")

	// API routes
	api := router.PathPrefix("/api").Subrouter()

	gameApi := api.PathPrefix("/games").Subrouter()
	gameApi.HandleFunc("", limiter.RateLimitHandler(limits.GameCreation, ip, games.CreateGame)).Methods("POST")
	gameApi.HandleFunc("/{sessionId}", games.GetGame).Methods("GET")
	gameApi.HandleFunc("/{sessionId}/squares/{square}", games.GetSquare).Methods("GET")
	gameApi.HandleFunc("/{sessionId}/squares/{square}/moves", games.GetSquareMoves).Methods("GET")
	gameApi.HandleFunc("/{sessionId}/move", limiter.RateLimitHandler(limits.Move, ip, games.MakeMove)).Methods("POST")
	gameApi.HandleFunc("/{sessionId}/moves", games.GetMoves).Methods("GET")

	// Health check
	router.HandleFunc("/health", Health).Methods("GET")

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	})

	return router
}
