package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/cors"

	"github.com/samstronghammer/chess/internal/config"
	"github.com/samstronghammer/chess/internal/eventbus"
	"github.com/samstronghammer/chess/internal/handlers"
	"github.com/samstronghammer/chess/internal/middleware"
	"github.com/samstronghammer/chess/internal/services"
	"github.com/samstronghammer/chess/internal/session"
)

func main() {
	// Load configuration
	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		log.Fatalf("[Server] Failed to load config: %v", err)
	}

	log.Printf("[Server] Starting chess server in %s mode", cfg.Environment)

	// Event bus: session store publishes, websocket hub subscribes
	bus := eventbus.New(0)
	bus.Start()
	defer bus.Stop()

	store := session.NewStore(cfg.Sessions.MaxSessions, bus)

	// Create handlers
	wsHandler := handlers.NewWebSocketHandler(store, bus)
	defer wsHandler.Stop()
	gameHandler := handlers.NewGameHandler(store)

	// Evict sessions nobody has touched for a while
	cleanup := services.NewIdleSessionCleanupService(store, wsHandler, cfg.CleanupInterval(), cfg.IdleTimeout())
	cleanup.Start()
	defer cleanup.Stop()

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	limits := handlers.Limits{
		GameCreation: middleware.PerMinute("game_creation", cfg.RateLimit.GameCreationPerMinute),
		Move:         middleware.PerMinute("move", cfg.RateLimit.MovesPerMinute),
		WebSocket:    middleware.PerMinute("websocket", cfg.RateLimit.WebSocketPerMinute),
	}
	router := handlers.NewRouter(gameHandler, wsHandler, rateLimiter, limits)
	router.Use(middleware.SecurityHeaders(env == "prod"))

	// CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins: []string{cfg.Frontend.URL},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type"},
	})

	// Create server
	addr := cfg.Addr()
	server := &http.Server{
		Addr:         addr,
		Handler:      corsHandler.Handler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("[Server] Listening on %s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("[Server] Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("[Server] Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Printf("[Server] Shutdown error: %v", err)
	}

	log.Printf("[Server] Server stopped (%d sessions dropped)", store.Len())
}
