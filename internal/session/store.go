package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/samstronghammer/chess/internal/eventbus"
	"github.com/samstronghammer/chess/internal/game"
	"github.com/samstronghammer/chess/internal/models"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrTooManySessions = errors.New("too many active sessions")
	// ErrGameOver wraps game.ErrIllegalState for moves submitted after the
	// game has a result.
	ErrGameOver = fmt.Errorf("game is over: %w", game.ErrIllegalState)
)

// Publisher receives session events. *eventbus.EventBus implements it.
type Publisher interface {
	Publish(eventType, sessionID string, message []byte)
}

// Session is one game hosted by the server. All access to the game goes
// through the session mutex.
type Session struct {
	ID        string
	CreatedAt time.Time

	mu         sync.Mutex
	game       *game.Game
	moves      []models.Move
	lastActive time.Time
}

// Snapshot returns the current view of the game.
func (s *Session) Snapshot() models.Game {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.NewGame(s.ID, s.game, s.CreatedAt, s.lastActive)
}

// Moves returns the moves played in this session.
func (s *Session) Moves() []models.Move {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Move, len(s.moves))
	copy(out, s.moves)
	return out
}

// PieceAt returns the occupant of sq.
func (s *Session) PieceAt(sq game.Square) game.Piece {
	s.mu.Lock()
	defer s.mu.Unlock()
	piece, _ := s.game.PieceAt(sq)
	return piece
}

// MovesFrom returns the legal destinations from sq.
func (s *Session) MovesFrom(sq game.Square) []game.Square {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.MovesFrom(sq)
}

// LastActive is the time of the last move or lookup.
func (s *Session) LastActive() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastActive
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastActive = now
	s.mu.Unlock()
}

// MoveResult is the outcome of a successful move.
type MoveResult struct {
	Move models.Move
	Game models.Game
}

// Store holds the active sessions in memory.
type Store struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
	publisher   Publisher
	now         func() time.Time
}

// NewStore creates a store that holds at most maxSessions sessions; zero or
// less means no limit. publisher may be nil.
func NewStore(maxSessions int, publisher Publisher) *Store {
	return &Store{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
		publisher:   publisher,
		now:         time.Now,
	}
}

// Create registers a new session for g.
func (st *Store) Create(g *game.Game) (*Session, error) {
	now := st.now()
	s := &Session{
		ID:         uuid.NewString(),
		CreatedAt:  now,
		game:       g,
		lastActive: now,
	}

	st.mu.Lock()
	defer st.mu.Unlock()
	if st.maxSessions > 0 && len(st.sessions) >= st.maxSessions {
		return nil, ErrTooManySessions
	}
	st.sessions[s.ID] = s
	log.Printf("[Sessions] Created session %s (%d active)", s.ID, len(st.sessions))
	return s, nil
}

// Get returns the session with the given id and marks it active.
func (st *Store) Get(id string) (*Session, error) {
	st.mu.RLock()
	s, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrSessionNotFound)
	}
	s.touch(st.now())
	return s, nil
}

// Move plays from -> to in the session and publishes the resulting events.
func (st *Store) Move(id string, from, to game.Square) (MoveResult, error) {
	s, err := st.Get(id)
	if err != nil {
		return MoveResult{}, err
	}

	s.mu.Lock()
	if s.game.IsOver() {
		s.mu.Unlock()
		return MoveResult{}, fmt.Errorf("session %s: %w", id, ErrGameOver)
	}

	mover := s.game.Turn()
	piece, _ := s.game.PieceAt(from)
	captured, _ := s.game.PieceAt(to)
	isCapture := !captured.IsZero() || (piece.Kind == game.Pawn && from.Col() != to.Col())

	// SAN is only meaningful for a legal move; MakeMove reports why it is not.
	notation, _ := s.game.SAN(from, to)
	if err := s.game.MakeMove(from, to); err != nil {
		s.mu.Unlock()
		return MoveResult{}, err
	}

	now := st.now()
	s.lastActive = now
	result, over := s.game.Result()
	_, decisive := result.Winner()

	move := models.Move{
		MoveNumber: len(s.moves) + 1,
		Color:      models.ColorOf(mover),
		From:       from.String(),
		To:         to.String(),
		Piece:      string(piece.Kind.Letter()),
		Notation:   notation,
		Capture:    isCapture,
		Check:      s.game.InCheck(),
		Checkmate:  over && decisive,
		CreatedAt:  now,
	}
	if piece.Kind == game.Pawn && (to.Row() == 0 || to.Row() == 7) {
		move.Promotion = string(game.Queen.Letter())
	}
	s.moves = append(s.moves, move)
	view := models.NewGame(s.ID, s.game, s.CreatedAt, now)

	// Publish under the session lock so events leave in move order.
	st.publish(eventbus.EventTypeMove, models.Event{Type: eventbus.EventTypeMove, Move: &move, Game: view})
	if over {
		log.Printf("[Sessions] Session %s finished: %s", id, result)
		st.publish(eventbus.EventTypeGameOver, models.Event{Type: eventbus.EventTypeGameOver, Game: view})
	}
	s.mu.Unlock()

	return MoveResult{Move: move, Game: view}, nil
}

func (st *Store) publish(eventType string, event models.Event) {
	if st.publisher == nil {
		return
	}
	message, err := json.Marshal(event)
	if err != nil {
		log.Printf("[Sessions] Failed to encode %s event: %v", eventType, err)
		return
	}
	st.publisher.Publish(eventType, event.Game.SessionID, message)
}

// Delete removes a session. It reports whether the session existed.
func (st *Store) Delete(id string) bool {
	st.mu.Lock()
	defer st.mu.Unlock()
	if _, ok := st.sessions[id]; !ok {
		return false
	}
	delete(st.sessions, id)
	return true
}

// Len returns the number of active sessions.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// EvictIdle removes sessions that have been inactive for longer than
// olderThan and returns their ids.
func (st *Store) EvictIdle(olderThan time.Duration) []string {
	cutoff := st.now().Add(-olderThan)

	st.mu.Lock()
	defer st.mu.Unlock()
	var evicted []string
	for id, s := range st.sessions {
		if s.LastActive().Before(cutoff) {
			delete(st.sessions, id)
			evicted = append(evicted, id)
		}
	}
	return evicted
}
