package services

import (
	"log"
	"sync"
	"time"
)

// SessionEvicter is implemented by session.Store.
type SessionEvicter interface {
	EvictIdle(olderThan time.Duration) []string
}

// SessionCloser is implemented by WebSocketHandler to drop the connections
// of a session that no longer exists.
type SessionCloser interface {
	CloseSession(sessionId string)
}

// IdleSessionCleanupService periodically removes sessions nobody has touched
// for longer than the idle timeout.
type IdleSessionCleanupService struct {
	store       SessionEvicter
	closer      SessionCloser
	stopCh      chan struct{}
	stopOnce    sync.Once
	interval    time.Duration
	idleTimeout time.Duration
}

// NewIdleSessionCleanupService creates a new cleanup service. closer may be nil.
func NewIdleSessionCleanupService(
	store SessionEvicter,
	closer SessionCloser,
	interval time.Duration,
	idleTimeout time.Duration,
) *IdleSessionCleanupService {
	return &IdleSessionCleanupService{
		store:       store,
		closer:      closer,
		stopCh:      make(chan struct{}),
		interval:    interval,
		idleTimeout: idleTimeout,
	}
}

// Start begins the periodic cleanup loop in a background goroutine.
func (s *IdleSessionCleanupService) Start() {
	go s.runCleanupLoop()
	log.Printf("[Sessions] Idle session cleanup started (interval: %v, timeout: %v)", s.interval, s.idleTimeout)
}

// Stop signals the cleanup loop to exit.
func (s *IdleSessionCleanupService) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopCh)
		log.Println("[Sessions] Idle session cleanup stopped")
	})
}

func (s *IdleSessionCleanupService) runCleanupLoop() {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			s.RunCleanupPass()
		}
	}
}

// RunCleanupPass evicts idle sessions once and returns how many were removed.
func (s *IdleSessionCleanupService) RunCleanupPass() int {
	evicted := s.store.EvictIdle(s.idleTimeout)
	if len(evicted) == 0 {
		return 0
	}

	for _, id := range evicted {
		if s.closer != nil {
			s.closer.CloseSession(id)
		}
	}

	log.Printf("[Sessions] Idle session cleanup: evicted %d session(s)", len(evicted))
	return len(evicted)
}
