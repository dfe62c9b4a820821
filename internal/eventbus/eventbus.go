package eventbus

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeMove     = "move"
	EventTypeGameOver = "game_over"

	defaultBufferSize = 256
)

// Event is a notification about one game session.
type Event struct {
	ID        string    `json:"id"`
	EventType string    `json:"type"`
	SessionID string    `json:"sessionId"`
	Message   []byte    `json:"-"`
	CreatedAt time.Time `json:"createdAt"`
}

// HandlerFunc receives events for a session it subscribed to.
type HandlerFunc func(event Event)

type subscription struct {
	id        string
	sessionID string
	handler   HandlerFunc
}

// EventBus fans game events out to subscribers. Publish never blocks the
// caller; delivery happens on a single dispatcher goroutine so every
// subscriber sees a session's events in publish order.
type EventBus struct {
	events     chan Event
	subs       map[string]map[string]subscription // sessionID -> subscription id -> sub
	subsMu     sync.RWMutex
	cancelFunc context.CancelFunc
	wg         sync.WaitGroup
	running    bool
	mu         sync.Mutex
}

// New creates an EventBus. bufferSize bounds how many undelivered events are
// queued before new ones are dropped; zero selects a default.
func New(bufferSize int) *EventBus {
	if bufferSize <= 0 {
		bufferSize = defaultBufferSize
	}
	return &EventBus{
		events: make(chan Event, bufferSize),
		subs:   make(map[string]map[string]subscription),
	}
}

// Start begins the dispatcher in a background goroutine.
func (eb *EventBus) Start() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if eb.running {
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	eb.cancelFunc = cancel
	eb.running = true
	eb.wg.Add(1)

	go eb.dispatchLoop(ctx)
	log.Println("[EventBus] Started")
}

// Stop cancels the dispatcher and waits for it to exit. Queued events are
// discarded.
func (eb *EventBus) Stop() {
	eb.mu.Lock()
	defer eb.mu.Unlock()
	if !eb.running {
		return
	}
	eb.running = false
	if eb.cancelFunc != nil {
		eb.cancelFunc()
	}
	eb.wg.Wait()
	log.Println("[EventBus] Stopped")
}

// Subscribe registers handler for events of one session. The returned
// function removes the subscription.
func (eb *EventBus) Subscribe(sessionID string, handler HandlerFunc) (unsubscribe func()) {
	sub := subscription{id: uuid.NewString(), sessionID: sessionID, handler: handler}

	eb.subsMu.Lock()
	if eb.subs[sessionID] == nil {
		eb.subs[sessionID] = make(map[string]subscription)
	}
	eb.subs[sessionID][sub.id] = sub
	eb.subsMu.Unlock()

	return func() {
		eb.subsMu.Lock()
		defer eb.subsMu.Unlock()
		delete(eb.subs[sessionID], sub.id)
		if len(eb.subs[sessionID]) == 0 {
			delete(eb.subs, sessionID)
		}
	}
}

// SubscriberCount returns the number of subscriptions for a session.
func (eb *EventBus) SubscriberCount(sessionID string) int {
	eb.subsMu.RLock()
	defer eb.subsMu.RUnlock()
	return len(eb.subs[sessionID])
}

// Publish queues an event for delivery.
// Errors are logged, never returned (fire-and-forget).
func (eb *EventBus) Publish(eventType, sessionID string, message []byte) {
	event := Event{
		ID:        uuid.NewString(),
		EventType: eventType,
		SessionID: sessionID,
		Message:   message,
		CreatedAt: time.Now(),
	}
	select {
	case eb.events <- event:
	default:
		log.Printf("[EventBus] Queue full, dropping %s event for session %s", eventType, sessionID)
	}
}

func (eb *EventBus) dispatchLoop(ctx context.Context) {
	defer eb.wg.Done()

	for {
		select {
		case <-ctx.Done():
			return
		case event := <-eb.events:
			eb.deliver(event)
		}
	}
}

func (eb *EventBus) deliver(event Event) {
	switch event.EventType {
	case EventTypeMove, EventTypeGameOver:
	default:
		log.Printf("[EventBus] Unknown event type: %s", event.EventType)
		return
	}

	eb.subsMu.RLock()
	handlers := make([]HandlerFunc, 0, len(eb.subs[event.SessionID]))
	for _, sub := range eb.subs[event.SessionID] {
		handlers = append(handlers, sub.handler)
	}
	eb.subsMu.RUnlock()

	for _, h := range handlers {
		h(event)
	}
}
