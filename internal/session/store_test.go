package session

import (
	"encoding/json"
	"errors"
	"runtime"
	"sync"
	"testing"
	"time"

	"github.com/samstronghammer/chess/internal/eventbus"
	"github.com/samstronghammer/chess/internal/game"
	"github.com/samstronghammer/chess/internal/models"
)

type published struct {
	eventType string
	sessionID string
	event     models.Event
}

type recorder struct {
	mu     sync.Mutex
	events []published
}

func (r *recorder) Publish(eventType, sessionID string, message []byte) {
	var e models.Event
	if err := json.Unmarshal(message, &e); err != nil {
		panic(err)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, published{eventType, sessionID, e})
}

func square(t *testing.T, s string) game.Square {
	t.Helper()
	sq, err := game.ParseSquare(s)
	if err != nil {
		t.Fatalf("ParseSquare(%q): %v", s, err)
	}
	return sq
}

func play(t *testing.T, st *Store, id, from, to string) MoveResult {
	t.Helper()
	res, err := st.Move(id, square(t, from), square(t, to))
	if err != nil {
		t.Fatalf("Move(%s %s): %v", from, to, err)
	}
	return res
}

func TestCreateAndGet(t *testing.T) {
	st := NewStore(0, nil)
	s, err := st.Create(game.NewGame())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if s.ID == "" || st.Len() != 1 {
		t.Fatalf("id=%q len=%d", s.ID, st.Len())
	}
	got, err := st.Get(s.ID)
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := st.Get("missing"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("Get(missing) error = %v, want ErrSessionNotFound", err)
	}
}

func TestCreateRespectsLimit(t *testing.T) {
	st := NewStore(2, nil)
	for i := 0; i < 2; i++ {
		if _, err := st.Create(game.NewGame()); err != nil {
			t.Fatalf("Create %d: %v", i, err)
		}
	}
	if _, err := st.Create(game.NewGame()); !errors.Is(err, ErrTooManySessions) {
		t.Fatalf("third Create error = %v, want ErrTooManySessions", err)
	}
}

func TestMoveRecordsAndPublishes(t *testing.T) {
	rec := &recorder{}
	st := NewStore(0, rec)
	s, _ := st.Create(game.NewGame())

	res := play(t, st, s.ID, "E2", "E4")
	if res.Move.Notation != "e4" || res.Move.Piece != "P" || res.Move.Color != models.White || res.Move.MoveNumber != 1 {
		t.Fatalf("move = %+v", res.Move)
	}
	if res.Game.CurrentTurn != models.Black || res.Game.MoveCount != 1 {
		t.Fatalf("game view = %+v", res.Game)
	}
	if len(s.Moves()) != 1 {
		t.Fatalf("session recorded %d moves, want 1", len(s.Moves()))
	}

	if len(rec.events) != 1 {
		t.Fatalf("published %d events, want 1", len(rec.events))
	}
	e := rec.events[0]
	if e.eventType != eventbus.EventTypeMove || e.sessionID != s.ID || e.event.Move == nil || e.event.Move.To != "E4" {
		t.Fatalf("published %+v", e)
	}
}

func TestMoveErrors(t *testing.T) {
	st := NewStore(0, nil)
	s, _ := st.Create(game.NewGame())

	if _, err := st.Move(s.ID, square(t, "E2"), square(t, "E5")); !errors.Is(err, game.ErrIllegalMove) {
		t.Fatalf("illegal move error = %v, want ErrIllegalMove", err)
	}
	if _, err := st.Move(s.ID, square(t, "E4"), square(t, "E5")); !errors.Is(err, game.ErrIllegalState) {
		t.Fatalf("empty square error = %v, want ErrIllegalState", err)
	}
	if _, err := st.Move("missing", square(t, "E2"), square(t, "E4")); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("unknown session error = %v, want ErrSessionNotFound", err)
	}
	if len(s.Moves()) != 0 {
		t.Fatalf("failed moves were recorded")
	}
}

func TestCheckmatePublishesGameOver(t *testing.T) {
	rec := &recorder{}
	st := NewStore(0, rec)
	s, _ := st.Create(game.NewGame())

	play(t, st, s.ID, "F2", "F3")
	play(t, st, s.ID, "E7", "E5")
	play(t, st, s.ID, "G2", "G4")
	res := play(t, st, s.ID, "D8", "H4")

	if !res.Move.Checkmate || res.Move.Notation != "Qh4#" {
		t.Fatalf("mating move = %+v", res.Move)
	}
	if res.Game.Status != models.GameStatusComplete || res.Game.Winner != models.Black {
		t.Fatalf("game view = %+v", res.Game)
	}

	last := rec.events[len(rec.events)-1]
	if last.eventType != eventbus.EventTypeGameOver || last.event.Game.WinReason != "black_wins" {
		t.Fatalf("last event = %+v", last)
	}

	_, err := st.Move(s.ID, square(t, "A2"), square(t, "A3"))
	if !errors.Is(err, ErrGameOver) || !errors.Is(err, game.ErrIllegalState) {
		t.Fatalf("move after mate error = %v, want ErrGameOver", err)
	}
}

func TestEvictIdle(t *testing.T) {
	st := NewStore(0, nil)
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	st.now = func() time.Time { return clock }

	stale, _ := st.Create(game.NewGame())
	clock = clock.Add(30 * time.Minute)
	fresh, _ := st.Create(game.NewGame())
	clock = clock.Add(20 * time.Minute)

	evicted := st.EvictIdle(45 * time.Minute)
	if len(evicted) != 1 || evicted[0] != stale.ID {
		t.Fatalf("evicted %v, want [%s]", evicted, stale.ID)
	}
	if _, err := st.Get(fresh.ID); err != nil {
		t.Fatalf("fresh session evicted: %v", err)
	}
}

func TestDelete(t *testing.T) {
	st := NewStore(0, nil)
	s, _ := st.Create(game.NewGame())
	if !st.Delete(s.ID) || st.Delete(s.ID) {
		t.Fatalf("Delete should succeed once")
	}
	if st.Len() != 0 {
		t.Fatalf("Len = %d, want 0", st.Len())
	}
}

func TestConcurrentMovesAreSerialised(t *testing.T) {
	st := NewStore(0, nil)
	s, _ := st.Create(game.NewGame())

	from, to := square(t, "E2"), square(t, "E4")
	var wg sync.WaitGroup
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := st.Move(s.ID, from, to)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	ok := 0
	for err := range errs {
		if err == nil {
			ok++
		}
	}
	if ok != 1 {
		t.Fatalf("%d goroutines played E2-E4, want exactly 1", ok)
	}
}

func TestConcurrentMovesPublishInOrder(t *testing.T) {
	rec := &recorder{}
	st := NewStore(0, rec)
	s, _ := st.Create(game.NewGame())

	// Each goroutine owns one knight move of the shuffle and retries until it
	// becomes legal, so consecutive plies come from different goroutines. The
	// eighth ply repeats the starting position a third time and ends the game.
	shuffle := [][2]string{{"G1", "F3"}, {"G8", "F6"}, {"F3", "G1"}, {"F6", "G8"}}
	var wg sync.WaitGroup
	for _, m := range shuffle {
		from, to := square(t, m[0]), square(t, m[1])
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				_, err := st.Move(s.ID, from, to)
				if errors.Is(err, ErrGameOver) {
					return
				}
				runtime.Gosched()
			}
		}()
	}
	wg.Wait()

	rec.mu.Lock()
	defer rec.mu.Unlock()
	moveNumber := 0
	for i, e := range rec.events {
		if e.eventType == eventbus.EventTypeGameOver {
			if i != len(rec.events)-1 {
				t.Fatalf("game_over published at %d of %d events", i, len(rec.events))
			}
			continue
		}
		moveNumber++
		if e.event.Move == nil || e.event.Move.MoveNumber != moveNumber {
			t.Fatalf("event %d carries move %+v, want move number %d", i, e.event.Move, moveNumber)
		}
		if e.event.Game.MoveCount != moveNumber {
			t.Fatalf("event %d game view has %d moves, want %d", i, e.event.Game.MoveCount, moveNumber)
		}
	}
	if moveNumber != 8 {
		t.Fatalf("published %d moves, want 8", moveNumber)
	}
}
