// Package session keeps a player's view of a game in sync with the game
// server: it resolves the player, polls the game directory, the player's
// message and the shared game state, and runs the player's actions.
package session

import "sync"

type Reason string

const (
	ReasonStart       Reason = "start"
	ReasonManual      Reason = "manual"
	ReasonLifecycle   Reason = "lifecycle"
	ReasonDrawing     Reason = "drawing"
	ReasonDisplayName Reason = "display-name"
	ReasonTargetGame  Reason = "target-game"
	ReasonViewChanged Reason = "view-changed"
)

// Refresh is one published generation.
type Refresh struct {
	Generation uint64
	Reason     Reason
}

// Signal broadcasts refresh generations. Each subscriber has a one slot
// mailbox holding only the newest undelivered refresh, so a burst of
// publishes reaches a slow subscriber as a single refresh.
type Signal struct {
	mu         sync.Mutex
	generation uint64
	nextID     int
	subs       map[int]chan Refresh
}

func NewSignal() *Signal {
	return &Signal{subs: make(map[int]chan Refresh)}
}

// Publish starts a new generation and returns its number.
func (s *Signal) Publish(reason Reason) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	refresh := Refresh{Generation: s.generation, Reason: reason}
	for _, ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		ch <- refresh
	}
	return s.generation
}

// Subscribe returns a channel of refreshes and a func that unsubscribes and
// closes it.
func (s *Signal) Subscribe() (<-chan Refresh, func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	ch := make(chan Refresh, 1)
	s.subs[id] = ch
	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.subs, id)
			s.mu.Unlock()
			close(ch)
		})
	}
}

func (s *Signal) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}
