// Package session owns the single live stack of a process and serializes every
// transport's access to it.
package session

import (
	"sync"

	"github.com/go-logr/logr"
	"github.com/google/uuid"

	"github.com/peterkuimelis/cardstack/internal/game"
	"github.com/peterkuimelis/cardstack/internal/log"
)

// subscriberBuffer bounds each subscriber's queue; events beyond it are dropped.
const subscriberBuffer = 64

// Config holds configuration for creating a session.
type Config struct {
	PlayerHealth   uint32 // 0 = game.StartingHealth
	OpponentHealth uint32 // 0 = game.StartingHealth
	Logger         logr.Logger
}

// State is a point-in-time view of the session for clients.
type State struct {
	SessionID      string      `json:"session_id"`
	Round          int         `json:"round"`
	PlayerHealth   uint32      `json:"player_health"`
	OpponentHealth uint32      `json:"opponent_health"`
	Pending        []game.Card `json:"pending"`
}

// Session guards one game.Stack with a mutex. All methods are safe for
// concurrent use.
type Session struct {
	ID string

	mu     sync.Mutex
	stack  *game.Stack
	events *log.MemoryLogger
	logger logr.Logger

	subMu   sync.Mutex
	subs    map[int]chan log.GameEvent
	nextSub int
}

// New creates a session with a fresh stack.
func New(cfg Config) *Session {
	s := &Session{
		ID:     uuid.NewString(),
		events: log.NewMemoryLogger(),
		logger: cfg.Logger,
		subs:   make(map[int]chan log.GameEvent),
	}
	s.logger = s.logger.WithValues("session", s.ID)
	s.stack = game.NewStackWithConfig(game.StackConfig{
		PlayerHealth:   cfg.PlayerHealth,
		OpponentHealth: cfg.OpponentHealth,
		Logger:         (*sessionLogger)(s),
	})
	return s
}

// Add pushes a card onto the stack.
func (s *Session) Add(card game.Card) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stack.Add(card)
	s.logger.V(1).Info("card added", "card", card.Name, "pending", s.stack.Len())
}

// Resolve resolves the whole stack and returns the result log.
func (s *Session) Resolve() []game.ResolutionResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.stack.Len()
	results := s.stack.Resolve()
	s.logger.Info("stack resolved",
		"round", s.stack.Round,
		"pending", pending,
		"results", len(results),
		"opponentHealth", s.stack.OpponentHealth,
	)
	return results
}

// State returns the current health totals and pending cards.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	pending := s.stack.Pending()
	if pending == nil {
		pending = []game.Card{}
	}
	return State{
		SessionID:      s.ID,
		Round:          s.stack.Round,
		PlayerHealth:   s.stack.PlayerHealth,
		OpponentHealth: s.stack.OpponentHealth,
		Pending:        pending,
	}
}

// Events returns a copy of every stack event logged so far.
func (s *Session) Events() []log.GameEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]log.GameEvent(nil), s.events.Events()...)
}

// Subscribe returns a channel receiving every stack event logged after the call,
// and a function that unsubscribes and closes the channel. Slow subscribers miss
// events rather than block the stack.
func (s *Session) Subscribe() (<-chan log.GameEvent, func()) {
	ch := make(chan log.GameEvent, subscriberBuffer)

	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	s.subMu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.subMu.Lock()
			delete(s.subs, id)
			s.subMu.Unlock()
			close(ch)
		})
	}
}

func (s *Session) publish(event log.GameEvent) {
	s.subMu.Lock()
	defer s.subMu.Unlock()
	for _, ch := range s.subs {
		select {
		case ch <- event:
		default:
			s.logger.V(1).Info("dropping event for slow subscriber", "event", event.Type.String())
		}
	}
}

// sessionLogger records stack events and fans them out to subscribers. It is
// only called from the stack, with s.mu held.
type sessionLogger Session

func (l *sessionLogger) Log(event log.GameEvent) {
	s := (*Session)(l)
	s.events.Log(event)
	s.publish(s.events.LastEvent())
}

func (l *sessionLogger) Events() []log.GameEvent {
	return l.events.Events()
}
