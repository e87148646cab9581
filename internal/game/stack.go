package game

import (
	"fmt"
	"slices"

	"github.com/peterkuimelis/cardstack/internal/log"
)

// StartingHealth is the health both players begin a session with.
const StartingHealth uint32 = 20

// Result messages emitted by Resolve.
const (
	ResultResolved = "Resolved"
	ResultFizzled  = "Fizzled (was countered)"
)

// ResolutionResult records the outcome of one card and the health of both
// players right after that step.
type ResolutionResult struct {
	Card           Card   `json:"card"`
	Result         string `json:"result"`
	PlayerHealth   uint32 `json:"player_health"`
	OpponentHealth uint32 `json:"opponent_health"`
}

// StackConfig holds configuration for creating a new stack.
type StackConfig struct {
	PlayerHealth   uint32 // 0 = StartingHealth
	OpponentHealth uint32 // 0 = StartingHealth
	Logger         log.EventLogger
}

// Stack holds the pending cards and the health totals they act on. It is not
// safe for concurrent use; callers serialize Add and Resolve.
type Stack struct {
	PlayerHealth   uint32
	OpponentHealth uint32
	Round          int // number of completed Resolve calls
	Logger         log.EventLogger

	cards []Card // submission order
}

// NewStack creates a stack with both players at StartingHealth.
func NewStack() *Stack {
	return NewStackWithConfig(StackConfig{})
}

// NewStackWithConfig creates a stack from the given config.
func NewStackWithConfig(cfg StackConfig) *Stack {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	player, opponent := cfg.PlayerHealth, cfg.OpponentHealth
	if player == 0 {
		player = StartingHealth
	}
	if opponent == 0 {
		opponent = StartingHealth
	}
	return &Stack{
		PlayerHealth:   player,
		OpponentHealth: opponent,
		Logger:         logger,
	}
}

// Add appends a card to the top of the stack.
func (s *Stack) Add(card Card) {
	s.cards = append(s.cards, card)
	s.Logger.Log(log.NewCardAddedEvent(s.Round, card.Name, len(s.cards)))
}

// Pending returns a copy of the pending cards in submission order.
func (s *Stack) Pending() []Card {
	return slices.Clone(s.cards)
}

// Len returns the number of pending cards.
func (s *Stack) Len() int {
	return len(s.cards)
}

// Resolve resolves every pending card, last submitted first, and empties the
// stack. Each card yields one result except a CounterSpell that finds nothing to
// counter, which yields none.
func (s *Stack) Resolve() []ResolutionResult {
	s.Round++
	order := slices.Clone(s.cards)
	slices.Reverse(order)
	s.Logger.Log(log.NewResolveStartEvent(s.Round, len(order)))

	// Membership is by ==, so identical cards share their resolved/countered status.
	var resolved, countered []Card
	results := []ResolutionResult{}

	for i, card := range order {
		switch eff := card.Effect.(type) {
		case CounterSpell:
			target, ok := counterTarget(order, i, resolved, countered)
			if !ok {
				s.Logger.Log(log.NewCounterNoTargetEvent(s.Round, card.Name))
				continue
			}
			countered = append(countered, target)
			s.Logger.Log(log.NewCounteredEvent(s.Round, card.Name, target.Name))
			results = append(results, s.result(card, fmt.Sprintf("Countered %s", target.Name)))

		case DealDamage:
			if slices.Contains(countered, card) {
				results = append(results, s.fizzle(card))
				continue
			}
			resolved = append(resolved, card)
			s.damageOpponent(card, eff.Amount)
			results = append(results, s.result(card, fmt.Sprintf("Dealt %d damage", eff.Amount)))

		default:
			if slices.Contains(countered, card) {
				results = append(results, s.fizzle(card))
				continue
			}
			resolved = append(resolved, card)
			s.Logger.Log(log.NewResolvedEvent(s.Round, card.Name))
			results = append(results, s.result(card, ResultResolved))
		}
	}

	s.cards = nil
	s.Logger.Log(log.NewResolveEndEvent(s.Round, len(results), s.PlayerHealth, s.OpponentHealth))
	return results
}

// counterTarget returns the first card in order, other than the counter at
// position self, that has neither resolved nor been countered. Cards are matched
// by value, so an earlier card can still be picked.
func counterTarget(order []Card, self int, resolved, countered []Card) (Card, bool) {
	for i, c := range order {
		if i == self {
			continue
		}
		if !slices.Contains(resolved, c) && !slices.Contains(countered, c) {
			return c, true
		}
	}
	return Card{}, false
}

// damageOpponent subtracts amount from opponent health, stopping at zero.
func (s *Stack) damageOpponent(card Card, amount uint32) {
	old := s.OpponentHealth
	if amount >= old {
		s.OpponentHealth = 0
	} else {
		s.OpponentHealth = old - amount
	}
	s.Logger.Log(log.NewDamageEvent(s.Round, card.Name, amount))
	if s.OpponentHealth != old {
		s.Logger.Log(log.NewHealthChangeEvent(s.Round, "Opponent", old, s.OpponentHealth, card.Name))
	}
}

func (s *Stack) fizzle(card Card) ResolutionResult {
	s.Logger.Log(log.NewFizzledEvent(s.Round, card.Name))
	return s.result(card, ResultFizzled)
}

func (s *Stack) result(card Card, msg string) ResolutionResult {
	return ResolutionResult{
		Card:           card,
		Result:         msg,
		PlayerHealth:   s.PlayerHealth,
		OpponentHealth: s.OpponentHealth,
	}
}
