package game

import (
	"testing"

	"github.com/peterkuimelis/cardstack/internal/log"
)

// newTestStack returns a fresh stack wired to a MemoryLogger for event assertions.
func newTestStack(t *testing.T, cards ...Card) (*Stack, *log.MemoryLogger) {
	t.Helper()
	logger := log.NewMemoryLogger()
	s := NewStackWithConfig(StackConfig{Logger: logger})
	for _, c := range cards {
		s.Add(c)
	}
	return s, logger
}

// burn builds an instant that deals the given damage.
func burn(name string, amount uint32) Card {
	return Card{Name: name, Type: CardTypeInstant, Effect: DealDamage{Amount: amount}}
}

func counter(name string) Card {
	return Card{Name: name, Type: CardTypeInstant, Effect: CounterSpell{}}
}

func permanent(name string, ct CardType) Card {
	return Card{Name: name, Type: ct, Effect: NoEffect{}}
}

// resultMessages extracts the outcome strings from a result log.
func resultMessages(results []ResolutionResult) []string {
	msgs := make([]string, len(results))
	for i, r := range results {
		msgs[i] = r.Result
	}
	return msgs
}

// resultCardNames extracts the card names from a result log.
func resultCardNames(results []ResolutionResult) []string {
	names := make([]string, len(results))
	for i, r := range results {
		names[i] = r.Card.Name
	}
	return names
}
