package game

import "fmt"

// Effect describes what a card does when it resolves. Implementations must be
// comparable value types: counter targeting matches cards with ==.
//
// A variant without a dedicated case in Stack.Resolve resolves with no state
// change, so new kinds can be introduced by registering a decoder alone.
type Effect interface {
	Kind() string
}

// DealDamage reduces opponent health by Amount, never below zero.
type DealDamage struct {
	Amount uint32 `json:"amount"`
}

func (DealDamage) Kind() string { return "DealDamage" }

// CounterSpell cancels one other pending card instead of resolving itself.
type CounterSpell struct{}

func (CounterSpell) Kind() string { return "CounterSpell" }

// NoEffect is a card that resolves without touching game state
// (lands, vanilla creatures, static permanents).
type NoEffect struct{}

func (NoEffect) Kind() string { return "NoEffect" }

// DescribeEffect returns a short human-readable summary of an effect.
func DescribeEffect(e Effect) string {
	switch eff := e.(type) {
	case DealDamage:
		return fmt.Sprintf("deal %d damage", eff.Amount)
	case CounterSpell:
		return "counter target card"
	case nil:
		return "no effect"
	case NoEffect:
		return "no effect"
	default:
		return eff.Kind()
	}
}
