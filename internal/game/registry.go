package game

import (
	"fmt"
	"sort"
)

// CardRegistry maps card names to their constructor functions.
var CardRegistry = map[string]func() Card{
	"Shock":          Shock,
	"Lightning Bolt": LightningBolt,
	"Lava Spike":     LavaSpike,
	"Lava Axe":       LavaAxe,
	"Banefire":       Banefire,
	"Counterspell":   Counterspell,
	"Cancel":         Cancel,
	"Grizzly Bears":  GrizzlyBears,
	"Serra Angel":    SerraAngel,
	"Pacifism":       Pacifism,
	"Sol Ring":       SolRing,
	"Jace Beleren":   JaceBeleren,
	"Forest":         Forest,
}

// LookupCard looks up a card by name and returns a new instance.
func LookupCard(name string) (Card, error) {
	ctor, ok := CardRegistry[name]
	if !ok {
		return Card{}, fmt.Errorf("card not found in registry: %q", name)
	}
	return ctor(), nil
}

// RegistryNames returns every registered card name, sorted.
func RegistryNames() []string {
	names := make([]string, 0, len(CardRegistry))
	for name := range CardRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RegistryCards returns one instance of every registered card, sorted by name.
func RegistryCards() []Card {
	names := RegistryNames()
	cards := make([]Card, 0, len(names))
	for _, name := range names {
		cards = append(cards, CardRegistry[name]())
	}
	return cards
}

// --- Burn ---

// Shock: Instant. 2 damage.
func Shock() Card {
	return Card{Name: "Shock", Type: CardTypeInstant, Effect: DealDamage{Amount: 2}}
}

// LightningBolt: Instant. 3 damage.
func LightningBolt() Card {
	return Card{Name: "Lightning Bolt", Type: CardTypeInstant, Effect: DealDamage{Amount: 3}}
}

// LavaSpike: Sorcery. 3 damage.
func LavaSpike() Card {
	return Card{Name: "Lava Spike", Type: CardTypeSorcery, Effect: DealDamage{Amount: 3}}
}

// LavaAxe: Sorcery. 5 damage.
func LavaAxe() Card {
	return Card{Name: "Lava Axe", Type: CardTypeSorcery, Effect: DealDamage{Amount: 5}}
}

// Banefire: Sorcery. Cast for X = 10.
func Banefire() Card {
	return Card{Name: "Banefire", Type: CardTypeSorcery, Effect: DealDamage{Amount: 10}}
}

// --- Counters ---

func Counterspell() Card {
	return Card{Name: "Counterspell", Type: CardTypeInstant, Effect: CounterSpell{}}
}

func Cancel() Card {
	return Card{Name: "Cancel", Type: CardTypeInstant, Effect: CounterSpell{}}
}

// --- Permanents (no resolution effect) ---

func GrizzlyBears() Card {
	return Card{Name: "Grizzly Bears", Type: CardTypeCreature, Effect: NoEffect{}}
}

func SerraAngel() Card {
	return Card{Name: "Serra Angel", Type: CardTypeCreature, Effect: NoEffect{}}
}

func Pacifism() Card {
	return Card{Name: "Pacifism", Type: CardTypeEnchantment, Effect: NoEffect{}}
}

func SolRing() Card {
	return Card{Name: "Sol Ring", Type: CardTypeArtifact, Effect: NoEffect{}}
}

func JaceBeleren() Card {
	return Card{Name: "Jace Beleren", Type: CardTypePlaneswalker, Effect: NoEffect{}}
}

func Forest() Card {
	return Card{Name: "Forest", Type: CardTypeLand, Effect: NoEffect{}}
}
