package game

import "fmt"

// --- Enums ---

// CardType is descriptive only; resolution never looks at it.
type CardType int

const (
	CardTypeInstant CardType = iota
	CardTypeSorcery
	CardTypeCreature
	CardTypeEnchantment
	CardTypeArtifact
	CardTypePlaneswalker
	CardTypeLand
)

var cardTypeNames = [...]string{
	CardTypeInstant:      "Instant",
	CardTypeSorcery:      "Sorcery",
	CardTypeCreature:     "Creature",
	CardTypeEnchantment:  "Enchantment",
	CardTypeArtifact:     "Artifact",
	CardTypePlaneswalker: "Planeswalker",
	CardTypeLand:         "Land",
}

func (ct CardType) String() string {
	if ct < 0 || int(ct) >= len(cardTypeNames) {
		return "Unknown"
	}
	return cardTypeNames[ct]
}

// ParseCardType maps a wire name ("Instant", "Land", ...) to a CardType.
func ParseCardType(name string) (CardType, error) {
	for i, n := range cardTypeNames {
		if n == name {
			return CardType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown card type %q", name)
}

// CardTypes returns every card type in declaration order.
func CardTypes() []CardType {
	types := make([]CardType, len(cardTypeNames))
	for i := range cardTypeNames {
		types[i] = CardType(i)
	}
	return types
}

func (ct CardType) MarshalText() ([]byte, error) {
	if ct < 0 || int(ct) >= len(cardTypeNames) {
		return nil, fmt.Errorf("invalid card type %d", int(ct))
	}
	return []byte(cardTypeNames[ct]), nil
}

func (ct *CardType) UnmarshalText(text []byte) error {
	parsed, err := ParseCardType(string(text))
	if err != nil {
		return err
	}
	*ct = parsed
	return nil
}

// --- Card ---

// Card is an immutable description of a playable effect. Cards compare with ==;
// two cards with the same name, type and effect are indistinguishable.
type Card struct {
	Name   string
	Type   CardType
	Effect Effect
}

func (c Card) String() string {
	return c.Name
}

// DisplayString returns a human-readable description for the event log and REPL.
func (c Card) DisplayString() string {
	return fmt.Sprintf("%s (%s, %s)", c.Name, c.Type, DescribeEffect(c.Effect))
}
