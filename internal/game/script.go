package game

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ScriptFile represents the top-level YAML structure of a stack script.
type ScriptFile struct {
	Rounds []ScriptRound `yaml:"rounds"`
}

// ScriptRound is one batch of cards pushed before a single resolve.
type ScriptRound struct {
	Name  string        `yaml:"name"`
	Cards []ScriptEntry `yaml:"cards"`
}

// ScriptEntry references a registry card by name or defines one inline.
type ScriptEntry struct {
	Name  string `yaml:"name"`
	Count int    `yaml:"count"`
	Card  *Card  `yaml:"card"`
}

// Round is a parsed script round, cards in submission order.
type Round struct {
	Name  string
	Cards []Card
}

// UnmarshalYAML decodes a card written in the same shape as its JSON form:
//
//	card:
//	  name: Fireblast
//	  card_type: Instant
//	  effect: {DealDamage: {amount: 4}}
func (c *Card) UnmarshalYAML(value *yaml.Node) error {
	var raw any
	if err := value.Decode(&raw); err != nil {
		return err
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	if err := c.UnmarshalJSON(data); err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	return nil
}

func (e ScriptEntry) expand() ([]Card, error) {
	count := e.Count
	if count == 0 {
		count = 1
	}
	if count < 0 {
		return nil, fmt.Errorf("negative count %d", e.Count)
	}

	var card Card
	switch {
	case e.Card != nil && e.Name != "":
		return nil, fmt.Errorf("entry %q sets both name and card", e.Name)
	case e.Card != nil:
		card = *e.Card
	case e.Name != "":
		c, err := LookupCard(e.Name)
		if err != nil {
			return nil, err
		}
		card = c
	default:
		return nil, fmt.Errorf("entry needs a registry name or an inline card")
	}

	cards := make([]Card, count)
	for i := range cards {
		cards[i] = card
	}
	return cards, nil
}

// ParseScript parses a YAML stack script.
func ParseScript(data []byte) ([]Round, error) {
	var sf ScriptFile
	if err := yaml.Unmarshal(data, &sf); err != nil {
		return nil, fmt.Errorf("parse script YAML: %w", err)
	}

	rounds := make([]Round, 0, len(sf.Rounds))
	for i, sr := range sf.Rounds {
		name := sr.Name
		if name == "" {
			name = fmt.Sprintf("round %d", i+1)
		}
		round := Round{Name: name}
		for j, entry := range sr.Cards {
			cards, err := entry.expand()
			if err != nil {
				return nil, fmt.Errorf("%s, entry %d: %w", name, j+1, err)
			}
			round.Cards = append(round.Cards, cards...)
		}
		rounds = append(rounds, round)
	}
	return rounds, nil
}

// LoadScript reads and parses a YAML stack script from disk.
func LoadScript(path string) ([]Round, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseScript(data)
}
