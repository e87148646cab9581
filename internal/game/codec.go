package game

import (
	"bytes"
	"encoding/json"
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// EffectDecoder builds an Effect from the payload that follows its variant tag.
// payload is nil when the effect was written in bare-string form ("CounterSpell").
type EffectDecoder func(payload json.RawMessage) (Effect, error)

var (
	codecMu        sync.RWMutex
	effectDecoders = map[string]EffectDecoder{
		"DealDamage":   decodeDealDamage,
		"CounterSpell": unitEffect(CounterSpell{}),
		"NoEffect":     unitEffect(NoEffect{}),
	}
)

// RegisterEffect makes a new effect variant decodable from the wire. Registering
// an existing kind replaces its decoder.
func RegisterEffect(kind string, dec EffectDecoder) {
	codecMu.Lock()
	defer codecMu.Unlock()
	effectDecoders[kind] = dec
}

// EffectKinds returns the registered variant tags, sorted.
func EffectKinds() []string {
	codecMu.RLock()
	defer codecMu.RUnlock()
	kinds := make([]string, 0, len(effectDecoders))
	for k := range effectDecoders {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// MarshalEffect encodes an effect as an externally tagged variant:
// {"DealDamage":{"amount":3}} for variants with fields, "CounterSpell" for unit variants.
func MarshalEffect(e Effect) ([]byte, error) {
	if e == nil {
		return nil, errors.New("card has no effect")
	}
	payload, err := json.Marshal(e)
	if err != nil {
		return nil, errors.Wrapf(err, "encode %s", e.Kind())
	}
	if bytes.Equal(payload, []byte("{}")) {
		return json.Marshal(e.Kind())
	}
	return json.Marshal(map[string]json.RawMessage{e.Kind(): payload})
}

// UnmarshalEffect decodes either wire form accepted by MarshalEffect. The object
// form must carry exactly one tag.
func UnmarshalEffect(data []byte) (Effect, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, errors.New("missing effect")
	}

	switch data[0] {
	case '"':
		var tag string
		if err := json.Unmarshal(data, &tag); err != nil {
			return nil, errors.Wrap(err, "decode effect tag")
		}
		return decodeTagged(tag, nil)
	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return nil, errors.Wrap(err, "decode effect")
		}
		if len(obj) != 1 {
			return nil, errors.Errorf("effect must have exactly one variant tag, got %d", len(obj))
		}
		for tag, payload := range obj {
			return decodeTagged(tag, payload)
		}
	}
	return nil, errors.Errorf("effect must be a variant name or a tagged object, got %s", data)
}

func decodeTagged(tag string, payload json.RawMessage) (Effect, error) {
	codecMu.RLock()
	dec, ok := effectDecoders[tag]
	codecMu.RUnlock()
	if !ok {
		return nil, errors.Errorf("unknown effect %q", tag)
	}
	return dec(payload)
}

func decodeDealDamage(payload json.RawMessage) (Effect, error) {
	if len(payload) == 0 {
		return nil, errors.New("DealDamage requires an amount")
	}
	var body struct {
		Amount *uint32 `json:"amount"`
	}
	if err := json.Unmarshal(payload, &body); err != nil {
		return nil, errors.Wrap(err, "decode DealDamage")
	}
	if body.Amount == nil {
		return nil, errors.New("DealDamage requires an amount")
	}
	return DealDamage{Amount: *body.Amount}, nil
}

// unitEffect accepts the bare tag, a null payload, or an empty object.
func unitEffect(e Effect) EffectDecoder {
	return func(payload json.RawMessage) (Effect, error) {
		p := bytes.TrimSpace(payload)
		if len(p) == 0 || bytes.Equal(p, []byte("null")) || bytes.Equal(p, []byte("{}")) {
			return e, nil
		}
		return nil, errors.Errorf("%s takes no fields, got %s", e.Kind(), p)
	}
}

// --- Card ---

type wireCard struct {
	Name     string          `json:"name"`
	CardType CardType        `json:"card_type"`
	Effect   json.RawMessage `json:"effect"`
}

// MarshalJSON encodes {"name":...,"card_type":...,"effect":...}.
func (c Card) MarshalJSON() ([]byte, error) {
	effect, err := MarshalEffect(c.Effect)
	if err != nil {
		return nil, errors.Wrapf(err, "encode card %q", c.Name)
	}
	return json.Marshal(wireCard{Name: c.Name, CardType: c.Type, Effect: effect})
}

// UnmarshalJSON decodes a card; name, card_type and effect are all required.
func (c *Card) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name     *string         `json:"name"`
		CardType *CardType       `json:"card_type"`
		Effect   json.RawMessage `json:"effect"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "decode card")
	}
	if raw.Name == nil {
		return errors.New("card is missing name")
	}
	if raw.CardType == nil {
		return errors.Errorf("card %q is missing card_type", *raw.Name)
	}
	effect, err := UnmarshalEffect(raw.Effect)
	if err != nil {
		return errors.Wrapf(err, "card %q", *raw.Name)
	}
	*c = Card{Name: *raw.Name, Type: *raw.CardType, Effect: effect}
	return nil
}

// ParseCard decodes a single card from its JSON wire form.
func ParseCard(data []byte) (Card, error) {
	var c Card
	if err := json.Unmarshal(data, &c); err != nil {
		return Card{}, err
	}
	return c, nil
}
