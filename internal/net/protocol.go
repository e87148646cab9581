package net

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/peterkuimelis/cardstack/internal/game"
	"github.com/peterkuimelis/cardstack/internal/log"
	"github.com/peterkuimelis/cardstack/internal/session"
)

// Message types for the JSON protocol over TCP and websockets.

// Client → server message types.
const (
	TypeAddCard = "add_card"
	TypeResolve = "resolve"
	TypeState   = "state"
	TypeCards   = "cards"
)

// Server → client message types.
const (
	TypeAck     = "ack"
	TypeResults = "results"
	TypeError   = "error"
	TypeNotify  = "notify"
	// TypeState and TypeCards are shared with the requests that produce them.
)

// StatusCardAdded is the acknowledgement for a successful add_card.
const StatusCardAdded = "card added to stack"

// --- Server → Client messages ---

// ServerMessage is the envelope for all server-to-client messages.
type ServerMessage struct {
	Type string `json:"type"`

	// For "ack"
	Status string `json:"status,omitempty"`

	// For "results"; omitted when nothing resolved.
	Results []game.ResolutionResult `json:"results,omitempty"`

	// For "state"
	State *session.State `json:"state,omitempty"`

	// For "cards"
	Cards []game.Card `json:"cards,omitempty"`

	// For "error"
	Error string `json:"error,omitempty"`

	// For "notify"
	Event *EventView `json:"event,omitempty"`
}

// EventView is a stack event as sent to clients.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round"`
	Type    string `json:"type"`
	Card    string `json:"card,omitempty"`
	Details string `json:"details"`
}

// NewEventView converts a logged event for the wire.
func NewEventView(ev log.GameEvent) *EventView {
	return &EventView{
		Seq:     ev.Seq,
		Round:   ev.Round,
		Type:    ev.Type.String(),
		Card:    ev.Card,
		Details: ev.Details,
	}
}

// --- Client → Server messages ---

// ClientMessage is the envelope for all client-to-server messages.
type ClientMessage struct {
	Type string `json:"type"`

	// For "add_card": either a full card or the name of a registry card.
	Card *game.Card `json:"card,omitempty"`
	Name string     `json:"name,omitempty"`
}

// DecodeClientMessage decodes one envelope. Errors are reported to the client
// rather than ending the connection.
func DecodeClientMessage(raw json.RawMessage) (ClientMessage, error) {
	var msg ClientMessage
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ClientMessage{}, fmt.Errorf("invalid message: %w", err)
	}
	if msg.Type == "" {
		return ClientMessage{}, errors.New("invalid message: missing type")
	}
	return msg, nil
}

// Handle applies one client message to the session and returns the reply.
func Handle(sess *session.Session, msg ClientMessage) ServerMessage {
	switch msg.Type {
	case TypeAddCard:
		card, err := messageCard(msg)
		if err != nil {
			return ErrorMessage(err)
		}
		sess.Add(card)
		return ServerMessage{Type: TypeAck, Status: StatusCardAdded}

	case TypeResolve:
		return ServerMessage{Type: TypeResults, Results: sess.Resolve()}

	case TypeState:
		st := sess.State()
		return ServerMessage{Type: TypeState, State: &st}

	case TypeCards:
		return ServerMessage{Type: TypeCards, Cards: game.RegistryCards()}

	default:
		return ErrorMessage(fmt.Errorf("unknown message type %q", msg.Type))
	}
}

// ErrorMessage wraps err in an error envelope.
func ErrorMessage(err error) ServerMessage {
	return ServerMessage{Type: TypeError, Error: err.Error()}
}

func messageCard(msg ClientMessage) (game.Card, error) {
	switch {
	case msg.Card != nil && msg.Name != "":
		return game.Card{}, errors.New("add_card takes either card or name, not both")
	case msg.Card != nil:
		return *msg.Card, nil
	case msg.Name != "":
		return game.LookupCard(msg.Name)
	default:
		return game.Card{}, errors.New("add_card requires a card or a name")
	}
}
