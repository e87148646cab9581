package log

import (
	"fmt"
	"io"
	"strings"
)

// EventLogger is the interface for logging stack events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []GameEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	// Pad kind to 16 chars for alignment
	for len(kind) < 16 {
		kind += " "
	}
	return fmt.Sprintf("R%-2d %s| %s", e.Round, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewCardAddedEvent(round int, cardName string, position int) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventCardAdded,
		Card:    cardName,
		Details: fmt.Sprintf("%s is added to the stack at position %d", cardName, position),
	}
}

func NewResolveStartEvent(round int, pending int) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventResolveStart,
		Details: fmt.Sprintf("=== Resolving %d card(s) ===", pending),
	}
}

func NewResolvedEvent(round int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventResolved,
		Card:    cardName,
		Details: fmt.Sprintf("%s resolves", cardName),
	}
}

func NewDamageEvent(round int, cardName string, amount uint32) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventDamage,
		Card:    cardName,
		Details: fmt.Sprintf("%s deals %d damage to the opponent", cardName, amount),
	}
}

func NewHealthChangeEvent(round int, who string, oldHealth, newHealth uint32, reason string) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventHealthChange,
		Details: fmt.Sprintf("%s health: %d → %d (%s)", who, oldHealth, newHealth, reason),
	}
}

func NewCounteredEvent(round int, counterName, targetName string) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventCountered,
		Card:    counterName,
		Details: fmt.Sprintf("%s counters %s", counterName, targetName),
	}
}

func NewFizzledEvent(round int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventFizzled,
		Card:    cardName,
		Details: fmt.Sprintf("%s fizzles (was countered)", cardName),
	}
}

func NewCounterNoTargetEvent(round int, cardName string) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventCounterNoTarget,
		Card:    cardName,
		Details: fmt.Sprintf("%s has nothing to counter", cardName),
	}
}

func NewResolveEndEvent(round int, results int, playerHealth, opponentHealth uint32) GameEvent {
	return GameEvent{
		Round:   round,
		Type:    EventResolveEnd,
		Details: fmt.Sprintf("Stack empty after %d result(s) (player %d, opponent %d)", results, playerHealth, opponentHealth),
	}
}
