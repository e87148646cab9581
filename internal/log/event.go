package log

// EventType enumerates all observable stack events.
type EventType int

const (
	EventCardAdded EventType = iota
	EventResolveStart
	EventResolved
	EventDamage
	EventHealthChange
	EventCountered
	EventFizzled
	EventCounterNoTarget // counter found nothing to cancel; no result entry is produced
	EventResolveEnd
)

func (e EventType) String() string {
	switch e {
	case EventCardAdded:
		return "CardAdded"
	case EventResolveStart:
		return "ResolveStart"
	case EventResolved:
		return "Resolved"
	case EventDamage:
		return "Damage"
	case EventHealthChange:
		return "HealthChange"
	case EventCountered:
		return "Countered"
	case EventFizzled:
		return "Fizzled"
	case EventCounterNoTarget:
		return "CounterNoTarget"
	case EventResolveEnd:
		return "ResolveEnd"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event on the stack.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // resolution round (1-based; 0 before the first resolve)
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
