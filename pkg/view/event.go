package view

// EventType names an interaction delivered to a node.
type EventType string

const (
	EventChange  EventType = "change"
	EventClick   EventType = "click"
	EventKeyDown EventType = "keydown"
	EventBlur    EventType = "blur"
	EventFocus   EventType = "focus"
	EventSubmit  EventType = "submit"
)

// Key names used by KeyDown events.
const (
	KeyEnter = "Enter"
	KeyTab   = "Tab"
	KeySpace = " "
)

// Handler reacts to an event.
type Handler func(*Event)

// Event carries the payload of an interaction. Value holds the widget-level
// value for change events (string, bool, time.Time, selections).
type Event struct {
	Type   EventType
	Target *Node
	Value  any
	Key    string
	Shift  bool

	defaultPrevented bool
}

// PreventDefault suppresses the event's default action.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether a handler suppressed the default action.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

func bubbles(t EventType) bool {
	switch t {
	case EventBlur, EventFocus:
		return false
	default:
		return true
	}
}
