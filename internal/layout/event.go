package layout

import "fmt"

// EventKind identifies a user or host event applied to a State.
type EventKind int

const (
	EventResize EventKind = iota + 1
	EventToggle
	EventLinkActivated
)

func (k EventKind) String() string {
	switch k {
	case EventResize:
		return "resize"
	case EventToggle:
		return "toggle"
	case EventLinkActivated:
		return "link-activated"
	default:
		return fmt.Sprintf("EventKind(%d)", int(k))
	}
}

// Event is a single input to the layout state machine.
type Event struct {
	Kind  EventKind
	Width int    // EventResize only
	Path  string // EventLinkActivated only
}

// Resize returns a viewport resize event.
func Resize(width int) Event {
	return Event{Kind: EventResize, Width: width}
}

// ToggleEvent returns a toggle control activation.
func ToggleEvent() Event {
	return Event{Kind: EventToggle}
}

// LinkEvent returns a navigation link activation for path.
func LinkEvent(path string) Event {
	return Event{Kind: EventLinkActivated, Path: path}
}
