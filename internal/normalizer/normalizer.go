// Package normalizer turns raw window manager notifications into focus
// transitions, dropping the spurious focus i3 sends right after a new window.
package normalizer

import "github.com/i3tracker/i3tracker/pkg/window"

// Kind distinguishes the normalized events
type Kind int

const (
	Activated Kind = iota + 1
	Retitled
)

func (k Kind) String() string {
	switch k {
	case Activated:
		return "activated"
	case Retitled:
		return "retitled"
	default:
		return "unknown"
	}
}

// Event is a normalized window event
type Event struct {
	Kind     Kind
	WindowID int64
	Metadata window.Metadata
}

// Normalizer is not safe for concurrent use; it belongs to the listener goroutine.
type Normalizer struct {
	pendingNew int64
	awaiting   bool
}

// New returns a Normalizer in the idle state
func New() *Normalizer {
	return &Normalizer{}
}

// Process feeds one raw event through the state machine. The boolean result is
// false when the event produced no output.
func (n *Normalizer) Process(ev window.RawEvent) (Event, bool) {
	switch ev.Kind {
	case window.ChangeNew:
		n.pendingNew = ev.WindowID
		n.awaiting = true
		return Event{}, false

	case window.ChangeFocus:
		phantom := n.awaiting && n.pendingNew == ev.WindowID
		n.clear()
		if phantom {
			return Event{}, false
		}
		return Event{Kind: Activated, WindowID: ev.WindowID, Metadata: ev.Metadata}, true

	case window.ChangeTitle:
		n.clear()
		return Event{Kind: Retitled, WindowID: ev.WindowID, Metadata: ev.Metadata}, true

	default:
		return Event{}, false
	}
}

// Awaiting reports whether a New event is waiting for its focus confirmation
func (n *Normalizer) Awaiting() (int64, bool) {
	return n.pendingNew, n.awaiting
}

func (n *Normalizer) clear() {
	n.pendingNew = 0
	n.awaiting = false
}
