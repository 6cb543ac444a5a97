package window

// ChangeKind is the kind of window change reported by the window manager
type ChangeKind int

const (
	ChangeOther ChangeKind = iota
	ChangeNew
	ChangeFocus
	ChangeTitle
)

func (k ChangeKind) String() string {
	switch k {
	case ChangeNew:
		return "new"
	case ChangeFocus:
		return "focus"
	case ChangeTitle:
		return "title"
	default:
		return "other"
	}
}

// ParseChangeKind maps an i3 "change" field onto a ChangeKind
func ParseChangeKind(change string) ChangeKind {
	switch change {
	case "new":
		return ChangeNew
	case "focus":
		return ChangeFocus
	case "title":
		return ChangeTitle
	default:
		return ChangeOther
	}
}

// NodeType is the i3 container type of a window
type NodeType string

const (
	NodeRoot        NodeType = "root"
	NodeOutput      NodeType = "output"
	NodeCon         NodeType = "con"
	NodeFloatingCon NodeType = "floating_con"
	NodeWorkspace   NodeType = "workspace"
	NodeDockarea    NodeType = "dockarea"
)

// Metadata describes a window. Empty strings mean the value was not reported.
type Metadata struct {
	Title    string
	Class    string
	Role     string
	Output   string
	NodeType NodeType
}

// RawEvent is a single window change notification
type RawEvent struct {
	Kind     ChangeKind
	WindowID int64
	Metadata Metadata
}

// Source is the interface window manager subscriptions must satisfy.
// Iteration stops when Next returns false; Err then reports why.
type Source interface {
	// Next blocks until the next event is available
	Next() bool

	// Event returns the event read by the last call to Next
	Event() RawEvent

	// Err returns the error that ended iteration, if any
	Err() error

	// Close releases the subscription
	Close() error
}

// ClassResolver looks up a window's class from the display server
type ClassResolver interface {
	Class(window uint32) (string, error)
	Close() error
}
