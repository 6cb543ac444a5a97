// Package i3ipc adapts the i3 IPC window event subscription to window.Source.
package i3ipc

import (
	"fmt"
	"log"
	"sync"
	"sync/atomic"

	"go.i3wm.org/i3/v4"

	"github.com/i3tracker/i3tracker/pkg/window"
)

// receiver is the subset of *i3.EventReceiver used by Source
type receiver interface {
	Next() bool
	Event() i3.Event
	Close() error
}

// Source implements window.Source for i3
type Source struct {
	recv     receiver
	resolver window.ClassResolver
	getTree  func() (i3.Tree, error)

	current window.RawEvent
	err     error
	// output per container, refreshed on focus and reused for title changes
	outputs map[i3.NodeID]string

	// Close may run on another goroutine than Next
	done      atomic.Bool
	closeOnce sync.Once
	closeErr  error
}

// NewSource checks that i3 is reachable and subscribes to window events.
// resolver may be nil, in which case classes come from i3 only.
func NewSource(resolver window.ClassResolver) (*Source, error) {
	v, err := i3.GetVersion()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to i3: %w", err)
	}
	log.Printf("Connected to i3 %s", v.HumanReadable)

	return newSource(i3.Subscribe(i3.WindowEventType), resolver, i3.GetTree), nil
}

func newSource(recv receiver, resolver window.ClassResolver, getTree func() (i3.Tree, error)) *Source {
	return &Source{
		recv:     recv,
		resolver: resolver,
		getTree:  getTree,
		outputs:  make(map[i3.NodeID]string),
	}
}

// Next blocks until the next window event arrives
func (s *Source) Next() bool {
	if s.done.Load() {
		return false
	}
	for s.recv.Next() {
		ev, ok := s.recv.Event().(*i3.WindowEvent)
		if !ok {
			continue
		}
		s.current = s.convert(ev)
		return true
	}
	s.err = s.closeRecv()
	s.done.Store(true)
	return false
}

// Event returns the current window event
func (s *Source) Event() window.RawEvent {
	return s.current
}

// Err returns the error that ended the subscription
func (s *Source) Err() error {
	if s.err != nil {
		return fmt.Errorf("i3 event stream failed: %w", s.err)
	}
	return nil
}

// Close ends the subscription and unblocks a pending Next
func (s *Source) Close() error {
	s.done.Store(true)
	return s.closeRecv()
}

func (s *Source) closeRecv() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.recv.Close()
	})
	return s.closeErr
}

func (s *Source) convert(ev *i3.WindowEvent) window.RawEvent {
	c := ev.Container
	raw := window.RawEvent{
		Kind:     window.ParseChangeKind(ev.Change),
		WindowID: int64(c.ID),
	}

	if ev.Change == "close" {
		delete(s.outputs, c.ID)
	}

	// Only focus and title changes carry metadata downstream
	if raw.Kind != window.ChangeFocus && raw.Kind != window.ChangeTitle {
		return raw
	}

	raw.Metadata = window.Metadata{
		Title:    c.Name,
		Class:    c.WindowProperties.Class,
		Role:     c.WindowProperties.Role,
		NodeType: window.NodeType(c.Type),
	}

	if raw.Metadata.Class == "" && s.resolver != nil && c.Window != 0 {
		class, err := s.resolver.Class(uint32(c.Window))
		if err != nil {
			log.Printf("Class lookup failed for window %d: %v", c.Window, err)
		} else {
			raw.Metadata.Class = class
		}
	}

	raw.Metadata.Output = s.output(c.ID, raw.Kind == window.ChangeFocus)
	return raw
}

// output returns the output holding container id. The tree is only queried
// on focus or when the container has not been seen yet.
func (s *Source) output(id i3.NodeID, refresh bool) string {
	if cached, ok := s.outputs[id]; ok && !refresh {
		return cached
	}
	if s.getTree == nil {
		return ""
	}

	tree, err := s.getTree()
	if err != nil {
		log.Printf("Failed to read i3 tree: %v", err)
		return s.outputs[id]
	}
	output, ok := findOutput(tree.Root, id, "")
	if !ok {
		return ""
	}
	s.outputs[id] = output
	return output
}

// findOutput returns the name of the output containing the node with the given id
func findOutput(n *i3.Node, id i3.NodeID, output string) (string, bool) {
	if n == nil {
		return "", false
	}
	if window.NodeType(n.Type) == window.NodeOutput {
		output = n.Name
	}
	if n.ID == id {
		return output, true
	}
	for _, child := range n.Nodes {
		if name, ok := findOutput(child, id, output); ok {
			return name, true
		}
	}
	for _, child := range n.FloatingNodes {
		if name, ok := findOutput(child, id, output); ok {
			return name, true
		}
	}
	return "", false
}

var _ window.Source = (*Source)(nil)
