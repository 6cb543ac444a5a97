package window

import (
	"errors"
	"testing"
)

type MockSource struct {
	events []RawEvent
	pos    int
	err    error
	closed bool
}

func (m *MockSource) Next() bool {
	if m.pos >= len(m.events) {
		return false
	}
	m.pos++
	return true
}

func (m *MockSource) Event() RawEvent {
	return m.events[m.pos-1]
}

func (m *MockSource) Err() error {
	return m.err
}

func (m *MockSource) Close() error {
	m.closed = true
	return nil
}

func TestMockSource(t *testing.T) {
	var _ Source = (*MockSource)(nil)

	streamErr := errors.New("connection reset")
	mock := &MockSource{
		events: []RawEvent{
			{Kind: ChangeNew, WindowID: 1},
			{Kind: ChangeFocus, WindowID: 1, Metadata: Metadata{Title: "term"}},
		},
		err: streamErr,
	}

	var got []RawEvent
	for mock.Next() {
		got = append(got, mock.Event())
	}

	if len(got) != 2 {
		t.Fatalf("got %d events, want 2", len(got))
	}
	if got[1].Metadata.Title != "term" {
		t.Errorf("Title = %s, want term", got[1].Metadata.Title)
	}
	if !errors.Is(mock.Err(), streamErr) {
		t.Errorf("Err() = %v, want %v", mock.Err(), streamErr)
	}
	if err := mock.Close(); err != nil || !mock.closed {
		t.Errorf("Close() error: %v", err)
	}
}

func TestParseChangeKind(t *testing.T) {
	tests := []struct {
		change string
		want   ChangeKind
	}{
		{"new", ChangeNew},
		{"focus", ChangeFocus},
		{"title", ChangeTitle},
		{"close", ChangeOther},
		{"fullscreen_mode", ChangeOther},
		{"", ChangeOther},
	}

	for _, tt := range tests {
		t.Run(tt.change, func(t *testing.T) {
			if got := ParseChangeKind(tt.change); got != tt.want {
				t.Errorf("ParseChangeKind(%q) = %v, want %v", tt.change, got, tt.want)
			}
		})
	}
}

func TestChangeKindString(t *testing.T) {
	for _, kind := range []ChangeKind{ChangeNew, ChangeFocus, ChangeTitle} {
		if ParseChangeKind(kind.String()) != kind {
			t.Errorf("%v does not round-trip through its name", kind)
		}
	}
	if ChangeOther.String() != "other" {
		t.Errorf("ChangeOther.String() = %s, want other", ChangeOther.String())
	}
}

func TestMetadataEquality(t *testing.T) {
	a := Metadata{Title: "Editor", Class: "Code", NodeType: NodeCon}
	b := a
	if a != b {
		t.Error("copies of the same metadata should compare equal")
	}
	b.Title = "Editor*"
	if a == b {
		t.Error("metadata with different titles should not compare equal")
	}
}
