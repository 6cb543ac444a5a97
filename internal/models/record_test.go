package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i3tracker/i3tracker/pkg/window"
)

func TestActiveRecordEntry(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	meta := window.Metadata{Title: "Editor", Class: "Code", Role: "browser-window", Output: "DP-1", NodeType: window.NodeCon}
	rec := NewActiveRecord(94, meta, start)

	entry := rec.Entry(12, start.Add(95*time.Second+900*time.Millisecond))

	assert.Equal(t, LogEntry{
		Sequence:  12,
		StartTime: "2024-03-01 09:00:00",
		EndTime:   "2024-03-01 09:01:35",
		Duration:  95,
		WindowID:  94,
		Title:     "Editor",
		Class:     "Code",
		Role:      "browser-window",
		NodeType:  "con",
		Output:    "DP-1",
	}, entry)

	parsed, err := entry.Start()
	require.NoError(t, err)
	assert.True(t, parsed.Equal(start))
	end, err := entry.End()
	require.NoError(t, err)
	assert.Equal(t, int64(95), int64(end.Sub(parsed)/time.Second))
}

func TestActiveRecordRollForward(t *testing.T) {
	start := time.Date(2024, 3, 1, 9, 0, 0, 0, time.Local)
	rec := NewActiveRecord(1, window.Metadata{Title: "a"}, start)

	first := rec.Entry(3, start.Add(10*time.Second))
	rec.RollForward(start.Add(10 * time.Second))
	second := rec.Entry(3, start.Add(20*time.Second))

	assert.Equal(t, first.EndTime, second.StartTime)
	assert.Equal(t, int64(10), second.Duration)
	assert.Equal(t, "a", rec.Metadata.Title)
}

func TestActiveRecordMatches(t *testing.T) {
	rec := NewActiveRecord(5, window.Metadata{Title: "a", Class: "b"}, time.Now())

	assert.True(t, rec.Matches(5, window.Metadata{Title: "a", Class: "b"}))
	assert.False(t, rec.Matches(6, window.Metadata{Title: "a", Class: "b"}))
	assert.False(t, rec.Matches(5, window.Metadata{Title: "a*", Class: "b"}))
}
