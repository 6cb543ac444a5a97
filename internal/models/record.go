package models

import (
	"time"

	"github.com/i3tracker/i3tracker/pkg/window"
)

// TimeLayout is the format of start_time and end_time in the log
const TimeLayout = "2006-01-02 15:04:05"

// ActiveRecord is the currently open focus interval
type ActiveRecord struct {
	StartTime time.Time
	WindowID  int64
	Metadata  window.Metadata
}

// NewActiveRecord opens an interval for a window at the given time
func NewActiveRecord(windowID int64, meta window.Metadata, now time.Time) *ActiveRecord {
	return &ActiveRecord{
		StartTime: now,
		WindowID:  windowID,
		Metadata:  meta,
	}
}

// Matches reports whether the record already describes this window and metadata
func (r *ActiveRecord) Matches(windowID int64, meta window.Metadata) bool {
	return r.WindowID == windowID && r.Metadata == meta
}

// Entry closes the interval at now under the given sequence id
func (r *ActiveRecord) Entry(seq uint32, now time.Time) LogEntry {
	return LogEntry{
		Sequence:  seq,
		StartTime: r.StartTime.Format(TimeLayout),
		EndTime:   now.Format(TimeLayout),
		Duration:  int64(now.Sub(r.StartTime) / time.Second),
		WindowID:  r.WindowID,
		Title:     r.Metadata.Title,
		Class:     r.Metadata.Class,
		Role:      r.Metadata.Role,
		NodeType:  string(r.Metadata.NodeType),
		Output:    r.Metadata.Output,
	}
}

// RollForward restarts the interval at now, keeping the window metadata
func (r *ActiveRecord) RollForward(now time.Time) {
	r.StartTime = now
}

// LogEntry is one persisted row of the focus log
type LogEntry struct {
	Sequence  uint32 `json:"id"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Duration  int64  `json:"duration"` // Duration in seconds
	WindowID  int64  `json:"window_id"`
	Title     string `json:"window_title"`
	Class     string `json:"window_class"`
	Role      string `json:"window_role"`
	NodeType  string `json:"node_type"`
	Output    string `json:"output"`
}

// Start parses StartTime in the local time zone
func (e LogEntry) Start() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, e.StartTime, time.Local)
}

// End parses EndTime in the local time zone
func (e LogEntry) End() (time.Time, error) {
	return time.ParseInLocation(TimeLayout, e.EndTime, time.Local)
}
