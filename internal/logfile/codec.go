package logfile

import (
	"fmt"
	"strconv"
	"time"

	"github.com/i3tracker/i3tracker/internal/models"
)

// Header is the first row of every log file
var Header = []string{
	"id",
	"start_time",
	"end_time",
	"duration",
	"window_id",
	"window_title",
	"window_class",
	"window_role",
	"node_type",
	"output",
}

func encode(e models.LogEntry) []string {
	return []string{
		strconv.FormatUint(uint64(e.Sequence), 10),
		e.StartTime,
		e.EndTime,
		strconv.FormatInt(e.Duration, 10),
		strconv.FormatInt(e.WindowID, 10),
		e.Title,
		e.Class,
		e.Role,
		e.NodeType,
		e.Output,
	}
}

func decode(record []string) (models.LogEntry, error) {
	if len(record) != len(Header) {
		return models.LogEntry{}, fmt.Errorf("expected %d fields, got %d", len(Header), len(record))
	}

	seq, err := strconv.ParseUint(record[0], 10, 32)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid id %q: %w", record[0], err)
	}
	for _, ts := range record[1:3] {
		if _, err := time.Parse(models.TimeLayout, ts); err != nil {
			return models.LogEntry{}, fmt.Errorf("invalid timestamp %q: %w", ts, err)
		}
	}
	duration, err := strconv.ParseInt(record[3], 10, 64)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid duration %q: %w", record[3], err)
	}
	windowID, err := strconv.ParseInt(record[4], 10, 64)
	if err != nil {
		return models.LogEntry{}, fmt.Errorf("invalid window id %q: %w", record[4], err)
	}

	return models.LogEntry{
		Sequence:  uint32(seq),
		StartTime: record[1],
		EndTime:   record[2],
		Duration:  duration,
		WindowID:  windowID,
		Title:     record[5],
		Class:     record[6],
		Role:      record[7],
		NodeType:  record[8],
		Output:    record[9],
	}, nil
}

func isHeader(record []string) bool {
	return len(record) > 0 && record[0] == Header[0]
}
