package models

import (
	"time"
)

// Interval is the compacted form of all log rows sharing a sequence id
// within one tracker session
type Interval struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	SessionID string    `gorm:"not null;uniqueIndex:idx_session_sequence" json:"session_id"`
	Sequence  uint32    `gorm:"not null;uniqueIndex:idx_session_sequence" json:"sequence"`
	LogFile   string    `gorm:"not null" json:"log_file"`
	StartTime time.Time `gorm:"not null;index" json:"start_time"`
	EndTime   time.Time `gorm:"not null" json:"end_time"`
	Duration  int64     `gorm:"not null;default:0" json:"duration"` // Duration in seconds
	Snapshots int       `gorm:"not null;default:1" json:"snapshots"`
	WindowID  int64     `gorm:"not null" json:"window_id"`
	Title     string    `json:"window_title"`
	Class     string    `gorm:"index" json:"window_class"`
	Role      string    `json:"window_role"`
	NodeType  string    `json:"node_type"`
	Output    string    `json:"output"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime;index" json:"updated_at"`
}
