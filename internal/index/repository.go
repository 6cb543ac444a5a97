package index

import (
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/i3tracker/i3tracker/internal/models"
)

// Repository mirrors log rows of one tracker session into the index.
// Sequence ids restart with every log file, so rows are keyed by a
// per-session id plus the sequence id.
type Repository struct {
	db        *DB
	sessionID string
	logFile   string
}

// NewRepository starts a new session writing rows that came from logFile
func NewRepository(db *DB, logFile string) *Repository {
	return &Repository{
		db:        db,
		sessionID: uuid.New().String(),
		logFile:   logFile,
	}
}

func (r *Repository) SessionID() string {
	return r.sessionID
}

// Append upserts a log row. The first row of an interval inserts it; later
// heartbeat rows extend its end time and add their duration.
func (r *Repository) Append(entry models.LogEntry) error {
	start, err := entry.Start()
	if err != nil {
		return errors.Wrap(err, "invalid start time")
	}
	end, err := entry.End()
	if err != nil {
		return errors.Wrap(err, "invalid end time")
	}

	interval := &models.Interval{
		SessionID: r.sessionID,
		Sequence:  entry.Sequence,
		LogFile:   r.logFile,
		StartTime: start,
		EndTime:   end,
		Duration:  entry.Duration,
		Snapshots: 1,
		WindowID:  entry.WindowID,
		Title:     entry.Title,
		Class:     entry.Class,
		Role:      entry.Role,
		NodeType:  entry.NodeType,
		Output:    entry.Output,
	}

	result := r.db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "session_id"}, {Name: "sequence"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"end_time":   gorm.Expr("excluded.end_time"),
			"duration":   gorm.Expr("intervals.duration + excluded.duration"),
			"snapshots":  gorm.Expr("intervals.snapshots + 1"),
			"updated_at": gorm.Expr("excluded.updated_at"),
		}),
	}).Create(interval)
	if result.Error != nil {
		return errors.Wrap(result.Error, "failed to upsert interval")
	}
	return nil
}

// Latest returns the most recently updated interval across all sessions
func (r *Repository) Latest() (*models.Interval, error) {
	var interval models.Interval
	result := r.db.Order("updated_at DESC").Order("id DESC").First(&interval)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, gorm.ErrRecordNotFound
		}
		return nil, errors.Wrap(result.Error, "failed to get latest interval")
	}
	return &interval, nil
}

// Session lists the intervals of one session in sequence order
func (r *Repository) Session(id string) ([]*models.Interval, error) {
	var intervals []*models.Interval
	result := r.db.Where("session_id = ?", id).Order("sequence ASC").Find(&intervals)
	if result.Error != nil {
		return nil, errors.Wrap(result.Error, "failed to query session intervals")
	}
	return intervals, nil
}
