// Package index keeps a compacted SQLite copy of the focus log, one row per
// interval, so heartbeat snapshots can be queried without rescanning CSV files.
package index

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/i3tracker/i3tracker/internal/models"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type DB struct {
	*gorm.DB
}

func Connect(dbPath string) (*DB, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("index path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open index: %w", err)
	}

	return &DB{db}, nil
}

func (db *DB) Initialize() error {
	if err := db.AutoMigrate(&models.Interval{}); err != nil {
		return fmt.Errorf("failed to initialize index schema: %w", err)
	}
	return nil
}

func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	return sqlDB.Close()
}
