package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
)

const appName = "i3tracker"

// Config holds all application configuration
type Config struct {
	// Focus log configuration
	Log LogConfig `mapstructure:"log"`

	// Tracker configuration
	Tracker TrackerConfig `mapstructure:"tracker"`

	// Compacted index configuration
	Index IndexConfig `mapstructure:"index"`

	// Daemon configuration
	Daemon DaemonConfig `mapstructure:"daemon"`
}

// LogConfig holds the rotating CSV log configuration
type LogConfig struct {
	Dir           string `mapstructure:"dir"`            // Directory holding <base>.log.<n> files
	BaseName      string `mapstructure:"base_name"`      // File name prefix
	Limit         int    `mapstructure:"limit"`          // Number of rotated files kept
	DeleteEvicted bool   `mapstructure:"delete_evicted"` // Remove the oldest file before reusing its index
}

// TrackerConfig holds tracking behavior configuration
type TrackerConfig struct {
	Heartbeat time.Duration `mapstructure:"heartbeat"` // Idle period before an open interval is re-persisted
	Buffer    int           `mapstructure:"buffer"`    // Message queue capacity
	Verbose   bool          `mapstructure:"verbose"`
}

// IndexConfig holds the optional SQLite index configuration
type IndexConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// DaemonConfig holds daemon process configuration
type DaemonConfig struct {
	PIDFile string `mapstructure:"pid_file"`
	LogFile string `mapstructure:"log_file"`
}

// DataDir returns $XDG_DATA_HOME/i3tracker
func DataDir() string {
	return filepath.Join(xdg.DataHome, appName)
}

// ConfigDir returns $XDG_CONFIG_HOME/i3tracker
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Log: LogConfig{
			Dir:           DataDir(),
			BaseName:      appName,
			Limit:         10,
			DeleteEvicted: true,
		},
		Tracker: TrackerConfig{
			Heartbeat: 10 * time.Second,
			Buffer:    50,
		},
		Index: IndexConfig{
			Enabled: false,
			Path:    filepath.Join(DataDir(), "index.db"),
		},
		Daemon: DaemonConfig{
			PIDFile: fmt.Sprintf("/tmp/%s-%d.pid", appName, os.Getuid()),
			LogFile: fmt.Sprintf("/tmp/%s-%d.log", appName, os.Getuid()),
		},
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Log.Dir == "" {
		return fmt.Errorf("log directory cannot be empty")
	}
	if c.Log.BaseName == "" {
		return fmt.Errorf("log base name cannot be empty")
	}
	if filepath.Base(c.Log.BaseName) != c.Log.BaseName {
		return fmt.Errorf("log base name must not contain a path separator: %q", c.Log.BaseName)
	}
	if c.Log.Limit < 1 {
		return fmt.Errorf("log limit must be at least 1, got %d", c.Log.Limit)
	}

	if c.Tracker.Heartbeat < time.Second {
		return fmt.Errorf("heartbeat (%v) cannot be less than 1s", c.Tracker.Heartbeat)
	}
	if c.Tracker.Buffer < 1 {
		return fmt.Errorf("tracker buffer must be positive, got %d", c.Tracker.Buffer)
	}

	if c.Index.Enabled && c.Index.Path == "" {
		return fmt.Errorf("index path cannot be empty when the index is enabled")
	}

	if c.Daemon.PIDFile == "" {
		return fmt.Errorf("PID file path cannot be empty")
	}

	return nil
}

// SetHeartbeat sets the heartbeat period with validation
func (c *Config) SetHeartbeat(period time.Duration) error {
	if period < time.Second {
		return fmt.Errorf("heartbeat cannot be less than 1s")
	}
	c.Tracker.Heartbeat = period
	return nil
}

// SetLimit sets the number of rotated log files with validation
func (c *Config) SetLimit(limit int) error {
	if limit < 1 {
		return fmt.Errorf("log limit must be at least 1, got %d", limit)
	}
	c.Log.Limit = limit
	return nil
}

// String returns a string representation of the config
func (c *Config) String() string {
	return fmt.Sprintf(`Configuration:
  Log:
    Dir: %s
    Base Name: %s
    Limit: %d
    Delete Evicted: %v
  Tracker:
    Heartbeat: %v
    Buffer: %d
    Verbose: %v
  Index:
    Enabled: %v
    Path: %s
  Daemon:
    PID File: %s
    Log File: %s`,
		c.Log.Dir,
		c.Log.BaseName,
		c.Log.Limit,
		c.Log.DeleteEvicted,
		c.Tracker.Heartbeat,
		c.Tracker.Buffer,
		c.Tracker.Verbose,
		c.Index.Enabled,
		c.Index.Path,
		c.Daemon.PIDFile,
		c.Daemon.LogFile,
	)
}
