package config_test

import (
	"fmt"
	"time"

	"github.com/i3tracker/i3tracker/internal/config"
)

// Example of creating a default configuration
func ExampleDefault() {
	cfg := config.Default()
	fmt.Println("Heartbeat:", cfg.Tracker.Heartbeat)
	fmt.Println("Log Limit:", cfg.Log.Limit)
	fmt.Println("Index Enabled:", cfg.Index.Enabled)
	// Output:
	// Heartbeat: 10s
	// Log Limit: 10
	// Index Enabled: false
}

// Example of setting the heartbeat with validation
func ExampleConfig_SetHeartbeat() {
	cfg := config.Default()

	if err := cfg.SetHeartbeat(30 * time.Second); err != nil {
		fmt.Println("Error:", err)
	} else {
		fmt.Println("Heartbeat set to:", cfg.Tracker.Heartbeat)
	}

	if err := cfg.SetHeartbeat(500 * time.Millisecond); err != nil {
		fmt.Println("Error:", err)
	}

	// Output:
	// Heartbeat set to: 30s
	// Error: heartbeat cannot be less than 1s
}

// Example of validating configuration
func ExampleConfig_Validate() {
	cfg := config.Default()

	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
	} else {
		fmt.Println("Configuration is valid")
	}

	// Output:
	// Configuration is valid
}
