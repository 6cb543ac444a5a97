package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/i3tracker/i3tracker/internal/daemon"
)

const stopTimeout = 5 * time.Second

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the tracker as a background daemon",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm := daemon.New(cfg.Daemon.PIDFile)
		running, pid, err := dm.IsRunning()
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}
		if running {
			return fmt.Errorf("daemon is already running (PID: %d)", pid)
		}

		args = []string{os.Args[0], "run"}
		if configFile != "" {
			args = append(args, "--config", configFile)
		}
		if verbose {
			args = append(args, "--verbose")
		}

		pid, err = daemon.Spawn(args)
		if err != nil {
			return err
		}

		cmd.Printf("Daemon started successfully (PID: %d)\n", pid)
		cmd.Printf("Logs: %s\n", cfg.Daemon.LogFile)
		return nil
	},
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the background daemon, flushing the open interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm := daemon.New(cfg.Daemon.PIDFile)
		running, pid, err := dm.IsRunning()
		if err != nil {
			return fmt.Errorf("failed to check daemon status: %w", err)
		}
		if !running {
			cmd.Println("Daemon is not running")
			return nil
		}

		cmd.Printf("Stopping daemon (PID: %d)...\n", pid)
		if err := dm.Stop(stopTimeout); err != nil {
			return fmt.Errorf("failed to stop daemon: %w", err)
		}

		cmd.Println("Daemon stopped successfully")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
}
