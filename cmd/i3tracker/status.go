package main

import (
	"errors"
	"time"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/i3tracker/i3tracker/internal/daemon"
	"github.com/i3tracker/i3tracker/internal/index"
	"github.com/i3tracker/i3tracker/internal/logfile"
	"github.com/i3tracker/i3tracker/internal/models"
	"github.com/i3tracker/i3tracker/internal/rotate"
	"github.com/i3tracker/i3tracker/pkg/utils"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show daemon state and the last recorded interval",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm := daemon.New(cfg.Daemon.PIDFile)
		running, pid, err := dm.IsRunning()
		if err != nil {
			return err
		}
		if running {
			cmd.Printf("Status: Running (PID: %d)\n", pid)
		} else {
			cmd.Printf("Status: Not running (no live PID in %s)\n", dm.PIDFile())
		}
		cmd.Printf("Heartbeat: %v\n", cfg.Tracker.Heartbeat)

		path, err := rotate.Latest(cfg.Log.Dir, cfg.Log.BaseName, cfg.Log.Limit)
		if err != nil {
			return err
		}
		if path == "" {
			cmd.Printf("Log: none in %s\n", cfg.Log.Dir)
			return nil
		}
		cmd.Printf("Log: %s\n", path)

		last, err := logfile.ReadLast(path)
		switch {
		case errors.Is(err, logfile.ErrNotFound):
			cmd.Println("Last interval: none")
		case err != nil:
			return err
		default:
			printEntry(cmd, *last)
		}

		if cfg.Index.Enabled {
			printLatestIndexed(cmd)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func printEntry(cmd *cobra.Command, e models.LogEntry) {
	cmd.Printf("\nLast interval #%d:\n", e.Sequence)
	cmd.Printf("  Window: %d (%s)\n", e.WindowID, e.Class)
	cmd.Printf("  Title: %s\n", e.Title)
	cmd.Printf("  From: %s to %s (%s)\n", e.StartTime, e.EndTime, utils.FormatRoundedUnit(e.Duration))
	if end, err := e.End(); err == nil {
		cmd.Printf("  Written: %s ago\n", utils.FormatRoundedUnit(int64(time.Since(end)/time.Second)))
	}
}

func printLatestIndexed(cmd *cobra.Command) {
	db, err := openIndex(cfg.Index.Path)
	if err != nil {
		cmd.Printf("\nIndex: unavailable (%v)\n", err)
		return
	}
	defer db.Close()

	latest, err := index.NewRepository(db, "").Latest()
	if errors.Is(err, gorm.ErrRecordNotFound) {
		cmd.Println("\nIndex: empty")
		return
	}
	if err != nil {
		cmd.Printf("\nIndex: %v\n", err)
		return
	}
	cmd.Printf("\nIndexed interval #%d (%d snapshots, %s total)\n",
		latest.Sequence, latest.Snapshots, utils.FormatRoundedUnit(latest.Duration))
}
