package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/i3tracker/i3tracker/internal/logfile"
	"github.com/i3tracker/i3tracker/internal/models"
	"github.com/i3tracker/i3tracker/internal/rotate"
)

var followPath string

var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Print intervals as they are appended to the active log",
	RunE: func(cmd *cobra.Command, args []string) error {
		path := followPath
		if path == "" {
			latest, err := rotate.Latest(cfg.Log.Dir, cfg.Log.BaseName, cfg.Log.Limit)
			if err != nil {
				return err
			}
			if latest == "" {
				return fmt.Errorf("no log file in %s", cfg.Log.Dir)
			}
			path = latest
		}

		f, err := logfile.NewFollower(path)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cmd.Printf("Following %s\n", path)
		return f.Follow(ctx, func(e models.LogEntry) {
			cmd.Println(formatRow(e))
		})
	},
}

func init() {
	followCmd.Flags().StringVar(&followPath, "path", "", "log file to follow (default: most recently written)")
	rootCmd.AddCommand(followCmd)
}

func formatRow(e models.LogEntry) string {
	return fmt.Sprintf("#%-6d %s  %5ds  %-20s %s", e.Sequence, e.EndTime, e.Duration, truncateField(e.Class, 20), e.Title)
}

func truncateField(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-1] + "~"
}
