package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/i3tracker/i3tracker/internal/index"
	"github.com/i3tracker/i3tracker/pkg/utils"
)

var intervalsCmd = &cobra.Command{
	Use:   "intervals [session-id]",
	Short: "List the compacted intervals of a tracker session from the index",
	Long:  "Without a session id, the session that wrote the most recent interval is listed.",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !cfg.Index.Enabled {
			return fmt.Errorf("the index is disabled, set index.enabled = true")
		}

		db, err := openIndex(cfg.Index.Path)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := index.NewRepository(db, "")
		session := ""
		if len(args) > 0 {
			session = args[0]
		} else {
			latest, err := repo.Latest()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				cmd.Println("Index is empty")
				return nil
			}
			if err != nil {
				return err
			}
			session = latest.SessionID
		}

		intervals, err := repo.Session(session)
		if err != nil {
			return err
		}
		if len(intervals) == 0 {
			return fmt.Errorf("no intervals for session %s", session)
		}

		cmd.Printf("Session %s (%s)\n", session, intervals[0].LogFile)
		for _, iv := range intervals {
			cmd.Printf("#%-6d %s  %6s  %2dx  %-20s %s\n",
				iv.Sequence,
				iv.StartTime.Local().Format("2006-01-02 15:04:05"),
				utils.FormatRoundedUnit(iv.Duration),
				iv.Snapshots,
				truncateField(iv.Class, 20),
				iv.Title)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(intervalsCmd)
}
