package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/i3tracker/i3tracker/internal/config"
	"github.com/i3tracker/i3tracker/internal/daemon"
	"github.com/i3tracker/i3tracker/internal/fault"
	"github.com/i3tracker/i3tracker/internal/index"
	"github.com/i3tracker/i3tracker/internal/logfile"
	"github.com/i3tracker/i3tracker/internal/rotate"
	"github.com/i3tracker/i3tracker/internal/tracker"
	"github.com/i3tracker/i3tracker/pkg/integrations/i3ipc"
	"github.com/i3tracker/i3tracker/pkg/integrations/x11"
	"github.com/i3tracker/i3tracker/pkg/window"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Track focus in the foreground until interrupted",
	RunE: func(cmd *cobra.Command, args []string) error {
		dm := daemon.New(cfg.Daemon.PIDFile)
		running, pid, err := dm.IsRunning()
		if err != nil {
			return err
		}
		if running && pid != os.Getpid() {
			return fmt.Errorf("daemon is already running (PID: %d), stop it first", pid)
		}

		if daemon.IsChild() {
			if f, err := os.OpenFile(cfg.Daemon.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644); err == nil {
				log.SetOutput(f)
				defer f.Close()
			}
			if err := dm.WritePID(); err != nil {
				return fault.Wrap(fault.IO, err, "failed to write PID file")
			}
			defer dm.RemovePID()
		}

		return runTracker(cmd.Context(), cfg)
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runTracker(ctx context.Context, cfg *config.Config) error {
	w, next, err := openActiveLog(cfg)
	if err != nil {
		return err
	}
	defer w.Close()

	opts := tracker.Options{
		Heartbeat: cfg.Tracker.Heartbeat,
		Buffer:    cfg.Tracker.Buffer,
		Verbose:   cfg.Tracker.Verbose,
	}

	if cfg.Index.Enabled {
		db, err := openIndex(cfg.Index.Path)
		if err != nil {
			log.Printf("Index disabled: %v", err)
		} else {
			defer db.Close()
			repo := index.NewRepository(db, w.Path())
			log.Printf("Mirroring intervals into %s (session %s)", cfg.Index.Path, repo.SessionID())
			opts.Mirror = repo
		}
	}

	var resolver window.ClassResolver
	if r, err := x11.NewResolver(); err != nil {
		log.Printf("WM_CLASS lookup unavailable: %v", err)
	} else {
		defer r.Close()
		resolver = r
	}

	src, err := i3ipc.NewSource(resolver)
	if err != nil {
		return fault.Wrap(fault.Connection, err, "failed to subscribe to window events")
	}
	defer src.Close()

	svc := tracker.NewService(w, next, opts)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case sig := <-sigChan:
			log.Printf("Received %v, flushing", sig)
			svc.Flush()
		case <-ctx.Done():
		}
	}()

	svc.Listen(src)
	err = svc.Run(ctx)
	if err == nil || errors.Is(err, context.Canceled) {
		log.Printf("Tracker stopped, last sequence id %d", svc.Pending())
		return nil
	}
	log.Printf("Tracker error: %v", err)
	return err
}

// openActiveLog picks the rotation slot, locks it and recovers the next
// sequence id. A reused slot is only truncated once its lock is held, so a
// tracker still writing to it makes this fail with logfile.ErrLocked.
func openActiveLog(cfg *config.Config) (*logfile.Writer, uint32, error) {
	sel, err := rotate.New(cfg.Log.Dir, cfg.Log.BaseName, cfg.Log.Limit, cfg.Log.DeleteEvicted).Select()
	if err != nil {
		return nil, 0, err
	}

	var w *logfile.Writer
	if sel.Reset {
		w, err = logfile.OpenReset(sel.Path)
	} else {
		w, err = logfile.Open(sel.Path)
	}
	if err != nil {
		return nil, 0, err
	}

	next, err := logfile.NextSequence(w.Path())
	if err != nil {
		w.Close()
		return nil, 0, err
	}

	log.Printf("Writing to %s (slot %d, evicted %v, next id %d)", w.Path(), sel.Index, sel.Evicted, next)
	return w, next, nil
}

func openIndex(path string) (*index.DB, error) {
	db, err := index.Connect(path)
	if err != nil {
		return nil, err
	}
	if err := db.Initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}
