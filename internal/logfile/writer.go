// Package logfile appends focus intervals to a locked CSV log and recovers the
// next sequence id from an existing one.
package logfile

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"golang.org/x/sys/unix"

	"github.com/i3tracker/i3tracker/internal/fault"
	"github.com/i3tracker/i3tracker/internal/models"
)

// ErrLocked is returned when another process holds the log file lock
var ErrLocked = errors.New("log file is locked by another process")

// Writer appends LogEntry rows to a single log file
type Writer struct {
	path string
	file *os.File
	csv  *csv.Writer
}

// Open opens path for appending and takes an exclusive advisory lock on it.
// The header row is written when the file is empty.
func Open(path string) (*Writer, error) {
	return open(path, false)
}

// OpenReset is Open for a reused rotation slot: the previous contents are
// truncated, but only once the lock is held.
func OpenReset(path string) (*Writer, error) {
	return open(path, true)
}

func open(path string, reset bool) (*Writer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fault.Wrap(fault.IO, err, "failed to create log directory")
	}

	file, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fault.Wrap(fault.IO, err, "failed to open log file")
	}

	if err := unix.Flock(int(file.Fd()), unix.LOCK_EX|unix.LOCK_NB); err != nil {
		file.Close()
		if errors.Is(err, unix.EWOULDBLOCK) {
			return nil, fault.Wrapf(fault.IO, ErrLocked, "log file %s", path)
		}
		return nil, fault.Wrap(fault.IO, err, "failed to lock log file")
	}

	w := &Writer{
		path: path,
		file: file,
		csv:  csv.NewWriter(file),
	}

	if reset {
		if err := file.Truncate(0); err != nil {
			w.Close()
			return nil, fault.Wrap(fault.IO, err, "failed to truncate log file")
		}
	}

	info, err := file.Stat()
	if err != nil {
		w.Close()
		return nil, fault.Wrap(fault.IO, err, "failed to stat log file")
	}
	if info.Size() == 0 {
		if err := w.writeRecord(Header); err != nil {
			w.Close()
			return nil, err
		}
	}

	return w, nil
}

// Append writes one entry and flushes it to disk before returning
func (w *Writer) Append(entry models.LogEntry) error {
	return w.writeRecord(encode(entry))
}

// Path returns the file the writer appends to
func (w *Writer) Path() string {
	return w.path
}

// Close releases the lock and closes the file
func (w *Writer) Close() error {
	w.csv.Flush()
	_ = unix.Flock(int(w.file.Fd()), unix.LOCK_UN)
	if err := w.file.Close(); err != nil {
		return fault.Wrap(fault.IO, err, "failed to close log file")
	}
	return nil
}

func (w *Writer) writeRecord(record []string) error {
	if err := w.csv.Write(record); err != nil {
		return fault.Wrap(fault.IO, err, "failed to write log row")
	}
	w.csv.Flush()
	if err := w.csv.Error(); err != nil {
		return fault.Wrap(fault.IO, err, "failed to flush log row")
	}
	if err := w.file.Sync(); err != nil {
		return fault.Wrap(fault.IO, err, "failed to sync log file")
	}
	return nil
}
