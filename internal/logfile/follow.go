package logfile

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/i3tracker/i3tracker/internal/fault"
	"github.com/i3tracker/i3tracker/internal/models"
)

// maxPending bounds the bytes kept while waiting for a row to complete
const maxPending = 1 << 16

// Follower streams rows appended to a log file after it was created
type Follower struct {
	path    string
	offset  int64
	pending []byte
	// file last read, to notice when path is replaced
	info os.FileInfo
}

// NewFollower starts at the current end of path; a missing file starts at zero
func NewFollower(path string) (*Follower, error) {
	f := &Follower{path: path}
	info, err := os.Stat(path)
	if err == nil {
		f.offset = info.Size()
		f.info = info
	} else if !os.IsNotExist(err) {
		return nil, fault.Wrap(fault.IO, err, "failed to stat log file")
	}
	return f, nil
}

// Follow calls fn for every complete row appended to the file until ctx is
// cancelled. The file's directory is watched so that a replaced file is
// read from the start.
func (f *Follower) Follow(ctx context.Context, fn func(models.LogEntry)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fault.Wrap(fault.IO, err, "failed to create watcher")
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(f.path)); err != nil {
		return fault.Wrap(fault.IO, err, "failed to watch log directory")
	}

	// rows written between NewFollower and Add
	if err := f.drain(fn); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != filepath.Clean(f.path) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				if err := f.drain(fn); err != nil {
					return err
				}
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Printf("Watcher error on %s: %v", f.path, err)
		}
	}
}

func (f *Follower) drain(fn func(models.LogEntry)) error {
	file, err := os.Open(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fault.Wrap(fault.IO, err, "failed to open log file")
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fault.Wrap(fault.IO, err, "failed to stat log file")
	}
	if (f.info != nil && !os.SameFile(f.info, info)) || info.Size() < f.offset {
		f.offset = 0
		f.pending = f.pending[:0]
	}
	f.info = info

	if _, err := file.Seek(f.offset, io.SeekStart); err != nil {
		return fault.Wrap(fault.IO, err, "failed to seek log file")
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return fault.Wrap(fault.IO, err, "failed to read log file")
	}
	f.offset += int64(len(data))
	f.pending = append(f.pending, data...)

	f.emit(fn)
	return nil
}

// emit decodes every complete row in pending. A trailing row that does not
// parse yet may still be in flight and is kept for the next drain.
func (f *Follower) emit(fn func(models.LogEntry)) {
	end := bytes.LastIndexByte(f.pending, '\n')
	if end < 0 {
		return
	}

	r := csv.NewReader(bytes.NewReader(f.pending[:end+1]))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		if len(f.pending) > maxPending {
			log.Printf("Dropping %d unparsable bytes from %s: %v", len(f.pending), f.path, err)
			f.pending = f.pending[:0]
		}
		return
	}

	for _, record := range records {
		if isHeader(record) {
			continue
		}
		entry, err := decode(record)
		if err != nil {
			log.Printf("Skipping malformed row in %s: %v", f.path, err)
			continue
		}
		fn(entry)
	}
	f.pending = append(f.pending[:0], f.pending[end+1:]...)
}
