// Package rotate picks which of a bounded set of numbered log files a tracker
// session appends to.
package rotate

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/i3tracker/i3tracker/internal/fault"
)

// File is a numbered log file found in the data directory
type File struct {
	Index   int
	Path    string
	ModTime time.Time
}

// Selection is the outcome of a rotation
type Selection struct {
	Index   int
	Path    string
	Evicted bool // the slot previously held the oldest live file
	Reset   bool // the evicted contents should be discarded when the file is opened
}

// Rotator chooses the active log file among <base>.log.0 .. <base>.log.<limit-1>.
// It never modifies files; the writer truncates an evicted file under its lock.
type Rotator struct {
	dir          string
	base         string
	limit        int
	resetEvicted bool
}

// New creates a Rotator. resetEvicted marks a reused slot for truncation.
func New(dir, base string, limit int, resetEvicted bool) *Rotator {
	return &Rotator{
		dir:          dir,
		base:         base,
		limit:        limit,
		resetEvicted: resetEvicted,
	}
}

// FileName returns the name of the log file with the given rotation index
func FileName(base string, index int) string {
	return fmt.Sprintf("%s.log.%d", base, index)
}

// Select inspects the data directory and returns the file this session should use
func (r *Rotator) Select() (*Selection, error) {
	if r.limit < 1 {
		return nil, fmt.Errorf("log limit must be at least 1, got %d", r.limit)
	}
	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return nil, fault.Wrap(fault.IO, err, "failed to create data directory")
	}

	files, err := List(r.dir, r.base, r.limit)
	if err != nil {
		return nil, err
	}

	if len(files) < r.limit {
		index := lowestFree(files)
		return &Selection{Index: index, Path: filepath.Join(r.dir, FileName(r.base, index))}, nil
	}

	sort.Slice(files, func(i, j int) bool {
		if files[i].ModTime.Equal(files[j].ModTime) {
			return files[i].Index < files[j].Index
		}
		return files[i].ModTime.Before(files[j].ModTime)
	})
	oldest := files[0]

	log.Printf("Reusing slot of oldest log %s (modified %s)", oldest.Path, oldest.ModTime.Format(time.RFC3339))

	return &Selection{Index: oldest.Index, Path: oldest.Path, Evicted: true, Reset: r.resetEvicted}, nil
}

// List returns the live log files in dir, ordered by rotation index. Files with
// an index at or above limit are ignored.
func List(dir, base string, limit int) ([]File, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fault.Wrap(fault.IO, err, "failed to read data directory")
	}

	prefix := base + ".log."
	var files []File
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasPrefix(entry.Name(), prefix) {
			continue
		}
		index, err := strconv.Atoi(strings.TrimPrefix(entry.Name(), prefix))
		if err != nil || index < 0 || index >= limit {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return nil, fault.Wrap(fault.IO, err, "failed to stat log file")
		}
		files = append(files, File{
			Index:   index,
			Path:    filepath.Join(dir, entry.Name()),
			ModTime: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].Index < files[j].Index })
	return files, nil
}

// Latest returns the most recently modified live log file, or "" when there is none
func Latest(dir, base string, limit int) (string, error) {
	files, err := List(dir, base, limit)
	if err != nil {
		return "", err
	}
	var latest *File
	for i := range files {
		if latest == nil || files[i].ModTime.After(latest.ModTime) {
			latest = &files[i]
		}
	}
	if latest == nil {
		return "", nil
	}
	return latest.Path, nil
}

// lowestFree returns the smallest index not used by files, which must be sorted by index
func lowestFree(files []File) int {
	next := 0
	for _, f := range files {
		if f.Index != next {
			break
		}
		next++
	}
	return next
}
