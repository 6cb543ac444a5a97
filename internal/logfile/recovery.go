package logfile

import (
	"encoding/csv"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/i3tracker/i3tracker/internal/fault"
	"github.com/i3tracker/i3tracker/internal/models"
)

// ErrNotFound means the log holds no usable last row
var ErrNotFound = errors.New("no log entry found")

// ReadLast decodes the last row of the log at path. It returns ErrNotFound when
// the file is missing, has no data rows, or its last row cannot be decoded.
func ReadLast(path string) (*models.LogEntry, error) {
	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fault.Wrap(fault.IO, err, "failed to open log file")
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	r.ReuseRecord = true

	var last []string
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if !errors.As(err, &perr) {
				return nil, fault.Wrap(fault.IO, err, "failed to read log file")
			}
			// only a malformed final row matters, earlier ones are superseded
			last = nil
			continue
		}
		if isHeader(record) {
			continue
		}
		last = append(last[:0], record...)
	}

	if last == nil {
		return nil, ErrNotFound
	}

	entry, err := decode(last)
	if err != nil {
		log.Printf("Ignoring malformed last row of %s: %v", path, fault.Wrap(fault.Serialization, err, "decode"))
		return nil, ErrNotFound
	}
	return &entry, nil
}

// NextSequence returns the sequence id the next interval written to path should use
func NextSequence(path string) (uint32, error) {
	last, err := ReadLast(path)
	if errors.Is(err, ErrNotFound) {
		return 1, nil
	}
	if err != nil {
		return 0, err
	}
	return last.Sequence + 1, nil
}
