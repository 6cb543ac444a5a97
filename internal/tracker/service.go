package tracker

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/i3tracker/i3tracker/internal/fault"
	"github.com/i3tracker/i3tracker/internal/models"
	"github.com/i3tracker/i3tracker/internal/normalizer"
	"github.com/i3tracker/i3tracker/pkg/window"
)

// DefaultHeartbeat is the idle period after which an open interval is re-persisted
const DefaultHeartbeat = 10 * time.Second

// Sink persists log entries
type Sink interface {
	Append(entry models.LogEntry) error
}

// Options configures a Service
type Options struct {
	Heartbeat time.Duration
	Buffer    int
	// Mirror receives every persisted entry after the sink; its failures are logged, not fatal
	Mirror  Sink
	Verbose bool
}

type messageKind int

const (
	msgWindow messageKind = iota
	msgTick
	msgFlush
	msgFailure
)

type message struct {
	kind  messageKind
	event normalizer.Event
	seq   uint32
	err   error
}

// Service owns the open focus interval and the sequence counter. All state is
// mutated by the goroutine running Run; everything else posts messages.
type Service struct {
	sink      Sink
	mirror    Sink
	heartbeat time.Duration
	verbose   bool

	now      func() time.Time
	schedule func(d time.Duration, f func())

	messages chan message
	done     chan struct{}

	active  *models.ActiveRecord
	pending uint32
}

// NewService creates a tracker that writes to sink, starting at sequence id next
func NewService(sink Sink, next uint32, opts Options) *Service {
	if opts.Heartbeat <= 0 {
		opts.Heartbeat = DefaultHeartbeat
	}
	if opts.Buffer <= 0 {
		opts.Buffer = 50
	}
	return &Service{
		sink:      sink,
		mirror:    opts.Mirror,
		heartbeat: opts.Heartbeat,
		verbose:   opts.Verbose,
		now:       time.Now,
		schedule: func(d time.Duration, f func()) {
			time.AfterFunc(d, f)
		},
		messages: make(chan message, opts.Buffer),
		done:     make(chan struct{}),
		pending:  next,
	}
}

// Listen reads src on its own goroutine, normalizes the events and forwards
// them to the consumer loop. When src ends, the loop is told to fail.
func (s *Service) Listen(src window.Source) {
	go func() {
		norm := normalizer.New()
		for src.Next() {
			raw := src.Event()
			if s.verbose {
				log.Printf("Received %s event for window %d", raw.Kind, raw.WindowID)
			}
			ev, ok := norm.Process(raw)
			if !ok {
				if id, waiting := norm.Awaiting(); s.verbose && waiting && raw.Kind == window.ChangeNew {
					log.Printf("Window %d opened, waiting for its focus", id)
				}
				continue
			}
			s.send(message{kind: msgWindow, event: ev})
		}

		err := src.Err()
		if err == nil {
			err = errors.New("event stream closed")
		}
		s.send(message{kind: msgFailure, err: fault.Wrap(fault.Connection, err, "window event listener stopped")})
	}()
}

// Flush asks the loop to persist the open interval and stop
func (s *Service) Flush() {
	s.send(message{kind: msgFlush})
}

// Run consumes messages until a flush, a failure, or ctx cancellation.
// A flush returns nil; cancellation flushes and returns ctx.Err().
func (s *Service) Run(ctx context.Context) error {
	defer close(s.done)

	log.Printf("Tracker started, next sequence id %d, heartbeat %v", s.pending, s.heartbeat)

	for {
		select {
		case <-ctx.Done():
			if err := s.flush(); err != nil {
				return err
			}
			return ctx.Err()

		case m := <-s.messages:
			stop, err := s.handle(m)
			if err != nil {
				return err
			}
			if stop {
				return nil
			}
		}
	}
}

// Pending returns the sequence id the open interval will be persisted under.
// Only meaningful from the loop goroutine or after Run has returned.
func (s *Service) Pending() uint32 {
	return s.pending
}

func (s *Service) send(m message) {
	select {
	case s.messages <- m:
	case <-s.done:
	}
}

func (s *Service) handle(m message) (bool, error) {
	switch m.kind {
	case msgWindow:
		return false, s.activate(m.event)
	case msgTick:
		return false, s.tick(m.seq)
	case msgFlush:
		log.Println("Flush requested")
		return true, s.flush()
	case msgFailure:
		return true, m.err
	}
	return false, nil
}

func (s *Service) activate(ev normalizer.Event) error {
	now := s.now()

	if s.active != nil {
		if s.active.Matches(ev.WindowID, ev.Metadata) {
			return nil
		}
		if err := s.persist(s.active.Entry(s.pending, now)); err != nil {
			return err
		}
		s.pending++
	}

	if s.verbose {
		log.Printf("Window %d %s: %q (%s), interval %d", ev.WindowID, ev.Kind, ev.Metadata.Title, ev.Metadata.Class, s.pending)
	}
	s.active = models.NewActiveRecord(ev.WindowID, ev.Metadata, now)
	s.arm(s.pending)
	return nil
}

func (s *Service) tick(seq uint32) error {
	if seq != s.pending {
		if s.verbose {
			log.Printf("Dropping stale tick for interval %d (pending %d)", seq, s.pending)
		}
		return nil
	}
	if s.active == nil {
		return nil
	}

	now := s.now()
	if err := s.persist(s.active.Entry(seq, now)); err != nil {
		return err
	}
	s.active.RollForward(now)
	s.arm(seq)
	return nil
}

func (s *Service) flush() error {
	if s.active == nil {
		return nil
	}
	return s.persist(s.active.Entry(s.pending, s.now()))
}

func (s *Service) persist(entry models.LogEntry) error {
	if err := s.sink.Append(entry); err != nil {
		return err
	}
	if s.mirror != nil {
		if err := s.mirror.Append(entry); err != nil {
			log.Printf("Failed to mirror interval %d: %v", entry.Sequence, err)
		}
	}
	return nil
}

func (s *Service) arm(seq uint32) {
	s.schedule(s.heartbeat, func() {
		s.send(message{kind: msgTick, seq: seq})
	})
}
