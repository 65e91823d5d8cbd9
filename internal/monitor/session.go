package monitor

import (
	"context"
	"crypto/rand"
	"errors"
	"sync"
	"time"

	"github.com/oklog/ulid"
)

// ErrSessionClosed is returned by Next once a session has been closed and drained.
var ErrSessionClosed = errors.New("viewer session closed")

// Session is the delivery queue of one connected viewer. Enqueue never blocks;
// events come out of Pop and Next in the order they were enqueued.
type Session struct {
	id      string
	created time.Time
	limit   int

	mu      sync.Mutex
	queue   [][]byte
	dropped uint64
	closed  bool

	// wake holds at most one pending signal so producers never wait on it.
	wake chan struct{}
}

func newSession(limit int) *Session {
	return &Session{
		id:      newSessionID(),
		created: time.Now(),
		limit:   limit,
		wake:    make(chan struct{}, 1),
	}
}

func newSessionID() string {
	return ulid.MustNew(ulid.Now(), rand.Reader).String()
}

// ID returns the session's ULID.
func (s *Session) ID() string {
	return s.id
}

// Enqueue appends a serialized event. When the queue is at its limit the oldest
// pending event is discarded. Events sent to a closed session are ignored.
func (s *Session) Enqueue(msg []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	if s.limit > 0 && len(s.queue) >= s.limit {
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.dropped++
	}
	s.queue = append(s.queue, msg)
	s.mu.Unlock()

	s.signal()
}

// Pop removes and returns the oldest pending event, if any.
func (s *Session) Pop() ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 {
		return nil, false
	}
	msg := s.queue[0]
	s.queue[0] = nil
	s.queue = s.queue[1:]
	return msg, true
}

// Next blocks until an event is available, the session is closed, or ctx ends.
func (s *Session) Next(ctx context.Context) ([]byte, error) {
	for {
		if msg, ok := s.Pop(); ok {
			return msg, nil
		}
		if s.Closed() {
			return nil, ErrSessionClosed
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.wake:
		}
	}
}

// Ready fires after new events arrive or the session is closed.
func (s *Session) Ready() <-chan struct{} {
	return s.wake
}

// Len reports the number of pending events.
func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Dropped reports how many events were discarded because the queue was full.
func (s *Session) Dropped() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dropped
}

// Closed reports whether the session has been closed.
func (s *Session) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// close marks the session closed and wakes any waiter. Pending events stay
// readable through Pop.
func (s *Session) close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.signal()
}

func (s *Session) signal() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}
