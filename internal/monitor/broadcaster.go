package monitor

import (
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultQueueLimit caps pending events per viewer session.
	DefaultQueueLimit = 1024
	// DefaultKeepalive is the interval between SSE keepalive comments.
	DefaultKeepalive = 30 * time.Second

	StreamPath  = "/stream-logs"
	MonitorPath = "/monitor"
)

// ErrBroadcasterClosed is returned by Subscribe after Close.
var ErrBroadcasterClosed = errors.New("broadcaster is closed")

// Options configures a Broadcaster.
type Options struct {
	// QueueLimit bounds each session queue; zero or less means unbounded.
	QueueLimit int
	// Keepalive is the interval between SSE comments; zero disables them.
	Keepalive time.Duration
	// ExcludePaths are skipped by the interceptor in addition to the monitor endpoints.
	ExcludePaths []string
	// TrustProxyHeaders makes the interceptor prefer X-Forwarded-For for the client address.
	TrustProxyHeaders bool
	Logger            zerolog.Logger
	// Now is the clock used for timestamps and latency. Defaults to time.Now.
	Now func() time.Time
}

// Broadcaster owns the registry of viewer sessions and fans request events out to them.
type Broadcaster struct {
	mu       sync.Mutex
	sessions map[string]*Session
	closed   bool

	queueLimit        int
	keepalive         time.Duration
	excluded          map[string]struct{}
	trustProxyHeaders bool
	logger            zerolog.Logger
	now               func() time.Time
}

// NewBroadcaster creates a Broadcaster with an empty registry.
func NewBroadcaster(opts Options) *Broadcaster {
	excluded := map[string]struct{}{
		StreamPath:  {},
		MonitorPath: {},
	}
	for _, p := range opts.ExcludePaths {
		if p != "" {
			excluded[p] = struct{}{}
		}
	}

	now := opts.Now
	if now == nil {
		now = time.Now
	}

	return &Broadcaster{
		sessions:          make(map[string]*Session),
		queueLimit:        opts.QueueLimit,
		keepalive:         opts.Keepalive,
		excluded:          excluded,
		trustProxyHeaders: opts.TrustProxyHeaders,
		logger:            opts.Logger.With().Str("component", "monitor").Logger(),
		now:               now,
	}
}

// Subscribe registers a new viewer session.
func (b *Broadcaster) Subscribe() (*Session, error) {
	s := newSession(b.queueLimit)

	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil, ErrBroadcasterClosed
	}
	b.sessions[s.id] = s
	count := len(b.sessions)
	b.mu.Unlock()

	b.logger.Debug().Str("session", s.id).Int("sessions", count).Msg("Viewer connected")
	return s, nil
}

// Unsubscribe removes the session from the registry and closes it. It reports
// whether the session was still registered; removing an absent session is a no-op.
func (b *Broadcaster) Unsubscribe(s *Session) bool {
	if s == nil {
		return false
	}

	b.mu.Lock()
	_, ok := b.sessions[s.id]
	if ok {
		delete(b.sessions, s.id)
	}
	count := len(b.sessions)
	b.mu.Unlock()

	s.close()

	if ok {
		b.logger.Debug().
			Str("session", s.id).
			Int("sessions", count).
			Uint64("dropped", s.Dropped()).
			Dur("connected", time.Since(s.created)).
			Msg("Viewer disconnected")
	}
	return ok
}

// Publish serializes entry once and appends it to every registered session.
// It never waits on a viewer. Nothing is serialized when no viewer is connected.
func (b *Broadcaster) Publish(entry LogEntry) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if len(b.sessions) == 0 {
		return
	}

	data, err := json.Marshal(entry)
	if err != nil {
		b.logger.Warn().Err(err).Str("path", entry.URL).Msg("Failed to serialize log entry, dropping it")
		return
	}

	for _, s := range b.sessions {
		before := s.Dropped()
		s.Enqueue(data)
		if before == 0 && s.Dropped() > 0 {
			b.logger.Warn().Str("session", s.id).Int("limit", b.queueLimit).Msg("Viewer queue full, dropping oldest events")
		}
	}
}

// Count returns the number of registered sessions.
func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.sessions)
}

// QueueLimit returns the per-session queue cap; zero means unbounded.
func (b *Broadcaster) QueueLimit() int {
	return b.queueLimit
}

// Has reports whether a session with the given ID is registered.
func (b *Broadcaster) Has(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.sessions[id]
	return ok
}

// Close closes every session and rejects new subscriptions, ending open streams.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	sessions := make([]*Session, 0, len(b.sessions))
	for id, s := range b.sessions {
		sessions = append(sessions, s)
		delete(b.sessions, id)
	}
	b.mu.Unlock()

	for _, s := range sessions {
		s.close()
	}
	b.logger.Info().Int("sessions", len(sessions)).Msg("Broadcaster closed")
}
