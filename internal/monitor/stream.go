package monitor

import (
	"fmt"
	"io"
	"net/http"
	"time"
)

var keepaliveFrame = []byte(": keepalive\n\n")

// StreamHandler serves GET /stream-logs: one viewer session per connection,
// each queued event written as an SSE data frame.
func (b *Broadcaster) StreamHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "streaming not supported", http.StatusInternalServerError)
			return
		}

		session, err := b.Subscribe()
		if err != nil {
			http.Error(w, "log stream unavailable", http.StatusServiceUnavailable)
			return
		}
		defer b.Unsubscribe(session)

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)
		flusher.Flush()

		var keepalive <-chan time.Time
		if b.keepalive > 0 {
			ticker := time.NewTicker(b.keepalive)
			defer ticker.Stop()
			keepalive = ticker.C
		}

		ctx := r.Context()
		for {
			if err := drain(w, session); err != nil {
				b.logger.Debug().Err(err).Str("session", session.ID()).Msg("Viewer write failed, closing stream")
				return
			}
			flusher.Flush()

			if session.Closed() {
				return
			}

			select {
			case <-ctx.Done():
				return
			case <-keepalive:
				if _, err := w.Write(keepaliveFrame); err != nil {
					return
				}
				flusher.Flush()
			case <-session.Ready():
			}
		}
	}
}

func drain(w io.Writer, s *Session) error {
	for {
		msg, ok := s.Pop()
		if !ok {
			return nil
		}
		if err := writeSSEMessage(w, msg); err != nil {
			return err
		}
	}
}

// writeSSEMessage writes one serialized LogEntry as a Server-Sent Event.
func writeSSEMessage(w io.Writer, data []byte) error {
	if _, err := fmt.Fprintf(w, "data: %s\n\n", data); err != nil {
		return fmt.Errorf("failed to write SSE data: %w", err)
	}
	return nil
}
