package logging

import (
	"bufio"
	"crypto/rand"
	"net"
	"net/http"
	"time"

	"github.com/oklog/ulid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// RequestLoggerConfig configures RequestLogger.
type RequestLoggerConfig struct {
	Logger zerolog.Logger
	// SkipPaths are served without a log line.
	SkipPaths         []string
	DisableRemoteAddr bool
}

// RequestLogger logs one "request completed" line per request and stores a
// request-scoped logger, tagged with a request ID, in the request context.
func RequestLogger(cfg RequestLoggerConfig) func(http.Handler) http.Handler {
	skip := make(map[string]struct{}, len(cfg.SkipPaths))
	for _, p := range cfg.SkipPaths {
		skip[p] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := r.Header.Get(RequestIDHeader)
			if requestID == "" {
				requestID = ulid.MustNew(ulid.Now(), rand.Reader).String()
			}
			w.Header().Set(RequestIDHeader, requestID)

			logger := cfg.Logger.With().Str("request_id", requestID).Logger()
			r = r.WithContext(WithLogger(r.Context(), logger))

			if _, ok := skip[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			recorder := newResponseRecorder(w)
			start := time.Now()
			next.ServeHTTP(recorder, r)

			event := logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", recorder.status).
				Dur("duration", time.Since(start))
			if !cfg.DisableRemoteAddr {
				event = event.Str("remote_addr", r.RemoteAddr)
			}
			event.Msg("request completed")
		})
	}
}

// responseRecorder captures the final status code while keeping Flusher and
// Hijacker reachable.
type responseRecorder struct {
	http.ResponseWriter
	status int
}

func newResponseRecorder(w http.ResponseWriter) *responseRecorder {
	return &responseRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (rr *responseRecorder) WriteHeader(status int) {
	rr.status = status
	rr.ResponseWriter.WriteHeader(status)
}

func (rr *responseRecorder) Flush() {
	if flusher, ok := rr.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (rr *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := rr.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

func (rr *responseRecorder) Unwrap() http.ResponseWriter {
	return rr.ResponseWriter
}
