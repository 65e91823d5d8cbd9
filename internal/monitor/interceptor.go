package monitor

import (
	"bufio"
	"net"
	"net/http"
	"strings"
)

// Interceptor wraps next so that every completed request, except those aimed at
// the monitor endpoints and excluded paths, is published to connected viewers.
func (b *Broadcaster) Interceptor(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if b.isExcluded(r.URL.Path) {
			next.ServeHTTP(w, r)
			return
		}

		start := b.now()
		recorder := newStatusRecorder(w)
		next.ServeHTTP(recorder, r)
		completed := b.now()

		entry := NewLogEntry(r.Method, r.URL.Path, b.clientAddress(r), recorder.status, completed.Sub(start), completed)
		b.Publish(entry)
	})
}

func (b *Broadcaster) isExcluded(path string) bool {
	_, ok := b.excluded[path]
	return ok
}

func (b *Broadcaster) clientAddress(r *http.Request) string {
	if b.trustProxyHeaders {
		if forwarded := r.Header.Get("X-Forwarded-For"); forwarded != "" {
			first, _, _ := strings.Cut(forwarded, ",")
			if first = strings.TrimSpace(first); first != "" {
				return first
			}
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// statusRecorder captures the response status while keeping Flusher and
// Hijacker available to wrapped handlers.
type statusRecorder struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
}

func newStatusRecorder(w http.ResponseWriter) *statusRecorder {
	return &statusRecorder{ResponseWriter: w, status: http.StatusOK}
}

func (sr *statusRecorder) WriteHeader(status int) {
	if !sr.wroteHeader {
		sr.status = status
		sr.wroteHeader = true
	}
	sr.ResponseWriter.WriteHeader(status)
}

func (sr *statusRecorder) Write(p []byte) (int, error) {
	sr.wroteHeader = true
	return sr.ResponseWriter.Write(p)
}

func (sr *statusRecorder) Flush() {
	if flusher, ok := sr.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

func (sr *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := sr.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, http.ErrNotSupported
}

// Unwrap lets http.ResponseController reach the underlying writer.
func (sr *statusRecorder) Unwrap() http.ResponseWriter {
	return sr.ResponseWriter
}
