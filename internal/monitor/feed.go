package monitor

import "net/http"

// DefaultFeedRows is how many entries the dashboard keeps on screen.
const DefaultFeedRows = 20

// Status classes shared by the HTML dashboard and the terminal viewer.
const (
	ClassSuccess     = "success"
	ClassClientError = "client-error"
	ClassServerError = "server-error"
	ClassOther       = ""
)

// StatusClass maps a status code to its dashboard colour class.
func StatusClass(status int) string {
	switch {
	case status >= 200 && status < 300:
		return ClassSuccess
	case status == http.StatusNotFound:
		return ClassClientError
	case status >= 500:
		return ClassServerError
	default:
		return ClassOther
	}
}

// Feed is the rendered view of a stream: newest entry first, capped at a
// fixed number of rows. It is not safe for concurrent use.
type Feed struct {
	limit   int
	entries []LogEntry
}

// NewFeed returns a Feed holding at most limit rows (DefaultFeedRows when limit <= 0).
func NewFeed(limit int) *Feed {
	if limit <= 0 {
		limit = DefaultFeedRows
	}
	return &Feed{limit: limit, entries: make([]LogEntry, 0, limit)}
}

// Push puts entry at the top and drops rows beyond the limit.
func (f *Feed) Push(entry LogEntry) {
	if len(f.entries) < f.limit {
		f.entries = append(f.entries, LogEntry{})
	}
	copy(f.entries[1:], f.entries[:len(f.entries)-1])
	f.entries[0] = entry
}

// Entries returns a copy of the rows, newest first.
func (f *Feed) Entries() []LogEntry {
	out := make([]LogEntry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Len returns the number of rows.
func (f *Feed) Len() int {
	return len(f.entries)
}
