package monitor

import (
	"fmt"
	"time"
)

// TimestampFormat is the wall-clock layout used for LogEntry.Timestamp.
const TimestampFormat = "15:04:05"

// LogEntry is one completed request as sent to viewers.
type LogEntry struct {
	Timestamp string `json:"timestamp"`
	Method    string `json:"method"`
	URL       string `json:"url"`
	Client    string `json:"client"`
	Status    int    `json:"status"`
	Latency   string `json:"latency"`
}

// NewLogEntry builds a LogEntry for a request that finished at completedAt.
func NewLogEntry(method, path, client string, status int, latency time.Duration, completedAt time.Time) LogEntry {
	return LogEntry{
		Timestamp: completedAt.Format(TimestampFormat),
		Method:    method,
		URL:       path,
		Client:    client,
		Status:    status,
		Latency:   FormatLatency(latency),
	}
}

// FormatLatency renders a duration as seconds with four decimals, e.g. "0.0123s".
func FormatLatency(d time.Duration) string {
	return fmt.Sprintf("%.4fs", d.Seconds())
}
