package monitor

import (
	_ "embed"
	"net/http"
)

//go:embed web/monitor.html
var monitorPage []byte

// PageHandler serves GET /monitor, the live dashboard.
func PageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		w.WriteHeader(http.StatusOK)
		w.Write(monitorPage)
	}
}
