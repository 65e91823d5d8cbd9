package api

import (
	"net/http"

	"github.com/faunadata/fauna/internal/apitypes"
	"github.com/faunadata/fauna/internal/constants"
)

func (s *APIServer) handleVersion() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apitypes.VersionResponse{Version: constants.Version})
	}
}

func (s *APIServer) handleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apitypes.HealthResponse{
			Status:  "ok",
			Service: constants.ServiceName,
			Version: constants.Version,
		})
	}
}

func (s *APIServer) handleMonitorStatus() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, apitypes.MonitorStatusResponse{
			Viewers:    s.broadcaster.Count(),
			QueueLimit: s.broadcaster.QueueLimit(),
		})
	}
}
