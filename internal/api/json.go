package api

import (
	"encoding/json"
	"net/http"

	"github.com/faunadata/fauna/internal/apitypes"
)

// writeJSON sets the Content-Type header, writes the status code and encodes data.
func writeJSON(w http.ResponseWriter, status int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(data)
}

// writeError writes {"detail": detail} with the given status.
func writeError(w http.ResponseWriter, status int, detail string) error {
	return writeJSON(w, status, apitypes.ErrorResponse{Detail: detail})
}
