// internal/api/respond.go
package api

import (
	"encoding/json"
	"net/http"

	"tenant-portal/internal/logger"
)

func decodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Get().WithError(err).Error("failed to encode response")
	}
}

// writeError emits the uniform failure body: {"error": "..."}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serverError logs the cause and degrades to a generic 500.
func serverError(w http.ResponseWriter, err error, msg string) {
	logger.Get().WithError(err).Error(msg)
	writeError(w, http.StatusInternalServerError, msg)
}
