package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	apperrors "pdf-library/pkg/errors"
)

// writeJSON writes a JSON response
func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(data)
}

// writeError writes a plain error response
func writeError(w http.ResponseWriter, statusCode int, message string) {
	writeJSON(w, statusCode, map[string]string{"error": message})
}

// writeAppError maps a tagged application error to a response carrying
// its kind, so distinct failure modes stay distinguishable for clients.
func writeAppError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		body := map[string]string{
			"error": appErr.Message,
			"type":  string(appErr.Type),
		}
		if appErr.Details != "" {
			body["details"] = appErr.Details
		}
		writeJSON(w, appErr.StatusCode, body)
		return
	}
	writeError(w, http.StatusInternalServerError, "internal error")
}
