package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the JSON error body sent to clients
type ErrorResponse struct {
	Error string `json:"error"`
	Code  int    `json:"code"`
}

// respond sends a JSON success response
func respond(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if data != nil {
		// The status code is already on the wire at this point
		_ = json.NewEncoder(w).Encode(data)
	}
}

// respondError logs the error and sends a JSON error response
func respondError(w http.ResponseWriter, r *http.Request, statusCode int, err error) {
	logger := slog.With("method", r.Method, "path", r.URL.Path, "status_code", statusCode)
	if statusCode >= http.StatusInternalServerError {
		logger.Error("Request failed", "error", err)
	} else {
		logger.Debug("Request rejected", "error", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(ErrorResponse{
		Error: err.Error(),
		Code:  statusCode,
	})
}
