package api

import (
	"encoding/json"
	"net/http"

	"github.com/joestump/bookmarks/internal/logger"
)

type errorMessage struct {
	Message string `json:"message"`
}

// ErrorResponse is the envelope for every non-401 error.
type ErrorResponse struct {
	Error errorMessage `json:"error"`
}

// writeError writes {"error": {"message": message}} with the given status.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: errorMessage{Message: message}})
}

// writeServerError logs err and answers 500. Outside production the error
// text is returned to help local debugging.
func writeServerError(w http.ResponseWriter, r *http.Request, log logger.Logger, production bool, err error) {
	log.Error("request failed",
		logger.String("method", r.Method),
		logger.String("path", r.URL.Path),
		logger.Error(err),
	)
	msg := "server error"
	if !production {
		msg = err.Error()
	}
	writeError(w, http.StatusInternalServerError, msg)
}

// writeJSON writes a JSON response with the given HTTP status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
