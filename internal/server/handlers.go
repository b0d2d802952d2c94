package server

import (
	"encoding/json"
	"net/http"

	"github.com/diogenes-ai-code/timeago/internal/errors"
)

// ErrorResponse represents an API error.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    int    `json:"code"`
	Message string `json:"message,omitempty"`
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    status,
		Message: message,
	})
}

// writeSharedError writes an error response using the shared error type.
// It maps the error kind to the appropriate HTTP status code.
func writeSharedError(w http.ResponseWriter, err error) {
	status := errors.GetHTTPStatus(err)
	writeJSON(w, status, ErrorResponse{
		Error:   http.StatusText(status),
		Code:    status,
		Message: err.Error(),
	})
}

// handlePage serves the document as last refreshed.
func (s *Server) handlePage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if err := s.config.Document.Render(w); err != nil {
		s.logger.Printf("Failed to render page: %v", err)
	}
}

// handleTimestamps returns the result of the most recent refresh.
func (s *Server) handleTimestamps(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.scheduler.Last())
}

// handleRefresh refreshes every timestamp now.
func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.scheduler.TickNow())
}

// handleReload rebuilds the document from its source and refreshes it.
// Elements of the old page lose their captured values, and live clients are
// told to fetch the page again since every element id changed.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	if s.config.Source == nil {
		writeSharedError(w, errors.InvalidArgs("no page source configured"))
		return
	}

	page, err := s.config.Source.Open()
	if err != nil {
		writeSharedError(w, errors.Wrap(err, errors.GetKind(err), "failed to open page source"))
		return
	}
	if err := s.config.Document.Replace(page); err != nil {
		writeSharedError(w, errors.WrapInternal(err, "failed to parse page"))
		return
	}

	s.logger.Printf("Reloaded page (%d timestamps)", s.config.Document.Count())
	result := s.scheduler.TickNow()
	s.hub.broadcastReload()
	writeJSON(w, http.StatusOK, result)
}
