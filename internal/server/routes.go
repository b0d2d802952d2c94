package server

import (
	"net/http"
)

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	// API routes
	s.router.HandleFunc("GET /api/timestamps", s.handleTimestamps)
	s.router.HandleFunc("POST /api/refresh", s.handleRefresh)
	s.router.HandleFunc("POST /api/reload", s.handleReload)

	// Health check
	s.router.HandleFunc("GET /api/health", s.handleHealth)

	// Live updates
	s.router.HandleFunc("GET /ws", s.handleWebSocket)

	// Embedded client script
	s.router.HandleFunc("GET /static/{file}", s.handleStatic)

	s.router.HandleFunc("GET /{$}", s.handlePage)
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "ok",
	})
}
