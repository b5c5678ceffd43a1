// Package server provides the HTTP server for the CPR coaching system.
package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/ayusman/cprcoach/internal/capture"
	"github.com/ayusman/cprcoach/internal/detector"
	"github.com/ayusman/cprcoach/internal/engine"
	"github.com/ayusman/cprcoach/internal/overlay"
	"github.com/ayusman/cprcoach/internal/server/api"
)

// Config holds the server configuration.
type Config struct {
	StaticDir string
	Engine    *engine.Engine
	Camera    capture.Camera
	Detector  detector.Detector
	Renderer  *overlay.Renderer
}

// Server represents the HTTP server for the CPR coach application.
type Server struct {
	config Config
	mux    *http.ServeMux
	start  time.Time
}

// New creates a new Server with the given configuration.
func New(config Config) *Server {
	s := &Server{
		config: config,
		mux:    http.NewServeMux(),
		start:  time.Now(),
	}
	s.setupRoutes()
	return s
}

// setupRoutes configures all HTTP routes for the server.
func (s *Server) setupRoutes() {
	s.mux.HandleFunc("/api/health", s.handleHealth)

	// Register session API handler if Engine is configured
	if s.config.Engine != nil {
		sessionHandler := api.NewSessionHandler(s.config.Engine)
		s.mux.Handle("/api/session", sessionHandler)
		s.mux.Handle("/api/session/", sessionHandler)
	}

	// Register camera stream endpoint if Camera is configured
	if s.config.Camera != nil {
		streamHandler := NewStreamHandler(s.config.Camera, s.config.Detector, s.config.Engine, s.config.Renderer)
		s.mux.Handle("/api/stream", streamHandler)
	}

	// Register feedback WebSocket endpoint if Engine is configured
	if s.config.Engine != nil {
		feedbackHandler := NewFeedbackHandler(s.config.Engine)
		s.mux.Handle("/api/feedback", feedbackHandler)
	}

	// Serve static files if StaticDir is configured
	if s.config.StaticDir != "" {
		fs := http.FileServer(http.Dir(s.config.StaticDir))
		s.mux.Handle("/", fs)
	}
}

// ServeHTTP implements the http.Handler interface.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// handleHealth handles GET requests to /api/health.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(s.start)

	response := map[string]interface{}{
		"status": "ok",
		"uptime": uptime.String(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s)
}
