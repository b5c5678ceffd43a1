// Package api provides HTTP API handlers for the CPR coach.
package api

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ayusman/cprcoach/internal/engine"
)

// SessionHandler handles HTTP requests for the practice session resource.
// A session is created when the server starts and lives until shutdown;
// clients read its state and drive mode switches and resets through it.
type SessionHandler struct {
	engine    *engine.Engine
	sessionID string
	startedAt time.Time
}

// NewSessionHandler creates a new SessionHandler over the given engine.
func NewSessionHandler(e *engine.Engine) *SessionHandler {
	return &SessionHandler{
		engine:    e,
		sessionID: uuid.New().String(),
		startedAt: time.Now(),
	}
}

// ServeHTTP implements the http.Handler interface and routes requests to
// appropriate methods.
func (h *SessionHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/session or /api/session/{action}
	path := strings.TrimPrefix(r.URL.Path, "/api/session")
	path = strings.TrimPrefix(path, "/")

	if path == "" {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.get(w, r)
		return
	}

	switch path {
	case "mode":
		if r.Method != http.MethodPut {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.setMode(w, r)
	case "reset":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.reset(w, r)
	case "baseline":
		if r.Method != http.MethodPost {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		h.resetBaseline(w, r)
	default:
		http.NotFound(w, r)
	}
}

// Request and response types

type setModeRequest struct {
	Mode string `json:"mode"`
}

type sessionResponse struct {
	ID        string          `json:"id"`
	StartedAt string          `json:"started_at"`
	State     engine.Snapshot `json:"state"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (h *SessionHandler) toResponse() sessionResponse {
	return sessionResponse{
		ID:        h.sessionID,
		StartedAt: h.startedAt.Format("2006-01-02T15:04:05Z07:00"),
		State:     h.engine.Snapshot(),
	}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

// writeError writes a JSON error response.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// get handles GET /api/session and returns the session with its current state.
func (h *SessionHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.toResponse())
}

// setMode handles PUT /api/session/mode and switches the coaching mode.
func (h *SessionHandler) setMode(w http.ResponseWriter, r *http.Request) {
	var req setModeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	mode, ok := engine.ParseMode(req.Mode)
	if !ok {
		writeError(w, http.StatusBadRequest, "Invalid mode")
		return
	}

	h.engine.SetMode(mode)

	writeJSON(w, http.StatusOK, h.toResponse())
}

// reset handles POST /api/session/reset and clears the compression counters
// and feedback while keeping the calibrated baseline.
func (h *SessionHandler) reset(w http.ResponseWriter, r *http.Request) {
	h.engine.ResetCounters()

	writeJSON(w, http.StatusOK, h.toResponse())
}

// resetBaseline handles POST /api/session/baseline and clears the chest
// baseline so the next side-view frame recalibrates it.
func (h *SessionHandler) resetBaseline(w http.ResponseWriter, r *http.Request) {
	h.engine.ResetBaseline()

	writeJSON(w, http.StatusOK, h.toResponse())
}
