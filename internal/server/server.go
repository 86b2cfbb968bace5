// Package server provides the HTTP server for the Orrery gesture
// navigation system: health, scene-state WebSocket, camera preview and
// the telemetry REST API.
package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/ayusman/orrery/internal/capture"
	"github.com/ayusman/orrery/internal/scene"
	"github.com/ayusman/orrery/internal/server/api"
	"github.com/ayusman/orrery/internal/store"
	"github.com/ayusman/orrery/internal/tracker"
)

// Config holds the server configuration. Absent collaborators simply
// leave their routes unregistered.
type Config struct {
	StaticDir string
	Store     *store.Store
	Camera    capture.Camera
	Tracker   *tracker.Tracker
	World     *scene.World
}

// Server represents the HTTP server for the Orrery application.
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

	if s.config.Store != nil {
		sessionsHandler := api.NewSessionsHandler(s.config.Store)
		s.mux.Handle("/api/sessions", sessionsHandler)
		s.mux.Handle("/api/sessions/", sessionsHandler)
	}

	if s.config.Tracker != nil {
		s.mux.Handle("/api/calibration", api.NewCalibrationHandler(s.config.Tracker))
		s.mux.Handle("/api/exit", api.NewExitHandler(s.config.Tracker))
		s.mux.Handle("/api/state", NewStateHandler(s.config.Tracker))
	}

	if s.config.World != nil {
		s.mux.Handle("/api/planets", api.NewPlanetsHandler(s.config.World))
	}

	if s.config.Camera != nil {
		s.mux.Handle("/api/stream", NewStreamHandler(s.config.Camera))
	}

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

	tracking := false
	if s.config.Tracker != nil {
		tracking = s.config.Tracker.Running()
	}

	response := map[string]interface{}{
		"status":   "ok",
		"uptime":   uptime.String(),
		"tracking": tracking,
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}

// ListenAndServe starts the HTTP server on the given address.
func (s *Server) ListenAndServe(addr string) error {
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}
	return http.ListenAndServe(addr, s)
}
