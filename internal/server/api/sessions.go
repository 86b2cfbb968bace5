// Package api provides HTTP API handlers for the Orrery gesture
// navigation system.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/ayusman/orrery/internal/store"
)

// SessionsHandler handles HTTP requests for tracking-session telemetry.
type SessionsHandler struct {
	store *store.Store
}

// NewSessionsHandler creates a new SessionsHandler with the given store.
func NewSessionsHandler(s *store.Store) *SessionsHandler {
	return &SessionsHandler{store: s}
}

// ServeHTTP implements the http.Handler interface and routes requests to appropriate methods.
func (h *SessionsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// Expected paths: /api/sessions, /api/sessions/{id},
	// /api/sessions/{id}/events, /api/sessions/{id}/throws
	path := strings.TrimPrefix(r.URL.Path, "/api/sessions")
	path = strings.TrimPrefix(path, "/")

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if path == "" {
		h.list(w, r)
		return
	}

	id := path
	sub := ""
	if i := strings.IndexByte(path, '/'); i >= 0 {
		id, sub = path[:i], path[i+1:]
	}

	switch sub {
	case "":
		h.get(w, r, id)
	case "events":
		h.events(w, r, id)
	case "throws":
		h.throws(w, r, id)
	default:
		writeError(w, http.StatusNotFound, "Not found")
	}
}

// Request and response types

type sessionResponse struct {
	ID        string `json:"id"`
	Profile   string `json:"profile"`
	StartedAt string `json:"started_at"`
	EndedAt   string `json:"ended_at,omitempty"`
}

type listSessionsResponse struct {
	Sessions []sessionResponse `json:"sessions"`
}

type eventResponse struct {
	ID      string `json:"id"`
	Gesture string `json:"gesture"`
	Planet  string `json:"planet,omitempty"`
	FiredAt string `json:"fired_at"`
}

type listEventsResponse struct {
	Events []eventResponse `json:"events"`
}

type throwResponse struct {
	ID         string  `json:"id"`
	Planet     string  `json:"planet"`
	Speed      float64 `json:"speed"`
	Angle      float64 `json:"angle"`
	Gravity    float64 `json:"gravity"`
	LandingX   float64 `json:"landing_x"`
	LandingZ   float64 `json:"landing_z"`
	FlightTime float64 `json:"flight_time"`
	ThrownAt   string  `json:"thrown_at"`
}

type listThrowsResponse struct {
	Throws []throwResponse `json:"throws"`
}

type errorResponse struct {
	Error string `json:"error"`
}

const timeFormat = "2006-01-02T15:04:05Z07:00"

// toSessionResponse converts a store.Session to a sessionResponse.
func toSessionResponse(s *store.Session) sessionResponse {
	resp := sessionResponse{
		ID:        s.ID,
		Profile:   s.Profile,
		StartedAt: s.StartedAt.Format(timeFormat),
	}
	if s.EndedAt != nil {
		resp.EndedAt = s.EndedAt.Format(timeFormat)
	}
	return resp
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

// list handles GET /api/sessions and returns all sessions.
func (h *SessionsHandler) list(w http.ResponseWriter, r *http.Request) {
	sessions, err := h.store.Sessions().List()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list sessions")
		return
	}

	response := listSessionsResponse{
		Sessions: make([]sessionResponse, 0, len(sessions)),
	}
	for _, s := range sessions {
		response.Sessions = append(response.Sessions, toSessionResponse(s))
	}

	writeJSON(w, http.StatusOK, response)
}

// get handles GET /api/sessions/{id} and returns a single session.
func (h *SessionsHandler) get(w http.ResponseWriter, r *http.Request, id string) {
	session, err := h.store.Sessions().GetByID(id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "Session not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to get session")
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(session))
}

// events handles GET /api/sessions/{id}/events.
func (h *SessionsHandler) events(w http.ResponseWriter, r *http.Request, id string) {
	events, err := h.store.Events().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list events")
		return
	}

	response := listEventsResponse{
		Events: make([]eventResponse, 0, len(events)),
	}
	for _, e := range events {
		response.Events = append(response.Events, eventResponse{
			ID:      e.ID,
			Gesture: e.Gesture,
			Planet:  e.Planet,
			FiredAt: e.FiredAt.Format(timeFormat),
		})
	}

	writeJSON(w, http.StatusOK, response)
}

// throws handles GET /api/sessions/{id}/throws.
func (h *SessionsHandler) throws(w http.ResponseWriter, r *http.Request, id string) {
	throws, err := h.store.Throws().ListBySession(id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list throws")
		return
	}

	response := listThrowsResponse{
		Throws: make([]throwResponse, 0, len(throws)),
	}
	for _, t := range throws {
		response.Throws = append(response.Throws, throwResponse{
			ID:         t.ID,
			Planet:     t.Planet,
			Speed:      t.Speed,
			Angle:      t.Angle,
			Gravity:    t.Gravity,
			LandingX:   t.LandingX,
			LandingZ:   t.LandingZ,
			FlightTime: t.FlightTime,
			ThrownAt:   t.ThrownAt.Format(timeFormat),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
