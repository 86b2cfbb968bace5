package api

import (
	"net/http"

	"github.com/ayusman/orrery/internal/tracker"
)

// ExitHandler leaves the active planet environment, returning the view to
// the solar system. The inverse of the three-finger entry gesture, which
// has no gestural counterpart.
type ExitHandler struct {
	tracker *tracker.Tracker
}

// NewExitHandler creates a new ExitHandler bound to the given tracker.
func NewExitHandler(t *tracker.Tracker) *ExitHandler {
	return &ExitHandler{tracker: t}
}

type exitResponse struct {
	Mode string `json:"mode"`
}

// ServeHTTP implements the http.Handler interface.
func (h *ExitHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	h.tracker.ExitPlanet()
	writeJSON(w, http.StatusOK, exitResponse{Mode: h.tracker.Snapshot().World.Mode})
}
