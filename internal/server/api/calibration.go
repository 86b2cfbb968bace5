package api

import (
	"encoding/json"
	"net/http"

	"github.com/ayusman/orrery/internal/gesture"
	"github.com/ayusman/orrery/internal/tracker"
)

// CalibrationHandler reads and updates the active screen calibration.
type CalibrationHandler struct {
	tracker *tracker.Tracker
}

// NewCalibrationHandler creates a new CalibrationHandler bound to the given tracker.
func NewCalibrationHandler(t *tracker.Tracker) *CalibrationHandler {
	return &CalibrationHandler{tracker: t}
}

// ServeHTTP implements the http.Handler interface.
func (h *CalibrationHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.get(w, r)
	case http.MethodPut:
		h.update(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// get handles GET /api/calibration.
func (h *CalibrationHandler) get(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.tracker.Calibration())
}

// update handles PUT /api/calibration. Scale factors must stay positive
// or every normalized coordinate collapses to the clamp bounds.
func (h *CalibrationHandler) update(w http.ResponseWriter, r *http.Request) {
	var calib gesture.Calibration
	if err := json.NewDecoder(r.Body).Decode(&calib); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if calib.ScaleX <= 0 || calib.ScaleY <= 0 {
		writeError(w, http.StatusBadRequest, "Scale factors must be positive")
		return
	}

	h.tracker.SetCalibration(calib)
	writeJSON(w, http.StatusOK, h.tracker.Calibration())
}
