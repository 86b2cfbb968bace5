package api

import (
	"net/http"

	"github.com/ayusman/orrery/internal/physics"
	"github.com/ayusman/orrery/internal/scene"
)

// PlanetsHandler lists the planets in scene order with their surface
// gravity, so renderers can label the system without hardcoding it.
type PlanetsHandler struct {
	world *scene.World
}

// NewPlanetsHandler creates a new PlanetsHandler bound to the given world.
func NewPlanetsHandler(w *scene.World) *PlanetsHandler {
	return &PlanetsHandler{world: w}
}

type planetResponse struct {
	Index   int     `json:"index"`
	Name    string  `json:"name"`
	Gravity float64 `json:"gravity"`
}

type listPlanetsResponse struct {
	Planets     []planetResponse `json:"planets"`
	Highlighted string           `json:"highlighted,omitempty"`
}

// ServeHTTP handles GET /api/planets.
func (h *PlanetsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := listPlanetsResponse{
		Planets:     make([]planetResponse, 0, len(scene.DefaultPlanetOrder)),
		Highlighted: h.world.Highlighted(),
	}
	for i, name := range scene.DefaultPlanetOrder {
		response.Planets = append(response.Planets, planetResponse{
			Index:   i,
			Name:    name,
			Gravity: physics.GravityFor(name),
		})
	}

	writeJSON(w, http.StatusOK, response)
}
